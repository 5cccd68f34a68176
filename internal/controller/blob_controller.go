package controller

import (
	"fmt"

	"rfp-console/internal/blob"
	"rfp-console/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IBlobController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	Serve(ctx *fiber.Ctx) error
}

type blobController struct {
	blobs *blob.Registry
}

func NewBlobController(blobs *blob.Registry) IBlobController {
	return &blobController{blobs: blobs}
}

func (c *blobController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	r.Get("/blob/:id", append(middleware, c.Serve)...)
}

// Serve streams the bytes behind an object URL until it expires or is revoked.
func (c *blobController) Serve(ctx *fiber.Ctx) error {
	obj, ok := c.blobs.Open(blob.URL(ctx.Params("id")))
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "Object URL expired or revoked"))
	}

	if obj.ContentType != "" {
		ctx.Set(fiber.HeaderContentType, obj.ContentType)
	}
	if obj.Filename != "" {
		ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", obj.Filename))
	}
	return ctx.Send(obj.Data)
}
