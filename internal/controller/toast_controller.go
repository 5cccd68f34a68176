package controller

import (
	"rfp-console/internal/pkg/serverutils"
	"rfp-console/internal/toast"

	"github.com/gofiber/fiber/v2"
)

type IToastController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	Active(ctx *fiber.Ctx) error
	Dismiss(ctx *fiber.Ctx) error
}

type toastController struct {
	toasts *toast.Center
}

func NewToastController(toasts *toast.Center) IToastController {
	return &toastController{toasts: toasts}
}

func (c *toastController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	h := r.Group("/toasts", middleware...)
	h.Get("", c.Active)
	h.Delete(":id", c.Dismiss)
}

func (c *toastController) Active(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get toasts", c.toasts.Active()))
}

func (c *toastController) Dismiss(ctx *fiber.Ctx) error {
	c.toasts.Dismiss(ctx.Params("id"))
	return ctx.SendStatus(fiber.StatusNoContent)
}
