package controller

import (
	"strings"

	"rfp-console/internal/intent"
	"rfp-console/internal/pkg/logger"
	"rfp-console/internal/pkg/serverutils"
	"rfp-console/pkg/workflow"

	"github.com/gofiber/fiber/v2"
)

// IntentRouter is what the bridge needs from the coordinator.
type IntentRouter interface {
	workflow.Dispatcher
	Routed(kind workflow.Kind) bool
	Kinds() []workflow.Kind
}

type IIntentController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	Dispatch(ctx *fiber.Ctx) error
	Kinds(ctx *fiber.Ctx) error
}

type intentController struct {
	router   IntentRouter
	decoders map[workflow.Kind]intent.Decoder
	logger   logger.ILogger
}

func NewIntentController(router IntentRouter, log logger.ILogger) IIntentController {
	return &intentController{router: router, decoders: intent.Registry(), logger: log}
}

func (c *intentController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	h := r.Group("/intents", middleware...)
	h.Get("", c.Kinds)
	// Kinds contain a slash, e.g. documents/fetch.
	h.Post("/*", c.Dispatch)
}

type dispatchResponse struct {
	Kind workflow.Kind `json:"kind"`
}

func (c *intentController) Dispatch(ctx *fiber.Ctx) error {
	kind := workflow.Kind(strings.Trim(ctx.Params("*"), "/"))

	decode, ok := c.decoders[kind]
	if !ok || !c.router.Routed(kind) {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "Unknown intent "+string(kind)))
	}

	in, err := decode(ctx.Body())
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	c.router.Dispatch(in)
	c.logger.Debug("Bridge", "Intent accepted", map[string]interface{}{"kind": string(kind)})

	res := serverutils.SuccessResponse("Intent accepted", dispatchResponse{Kind: kind})
	res.Code = fiber.StatusAccepted
	return ctx.Status(fiber.StatusAccepted).JSON(res)
}

func (c *intentController) Kinds(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get intents", c.router.Kinds()))
}
