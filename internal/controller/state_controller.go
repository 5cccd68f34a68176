package controller

import (
	"rfp-console/internal/module/documents"
	"rfp-console/internal/module/questions"
	"rfp-console/internal/pkg/serverutils"
	"rfp-console/pkg/store"

	"github.com/gofiber/fiber/v2"
)

// Views exposes the module states that derived views are computed from.
type Views struct {
	Documents func() documents.State
	Questions func() questions.State
}

type IStateController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	Snapshot(ctx *fiber.Ctx) error
	Slice(ctx *fiber.Ctx) error
	DocumentsByProject(ctx *fiber.Ctx) error
	StatusCounts(ctx *fiber.Ctx) error
	QuestionsFor(ctx *fiber.Ctx) error
}

type stateController struct {
	tree  *store.Tree
	views Views
}

func NewStateController(tree *store.Tree, views Views) IStateController {
	return &stateController{tree: tree, views: views}
}

func (c *stateController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	s := r.Group("/state", middleware...)
	s.Get("", c.Snapshot)
	s.Get(":slice", c.Slice)

	v := r.Group("/views", middleware...)
	v.Get("/documents-by-project", c.DocumentsByProject)
	v.Get("/status-counts", c.StatusCounts)
	v.Get("/questions/:rfp", c.QuestionsFor)
}

func (c *stateController) Snapshot(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get state", c.tree.Snapshot()))
}

func (c *stateController) Slice(ctx *fiber.Ctx) error {
	name := ctx.Params("slice")
	snapshot, ok := c.tree.Get(name)
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "Unknown slice "+name))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get "+name, snapshot))
}

func (c *stateController) DocumentsByProject(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get documents by project", documents.ByProject(c.views.Documents())))
}

func (c *stateController) StatusCounts(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get status counts", questions.StatusCounts(c.views.Questions())))
}

func (c *stateController) QuestionsFor(ctx *fiber.Ctx) error {
	rfpID, err := ctx.ParamsInt("rfp")
	if err != nil || rfpID <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid rfp id"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get questions", questions.Flattened(c.views.Questions(), rfpID)))
}
