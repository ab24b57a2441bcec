package controller

import (
	"genegpt-be/internal/dto"
	"genegpt-be/internal/pkg/serverutils"
	"genegpt-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICounselorController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	ShowTurnHistory(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type counselorController struct {
	counselorService service.ICounselorService
}

func NewCounselorController(counselorService service.ICounselorService) ICounselorController {
	return &counselorController{
		counselorService: counselorService,
	}
}

func (c *counselorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/counselor/v1")
	h.Post("ask", c.Ask)
	h.Get("session/:id", c.ShowSession)
	h.Get("session/:id/turns", c.ShowTurnHistory)
	h.Delete("session/:id", c.DeleteSession)
}

func (c *counselorController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.counselorService.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process question", res))
}

func (c *counselorController) ShowSession(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session id is required")
	}

	res, err := c.counselorService.GetSession(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *counselorController) ShowTurnHistory(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session id is required")
	}

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.counselorService.GetTurnHistory(ctx.Context(), id, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show turn history", res))
}

func (c *counselorController) DeleteSession(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session id is required")
	}

	if err := c.counselorService.DeleteSession(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}
