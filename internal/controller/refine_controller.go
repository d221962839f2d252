package controller

import (
	"vetscribe-be/internal/dto"
	"vetscribe-be/internal/pkg/serverutils"
	"vetscribe-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRefineController interface {
	RegisterRoutes(r fiber.Router)
	Refine(ctx *fiber.Ctx) error
}

type refineController struct {
	service service.IRefineService
}

func NewRefineController(service service.IRefineService) IRefineController {
	return &refineController{service: service}
}

func (c *refineController) RegisterRoutes(r fiber.Router) {
	r.Post("/refine", c.Refine)
}

func (c *refineController) Refine(ctx *fiber.Ctx) error {
	var req dto.RefineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Refine(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
