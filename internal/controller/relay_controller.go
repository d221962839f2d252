package controller

import (
	"vetscribe-be/internal/dto"
	"vetscribe-be/internal/pkg/serverutils"
	"vetscribe-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRelayController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Receive(ctx *fiber.Ctx) error
}

type relayController struct {
	service service.IRelayService
}

func NewRelayController(service service.IRelayService) IRelayController {
	return &relayController{service: service}
}

func (c *relayController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/relay")
	h.Post("/send", c.Send)
	h.Post("/receive", c.Receive)
}

func (c *relayController) Send(ctx *fiber.Ctx) error {
	var req dto.RelaySendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Send(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *relayController) Receive(ctx *fiber.Ctx) error {
	var req dto.RelayReceiveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Receive(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
