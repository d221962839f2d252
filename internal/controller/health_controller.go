package controller

import (
	"time"

	"vetscribe-be/internal/dto"
	"vetscribe-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	serviceName string
	generation  service.IGenerationService
}

func NewHealthController(serviceName string, generation service.IGenerationService) IHealthController {
	return &healthController{serviceName: serviceName, generation: generation}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	mode := "stub"
	if c.generation.Live() {
		mode = "live"
	}
	return ctx.JSON(dto.HealthResponse{
		OK:         true,
		Service:    c.serviceName,
		Time:       time.Now().UTC(),
		Generation: mode,
	})
}
