package controller

import (
	"strings"

	"vetscribe-be/internal/service"
	"vetscribe-be/pkg/intake"

	"github.com/gofiber/fiber/v2"
)

type IGenerateController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type generateController struct {
	service service.IGenerationService
}

func NewGenerateController(service service.IGenerationService) IGenerateController {
	return &generateController{service: service}
}

func (c *generateController) RegisterRoutes(r fiber.Router) {
	r.Post("/generate", c.Generate)

	// Older clients post per-mode; they share the /generate contract.
	api := r.Group("/api")
	api.Post("/soap", c.generateAs(intake.ModeAppointment, intake.ModeSurgery))
	api.Post("/toolbox", c.generateAs(intake.ModeToolbox))
	api.Post("/consult", c.generateAs(intake.ModeConsult))
}

func (c *generateController) Generate(ctx *fiber.Ctx) error {
	raw, err := parseObject(ctx)
	if err != nil {
		return err
	}
	mode, _ := raw["mode"].(string)
	return c.generate(ctx, mode, raw)
}

// generateAs serves a legacy endpoint fixed to mode. A body mode is honoured
// only when it is mode itself or one of alternatives; endpoints without
// alternatives ignore it.
func (c *generateController) generateAs(mode intake.Mode, alternatives ...intake.Mode) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw, err := parseObject(ctx)
		if err != nil {
			return err
		}
		requested, _ := raw["mode"].(string)
		requested = strings.ToLower(strings.TrimSpace(requested))
		if len(alternatives) == 0 || requested == "" {
			return c.generate(ctx, string(mode), raw)
		}
		allowed := make([]string, 0, len(alternatives)+1)
		for _, m := range append([]intake.Mode{mode}, alternatives...) {
			if requested == string(m) {
				return c.generate(ctx, requested, raw)
			}
			allowed = append(allowed, string(m))
		}
		return &intake.ValidationError{Field: "mode", Message: "mode must be one of " + strings.Join(allowed, ", ")}
	}
}

func (c *generateController) generate(ctx *fiber.Ctx, mode string, raw map[string]interface{}) error {
	res, err := c.service.Generate(ctx.UserContext(), mode, raw)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func parseObject(ctx *fiber.Ctx) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := ctx.BodyParser(&raw); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "request body must be a JSON object")
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return raw, nil
}
