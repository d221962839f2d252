package serverutils

import (
	"errors"
	"fmt"

	"vetscribe-be/internal/pkg/logger"
	"vetscribe-be/internal/repository/contract"
	"vetscribe-be/pkg/intake"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps errors returned by handlers to JSON responses.
// Only validation problems become 4xx; anything unexpected is a 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return HandleError(ctx, err, log)
	}
}

func HandleError(ctx *fiber.Ctx, err error, log logger.ILogger) error {
	var (
		intakeErr *intake.ValidationError
		fieldErrs validator.ValidationErrors
		fiberErr  *fiber.Error
	)

	switch {
	case errors.As(err, &intakeErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(FieldErrorResponse(intakeErr.Field, intakeErr.Error()))

	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		fe := fieldErrs[0]
		return ctx.Status(fiber.StatusBadRequest).JSON(FieldErrorResponse(fe.Field(), describe(fe)))

	case errors.Is(err, contract.ErrInvalidArgument):
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))

	case errors.As(err, &fiberErr):
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
	}

	log.Error("HTTP", "Unhandled request error", map[string]interface{}{
		"path":   ctx.Path(),
		"method": ctx.Method(),
		"error":  err.Error(),
	})
	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
