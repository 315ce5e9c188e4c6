package serverutils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Services wrap these so handlers can return errors as-is.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

// ErrorHandlerMiddleware converts errors returned further down the chain
// into the standard response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, err)
	}
}

func WriteError(ctx *fiber.Ctx, err error) error {
	var fe *fiber.Error
	var ve validator.ValidationErrors

	switch {
	case errors.As(err, &ve):
		return ctx.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse(fieldErrors(ve)))
	case errors.As(err, &fe):
		return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Code, fe.Message))
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
	case errors.Is(err, ErrBadRequest):
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
}
