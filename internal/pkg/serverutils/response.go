package serverutils

import (
	"errors"

	"rfp-console/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{Success: true, Code: fiber.StatusOK, Message: message, Data: data}
}

func ErrorResponse(code int, message string) BaseResponse[any] {
	return BaseResponse[any]{Success: false, Code: code, Message: message}
}

// ErrorHandlerMiddleware turns errors returned by later handlers into the
// common error envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		var ae *apperror.Error
		switch {
		case errors.As(err, &fe):
			code = fe.Code
		case errors.As(err, &ae) && ae.Kind == apperror.KindValidation:
			code = fiber.StatusBadRequest
		}
		return ctx.Status(code).JSON(ErrorResponse(code, apperror.Message(err, err.Error())))
	}
}
