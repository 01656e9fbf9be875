package handler

import (
	"errors"

	"tha-drop/internal/delivery/http/middleware"
	"tha-drop/internal/pkg/validate"
	"tha-drop/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	MsgSuccess        = "Success"
	MsgInvalidPayload = "Invalid request payload"
)

// bindBody decodes the JSON body into out and runs the struct rules.
func bindBody(c fiber.Ctx, v *validate.Validator, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, MsgInvalidPayload, nil, err)
	}
	return check(v, out)
}

func bindQuery(c fiber.Ctx, v *validate.Validator, out any) error {
	if err := c.Bind().Query(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, MsgInvalidPayload, nil, err)
	}
	return check(v, out)
}

func check(v *validate.Validator, out any) error {
	if v == nil {
		return nil
	}
	if err := v.Struct(out); err != nil {
		var ve *validate.ValidationError
		if errors.As(err, &ve) {
			return middleware.NewAppError(fiber.StatusBadRequest, MsgInvalidPayload, ve.Fields, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, MsgInvalidPayload, nil, err)
	}
	return nil
}

func callerOrUnauthorized(c fiber.Ctx) (usecase.Caller, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return usecase.Caller{}, middleware.NewAppError(fiber.StatusUnauthorized, middleware.MsgNotAuthorized, nil, nil)
	}
	return caller, nil
}

// statusFor maps a use-case error family to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
