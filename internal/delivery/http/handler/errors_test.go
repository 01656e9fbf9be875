package handler

import (
	"errors"
	"fmt"
	"testing"

	"tha-drop/internal/delivery/http/middleware"
	"tha-drop/internal/domain/availability"
	"tha-drop/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appErr(t *testing.T, err error) *middleware.AppError {
	t.Helper()
	var ae *middleware.AppError
	require.ErrorAs(t, err, &ae)
	return ae
}

func TestMapHiringUsecaseError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{err: fmt.Errorf("%w: %w", usecase.ErrInvalidInput, availability.ErrInvalidDate), status: fiber.StatusBadRequest, msg: "Invalid date format"},
		{err: usecase.ErrEmptyTargets, status: fiber.StatusBadRequest, msg: "Users array is required and cannot be empty"},
		{err: usecase.ErrSelfHire, status: fiber.StatusBadRequest, msg: "You cannot hire yourself"},
		{err: usecase.ErrTargetsNotFound, status: fiber.StatusNotFound, msg: "One or more users not found"},
		{err: usecase.ErrRequestNotFound, status: fiber.StatusNotFound, msg: "Request not found"},
		{err: fmt.Errorf("%w: db down", usecase.ErrDependencyFailure), status: fiber.StatusInternalServerError},
		{err: errors.New("unknown"), status: fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		ae := appErr(t, mapHiringUsecaseError(tc.err))
		assert.Equal(t, tc.status, ae.StatusCode, tc.err.Error())
		assert.Equal(t, tc.msg, ae.Message, tc.err.Error())
		assert.ErrorIs(t, ae, tc.err)
	}
	assert.NoError(t, mapHiringUsecaseError(nil))
}

func TestMapAuthAndUserErrors(t *testing.T) {
	assert.Equal(t, fiber.StatusConflict, appErr(t, mapAuthUsecaseError(usecase.ErrEmailTaken)).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, appErr(t, mapAuthUsecaseError(usecase.ErrInvalidCredentials)).StatusCode)
	assert.Equal(t, fiber.StatusForbidden, appErr(t, mapAuthUsecaseError(usecase.ErrAccountBlocked)).StatusCode)
	assert.Equal(t, fiber.StatusBadRequest, appErr(t, mapUserUsecaseError(usecase.ErrInvalidSchedule)).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, appErr(t, mapUserUsecaseError(usecase.ErrAccountNotFound)).StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, statusFor(usecase.ErrInvalidFilter))
	assert.Equal(t, fiber.StatusNotFound, statusFor(usecase.ErrProfileNotFound))
	assert.Equal(t, fiber.StatusConflict, statusFor(usecase.ErrEmailTaken))
	assert.Equal(t, fiber.StatusUnauthorized, statusFor(usecase.ErrInvalidToken))
	assert.Equal(t, fiber.StatusForbidden, statusFor(usecase.ErrAccountBlocked))
	assert.Equal(t, fiber.StatusInternalServerError, statusFor(errors.New("x")))
}
