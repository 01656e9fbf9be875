package handler

import (
	"context"
	"errors"

	"tha-drop/internal/delivery/http/dto"
	"tha-drop/internal/delivery/http/middleware"
	"tha-drop/internal/domain/user"
	"tha-drop/internal/pkg/response"
	"tha-drop/internal/pkg/validate"
	"tha-drop/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	profiles  usecase.ProfileUsecase
	accounts  usecase.AccountUsecase
	validator *validate.Validator
}

func NewUserHandler(profiles usecase.ProfileUsecase, accounts usecase.AccountUsecase, v *validate.Validator) *UserHandler {
	return &UserHandler{profiles: profiles, accounts: accounts, validator: v}
}

// RegisterRoutes expects r to sit behind the auth middleware.
func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/info", h.Info)
	r.Put("/schedule", h.UpdateSchedule)

	admin := middleware.RequireRoles(user.RoleAdmin)
	r.Post("/approve/:id", admin, h.Approve)
	r.Post("/block/:id", admin, h.Block)
	r.Post("/unblock/:id", admin, h.Unblock)
}

func (h *UserHandler) Info(c fiber.Ctx) error {
	caller, err := callerOrUnauthorized(c)
	if err != nil {
		return err
	}

	view, err := h.profiles.GetMe(c.Context(), caller)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, MsgSuccess, dto.NewProfileView(view))
}

func (h *UserHandler) UpdateSchedule(c fiber.Ctx) error {
	caller, err := callerOrUnauthorized(c)
	if err != nil {
		return err
	}

	var req dto.ScheduleRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}

	schedule := make([]user.AvailabilityInterval, 0, len(req.Schedule))
	for _, iv := range req.Schedule {
		schedule = append(schedule, user.AvailabilityInterval{
			Day:      user.Weekday(iv.Day),
			IsActive: iv.IsActive,
			StartAt:  iv.StartAt,
			EndAt:    iv.EndAt,
		})
	}

	view, err := h.profiles.UpdateSchedule(c.Context(), caller, schedule)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, MsgSuccess, dto.NewProfileView(view))
}

func (h *UserHandler) Approve(c fiber.Ctx) error {
	return h.moderate(c, h.accounts.Approve)
}

func (h *UserHandler) Block(c fiber.Ctx) error {
	return h.moderate(c, h.accounts.Block)
}

func (h *UserHandler) Unblock(c fiber.Ctx) error {
	return h.moderate(c, h.accounts.Unblock)
}

func (h *UserHandler) moderate(c fiber.Ctx, action func(ctx context.Context, id string) error) error {
	if err := action(c.Context(), c.Params("id")); err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, MsgSuccess, fiber.Map{})
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidSchedule):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid schedule", nil, err)
	case errors.Is(err, usecase.ErrAccountNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, middleware.MsgAccountNotFound, nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(statusFor(err), "", nil, err)
	}
}
