package handler

import (
	"errors"

	"tha-drop/internal/delivery/http/dto"
	"tha-drop/internal/delivery/http/middleware"
	"tha-drop/internal/domain/user"
	"tha-drop/internal/pkg/response"
	"tha-drop/internal/pkg/validate"
	"tha-drop/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc        usecase.AuthUsecase
	validator *validate.Validator
}

func NewAuthHandler(uc usecase.AuthUsecase, v *validate.Validator) *AuthHandler {
	return &AuthHandler{uc: uc, validator: v}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/access-token", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}

	acc, tokens, err := h.uc.Register(c.Context(), usecase.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Role:            req.Role,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, MsgSuccess, tokenResponse(acc, tokens))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}

	acc, tokens, err := h.uc.Login(c.Context(), usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, MsgSuccess, tokenResponse(acc, tokens))
}

// Refresh takes the refresh token as the bearer credential.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, middleware.MsgNotAuthorized, nil, nil)
	}

	tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, MsgSuccess, dto.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func tokenResponse(acc user.Account, tokens usecase.TokenPair) dto.TokenResponse {
	view := dto.AccountView{
		ID:         acc.ID,
		Email:      acc.Email,
		Role:       acc.Role,
		IsApproved: acc.IsApproved,
		IsBlocked:  acc.IsBlocked,
	}
	return dto.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken, Account: &view}
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already exists", nil, err)
	case errors.Is(err, usecase.ErrInvalidRole):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid role", nil, err)
	case errors.Is(err, usecase.ErrPasswordTooShort):
		return middleware.NewAppError(fiber.StatusBadRequest, "Password must be at least 8 characters", nil, err)
	case errors.Is(err, usecase.ErrPasswordMismatch):
		return middleware.NewAppError(fiber.StatusBadRequest, "Passwords do not match", nil, err)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, usecase.ErrAccountNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, middleware.MsgAccountNotFound, nil, err)
	case errors.Is(err, usecase.ErrAccountBlocked):
		return middleware.NewAppError(fiber.StatusForbidden, middleware.MsgBlocked, nil, err)
	default:
		return middleware.NewAppError(statusFor(err), "", nil, err)
	}
}
