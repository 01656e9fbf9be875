package handler

import (
	"errors"

	"tha-drop/internal/delivery/http/dto"
	"tha-drop/internal/delivery/http/middleware"
	"tha-drop/internal/pkg/response"
	"tha-drop/internal/pkg/validate"
	"tha-drop/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ReviewHandler struct {
	reviews   usecase.ReviewUsecase
	validator *validate.Validator
}

func NewReviewHandler(uc usecase.ReviewUsecase, v *validate.Validator) *ReviewHandler {
	return &ReviewHandler{reviews: uc, validator: v}
}

// RegisterRoutes expects r to sit behind the auth middleware.
func (h *ReviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Put("/", h.Update)
	r.Get("/:targetId", h.List)
}

func (h *ReviewHandler) Create(c fiber.Ctx) error {
	caller, err := callerOrUnauthorized(c)
	if err != nil {
		return err
	}

	var req dto.ReviewRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}

	rv, err := h.reviews.Create(c.Context(), caller, usecase.ReviewInput{
		TargetID: req.TargetID,
		Rating:   float64(req.Rating),
		Comment:  req.Comment,
	})
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, MsgSuccess, dto.NewReviewView(rv))
}

func (h *ReviewHandler) Update(c fiber.Ctx) error {
	caller, err := callerOrUnauthorized(c)
	if err != nil {
		return err
	}

	var req dto.ReviewUpdateRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}

	in := usecase.ReviewUpdateInput{TargetID: req.TargetID, Comment: req.Comment}
	if req.Rating != nil {
		r := float64(*req.Rating)
		in.Rating = &r
	}
	rv, err := h.reviews.Update(c.Context(), caller, in)
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, MsgSuccess, dto.NewReviewView(rv))
}

func (h *ReviewHandler) List(c fiber.Ctx) error {
	out, err := h.reviews.List(c.Context(), c.Params("targetId"))
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, MsgSuccess, dto.NewReviewViews(out))
}

func mapReviewUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidTargetID):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	case errors.Is(err, usecase.ErrInvalidRating):
		return middleware.NewAppError(fiber.StatusBadRequest, "Rating must be a whole number from 1 to 5", nil, err)
	case errors.Is(err, usecase.ErrSelfReview):
		return middleware.NewAppError(fiber.StatusBadRequest, "You cannot review yourself", nil, err)
	case errors.Is(err, usecase.ErrAccountNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Account not found", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrReviewNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Review not found", nil, err)
	case errors.Is(err, usecase.ErrReviewExists):
		return middleware.NewAppError(fiber.StatusConflict, "You have already reviewed this user", nil, err)
	default:
		return middleware.NewAppError(statusFor(err), "", nil, err)
	}
}
