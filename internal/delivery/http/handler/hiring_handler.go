package handler

import (
	"errors"

	"tha-drop/internal/delivery/http/dto"
	"tha-drop/internal/delivery/http/middleware"
	"tha-drop/internal/domain/availability"
	"tha-drop/internal/domain/hiring"
	"tha-drop/internal/domain/user"
	"tha-drop/internal/pkg/response"
	"tha-drop/internal/pkg/validate"
	"tha-drop/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	MsgRequestsSent     = "Requests sent successfully"
	MsgRequestAccepted  = "Request accepted successfully"
	MsgRequestRejected  = "Request rejected successfully"
	MsgRequestIDMissing = "requestId is required"
)

type HiringHandler struct {
	availability usecase.AvailabilityUsecase
	hiring       usecase.HiringUsecase
	validator    *validate.Validator
}

func NewHiringHandler(av usecase.AvailabilityUsecase, hu usecase.HiringUsecase, v *validate.Validator) *HiringHandler {
	return &HiringHandler{availability: av, hiring: hu, validator: v}
}

// RegisterRoutes expects r to sit behind the auth middleware.
func (h *HiringHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	staff := middleware.RequireRoles(user.RoleHost, user.RoleDJ)
	r.Get("/", staff, h.FindAvailable)
	r.Post("/", staff, h.InitiateHire)
	r.Get("/requests", h.ListRequests)
	r.Post("/accept", h.Accept)
	r.Post("/reject/:requestId", h.Reject)
}

func (h *HiringHandler) FindAvailable(c fiber.Ctx) error {
	var q dto.AvailabilityQuery
	if err := bindQuery(c, h.validator, &q); err != nil {
		return err
	}

	res, err := h.availability.FindAvailable(c.Context(), usecase.AvailabilitySearch{
		Role:    q.Role,
		Date:    q.Date,
		StartAt: q.StartAt,
		EndAt:   q.EndAt,
		Page:    q.Page,
		Limit:   q.Limit,
	})
	if err != nil {
		return mapHiringUsecaseError(err)
	}

	return response.Paginated(c, MsgSuccess, dto.NewCandidateSummaries(res.Items), response.Pagination{
		Page:       res.Page,
		TotalPages: res.TotalPages,
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
	})
}

func (h *HiringHandler) InitiateHire(c fiber.Ctx) error {
	caller, err := callerOrUnauthorized(c)
	if err != nil {
		return err
	}

	var req dto.HireRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}

	err = h.hiring.InitiateHire(c.Context(), caller, usecase.HireInput{
		TargetIDs: req.Users,
		Date:      req.Date,
		Schedule:  req.Schedule,
		Location: user.Location{
			Label:     req.Map.Location,
			Latitude:  float64(req.Map.Latitude),
			Longitude: float64(req.Map.Longitude),
		},
	})
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, MsgRequestsSent, nil)
}

func (h *HiringHandler) Accept(c fiber.Ctx) error {
	var req dto.RespondRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	return h.respond(c, req.RequestID, hiring.Accept, MsgRequestAccepted)
}

func (h *HiringHandler) Reject(c fiber.Ctx) error {
	return h.respond(c, c.Params("requestId"), hiring.Reject, MsgRequestRejected)
}

func (h *HiringHandler) respond(c fiber.Ctx, requestID string, d hiring.Decision, msg string) error {
	caller, err := callerOrUnauthorized(c)
	if err != nil {
		return err
	}
	if requestID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, MsgRequestIDMissing, nil, nil)
	}

	if err := h.hiring.RespondToRequest(c.Context(), caller, requestID, d); err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, msg, fiber.Map{})
}

func (h *HiringHandler) ListRequests(c fiber.Ctx) error {
	caller, err := callerOrUnauthorized(c)
	if err != nil {
		return err
	}

	var q dto.RequestListQuery
	if err := bindQuery(c, h.validator, &q); err != nil {
		return err
	}

	reqs, err := h.hiring.ListRequests(c.Context(), caller, q.Type, q.Status)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, MsgSuccess, dto.NewRequestViews(reqs))
}

func mapHiringUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, availability.ErrInvalidDate):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid date format", nil, err)
	case errors.Is(err, availability.ErrInvalidTime):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid time format", nil, err)
	case errors.Is(err, availability.ErrInvalidWindow):
		return middleware.NewAppError(fiber.StatusBadRequest, "startAt must be before endAt", nil, err)
	case errors.Is(err, availability.ErrInvalidRole):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid role", nil, err)
	case errors.Is(err, usecase.ErrEmptyTargets):
		return middleware.NewAppError(fiber.StatusBadRequest, "Users array is required and cannot be empty", nil, err)
	case errors.Is(err, usecase.ErrInvalidTargetID):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	case errors.Is(err, usecase.ErrSelfHire):
		return middleware.NewAppError(fiber.StatusBadRequest, "You cannot hire yourself", nil, err)
	case errors.Is(err, usecase.ErrInvalidRequestType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request type", nil, err)
	case errors.Is(err, usecase.ErrInvalidDecision):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid decision", nil, err)
	case errors.Is(err, usecase.ErrInvalidFilter):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request filter", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrTargetsNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "One or more users not found", nil, err)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Request not found", nil, err)
	default:
		return middleware.NewAppError(statusFor(err), "", nil, err)
	}
}
