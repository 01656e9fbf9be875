package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"tha-drop/internal/domain/hiring"
	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
)

// WebSocket event names pushed to the affected profiles.
const (
	EventRequestReceived = "hiring_request_received"
	EventRequestAccepted = "hiring_request_accepted"
	EventRequestRejected = "hiring_request_rejected"
)

type HireInput struct {
	TargetIDs []string
	Date      string
	Schedule  string
	Location  user.Location
}

type HiringUsecase interface {
	InitiateHire(ctx context.Context, caller Caller, in HireInput) error
	RespondToRequest(ctx context.Context, caller Caller, requestID string, decision hiring.Decision) error
	ListRequests(ctx context.Context, caller Caller, requestType, status string) ([]user.HiringRequest, error)
}

// Notifier delivers a request event to every connection of a profile.
type Notifier interface {
	NotifyRequest(profileID uuid.UUID, event string, req user.HiringRequest)
}

type hiringRecorder interface {
	PairsCreated(n int)
	Responded(decision string)
}

type Hiring struct {
	profiles user.ProfileRepository
	requests user.RequestRepository
	notifier Notifier
	metrics  hiringRecorder
	logger   *log.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

func NewHiringUsecase(profiles user.ProfileRepository, requests user.RequestRepository, notifier Notifier, metrics hiringRecorder, logger *log.Logger) *Hiring {
	return &Hiring{
		profiles: profiles,
		requests: requests,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.New,
	}
}

func (u *Hiring) InitiateHire(ctx context.Context, caller Caller, in HireInput) error {
	if len(in.TargetIDs) == 0 {
		return ErrEmptyTargets
	}

	initiator, err := u.profile(ctx, caller.ProfileID)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(in.TargetIDs))
	for _, raw := range in.TargetIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return ErrInvalidTargetID
		}
		ids = append(ids, id)
	}

	targets, err := u.profiles.GetByIDs(ctx, ids)
	if err != nil {
		return dependency("load targets", err)
	}

	switch err := hiring.CheckTargets(initiator.ID, ids, targets); {
	case errors.Is(err, hiring.ErrNoTargets):
		return ErrEmptyTargets
	case errors.Is(err, hiring.ErrSelfHire):
		return ErrSelfHire
	case errors.Is(err, hiring.ErrTargetsNotFound):
		return ErrTargetsNotFound
	case err != nil:
		return invalid(err)
	}

	inv := hiring.Invitation{Date: in.Date, Schedule: in.Schedule, Location: in.Location}
	pairs := hiring.NewPairs(initiator, targets, inv, u.now(), u.newID)

	if err := u.requests.SavePairs(ctx, pairs); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrTargetsNotFound
		}
		return dependency("save request pairs", err)
	}

	if u.metrics != nil {
		u.metrics.PairsCreated(len(pairs))
	}
	u.logf("[Hiring] requests sent initiator=%s targets=%d", initiator.ID, len(pairs))

	if u.notifier != nil {
		for _, p := range pairs {
			u.notifier.NotifyRequest(p.Received.OwnerID, EventRequestReceived, p.Received)
		}
	}
	return nil
}

func (u *Hiring) RespondToRequest(ctx context.Context, caller Caller, requestID string, decision hiring.Decision) error {
	responder, err := u.profile(ctx, caller.ProfileID)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(strings.TrimSpace(requestID))
	if err != nil {
		return ErrRequestNotFound
	}

	req, err := u.requests.FindRequest(ctx, responder.ID, id)
	if err != nil {
		if errors.Is(err, user.ErrRequestNotFound) {
			return ErrRequestNotFound
		}
		return dependency("find request", err)
	}

	status, err := hiring.Transition(req, decision)
	if err != nil {
		if errors.Is(err, hiring.ErrInvalidRequestType) {
			return ErrInvalidRequestType
		}
		return ErrInvalidDecision
	}

	if err := u.requests.SetStatus(ctx, responder.ID, id, status, true); err != nil {
		if errors.Is(err, user.ErrRequestNotFound) {
			return ErrRequestNotFound
		}
		return dependency("set request status", err)
	}

	if u.metrics != nil {
		u.metrics.Responded(string(decision))
	}
	u.logf("[Hiring] request answered id=%s responder=%s status=%s", id, responder.ID, status)

	if u.notifier != nil {
		event := EventRequestAccepted
		if status == user.StatusRejected {
			event = EventRequestRejected
		}
		req.Status = status
		u.notifier.NotifyRequest(req.CounterpartyID, event, req)
	}
	return nil
}

func (u *Hiring) ListRequests(ctx context.Context, caller Caller, requestType, status string) ([]user.HiringRequest, error) {
	var f user.RequestFilter
	if s := strings.ToUpper(strings.TrimSpace(requestType)); s != "" {
		t := user.RequestType(s)
		if !t.Valid() {
			return nil, ErrInvalidFilter
		}
		f.Type = &t
	}
	if s := strings.ToUpper(strings.TrimSpace(status)); s != "" {
		st := user.RequestStatus(s)
		if !st.Valid() {
			return nil, ErrInvalidFilter
		}
		f.Status = &st
	}

	out, err := u.requests.ListRequests(ctx, caller.ProfileID, f)
	if err != nil {
		return nil, dependency("list requests", err)
	}
	return out, nil
}

func (u *Hiring) profile(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	p, err := u.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, ErrProfileNotFound
		}
		return user.Profile{}, dependency("load profile", err)
	}
	return p, nil
}

func (u *Hiring) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
