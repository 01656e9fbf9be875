package hiring

import (
	"errors"
	"time"

	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrNoTargets          = errors.New("no hiring targets")
	ErrSelfHire           = errors.New("initiator cannot hire themselves")
	ErrTargetsNotFound    = errors.New("one or more targets not found")
	ErrInvalidRequestType = errors.New("invalid request type")
	ErrInvalidDecision    = errors.New("invalid decision")
)

type Decision string

const (
	Accept Decision = "ACCEPT"
	Reject Decision = "REJECT"
)

func (d Decision) Status() (user.RequestStatus, error) {
	switch d {
	case Accept:
		return user.StatusAccepted, nil
	case Reject:
		return user.StatusRejected, nil
	default:
		return "", ErrInvalidDecision
	}
}

// Invitation is the part of a hire shared by every pair it creates.
type Invitation struct {
	Date     string
	Schedule string
	Location user.Location
}

// CheckTargets enforces the all-or-nothing precondition of a hire: every
// requested id must resolve to its own profile. Duplicate ids resolve to a
// single profile and therefore fail as well.
func CheckTargets(initiatorID uuid.UUID, targetIDs []uuid.UUID, found []user.Profile) error {
	if len(targetIDs) == 0 {
		return ErrNoTargets
	}
	for _, id := range targetIDs {
		if id == initiatorID {
			return ErrSelfHire
		}
	}
	if len(found) != len(targetIDs) {
		return ErrTargetsNotFound
	}
	return nil
}

// NewPairs builds one SENT/RECEIVED pair per target, each with a fresh id.
func NewPairs(initiator user.Profile, targets []user.Profile, inv Invitation, now time.Time, newID func() uuid.UUID) []user.RequestPair {
	if newID == nil {
		newID = uuid.New
	}
	now = now.UTC()

	pairs := make([]user.RequestPair, 0, len(targets))
	for _, target := range targets {
		id := newID()
		pairs = append(pairs, user.RequestPair{
			Sent: user.HiringRequest{
				ID:                 id,
				OwnerID:            initiator.ID,
				Type:               user.RequestSent,
				Status:             user.StatusPending,
				Date:               inv.Date,
				Schedule:           inv.Schedule,
				Location:           inv.Location,
				CounterpartyID:     target.ID,
				CounterpartyName:   target.Name,
				CounterpartyAvatar: target.Avatar,
				CounterpartyRating: target.Rating,
				CreatedAt:          now,
				UpdatedAt:          now,
			},
			Received: user.HiringRequest{
				ID:                 id,
				OwnerID:            target.ID,
				Type:               user.RequestReceived,
				Status:             user.StatusPending,
				Date:               inv.Date,
				Schedule:           inv.Schedule,
				Location:           inv.Location,
				CounterpartyID:     initiator.ID,
				CounterpartyName:   initiator.Name,
				CounterpartyAvatar: initiator.Avatar,
				CounterpartyRating: initiator.Rating,
				CreatedAt:          now,
				UpdatedAt:          now,
			},
		})
	}
	return pairs
}

// Transition returns the status a decision moves the request to. Only the
// receiving side may decide. A request that was already answered can be
// answered again; the new decision overwrites the old one.
func Transition(req user.HiringRequest, d Decision) (user.RequestStatus, error) {
	if req.Type != user.RequestReceived {
		return "", ErrInvalidRequestType
	}
	return d.Status()
}
