package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrRequestNotFound   = errors.New("hiring request not found")
	ErrRequestIDConflict = errors.New("hiring request id already used")
)

type AccountRepository interface {
	// CreateWithProfile stores a new account together with its profile atomically.
	CreateWithProfile(ctx context.Context, a Account, p Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
}

// AvailabilityFilter selects staff profiles. Day, StartAt and EndAt are only
// applied when non-nil.
type AvailabilityFilter struct {
	Role    Role
	Day     *Weekday
	StartAt *int
	EndAt   *int
	Limit   int
	Offset  int
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (Profile, error)
	// GetByIDs returns the distinct profiles found; missing ids are skipped.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Profile, error)
	UpdateSchedule(ctx context.Context, id uuid.UUID, schedule []AvailabilityInterval) error
	// FindAvailable returns one page of candidates ordered by profile id and
	// the total number of matches before paging.
	FindAvailable(ctx context.Context, f AvailabilityFilter) ([]Candidate, int, error)
}

type RequestRepository interface {
	// SavePairs appends every pair to the initiator and target ledgers.
	SavePairs(ctx context.Context, pairs []RequestPair) error
	FindRequest(ctx context.Context, ownerID, requestID uuid.UUID) (HiringRequest, error)
	// SetStatus updates the owner's record and, when mirror is set, the
	// counterpart record carrying the same id.
	SetStatus(ctx context.Context, ownerID, requestID uuid.UUID, status RequestStatus, mirror bool) error
	ListRequests(ctx context.Context, ownerID uuid.UUID, f RequestFilter) ([]HiringRequest, error)
}

// Store bundles the repositories served by one storage driver.
type Store interface {
	Accounts() AccountRepository
	Profiles() ProfileRepository
	Requests() RequestRepository
	Reviews() ReviewRepository
	Ping(ctx context.Context) error
	Close() error
}
