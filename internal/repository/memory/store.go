// Package memory keeps every record in process memory. It backs the
// "memory" store driver for local runs and the use case tests.
package memory

import (
	"bytes"
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"tha-drop/internal/domain/availability"
	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]user.Account
	profiles map[uuid.UUID]user.Profile
	// ledgers holds the requests of each profile in insertion order.
	ledgers map[uuid.UUID][]user.HiringRequest
	// reviews holds the reviews received by each profile.
	reviews map[uuid.UUID][]user.Review
}

var _ user.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		accounts: map[uuid.UUID]user.Account{},
		profiles: map[uuid.UUID]user.Profile{},
		ledgers:  map[uuid.UUID][]user.HiringRequest{},
		reviews:  map[uuid.UUID][]user.Review{},
	}
}

func (s *Store) Accounts() user.AccountRepository { return accounts{s} }
func (s *Store) Profiles() user.ProfileRepository { return profiles{s} }
func (s *Store) Requests() user.RequestRepository { return requests{s} }
func (s *Store) Reviews() user.ReviewRepository   { return reviews{s} }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }
func (s *Store) Close() error                   { return nil }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneProfile(p user.Profile) user.Profile {
	p.DateOfBirth = clonePtr(p.DateOfBirth)
	p.Avatar = clonePtr(p.Avatar)
	p.Schedule = append([]user.AvailabilityInterval{}, p.Schedule...)
	p.Requests = nil
	return p
}

func cloneRequest(r user.HiringRequest) user.HiringRequest {
	r.CounterpartyAvatar = clonePtr(r.CounterpartyAvatar)
	return r
}

func lessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// sortLedger orders requests newest first. Records written by the same hire
// share a timestamp and fall back to id order.
func sortLedger(reqs []user.HiringRequest) {
	sort.Slice(reqs, func(i, j int) bool {
		if !reqs[i].CreatedAt.Equal(reqs[j].CreatedAt) {
			return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
		}
		return lessID(reqs[i].ID, reqs[j].ID)
	})
}

type accounts struct{ s *Store }

func (r accounts) CreateWithProfile(ctx context.Context, a user.Account, p user.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	for _, existing := range r.s.accounts {
		if existing.Email == a.Email {
			return user.ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	p.AccountID = a.ID
	p.CreatedAt, p.UpdatedAt = now, now

	r.s.accounts[a.ID] = a
	r.s.profiles[p.ID] = cloneProfile(p)
	return nil
}

func (r accounts) GetByID(ctx context.Context, id uuid.UUID) (user.Account, error) {
	if err := ctx.Err(); err != nil {
		return user.Account{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return user.Account{}, user.ErrNotFound
	}
	return a, nil
}

func (r accounts) GetByEmail(ctx context.Context, email string) (user.Account, error) {
	if err := ctx.Err(); err != nil {
		return user.Account{}, err
	}
	email = strings.ToLower(strings.TrimSpace(email))

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return user.Account{}, user.ErrNotFound
}

func (r accounts) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	return r.update(ctx, id, func(a *user.Account) { a.IsApproved = approved })
}

func (r accounts) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	return r.update(ctx, id, func(a *user.Account) { a.IsBlocked = blocked })
}

func (r accounts) update(ctx context.Context, id uuid.UUID, fn func(a *user.Account)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return user.ErrNotFound
	}
	fn(&a)
	a.UpdatedAt = time.Now().UTC()
	r.s.accounts[id] = a
	return nil
}

type profiles struct{ s *Store }

func (r profiles) GetByID(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	if err := ctx.Err(); err != nil {
		return user.Profile{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r profiles) GetByAccountID(ctx context.Context, accountID uuid.UUID) (user.Profile, error) {
	if err := ctx.Err(); err != nil {
		return user.Profile{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.profiles {
		if p.AccountID == accountID {
			return cloneProfile(p), nil
		}
	}
	return user.Profile{}, user.ErrNotFound
}

func (r profiles) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]user.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]user.Profile, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := r.s.profiles[id]; ok {
			out = append(out, cloneProfile(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessID(out[i].ID, out[j].ID) })
	return out, nil
}

func (r profiles) UpdateSchedule(ctx context.Context, id uuid.UUID, schedule []user.AvailabilityInterval) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return user.ErrNotFound
	}
	p.Schedule = append([]user.AvailabilityInterval{}, schedule...)
	p.UpdatedAt = time.Now().UTC()
	r.s.profiles[id] = p
	return nil
}

func (r profiles) FindAvailable(ctx context.Context, f user.AvailabilityFilter) ([]user.Candidate, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	q := availability.Query{Role: f.Role, Day: f.Day, StartAt: f.StartAt, EndAt: f.EndAt}

	r.s.mu.RLock()
	matched := make([]user.Candidate, 0)
	for _, p := range r.s.profiles {
		a, ok := r.s.accounts[p.AccountID]
		if !ok {
			continue
		}
		c := user.Candidate{
			Profile: cloneProfile(p),
			Account: user.AccountSummary{
				ID:         a.ID,
				Email:      a.Email,
				Role:       a.Role,
				IsApproved: a.IsApproved,
				IsBlocked:  a.IsBlocked,
			},
		}
		if availability.Matches(c, q) {
			matched = append(matched, c)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return lessID(matched[i].Profile.ID, matched[j].Profile.ID) })

	total := len(matched)
	start := min(max(f.Offset, 0), total)
	end := total
	if f.Limit > 0 {
		end = min(start+f.Limit, total)
	}
	return matched[start:end], total, nil
}

type requests struct{ s *Store }

func (r requests) SavePairs(ctx context.Context, pairs []user.RequestPair) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range pairs {
		for _, side := range []user.HiringRequest{p.Sent, p.Received} {
			if _, ok := r.s.profiles[side.OwnerID]; !ok {
				return user.ErrNotFound
			}
			if r.s.indexOf(side.OwnerID, side.ID) >= 0 {
				return user.ErrRequestIDConflict
			}
		}
	}
	for _, p := range pairs {
		r.s.ledgers[p.Sent.OwnerID] = append(r.s.ledgers[p.Sent.OwnerID], cloneRequest(p.Sent))
	}
	for _, p := range pairs {
		r.s.ledgers[p.Received.OwnerID] = append(r.s.ledgers[p.Received.OwnerID], cloneRequest(p.Received))
	}
	return nil
}

func (s *Store) indexOf(owner, id uuid.UUID) int {
	return slices.IndexFunc(s.ledgers[owner], func(r user.HiringRequest) bool { return r.ID == id })
}

func (r requests) FindRequest(ctx context.Context, ownerID, requestID uuid.UUID) (user.HiringRequest, error) {
	if err := ctx.Err(); err != nil {
		return user.HiringRequest{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.indexOf(ownerID, requestID)
	if i < 0 {
		return user.HiringRequest{}, user.ErrRequestNotFound
	}
	return cloneRequest(r.s.ledgers[ownerID][i]), nil
}

func (r requests) SetStatus(ctx context.Context, ownerID, requestID uuid.UUID, status user.RequestStatus, mirror bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.indexOf(ownerID, requestID)
	if i < 0 {
		return user.ErrRequestNotFound
	}
	now := time.Now().UTC()
	r.s.ledgers[ownerID][i].Status = status
	r.s.ledgers[ownerID][i].UpdatedAt = now

	if !mirror {
		return nil
	}
	for owner, ledger := range r.s.ledgers {
		if owner == ownerID {
			continue
		}
		for j := range ledger {
			if ledger[j].ID == requestID {
				ledger[j].Status = status
				ledger[j].UpdatedAt = now
			}
		}
	}
	return nil
}

func (r requests) ListRequests(ctx context.Context, ownerID uuid.UUID, f user.RequestFilter) ([]user.HiringRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]user.HiringRequest, 0)
	for _, req := range r.s.ledgers[ownerID] {
		if f.Type != nil && req.Type != *f.Type {
			continue
		}
		if f.Status != nil && req.Status != *f.Status {
			continue
		}
		out = append(out, cloneRequest(req))
	}
	sortLedger(out)
	return out, nil
}

type reviews struct{ s *Store }

func (r reviews) AddReview(ctx context.Context, rv user.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.profiles[rv.TargetID]; !ok {
		return user.ErrNotFound
	}
	if r.s.reviewIndex(rv.TargetID, rv.ReviewerID) >= 0 {
		return user.ErrReviewExists
	}
	now := time.Now().UTC()
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = now
	}
	if rv.UpdatedAt.IsZero() {
		rv.UpdatedAt = rv.CreatedAt
	}
	rv.ReviewerAvatar = clonePtr(rv.ReviewerAvatar)
	r.s.reviews[rv.TargetID] = append(r.s.reviews[rv.TargetID], rv)
	r.s.refreshRating(rv.TargetID, now)
	return nil
}

func (r reviews) UpdateReview(ctx context.Context, targetID, reviewerID uuid.UUID, ch user.ReviewChange) (user.Review, error) {
	if err := ctx.Err(); err != nil {
		return user.Review{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.reviewIndex(targetID, reviewerID)
	if i < 0 {
		return user.Review{}, user.ErrReviewNotFound
	}
	now := time.Now().UTC()
	rv := &r.s.reviews[targetID][i]
	if ch.Rating != nil {
		rv.Rating = *ch.Rating
	}
	if ch.Comment != nil {
		rv.Comment = *ch.Comment
	}
	rv.UpdatedAt = now
	r.s.refreshRating(targetID, now)

	out := *rv
	out.ReviewerAvatar = clonePtr(out.ReviewerAvatar)
	return out, nil
}

func (r reviews) ListReviews(ctx context.Context, targetID uuid.UUID) ([]user.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]user.Review, 0, len(r.s.reviews[targetID]))
	for _, rv := range r.s.reviews[targetID] {
		rv.ReviewerAvatar = clonePtr(rv.ReviewerAvatar)
		out = append(out, rv)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return lessID(out[i].ReviewerID, out[j].ReviewerID)
	})
	return out, nil
}

func (s *Store) reviewIndex(target, reviewer uuid.UUID) int {
	return slices.IndexFunc(s.reviews[target], func(rv user.Review) bool { return rv.ReviewerID == reviewer })
}

// refreshRating expects s.mu to be held for writing.
func (s *Store) refreshRating(target uuid.UUID, now time.Time) {
	p, ok := s.profiles[target]
	if !ok {
		return
	}
	p.Rating = user.MeanRating(s.reviews[target])
	p.UpdatedAt = now
	s.profiles[target] = p
}
