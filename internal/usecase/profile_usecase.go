package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tha-drop/internal/domain/user"
)

type ProfileView struct {
	Profile user.Profile
	Account user.AccountSummary
}

type ProfileUsecase interface {
	GetMe(ctx context.Context, caller Caller) (ProfileView, error)
	UpdateSchedule(ctx context.Context, caller Caller, schedule []user.AvailabilityInterval) (ProfileView, error)
}

type Profiles struct {
	accounts user.AccountRepository
	profiles user.ProfileRepository
	requests user.RequestRepository
	search   cacheInvalidator
	logger   *log.Logger
}

func NewProfileUsecase(accounts user.AccountRepository, profiles user.ProfileRepository, requests user.RequestRepository, search cacheInvalidator, logger *log.Logger) *Profiles {
	return &Profiles{accounts: accounts, profiles: profiles, requests: requests, search: search, logger: logger}
}

// GetMe returns the caller's profile with its schedule and request ledger.
func (u *Profiles) GetMe(ctx context.Context, caller Caller) (ProfileView, error) {
	acc, err := u.accounts.GetByID(ctx, caller.AccountID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ProfileView{}, ErrAccountNotFound
		}
		return ProfileView{}, dependency("load account", err)
	}
	prof, err := u.profiles.GetByID(ctx, caller.ProfileID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ProfileView{}, ErrProfileNotFound
		}
		return ProfileView{}, dependency("load profile", err)
	}
	reqs, err := u.requests.ListRequests(ctx, prof.ID, user.RequestFilter{})
	if err != nil {
		return ProfileView{}, dependency("list requests", err)
	}
	prof.Requests = reqs

	return ProfileView{
		Profile: prof,
		Account: user.AccountSummary{
			ID:         acc.ID,
			Email:      acc.Email,
			Role:       acc.Role,
			IsApproved: acc.IsApproved,
			IsBlocked:  acc.IsBlocked,
		},
	}, nil
}

// UpdateSchedule replaces the caller's weekly schedule.
func (u *Profiles) UpdateSchedule(ctx context.Context, caller Caller, schedule []user.AvailabilityInterval) (ProfileView, error) {
	if schedule == nil {
		schedule = []user.AvailabilityInterval{}
	}
	for i, iv := range schedule {
		if err := iv.Validate(); err != nil {
			return ProfileView{}, fmt.Errorf("%w: interval %d: %w", ErrInvalidSchedule, i, err)
		}
	}

	if err := u.profiles.UpdateSchedule(ctx, caller.ProfileID, schedule); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ProfileView{}, ErrProfileNotFound
		}
		return ProfileView{}, dependency("update schedule", err)
	}
	if u.search != nil {
		u.search.Invalidate(ctx)
	}
	if u.logger != nil {
		u.logger.Printf("[Profiles] schedule updated profile=%s intervals=%d", caller.ProfileID, len(schedule))
	}
	return u.GetMe(ctx, caller)
}
