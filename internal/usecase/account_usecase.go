package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
)

type AccountUsecase interface {
	Approve(ctx context.Context, accountID string) error
	Block(ctx context.Context, accountID string) error
	Unblock(ctx context.Context, accountID string) error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// Accounts holds the admin moderation actions. Each one changes who the
// availability search may return, so the search cache is dropped.
type Accounts struct {
	accounts user.AccountRepository
	search   cacheInvalidator
	logger   *log.Logger
}

func NewAccountUsecase(accounts user.AccountRepository, search cacheInvalidator, logger *log.Logger) *Accounts {
	return &Accounts{accounts: accounts, search: search, logger: logger}
}

func (u *Accounts) Approve(ctx context.Context, accountID string) error {
	return u.set(ctx, accountID, "approve", func(id uuid.UUID) error {
		return u.accounts.SetApproved(ctx, id, true)
	})
}

func (u *Accounts) Block(ctx context.Context, accountID string) error {
	return u.set(ctx, accountID, "block", func(id uuid.UUID) error {
		return u.accounts.SetBlocked(ctx, id, true)
	})
}

func (u *Accounts) Unblock(ctx context.Context, accountID string) error {
	return u.set(ctx, accountID, "unblock", func(id uuid.UUID) error {
		return u.accounts.SetBlocked(ctx, id, false)
	})
}

func (u *Accounts) set(ctx context.Context, raw, action string, apply func(uuid.UUID) error) error {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ErrAccountNotFound
	}
	if err := apply(id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrAccountNotFound
		}
		return dependency(action+" account", err)
	}
	if u.search != nil {
		u.search.Invalidate(ctx)
	}
	if u.logger != nil {
		u.logger.Printf("[Accounts] %s account=%s", action, id)
	}
	return nil
}
