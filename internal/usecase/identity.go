package usecase

import (
	"context"
	"errors"
	"slices"

	"tha-drop/internal/domain/user"
	"tha-drop/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Caller is the resolved identity behind a bearer credential.
type Caller struct {
	AccountID  uuid.UUID
	ProfileID  uuid.UUID
	Email      string
	Role       user.Role
	IsApproved bool
	IsBlocked  bool
	Name       string
}

func (c Caller) HasRole(roles ...user.Role) bool {
	return slices.Contains(roles, c.Role)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, accessToken string) (Caller, error)
}

type Identity struct {
	jwt      jwt.Service
	accounts user.AccountRepository
	profiles user.ProfileRepository
}

func NewIdentityResolver(jwtSvc jwt.Service, accounts user.AccountRepository, profiles user.ProfileRepository) *Identity {
	return &Identity{jwt: jwtSvc, accounts: accounts, profiles: profiles}
}

// Resolve validates an access token and loads the current account state.
// Blocked accounts resolve to a Caller together with ErrAccountBlocked.
func (u *Identity) Resolve(ctx context.Context, accessToken string) (Caller, error) {
	if accessToken == "" {
		return Caller{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(accessToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Caller{}, ErrTokenExpired
		}
		return Caller{}, ErrInvalidToken
	}
	if u.jwt.IsRefreshToken(claims) {
		return Caller{}, ErrInvalidToken
	}

	acc, err := u.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Caller{}, ErrAccountNotFound
		}
		return Caller{}, dependency("load account", err)
	}
	prof, err := u.profiles.GetByAccountID(ctx, acc.ID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Caller{}, ErrAccountNotFound
		}
		return Caller{}, dependency("load profile", err)
	}

	caller := Caller{
		AccountID:  acc.ID,
		ProfileID:  prof.ID,
		Email:      acc.Email,
		Role:       acc.Role,
		IsApproved: acc.IsApproved,
		IsBlocked:  acc.IsBlocked,
		Name:       prof.Name,
	}
	if acc.IsBlocked {
		return caller, ErrAccountBlocked
	}
	return caller, nil
}
