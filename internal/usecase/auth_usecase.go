package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"tha-drop/internal/domain/user"
	"tha-drop/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type RegisterInput struct {
	Name            string
	Email           string
	PhoneNumber     string
	Role            string
	Password        string
	ConfirmPassword string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.Account, TokenPair, error)
	Login(ctx context.Context, in LoginInput) (user.Account, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type Auth struct {
	accounts user.AccountRepository
	jwt      jwt.Service
	logger   *log.Logger

	hashCost int
}

func NewAuthUsecase(accounts user.AccountRepository, jwtSvc jwt.Service, logger *log.Logger) *Auth {
	return &Auth{accounts: accounts, jwt: jwtSvc, logger: logger, hashCost: bcrypt.DefaultCost}
}

// Register creates an account and its profile. Guests are approved right
// away; every other role waits for an admin.
func (u *Auth) Register(ctx context.Context, in RegisterInput) (user.Account, TokenPair, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.Account{}, TokenPair{}, ErrInvalidInput
	}
	role := user.Role(strings.ToUpper(strings.TrimSpace(in.Role)))
	if !role.Valid() || role == user.RoleAdmin {
		return user.Account{}, TokenPair{}, ErrInvalidRole
	}
	if len(in.Password) < minPasswordLength {
		return user.Account{}, TokenPair{}, ErrPasswordTooShort
	}
	if in.Password != in.ConfirmPassword {
		return user.Account{}, TokenPair{}, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.hashCost)
	if err != nil {
		return user.Account{}, TokenPair{}, dependency("hash password", err)
	}

	acc := user.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsApproved:   role == user.RoleGuest,
	}
	prof := user.Profile{
		ID:          uuid.New(),
		AccountID:   acc.ID,
		Name:        strings.TrimSpace(in.Name),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Schedule:    []user.AvailabilityInterval{},
	}

	if err := u.accounts.CreateWithProfile(ctx, acc, prof); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.Account{}, TokenPair{}, ErrEmailTaken
		}
		return user.Account{}, TokenPair{}, dependency("create account", err)
	}
	if u.logger != nil {
		u.logger.Printf("[Auth] registered account=%s role=%s", acc.ID, acc.Role)
	}

	tokens, err := u.issue(acc)
	if err != nil {
		return user.Account{}, TokenPair{}, err
	}
	return acc, tokens, nil
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (user.Account, TokenPair, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.Account{}, TokenPair{}, ErrInvalidCredentials
	}

	acc, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Account{}, TokenPair{}, ErrInvalidCredentials
		}
		return user.Account{}, TokenPair{}, dependency("load account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.Password)); err != nil {
		return user.Account{}, TokenPair{}, ErrInvalidCredentials
	}
	if acc.IsBlocked {
		return user.Account{}, TokenPair{}, ErrAccountBlocked
	}

	tokens, err := u.issue(acc)
	if err != nil {
		return user.Account{}, TokenPair{}, err
	}
	return acc, tokens, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	acc, err := u.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return TokenPair{}, ErrAccountNotFound
		}
		return TokenPair{}, dependency("load account", err)
	}
	if acc.IsBlocked {
		return TokenPair{}, ErrAccountBlocked
	}

	return u.issue(acc)
}

func (u *Auth) issue(acc user.Account) (TokenPair, error) {
	access, err := u.jwt.GenerateAccessToken(acc.ID, acc.Email, string(acc.Role))
	if err != nil {
		return TokenPair{}, dependency("sign access token", err)
	}
	refresh, err := u.jwt.GenerateRefreshToken(acc.ID)
	if err != nil {
		return TokenPair{}, dependency("sign refresh token", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
