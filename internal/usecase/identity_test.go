package usecase

import (
	"context"
	"testing"
	"time"

	"tha-drop/internal/domain/user"
	"tha-drop/internal/pkg/jwt"
	"tha-drop/internal/repository/memory"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	s := memory.New()
	svc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	id := NewIdentityResolver(svc, s.Accounts(), s.Profiles())
	ctx := context.Background()

	prof := seed(t, s, user.RoleHost, true)
	acc, err := s.Accounts().GetByID(ctx, prof.AccountID)
	require.NoError(t, err)

	access, err := svc.GenerateAccessToken(acc.ID, acc.Email, string(acc.Role))
	require.NoError(t, err)
	caller, err := id.Resolve(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, prof.ID, caller.ProfileID)
	assert.Equal(t, acc.ID, caller.AccountID)
	assert.True(t, caller.HasRole(user.RoleHost, user.RoleAdmin))
	assert.False(t, caller.HasRole(user.RoleAdmin))

	refresh, err := svc.GenerateRefreshToken(acc.ID)
	require.NoError(t, err)
	_, err = id.Resolve(ctx, refresh)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = id.Resolve(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = id.Resolve(ctx, "garbage")
	require.ErrorIs(t, err, ErrInvalidToken)

	ghost, err := svc.GenerateAccessToken(uuid.New(), "ghost@example.com", "HOST")
	require.NoError(t, err)
	_, err = id.Resolve(ctx, ghost)
	require.ErrorIs(t, err, ErrAccountNotFound)

	require.NoError(t, s.Accounts().SetBlocked(ctx, acc.ID, true))
	caller, err = id.Resolve(ctx, access)
	require.ErrorIs(t, err, ErrAccountBlocked)
	assert.True(t, caller.IsBlocked)
}

func TestResolve_ExpiredToken(t *testing.T) {
	s := memory.New()
	svc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	id := NewIdentityResolver(svc, s.Accounts(), s.Profiles())

	past := time.Now().Add(-time.Hour)
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwt.Claims{
		AccountID: uuid.New(),
		TokenType: jwt.TokenTypeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(past),
			ExpiresAt: jwtlib.NewNumericDate(past.Add(time.Minute)),
		},
	}).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = id.Resolve(context.Background(), token)
	require.ErrorIs(t, err, ErrTokenExpired)
}
