package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(now time.Time) *HMACService {
	s := NewHMACService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestHMACService_AccessToken(t *testing.T) {
	now := time.Now()
	s := newTestService(now)
	id := uuid.New()

	tok, err := s.GenerateAccessToken(id, "dj@example.com", "DJ")
	require.NoError(t, err)

	c, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, c.AccountID)
	assert.Equal(t, "dj@example.com", c.Email)
	assert.Equal(t, "DJ", c.Role)
	assert.False(t, s.IsRefreshToken(c))
}

func TestHMACService_RefreshToken(t *testing.T) {
	s := newTestService(time.Now())
	id := uuid.New()

	tok, err := s.GenerateRefreshToken(id)
	require.NoError(t, err)

	c, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.True(t, s.IsRefreshToken(c))
	assert.Equal(t, id, c.AccountID)
}

func TestHMACService_Expired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	s := newTestService(issued)
	tok, err := s.GenerateAccessToken(uuid.New(), "", "HOST")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateToken(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_Invalid(t *testing.T) {
	s := newTestService(time.Now())

	_, err := s.ValidateToken("not-a-token")
	require.ErrorIs(t, err, ErrTokenInvalid)

	other := NewHMACService("x", "y", time.Hour, time.Hour)
	tok, err := other.GenerateAccessToken(uuid.New(), "", "")
	require.NoError(t, err)
	_, err = s.ValidateToken(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)

	// An access-type claim signed with the refresh secret is rejected.
	forged := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		AccountID: uuid.New(),
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := forged.SignedString([]byte("refresh-secret"))
	require.NoError(t, err)
	_, err = s.ValidateToken(signed)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_MissingSecret(t *testing.T) {
	s := NewHMACService("", "refresh", time.Hour, time.Hour)
	_, err := s.GenerateAccessToken(uuid.New(), "", "")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
