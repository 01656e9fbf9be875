package middleware

import (
	"errors"
	"strings"

	"tha-drop/internal/domain/user"
	"tha-drop/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxCallerKey = "caller"

const (
	MsgNotAuthorized      = "Not Authorized"
	MsgInvalidAccessToken = "Invalid Access Token"
	MsgTokenExpired       = "Token expired"
	MsgAccountNotFound    = "Account Not Found"
	MsgBlocked            = "You are blocked"
	MsgAccessDenied       = "Access Denied."
)

type AuthMiddleware struct {
	identity usecase.IdentityResolver
}

func NewAuthMiddleware(identity usecase.IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{identity: identity}
}

// Middleware resolves the bearer credential and stores the Caller in Locals.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, MsgNotAuthorized, nil, nil)
		}
		caller, err := m.Resolve(c, token)
		if err != nil {
			return err
		}
		c.Locals(CtxCallerKey, caller)
		return c.Next()
	}
}

// Resolve maps identity errors to HTTP errors. The WebSocket upgrade uses it
// for tokens passed in the query string.
func (m *AuthMiddleware) Resolve(c fiber.Ctx, token string) (usecase.Caller, error) {
	caller, err := m.identity.Resolve(c.Context(), token)
	if err == nil {
		return caller, nil
	}
	switch {
	case errors.Is(err, usecase.ErrTokenExpired):
		return usecase.Caller{}, NewAppError(fiber.StatusUnauthorized, MsgTokenExpired, nil, err)
	case errors.Is(err, usecase.ErrInvalidToken):
		return usecase.Caller{}, NewAppError(fiber.StatusUnauthorized, MsgInvalidAccessToken, nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return usecase.Caller{}, NewAppError(fiber.StatusUnauthorized, MsgNotAuthorized, nil, err)
	case errors.Is(err, usecase.ErrAccountNotFound):
		return usecase.Caller{}, NewAppError(fiber.StatusNotFound, MsgAccountNotFound, nil, err)
	case errors.Is(err, usecase.ErrAccountBlocked):
		return usecase.Caller{}, NewAppError(fiber.StatusForbidden, MsgBlocked, nil, err)
	default:
		return usecase.Caller{}, NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}

// RequireRoles must run after Middleware.
func RequireRoles(roles ...user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		caller, ok := CallerFrom(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, MsgNotAuthorized, nil, nil)
		}
		if !caller.HasRole(roles...) {
			return NewAppError(fiber.StatusForbidden, MsgAccessDenied, nil, nil)
		}
		return c.Next()
	}
}

func CallerFrom(c fiber.Ctx) (usecase.Caller, bool) {
	caller, ok := c.Locals(CtxCallerKey).(usecase.Caller)
	return caller, ok
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(authHeader string) (string, bool) {
	return bearerTokenFromHeader(authHeader)
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
