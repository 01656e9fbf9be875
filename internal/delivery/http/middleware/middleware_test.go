package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"tha-drop/internal/domain/user"
	"tha-drop/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	callers map[string]usecase.Caller
	errs    map[string]error
}

func (s stubResolver) Resolve(_ context.Context, token string) (usecase.Caller, error) {
	if err, ok := s.errs[token]; ok {
		return usecase.Caller{}, err
	}
	if c, ok := s.callers[token]; ok {
		return c, nil
	}
	return usecase.Caller{}, usecase.ErrInvalidToken
}

type body struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func send(t *testing.T, app *fiber.App, method, path, token string) (int, body) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var b body
	require.NoError(t, json.Unmarshal(raw, &b), string(raw))
	return resp.StatusCode, b
}

func newTestApp() *fiber.App {
	resolver := stubResolver{
		callers: map[string]usecase.Caller{
			"host":  {Role: user.RoleHost},
			"guest": {Role: user.RoleGuest},
		},
		errs: map[string]error{
			"expired": usecase.ErrTokenExpired,
			"ghost":   usecase.ErrAccountNotFound,
			"blocked": usecase.ErrAccountBlocked,
			"db":      errors.New("connection reset"),
		},
	}
	auth := NewAuthMiddleware(resolver)
	logger := log.New(io.Discard, "", 0)

	app := fiber.New()
	app.Use(NewErrorMiddleware(logger).Middleware())
	app.Get("/me", auth.Middleware(), func(c fiber.Ctx) error {
		caller, ok := CallerFrom(c)
		if !ok {
			return errors.New("no caller")
		}
		return c.JSON(fiber.Map{"success": true, "message": string(caller.Role)})
	})
	app.Get("/hosts", auth.Middleware(), RequireRoles(user.RoleHost, user.RoleDJ), func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "ok"})
	})
	app.Get("/panic", func(c fiber.Ctx) error { panic("boom") })
	app.Get("/conflict", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "", fiber.Map{"field": "email"}, nil)
	})
	app.Get("/internal", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadGateway, "upstream leaked detail", nil, errors.New("secret"))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp()

	cases := []struct {
		token  string
		status int
		msg    string
	}{
		{token: "", status: fiber.StatusUnauthorized, msg: MsgNotAuthorized},
		{token: "bogus", status: fiber.StatusUnauthorized, msg: MsgInvalidAccessToken},
		{token: "expired", status: fiber.StatusUnauthorized, msg: MsgTokenExpired},
		{token: "ghost", status: fiber.StatusNotFound, msg: MsgAccountNotFound},
		{token: "blocked", status: fiber.StatusForbidden, msg: MsgBlocked},
		{token: "db", status: fiber.StatusInternalServerError, msg: "internal server error"},
		{token: "host", status: fiber.StatusOK, msg: "HOST"},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			status, b := send(t, app, fiber.MethodGet, "/me", tc.token)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, b.Message)
			assert.Equal(t, tc.status == fiber.StatusOK, b.Success)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	app := newTestApp()

	status, _ := send(t, app, fiber.MethodGet, "/hosts", "host")
	assert.Equal(t, fiber.StatusOK, status)

	status, b := send(t, app, fiber.MethodGet, "/hosts", "guest")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, MsgAccessDenied, b.Message)
}

func TestErrorMiddleware(t *testing.T) {
	app := newTestApp()

	status, b := send(t, app, fiber.MethodGet, "/panic", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.False(t, b.Success)

	status, b = send(t, app, fiber.MethodGet, "/conflict", "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "conflict", b.Message)
	assert.Equal(t, "email", b.Data["field"])

	status, b = send(t, app, fiber.MethodGet, "/internal", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", b.Message)

	status, b = send(t, app, fiber.MethodGet, "/missing", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, b.Success)
}

func TestBearerToken(t *testing.T) {
	for _, tc := range []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc", token: "abc", ok: true},
		{header: "bearer   abc ", token: "abc", ok: true},
		{header: "Basic abc"},
		{header: "Bearer "},
		{header: "abc"},
		{header: ""},
	} {
		got, ok := BearerToken(tc.header)
		assert.Equal(t, tc.ok, ok, tc.header)
		assert.Equal(t, tc.token, got, tc.header)
	}
}

type recordedHTTP struct {
	method, route string
	status        int
}

type httpRecorderStub struct{ seen []recordedHTTP }

func (r *httpRecorderStub) ObserveHTTP(method, route string, status int, _ time.Duration) {
	r.seen = append(r.seen, recordedHTTP{method: method, route: route, status: status})
}

func TestAccessLogMiddleware(t *testing.T) {
	rec := &httpRecorderStub{}
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(log.New(io.Discard, "", 0), rec).Middleware())
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Get("/items/:id", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusNotFound, "nope", nil, nil)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/items/42", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "rid-1", resp.Header.Get(HeaderRequestID))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/items/7", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))

	require.Len(t, rec.seen, 2)
	assert.Equal(t, recordedHTTP{method: "GET", route: "/items/:id", status: fiber.StatusNotFound}, rec.seen[0])
}
