package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type httpRecorder interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// AccessLogMiddleware writes one line per request and feeds the HTTP
// metrics. It must wrap ErrorMiddleware so the final status is known.
type AccessLogMiddleware struct {
	logger  *log.Logger
	metrics httpRecorder
}

func NewAccessLogMiddleware(logger *log.Logger, metrics httpRecorder) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger, metrics: metrics}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		dur := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}

		if m.metrics != nil {
			m.metrics.ObserveHTTP(c.Method(), route, status, dur)
		}
		m.logger.Printf(
			"[HTTP] access rid=%s ip=%s method=%s path=%s route=%s status=%d latency=%s ua=%q",
			rid, c.IP(), c.Method(), c.OriginalURL(), route, status, dur, c.Get(fiber.HeaderUserAgent),
		)

		return err
	}
}
