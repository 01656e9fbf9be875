package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"tha-drop/internal/domain/availability"
)

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

const (
	availabilityKeyPrefix  = "hiring:available:"
	availabilityLockPrefix = "hiring:lock:"
)

type availabilityKeyInput struct {
	Role    string `json:"role"`
	Day     string `json:"day"`
	StartAt *int   `json:"startAt"`
	EndAt   *int   `json:"endAt"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
}

// AvailabilityCacheKey hashes the normalized query, so two searches that
// differ only in how the date or time was written share an entry.
func AvailabilityCacheKey(q availability.Query, p availability.Page) string {
	in := availabilityKeyInput{
		Role:    string(q.Role),
		StartAt: q.StartAt,
		EndAt:   q.EndAt,
		Page:    p.Page,
		Limit:   p.Limit,
	}
	if q.Day != nil {
		in.Day = string(*q.Day)
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return availabilityKeyPrefix + hex.EncodeToString(sum[:])
}

func availabilityLockKey(cacheKey string) string {
	return availabilityLockPrefix + cacheKey[len(availabilityKeyPrefix):]
}
