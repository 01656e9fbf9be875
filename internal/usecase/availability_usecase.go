package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"tha-drop/internal/domain/availability"
	"tha-drop/internal/domain/user"
)

const lockWait = 300 * time.Millisecond

type AvailabilitySearch struct {
	Role    string
	Date    string
	StartAt string
	EndAt   string
	Page    string
	Limit   string
}

type AvailabilityResult struct {
	Items      []user.Candidate
	Page       int
	Limit      int
	TotalPages int
	TotalCount int
}

type AvailabilityUsecase interface {
	FindAvailable(ctx context.Context, in AvailabilitySearch) (AvailabilityResult, error)
	// Invalidate drops every cached search result.
	Invalidate(ctx context.Context)
}

type cacheRecorder interface {
	CacheLookup(hit bool)
}

type Availability struct {
	profiles user.ProfileRepository
	cache    SearchCache
	metrics  cacheRecorder
	logger   *log.Logger
}

func NewAvailabilityUsecase(profiles user.ProfileRepository, cache SearchCache, metrics cacheRecorder, logger *log.Logger) *Availability {
	return &Availability{profiles: profiles, cache: cache, metrics: metrics, logger: logger}
}

func (u *Availability) FindAvailable(ctx context.Context, in AvailabilitySearch) (AvailabilityResult, error) {
	q, err := availability.BuildQuery(in.Role, in.Date, in.StartAt, in.EndAt)
	if err != nil {
		return AvailabilityResult{}, invalid(err)
	}
	page := availability.ParsePage(in.Page, in.Limit)

	if u.cache == nil {
		return u.load(ctx, q, page)
	}

	key := AvailabilityCacheKey(q, page)
	if res, ok := u.cached(ctx, key); ok {
		return res, nil
	}

	lockKey := availabilityLockKey(key)
	locked, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 10*time.Second)
	if err == nil && !locked {
		// Another request is filling this key; give it a moment.
		select {
		case <-ctx.Done():
			return AvailabilityResult{}, ctx.Err()
		case <-time.After(lockWait + time.Duration(time.Now().UnixNano()%201)*time.Millisecond):
		}
		if res, ok := u.cached(ctx, key); ok {
			return res, nil
		}
		u.logf("[Availability] Lock wait fallback: %s", lockKey)
	}

	res, err := u.load(ctx, q, page)
	if err != nil {
		if locked {
			_ = u.cache.Delete(ctx, lockKey)
		}
		return AvailabilityResult{}, err
	}

	if err := u.cache.SetJSON(ctx, key, res, 0); err == nil {
		u.logf("[Availability] Cache SET: %s", key)
	}
	if locked {
		_ = u.cache.Delete(ctx, lockKey)
	}
	return res, nil
}

func (u *Availability) cached(ctx context.Context, key string) (AvailabilityResult, bool) {
	var res AvailabilityResult
	hit, err := u.cache.GetJSON(ctx, key, &res)
	hit = err == nil && hit
	if u.metrics != nil {
		u.metrics.CacheLookup(hit)
	}
	if hit {
		u.logf("[Availability] Cache HIT: %s", key)
		if res.Items == nil {
			res.Items = []user.Candidate{}
		}
	}
	return res, hit
}

func (u *Availability) load(ctx context.Context, q availability.Query, page availability.Page) (AvailabilityResult, error) {
	items, total, err := u.profiles.FindAvailable(ctx, q.Filter(page))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return AvailabilityResult{}, err
		}
		return AvailabilityResult{}, dependency("find available", err)
	}
	if items == nil {
		items = []user.Candidate{}
	}
	return AvailabilityResult{
		Items:      items,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
		TotalCount: total,
	}, nil
}

func (u *Availability) Invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, availabilityKeyPrefix+"*"); err != nil {
		u.logf("[Availability] Cache invalidation failed: %v", err)
	}
}

func (u *Availability) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
