package usecase

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
)

type ReviewInput struct {
	TargetID string
	Rating   float64
	Comment  string
}

// ReviewUpdateInput leaves a field unchanged when it is nil, a zero rating
// or an empty comment.
type ReviewUpdateInput struct {
	TargetID string
	Rating   *float64
	Comment  *string
}

type ReviewUsecase interface {
	Create(ctx context.Context, caller Caller, in ReviewInput) (user.Review, error)
	Update(ctx context.Context, caller Caller, in ReviewUpdateInput) (user.Review, error)
	List(ctx context.Context, targetID string) ([]user.Review, error)
}

// Reviews lets one profile rate another. The target's rating feeds both the
// availability ranking and later hiring snapshots, so the search cache is
// dropped after every write.
type Reviews struct {
	profiles user.ProfileRepository
	reviews  user.ReviewRepository
	search   cacheInvalidator
	logger   *log.Logger
	now      func() time.Time
}

func NewReviewUsecase(profiles user.ProfileRepository, reviews user.ReviewRepository, search cacheInvalidator, logger *log.Logger) *Reviews {
	return &Reviews{profiles: profiles, reviews: reviews, search: search, logger: logger, now: time.Now}
}

func (u *Reviews) Create(ctx context.Context, caller Caller, in ReviewInput) (user.Review, error) {
	reviewer, target, err := u.parties(ctx, caller, in.TargetID)
	if err != nil {
		return user.Review{}, err
	}
	rating, err := wholeRating(in.Rating)
	if err != nil {
		return user.Review{}, err
	}

	now := u.now().UTC()
	rv := user.Review{
		TargetID:       target,
		ReviewerID:     reviewer.ID,
		ReviewerName:   reviewer.Name,
		ReviewerAvatar: reviewer.Avatar,
		Rating:         rating,
		Comment:        strings.TrimSpace(in.Comment),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.reviews.AddReview(ctx, rv); err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			return user.Review{}, ErrAccountNotFound
		case errors.Is(err, user.ErrReviewExists):
			return user.Review{}, ErrReviewExists
		}
		return user.Review{}, dependency("add review", err)
	}

	u.written(ctx, "created", rv)
	return rv, nil
}

func (u *Reviews) Update(ctx context.Context, caller Caller, in ReviewUpdateInput) (user.Review, error) {
	reviewer, target, err := u.parties(ctx, caller, in.TargetID)
	if err != nil {
		return user.Review{}, err
	}

	var ch user.ReviewChange
	if in.Rating != nil && *in.Rating != 0 {
		rating, err := wholeRating(*in.Rating)
		if err != nil {
			return user.Review{}, err
		}
		ch.Rating = &rating
	}
	if in.Comment != nil {
		if c := strings.TrimSpace(*in.Comment); c != "" {
			ch.Comment = &c
		}
	}

	rv, err := u.reviews.UpdateReview(ctx, target, reviewer.ID, ch)
	if err != nil {
		if errors.Is(err, user.ErrReviewNotFound) {
			return user.Review{}, ErrReviewNotFound
		}
		return user.Review{}, dependency("update review", err)
	}

	u.written(ctx, "updated", rv)
	return rv, nil
}

func (u *Reviews) List(ctx context.Context, targetID string) ([]user.Review, error) {
	target, err := u.target(ctx, targetID)
	if err != nil {
		return nil, err
	}
	out, err := u.reviews.ListReviews(ctx, target)
	if err != nil {
		return nil, dependency("list reviews", err)
	}
	if out == nil {
		out = []user.Review{}
	}
	return out, nil
}

// parties loads the caller's profile and resolves the target, rejecting a
// review of oneself.
func (u *Reviews) parties(ctx context.Context, caller Caller, targetID string) (user.Profile, uuid.UUID, error) {
	reviewer, err := u.profiles.GetByID(ctx, caller.ProfileID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, uuid.Nil, ErrProfileNotFound
		}
		return user.Profile{}, uuid.Nil, dependency("load reviewer", err)
	}
	target, err := u.target(ctx, targetID)
	if err != nil {
		return user.Profile{}, uuid.Nil, err
	}
	if target == reviewer.ID {
		return user.Profile{}, uuid.Nil, ErrSelfReview
	}
	return reviewer, target, nil
}

func (u *Reviews) target(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, ErrInvalidTargetID
	}
	if _, err := u.profiles.GetByID(ctx, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return uuid.Nil, ErrAccountNotFound
		}
		return uuid.Nil, dependency("load target", err)
	}
	return id, nil
}

func (u *Reviews) written(ctx context.Context, action string, rv user.Review) {
	if u.search != nil {
		u.search.Invalidate(ctx)
	}
	if u.logger != nil {
		u.logger.Printf("[Reviews] review %s target=%s reviewer=%s rating=%d", action, rv.TargetID, rv.ReviewerID, rv.Rating)
	}
}

func wholeRating(r float64) (int, error) {
	if r != math.Trunc(r) || r < user.MinRating || r > user.MaxRating {
		return 0, ErrInvalidRating
	}
	return int(r), nil
}
