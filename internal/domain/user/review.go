package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrReviewExists   = errors.New("review already exists")
	ErrReviewNotFound = errors.New("review not found")
)

// Review is one profile's rating of another. A reviewer holds at most one
// review per target; the target's Profile.Rating is the mean of its reviews.
type Review struct {
	TargetID       uuid.UUID
	ReviewerID     uuid.UUID
	ReviewerName   string
	ReviewerAvatar *string
	Rating         int
	Comment        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReviewChange holds the fields an update overwrites. Nil fields are kept.
type ReviewChange struct {
	Rating  *int
	Comment *string
}

// MeanRating returns the average rating of reviews, or 0 when there are none.
func MeanRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

type ReviewRepository interface {
	// AddReview stores r and recomputes the target's rating. It fails with
	// ErrNotFound when the target is missing and ErrReviewExists when the
	// reviewer already reviewed it.
	AddReview(ctx context.Context, r Review) error
	// UpdateReview applies ch to the reviewer's review and recomputes the
	// target's rating.
	UpdateReview(ctx context.Context, targetID, reviewerID uuid.UUID, ch ReviewChange) (Review, error)
	// ListReviews returns the target's reviews, newest first.
	ListReviews(ctx context.Context, targetID uuid.UUID) ([]Review, error)
}
