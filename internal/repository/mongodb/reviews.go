package mongodb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reviewRepository struct {
	s *Store
}

// AddReview pushes the review unless the reviewer already has one on the
// target, then recomputes the rating from the embedded reviews.
func (r reviewRepository) AddReview(ctx context.Context, rv user.Review) error {
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now()
	}
	if rv.UpdatedAt.IsZero() {
		rv.UpdatedAt = rv.CreatedAt
	}
	target := rv.TargetID.String()

	res, err := r.s.profiles.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: target},
			{Key: "review.user", Value: bson.D{{Key: "$ne", Value: rv.ReviewerID.String()}}},
		},
		bson.D{{Key: "$push", Value: bson.D{{Key: "review", Value: newReviewDoc(rv)}}}},
	)
	if err != nil {
		return fmt.Errorf("push review: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.s.profiles.CountDocuments(ctx, bson.D{{Key: "_id", Value: target}})
		if err != nil {
			return err
		}
		if n == 0 {
			return user.ErrNotFound
		}
		return user.ErrReviewExists
	}
	return r.refreshRating(ctx, target)
}

func (r reviewRepository) UpdateReview(ctx context.Context, targetID, reviewerID uuid.UUID, ch user.ReviewChange) (user.Review, error) {
	set := bson.D{{Key: "review.$.updatedAt", Value: toMS(time.Now())}}
	if ch.Rating != nil {
		set = append(set, bson.E{Key: "review.$.rating", Value: *ch.Rating})
	}
	if ch.Comment != nil {
		set = append(set, bson.E{Key: "review.$.comment", Value: *ch.Comment})
	}

	filter := bson.D{
		{Key: "_id", Value: targetID.String()},
		{Key: "review.user", Value: reviewerID.String()},
	}
	res, err := r.s.profiles.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return user.Review{}, fmt.Errorf("update review: %w", err)
	}
	if res.MatchedCount == 0 {
		return user.Review{}, user.ErrReviewNotFound
	}
	if err := r.refreshRating(ctx, targetID.String()); err != nil {
		return user.Review{}, err
	}

	var doc profileDoc
	err = r.s.profiles.FindOne(ctx, filter,
		options.FindOne().SetProjection(bson.D{{Key: "review.$", Value: 1}}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return user.Review{}, user.ErrReviewNotFound
		}
		return user.Review{}, err
	}
	if len(doc.Reviews) == 0 {
		return user.Review{}, user.ErrReviewNotFound
	}
	return doc.Reviews[0].toDomain(targetID)
}

func (r reviewRepository) ListReviews(ctx context.Context, targetID uuid.UUID) ([]user.Review, error) {
	var doc profileDoc
	err := r.s.profiles.FindOne(ctx,
		bson.D{{Key: "_id", Value: targetID.String()}},
		options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}, {Key: "review", Value: 1}}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return []user.Review{}, nil
		}
		return nil, err
	}

	out := make([]user.Review, 0, len(doc.Reviews))
	for _, d := range doc.Reviews {
		rv, err := d.toDomain(targetID)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return bytes.Compare(out[i].ReviewerID[:], out[j].ReviewerID[:]) < 0
	})
	return out, nil
}

// refreshRating sets rating to the mean of the embedded reviews with an
// update pipeline, so it reads the array as stored.
func (r reviewRepository) refreshRating(ctx context.Context, target string) error {
	_, err := r.s.profiles.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: target}},
		mongodriver.Pipeline{
			{{Key: "$set", Value: bson.D{
				{Key: "rating", Value: bson.D{{Key: "$ifNull", Value: bson.A{
					bson.D{{Key: "$avg", Value: "$review.rating"}},
					0.0,
				}}}},
				{Key: "updatedAt", Value: toMS(time.Now())},
			}}},
		},
	)
	if err != nil {
		return fmt.Errorf("refresh rating: %w", err)
	}
	return nil
}
