package repository

import (
	"context"
	"time"

	"tha-drop/internal/database"
	"tha-drop/internal/database/postgres"
	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
)

const reviewColumns = `target_id, reviewer_id, reviewer_name, reviewer_avatar, rating, comment, created_at, updated_at`

type PostgresReviewRepository struct {
	db database.DB
}

func NewPostgresReviewRepository(db database.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

// AddReview inserts the review and refreshes the target's rating in one
// transaction. Zero timestamps are set to the current time.
func (r *PostgresReviewRepository) AddReview(ctx context.Context, rv user.Review) error {
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now().UTC()
	}
	if rv.UpdatedAt.IsZero() {
		rv.UpdatedAt = rv.CreatedAt
	}
	err := database.InTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO reviews (`+reviewColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			rv.TargetID, rv.ReviewerID, rv.ReviewerName, rv.ReviewerAvatar, rv.Rating, rv.Comment,
			rv.CreatedAt, rv.UpdatedAt,
		)
		if err != nil {
			return err
		}
		return refreshRating(ctx, tx, rv.TargetID)
	})
	switch {
	case postgres.IsUniqueViolation(err, "reviews_pkey"):
		return user.ErrReviewExists
	case postgres.IsForeignKeyViolation(err):
		return user.ErrNotFound
	}
	return err
}

func (r *PostgresReviewRepository) UpdateReview(ctx context.Context, targetID, reviewerID uuid.UUID, ch user.ReviewChange) (user.Review, error) {
	var out user.Review
	err := database.InTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`UPDATE reviews
			 SET rating = COALESCE($3::smallint, rating),
			     comment = COALESCE($4::text, comment),
			     updated_at = $5
			 WHERE target_id = $1 AND reviewer_id = $2
			 RETURNING `+reviewColumns,
			targetID, reviewerID, ch.Rating, ch.Comment, time.Now().UTC(),
		)
		rv, err := scanReview(row)
		if err != nil {
			if postgres.IsNoRows(err) {
				return user.ErrReviewNotFound
			}
			return err
		}
		out = rv
		return refreshRating(ctx, tx, targetID)
	})
	if err != nil {
		return user.Review{}, err
	}
	return out, nil
}

func (r *PostgresReviewRepository) ListReviews(ctx context.Context, targetID uuid.UUID) ([]user.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE target_id = $1 ORDER BY created_at DESC, reviewer_id ASC`,
		targetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func refreshRating(ctx context.Context, q database.Queryer, targetID uuid.UUID) error {
	_, err := q.Exec(ctx,
		`UPDATE profiles
		 SET rating = COALESCE((SELECT AVG(rating)::float8 FROM reviews WHERE target_id = $1), 0),
		     updated_at = now()
		 WHERE id = $1`,
		targetID,
	)
	return err
}

func scanReview(row scanner) (user.Review, error) {
	var rv user.Review
	var rating int16
	err := row.Scan(
		&rv.TargetID, &rv.ReviewerID, &rv.ReviewerName, &rv.ReviewerAvatar,
		&rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		return user.Review{}, err
	}
	rv.Rating = int(rating)
	return rv, nil
}
