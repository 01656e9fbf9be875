package repository

import (
	"context"
	"time"

	"tha-drop/internal/database"
	"tha-drop/internal/database/postgres"
	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresRequestRepository struct {
	db database.DB
}

func NewPostgresRequestRepository(db database.DB) *PostgresRequestRepository {
	return &PostgresRequestRepository{db: db}
}

// SavePairs writes every record of a hire in one transaction.
func (r *PostgresRequestRepository) SavePairs(ctx context.Context, pairs []user.RequestPair) error {
	if len(pairs) == 0 {
		return nil
	}

	err := database.InTx(ctx, r.db, func(tx database.Tx) error {
		for _, p := range pairs {
			if err := insertRequest(ctx, tx, p.Sent); err != nil {
				return err
			}
			if err := insertRequest(ctx, tx, p.Received); err != nil {
				return err
			}
		}
		return nil
	})
	if postgres.IsUniqueViolation(err, "") {
		return user.ErrRequestIDConflict
	}
	return err
}

func insertRequest(ctx context.Context, q database.Queryer, req user.HiringRequest) error {
	_, err := q.Exec(ctx,
		`INSERT INTO hiring_requests (`+requestColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		req.ID, req.OwnerID, string(req.Type), string(req.Status), req.Date, req.Schedule,
		req.Location.Label, req.Location.Latitude, req.Location.Longitude,
		req.CounterpartyID, req.CounterpartyName, req.CounterpartyAvatar, req.CounterpartyRating,
		req.CreatedAt, req.UpdatedAt,
	)
	return err
}

func (r *PostgresRequestRepository) FindRequest(ctx context.Context, ownerID, requestID uuid.UUID) (user.HiringRequest, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM hiring_requests WHERE owner_id = $1 AND id = $2`,
		ownerID, requestID,
	)
	req, err := scanRequest(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return user.HiringRequest{}, user.ErrRequestNotFound
		}
		return user.HiringRequest{}, err
	}
	return req, nil
}

func (r *PostgresRequestRepository) SetStatus(ctx context.Context, ownerID, requestID uuid.UUID, status user.RequestStatus, mirror bool) error {
	now := time.Now().UTC()
	return database.InTx(ctx, r.db, func(tx database.Tx) error {
		n, err := tx.Exec(ctx,
			`UPDATE hiring_requests SET status = $3, updated_at = $4 WHERE owner_id = $1 AND id = $2`,
			ownerID, requestID, string(status), now,
		)
		if err != nil {
			return err
		}
		if n == 0 {
			return user.ErrRequestNotFound
		}
		if !mirror {
			return nil
		}
		_, err = tx.Exec(ctx,
			`UPDATE hiring_requests SET status = $3, updated_at = $4 WHERE id = $1 AND owner_id <> $2`,
			requestID, ownerID, string(status), now,
		)
		return err
	})
}

func (r *PostgresRequestRepository) ListRequests(ctx context.Context, ownerID uuid.UUID, f user.RequestFilter) ([]user.HiringRequest, error) {
	var typ, status *string
	if f.Type != nil {
		v := string(*f.Type)
		typ = &v
	}
	if f.Status != nil {
		v := string(*f.Status)
		status = &v
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+requestColumns+`
		 FROM hiring_requests
		 WHERE owner_id = $1
		   AND ($2::text IS NULL OR type = $2::text)
		   AND ($3::text IS NULL OR status = $3::text)
		 ORDER BY created_at DESC, id ASC`,
		ownerID, typ, status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.HiringRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
