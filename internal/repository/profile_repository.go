package repository

import (
	"context"

	"tha-drop/internal/database"
	"tha-drop/internal/database/postgres"
	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	return r.getOne(ctx, `WHERE p.id = $1`, id)
}

func (r *PostgresProfileRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (user.Profile, error) {
	return r.getOne(ctx, `WHERE p.account_id = $1`, accountID)
}

func (r *PostgresProfileRepository) getOne(ctx context.Context, where string, arg any) (user.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles p `+where, arg)

	var p user.Profile
	var schedule []byte
	if err := row.Scan(profileDest(&p, &schedule)...); err != nil {
		if postgres.IsNoRows(err) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, err
	}
	if err := finishProfile(&p, schedule); err != nil {
		return user.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]user.Profile, error) {
	if len(ids) == 0 {
		return []user.Profile{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles p WHERE p.id = ANY($1) ORDER BY p.id ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Profile, 0, len(ids))
	for rows.Next() {
		var p user.Profile
		var schedule []byte
		if err := rows.Scan(profileDest(&p, &schedule)...); err != nil {
			return nil, err
		}
		if err := finishProfile(&p, schedule); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, schedule []user.AvailabilityInterval) error {
	doc, err := encodeSchedule(schedule)
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx,
		`UPDATE profiles SET schedule = $2::jsonb, updated_at = now() WHERE id = $1`,
		id, doc,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

// availabilityWhere expects $1 role, $2 day, $3 startAt, $4 endAt. A NULL day
// disables the schedule predicate, a NULL bound disables that bound.
const availabilityWhere = `
	WHERE a.role = $1 AND a.is_approved = TRUE
	  AND ($2::text IS NULL OR EXISTS (
		SELECT 1 FROM jsonb_array_elements(p.schedule) s
		WHERE s->>'day' = $2::text
		  AND (s->>'isActive')::boolean
		  AND ($3::int IS NULL OR (s->>'startAt')::int <= $3::int)
		  AND ($4::int IS NULL OR (s->>'endAt')::int >= $4::int)
	  ))`

func (r *PostgresProfileRepository) FindAvailable(ctx context.Context, f user.AvailabilityFilter) ([]user.Candidate, int, error) {
	var day *string
	if f.Day != nil {
		d := string(*f.Day)
		day = &d
	}
	args := []any{string(f.Role), day, f.StartAt, f.EndAt}

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM profiles p JOIN accounts a ON a.id = p.account_id`+availabilityWhere,
		args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []user.Candidate{}, 0, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+`, a.id, a.email, a.role, a.is_approved, a.is_blocked
		 FROM profiles p JOIN accounts a ON a.id = p.account_id`+availabilityWhere+`
		 ORDER BY p.id ASC
		 LIMIT $5 OFFSET $6`,
		append(args, f.Limit, f.Offset)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]user.Candidate, 0, f.Limit)
	for rows.Next() {
		var c user.Candidate
		var schedule []byte
		var role string
		dest := append(profileDest(&c.Profile, &schedule),
			&c.Account.ID, &c.Account.Email, &role, &c.Account.IsApproved, &c.Account.IsBlocked,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, err
		}
		if err := finishProfile(&c.Profile, schedule); err != nil {
			return nil, 0, err
		}
		c.Account.Role = user.Role(role)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
