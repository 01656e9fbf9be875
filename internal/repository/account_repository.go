package repository

import (
	"context"
	"strings"
	"time"

	"tha-drop/internal/database"
	"tha-drop/internal/database/postgres"
	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresAccountRepository struct {
	db database.DB
}

func NewPostgresAccountRepository(db database.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) CreateWithProfile(ctx context.Context, a user.Account, p user.Profile) error {
	now := time.Now().UTC()
	schedule, err := encodeSchedule(p.Schedule)
	if err != nil {
		return err
	}

	err = database.InTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO accounts (id, email, password_hash, role, is_verified, is_approved, is_blocked, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)`,
			a.ID, strings.ToLower(strings.TrimSpace(a.Email)), a.PasswordHash, string(a.Role),
			a.IsVerified, a.IsApproved, a.IsBlocked, now,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO profiles (
				id, account_id, name, address, date_of_birth, avatar, phone_number, license_photo,
				is_restaurant_owner, restaurant_name, rating, schedule, created_at, updated_at
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12::jsonb,$13,$13)`,
			p.ID, a.ID, p.Name, p.Address, p.DateOfBirth, p.Avatar, p.PhoneNumber, p.LicensePhoto,
			p.IsRestaurantOwner, p.RestaurantName, p.Rating, schedule, now,
		)
		return err
	})
	if postgres.IsUniqueViolation(err, "accounts_email_key") {
		return user.ErrEmailTaken
	}
	return err
}

func (r *PostgresAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (user.Account, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *PostgresAccountRepository) GetByEmail(ctx context.Context, email string) (user.Account, error) {
	return r.getOne(ctx, `WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
}

func (r *PostgresAccountRepository) getOne(ctx context.Context, where string, arg any) (user.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, role, is_verified, is_approved, is_blocked, created_at, updated_at
		 FROM accounts `+where,
		arg,
	)

	var a user.Account
	var role string
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &role, &a.IsVerified, &a.IsApproved, &a.IsBlocked, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if postgres.IsNoRows(err) {
			return user.Account{}, user.ErrNotFound
		}
		return user.Account{}, err
	}
	a.Role = user.Role(role)
	return a, nil
}

func (r *PostgresAccountRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	return r.setFlag(ctx, `UPDATE accounts SET is_approved = $2, updated_at = now() WHERE id = $1`, id, approved)
}

func (r *PostgresAccountRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	return r.setFlag(ctx, `UPDATE accounts SET is_blocked = $2, updated_at = now() WHERE id = $1`, id, blocked)
}

func (r *PostgresAccountRepository) setFlag(ctx context.Context, query string, id uuid.UUID, v bool) error {
	n, err := r.db.Exec(ctx, query, id, v)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}
