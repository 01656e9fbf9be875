package repository

import (
	"context"

	"tha-drop/internal/database"
	"tha-drop/internal/domain/user"
)

// PostgresStore serves every repository from one pgx pool.
type PostgresStore struct {
	db       database.DB
	accounts *PostgresAccountRepository
	profiles *PostgresProfileRepository
	requests *PostgresRequestRepository
	reviews  *PostgresReviewRepository
}

var _ user.Store = (*PostgresStore)(nil)

func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{
		db:       db,
		accounts: NewPostgresAccountRepository(db),
		profiles: NewPostgresProfileRepository(db),
		requests: NewPostgresRequestRepository(db),
		reviews:  NewPostgresReviewRepository(db),
	}
}

func (s *PostgresStore) Accounts() user.AccountRepository { return s.accounts }
func (s *PostgresStore) Profiles() user.ProfileRepository { return s.profiles }
func (s *PostgresStore) Requests() user.RequestRepository { return s.requests }
func (s *PostgresStore) Reviews() user.ReviewRepository   { return s.reviews }

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
