package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tha-drop/internal/config"
	"tha-drop/internal/domain/user"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	accountsCollection = "accounts"
	profilesCollection = "profiles"
)

// Store keeps accounts and profiles in two collections. A profile document
// embeds its weekly schedule, its hiring request ledger and the reviews it
// received.
type Store struct {
	client   *mongodriver.Client
	db       *mongodriver.Database
	accounts *mongodriver.Collection
	profiles *mongodriver.Collection
}

var _ user.Store = (*Store)(nil)

func New(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}
	if strings.TrimSpace(cfg.Database) == "" {
		return nil, fmt.Errorf("mongo: empty database name")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(cfg.Database)
	s := &Store{
		client:   cli,
		db:       db,
		accounts: db.Collection(accountsCollection),
		profiles: db.Collection(profilesCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.accounts.Indexes().CreateMany(ctx, []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "isApproved", Value: 1}},
			Options: options.Index().SetName("role_approved"),
		},
	})
	if err != nil {
		return fmt.Errorf("mongo ensure account indexes: %w", err)
	}

	_, err = s.profiles.Indexes().CreateMany(ctx, []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "account", Value: 1}},
			Options: options.Index().SetName("account_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "requests.id", Value: 1}},
			Options: options.Index().SetName("requests_id"),
		},
		{
			Keys:    bson.D{{Key: "schedule.day", Value: 1}},
			Options: options.Index().SetName("schedule_day"),
		},
	})
	if err != nil {
		return fmt.Errorf("mongo ensure profile indexes: %w", err)
	}
	return nil
}

func (s *Store) Accounts() user.AccountRepository { return accountRepository{s: s} }
func (s *Store) Profiles() user.ProfileRepository { return profileRepository{s: s} }
func (s *Store) Requests() user.RequestRepository { return requestRepository{s: s} }
func (s *Store) Reviews() user.ReviewRepository   { return reviewRepository{s: s} }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Mongo stores datetimes with millisecond precision.
func toMS(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
