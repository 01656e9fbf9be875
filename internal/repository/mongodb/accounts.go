package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

type accountRepository struct {
	s *Store
}

// CreateWithProfile inserts the account and then its profile. Without a
// replica set there is no multi-document transaction, so a failed profile
// insert removes the account again.
func (r accountRepository) CreateWithProfile(ctx context.Context, a user.Account, p user.Profile) error {
	now := time.Now()
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.CreatedAt, a.UpdatedAt = now, now
	p.AccountID = a.ID
	p.CreatedAt, p.UpdatedAt = now, now

	if _, err := r.s.accounts.InsertOne(ctx, newAccountDoc(a)); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}

	if _, err := r.s.profiles.InsertOne(ctx, newProfileDoc(p)); err != nil {
		_, _ = r.s.accounts.DeleteOne(context.Background(), bson.D{{Key: "_id", Value: a.ID.String()}})
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r accountRepository) GetByID(ctx context.Context, id uuid.UUID) (user.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (r accountRepository) GetByEmail(ctx context.Context, email string) (user.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: strings.ToLower(strings.TrimSpace(email))}})
}

func (r accountRepository) findOne(ctx context.Context, filter bson.D) (user.Account, error) {
	var doc accountDoc
	if err := r.s.accounts.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return user.Account{}, user.ErrNotFound
		}
		return user.Account{}, err
	}
	return doc.toDomain()
}

func (r accountRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	return r.setFlag(ctx, id, "isApproved", approved)
}

func (r accountRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	return r.setFlag(ctx, id, "isBlocked", blocked)
}

func (r accountRepository) setFlag(ctx context.Context, id uuid.UUID, field string, v bool) error {
	res, err := r.s.accounts.UpdateByID(ctx, id.String(), bson.D{
		{Key: "$set", Value: bson.D{
			{Key: field, Value: v},
			{Key: "updatedAt", Value: toMS(time.Now())},
		}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}
