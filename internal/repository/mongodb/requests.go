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

type requestRepository struct {
	s *Store
}

// SavePairs pushes every initiator side first and then each target side.
// A push only applies when the ledger has no request with that id yet, so
// repeating a call after a partial failure never duplicates a record.
func (r requestRepository) SavePairs(ctx context.Context, pairs []user.RequestPair) error {
	for _, p := range pairs {
		if err := r.push(ctx, p.Sent); err != nil {
			return err
		}
	}
	for _, p := range pairs {
		if err := r.push(ctx, p.Received); err != nil {
			return err
		}
	}
	return nil
}

func (r requestRepository) push(ctx context.Context, req user.HiringRequest) error {
	owner := req.OwnerID.String()
	res, err := r.s.profiles.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: owner},
			{Key: "requests.id", Value: bson.D{{Key: "$ne", Value: req.ID.String()}}},
		},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "requests", Value: newRequestDoc(req)}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: toMS(time.Now())}}},
		},
	)
	if err != nil {
		return fmt.Errorf("push %s request %s: %w", req.Type, req.ID, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.s.profiles.CountDocuments(ctx, bson.D{{Key: "_id", Value: owner}})
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r requestRepository) FindRequest(ctx context.Context, ownerID, requestID uuid.UUID) (user.HiringRequest, error) {
	var doc profileDoc
	err := r.s.profiles.FindOne(ctx,
		bson.D{
			{Key: "_id", Value: ownerID.String()},
			{Key: "requests.id", Value: requestID.String()},
		},
		options.FindOne().SetProjection(bson.D{{Key: "requests.$", Value: 1}}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return user.HiringRequest{}, user.ErrRequestNotFound
		}
		return user.HiringRequest{}, err
	}
	if len(doc.Requests) == 0 {
		return user.HiringRequest{}, user.ErrRequestNotFound
	}
	return doc.Requests[0].toDomain(ownerID)
}

// SetStatus updates the owner's record. The mirrored record is updated
// afterwards in a separate write.
func (r requestRepository) SetStatus(ctx context.Context, ownerID, requestID uuid.UUID, status user.RequestStatus, mirror bool) error {
	set := bson.D{{Key: "$set", Value: bson.D{
		{Key: "requests.$.status", Value: string(status)},
		{Key: "requests.$.updatedAt", Value: toMS(time.Now())},
	}}}

	res, err := r.s.profiles.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: ownerID.String()},
			{Key: "requests.id", Value: requestID.String()},
		},
		set,
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return user.ErrRequestNotFound
	}
	if !mirror {
		return nil
	}

	_, err = r.s.profiles.UpdateMany(ctx,
		bson.D{
			{Key: "_id", Value: bson.D{{Key: "$ne", Value: ownerID.String()}}},
			{Key: "requests.id", Value: requestID.String()},
		},
		set,
	)
	if err != nil {
		return fmt.Errorf("mirror status of request %s: %w", requestID, err)
	}
	return nil
}

func (r requestRepository) ListRequests(ctx context.Context, ownerID uuid.UUID, f user.RequestFilter) ([]user.HiringRequest, error) {
	var doc profileDoc
	err := r.s.profiles.FindOne(ctx,
		bson.D{{Key: "_id", Value: ownerID.String()}},
		options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}, {Key: "requests", Value: 1}}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return []user.HiringRequest{}, nil
		}
		return nil, err
	}

	out := make([]user.HiringRequest, 0, len(doc.Requests))
	for _, d := range doc.Requests {
		if f.Type != nil && d.Type != string(*f.Type) {
			continue
		}
		if f.Status != nil && d.Status != string(*f.Status) {
			continue
		}
		req, err := d.toDomain(ownerID)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out, nil
}
