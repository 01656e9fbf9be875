package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type profileRepository struct {
	s *Store
}

var withoutRequests = bson.D{{Key: "requests", Value: 0}, {Key: "review", Value: 0}}

func (r profileRepository) GetByID(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (r profileRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (user.Profile, error) {
	return r.findOne(ctx, bson.D{{Key: "account", Value: accountID.String()}})
}

func (r profileRepository) findOne(ctx context.Context, filter bson.D) (user.Profile, error) {
	var doc profileDoc
	err := r.s.profiles.FindOne(ctx, filter, options.FindOne().SetProjection(withoutRequests)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, err
	}
	return doc.toDomain()
}

func (r profileRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]user.Profile, error) {
	if len(ids) == 0 {
		return []user.Profile{}, nil
	}
	keys := make(bson.A, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	cur, err := r.s.profiles.Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: keys}}}},
		options.Find().SetProjection(withoutRequests).SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []profileDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]user.Profile, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r profileRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, schedule []user.AvailabilityInterval) error {
	if schedule == nil {
		schedule = []user.AvailabilityInterval{}
	}
	res, err := r.s.profiles.UpdateByID(ctx, id.String(), bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "schedule", Value: schedule},
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

// availabilityMatch builds the $match stage run after accounts are joined as
// "acc". Schedule bounds are only added for the values present in f.
func availabilityMatch(f user.AvailabilityFilter) bson.D {
	match := bson.D{
		{Key: "acc.role", Value: string(f.Role)},
		{Key: "acc.isApproved", Value: true},
	}
	if f.Day == nil {
		return match
	}

	elem := bson.D{
		{Key: "day", Value: string(*f.Day)},
		{Key: "isActive", Value: true},
	}
	if f.StartAt != nil {
		elem = append(elem, bson.E{Key: "startAt", Value: bson.D{{Key: "$lte", Value: *f.StartAt}}})
	}
	if f.EndAt != nil {
		elem = append(elem, bson.E{Key: "endAt", Value: bson.D{{Key: "$gte", Value: *f.EndAt}}})
	}
	return append(match, bson.E{Key: "schedule", Value: bson.D{{Key: "$elemMatch", Value: elem}}})
}

func (r profileRepository) FindAvailable(ctx context.Context, f user.AvailabilityFilter) ([]user.Candidate, int, error) {
	pipeline := mongodriver.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: accountsCollection},
			{Key: "localField", Value: "account"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "acc"},
		}}},
		{{Key: "$unwind", Value: "$acc"}},
		{{Key: "$match", Value: availabilityMatch(f)}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$facet", Value: bson.D{
			{Key: "total", Value: bson.A{bson.D{{Key: "$count", Value: "count"}}}},
			{Key: "items", Value: bson.A{
				bson.D{{Key: "$skip", Value: int64(f.Offset)}},
				bson.D{{Key: "$limit", Value: int64(f.Limit)}},
				bson.D{{Key: "$project", Value: withoutRequests}},
			}},
		}}},
	}

	cur, err := r.s.profiles.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("aggregate available: %w", err)
	}
	defer cur.Close(ctx)

	var res []struct {
		Total []struct {
			Count int `bson:"count"`
		} `bson:"total"`
		Items []candidateDoc `bson:"items"`
	}
	if err := cur.All(ctx, &res); err != nil {
		return nil, 0, err
	}
	if len(res) == 0 || len(res[0].Total) == 0 {
		return []user.Candidate{}, 0, nil
	}

	out := make([]user.Candidate, 0, len(res[0].Items))
	for _, d := range res[0].Items {
		p, err := d.Profile.toDomain()
		if err != nil {
			return nil, 0, err
		}
		a, err := d.Account.toDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, user.Candidate{
			Profile: p,
			Account: user.AccountSummary{
				ID:         a.ID,
				Email:      a.Email,
				Role:       a.Role,
				IsApproved: a.IsApproved,
				IsBlocked:  a.IsBlocked,
			},
		})
	}
	return out, res[0].Total[0].Count, nil
}
