package mongodb

import (
	"fmt"
	"time"

	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
)

type accountDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password"`
	Role         string    `bson:"role"`
	IsVerified   bool      `bson:"isVerified"`
	IsApproved   bool      `bson:"isApproved"`
	IsBlocked    bool      `bson:"isBlocked"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type profileDoc struct {
	ID                string                      `bson:"_id"`
	AccountID         string                      `bson:"account"`
	Name              string                      `bson:"name"`
	Address           string                      `bson:"address"`
	DateOfBirth       *time.Time                  `bson:"dateOfBirth,omitempty"`
	Avatar            *string                     `bson:"avatar,omitempty"`
	PhoneNumber       string                      `bson:"phoneNumber"`
	LicensePhoto      string                      `bson:"licensePhoto"`
	IsRestaurantOwner bool                        `bson:"isRestaurantOwner"`
	RestaurantName    string                      `bson:"restaurantName"`
	Rating            float64                     `bson:"rating"`
	Schedule          []user.AvailabilityInterval `bson:"schedule"`
	Requests          []requestDoc                `bson:"requests"`
	Reviews           []reviewDoc                 `bson:"review"`
	CreatedAt         time.Time                   `bson:"createdAt"`
	UpdatedAt         time.Time                   `bson:"updatedAt"`
}

type requestDoc struct {
	ID        string        `bson:"id"`
	Type      string        `bson:"type"`
	Status    string        `bson:"status"`
	Date      string        `bson:"date"`
	Schedule  string        `bson:"schedule"`
	Location  user.Location `bson:"map"`
	User      string        `bson:"user"`
	Name      string        `bson:"name"`
	Avatar    *string       `bson:"avatar"`
	Rating    float64       `bson:"rating"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

type reviewDoc struct {
	User      string    `bson:"user"`
	Name      string    `bson:"name"`
	Avatar    *string   `bson:"avatar"`
	Rating    int       `bson:"rating"`
	Comment   string    `bson:"comment"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// candidateDoc is one row of the availability aggregation.
type candidateDoc struct {
	Profile profileDoc `bson:",inline"`
	Account accountDoc `bson:"acc"`
}

func newAccountDoc(a user.Account) accountDoc {
	return accountDoc{
		ID:           a.ID.String(),
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		IsVerified:   a.IsVerified,
		IsApproved:   a.IsApproved,
		IsBlocked:    a.IsBlocked,
		CreatedAt:    toMS(a.CreatedAt),
		UpdatedAt:    toMS(a.UpdatedAt),
	}
}

func (d accountDoc) toDomain() (user.Account, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return user.Account{}, fmt.Errorf("account id %q: %w", d.ID, err)
	}
	return user.Account{
		ID:           id,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         user.Role(d.Role),
		IsVerified:   d.IsVerified,
		IsApproved:   d.IsApproved,
		IsBlocked:    d.IsBlocked,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func newProfileDoc(p user.Profile) profileDoc {
	schedule := p.Schedule
	if schedule == nil {
		schedule = []user.AvailabilityInterval{}
	}
	return profileDoc{
		ID:                p.ID.String(),
		AccountID:         p.AccountID.String(),
		Name:              p.Name,
		Address:           p.Address,
		DateOfBirth:       p.DateOfBirth,
		Avatar:            p.Avatar,
		PhoneNumber:       p.PhoneNumber,
		LicensePhoto:      p.LicensePhoto,
		IsRestaurantOwner: p.IsRestaurantOwner,
		RestaurantName:    p.RestaurantName,
		Rating:            p.Rating,
		Schedule:          schedule,
		Requests:          []requestDoc{},
		Reviews:           []reviewDoc{},
		CreatedAt:         toMS(p.CreatedAt),
		UpdatedAt:         toMS(p.UpdatedAt),
	}
}

// toDomain converts the document without its request ledger.
func (d profileDoc) toDomain() (user.Profile, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return user.Profile{}, fmt.Errorf("profile id %q: %w", d.ID, err)
	}
	accountID, err := uuid.Parse(d.AccountID)
	if err != nil {
		return user.Profile{}, fmt.Errorf("profile account %q: %w", d.AccountID, err)
	}
	schedule := d.Schedule
	if schedule == nil {
		schedule = []user.AvailabilityInterval{}
	}
	return user.Profile{
		ID:                id,
		AccountID:         accountID,
		Name:              d.Name,
		Address:           d.Address,
		DateOfBirth:       d.DateOfBirth,
		Avatar:            d.Avatar,
		PhoneNumber:       d.PhoneNumber,
		LicensePhoto:      d.LicensePhoto,
		IsRestaurantOwner: d.IsRestaurantOwner,
		RestaurantName:    d.RestaurantName,
		Rating:            d.Rating,
		Schedule:          schedule,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}, nil
}

func newRequestDoc(r user.HiringRequest) requestDoc {
	return requestDoc{
		ID:        r.ID.String(),
		Type:      string(r.Type),
		Status:    string(r.Status),
		Date:      r.Date,
		Schedule:  r.Schedule,
		Location:  r.Location,
		User:      r.CounterpartyID.String(),
		Name:      r.CounterpartyName,
		Avatar:    r.CounterpartyAvatar,
		Rating:    r.CounterpartyRating,
		CreatedAt: toMS(r.CreatedAt),
		UpdatedAt: toMS(r.UpdatedAt),
	}
}

func (d requestDoc) toDomain(owner uuid.UUID) (user.HiringRequest, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return user.HiringRequest{}, fmt.Errorf("request id %q: %w", d.ID, err)
	}
	counterparty, err := uuid.Parse(d.User)
	if err != nil {
		return user.HiringRequest{}, fmt.Errorf("request counterparty %q: %w", d.User, err)
	}
	return user.HiringRequest{
		ID:                 id,
		OwnerID:            owner,
		Type:               user.RequestType(d.Type),
		Status:             user.RequestStatus(d.Status),
		Date:               d.Date,
		Schedule:           d.Schedule,
		Location:           d.Location,
		CounterpartyID:     counterparty,
		CounterpartyName:   d.Name,
		CounterpartyAvatar: d.Avatar,
		CounterpartyRating: d.Rating,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}, nil
}

func newReviewDoc(r user.Review) reviewDoc {
	return reviewDoc{
		User:      r.ReviewerID.String(),
		Name:      r.ReviewerName,
		Avatar:    r.ReviewerAvatar,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: toMS(r.CreatedAt),
		UpdatedAt: toMS(r.UpdatedAt),
	}
}

func (d reviewDoc) toDomain(target uuid.UUID) (user.Review, error) {
	reviewer, err := uuid.Parse(d.User)
	if err != nil {
		return user.Review{}, fmt.Errorf("review author %q: %w", d.User, err)
	}
	return user.Review{
		TargetID:       target,
		ReviewerID:     reviewer,
		ReviewerName:   d.Name,
		ReviewerAvatar: d.Avatar,
		Rating:         d.Rating,
		Comment:        d.Comment,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}, nil
}
