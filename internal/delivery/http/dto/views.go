package dto

import (
	"time"

	"tha-drop/internal/domain/user"
	"tha-drop/internal/usecase"

	"github.com/google/uuid"
)

type IntervalView struct {
	Day      user.Weekday `json:"day"`
	IsActive bool         `json:"isActive"`
	StartAt  int          `json:"startAt"`
	EndAt    int          `json:"endAt"`
}

type MapView struct {
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RequestView struct {
	ID        uuid.UUID          `json:"id"`
	Type      user.RequestType   `json:"type"`
	Status    user.RequestStatus `json:"status"`
	Date      string             `json:"date"`
	Schedule  string             `json:"schedule"`
	Map       MapView            `json:"map"`
	User      uuid.UUID          `json:"user"`
	Name      string             `json:"name"`
	Avatar    *string            `json:"avatar"`
	Rating    float64            `json:"rating"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// CandidateSummary is the public view of an available staff member.
type CandidateSummary struct {
	ID        uuid.UUID      `json:"_id"`
	Name      string         `json:"name"`
	Avatar    *string        `json:"avatar"`
	Rating    float64        `json:"rating"`
	Role      user.Role      `json:"role"`
	AccountID uuid.UUID      `json:"account"`
	Schedule  []IntervalView `json:"schedule"`
}

type AccountView struct {
	ID         uuid.UUID `json:"_id"`
	Email      string    `json:"email"`
	Role       user.Role `json:"role"`
	IsApproved bool      `json:"isApproved"`
	IsBlocked  bool      `json:"isBlocked"`
}

type ProfileView struct {
	ID                uuid.UUID      `json:"_id"`
	Name              string         `json:"name"`
	Address           string         `json:"address"`
	DateOfBirth       *time.Time     `json:"dateOfBirth"`
	Avatar            *string        `json:"avatar"`
	PhoneNumber       string         `json:"phoneNumber"`
	IsRestaurantOwner bool           `json:"isRestaurantOwner"`
	RestaurantName    string         `json:"restaurantName"`
	Rating            float64        `json:"rating"`
	Account           AccountView    `json:"account"`
	Schedule          []IntervalView `json:"schedule"`
	Requests          []RequestView  `json:"requests"`
}

type ReviewView struct {
	User      uuid.UUID `json:"user"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	Account      *AccountView `json:"account,omitempty"`
}

func NewIntervalViews(in []user.AvailabilityInterval) []IntervalView {
	out := make([]IntervalView, 0, len(in))
	for _, iv := range in {
		out = append(out, IntervalView(iv))
	}
	return out
}

func NewRequestView(r user.HiringRequest) RequestView {
	return RequestView{
		ID:       r.ID,
		Type:     r.Type,
		Status:   r.Status,
		Date:     r.Date,
		Schedule: r.Schedule,
		Map: MapView{
			Location:  r.Location.Label,
			Latitude:  r.Location.Latitude,
			Longitude: r.Location.Longitude,
		},
		User:      r.CounterpartyID,
		Name:      r.CounterpartyName,
		Avatar:    r.CounterpartyAvatar,
		Rating:    r.CounterpartyRating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewRequestViews(in []user.HiringRequest) []RequestView {
	out := make([]RequestView, 0, len(in))
	for _, r := range in {
		out = append(out, NewRequestView(r))
	}
	return out
}

func NewReviewView(r user.Review) ReviewView {
	return ReviewView{
		User:      r.ReviewerID,
		Name:      r.ReviewerName,
		Avatar:    r.ReviewerAvatar,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewReviewViews(in []user.Review) []ReviewView {
	out := make([]ReviewView, 0, len(in))
	for _, r := range in {
		out = append(out, NewReviewView(r))
	}
	return out
}

func NewCandidateSummaries(in []user.Candidate) []CandidateSummary {
	out := make([]CandidateSummary, 0, len(in))
	for _, c := range in {
		out = append(out, CandidateSummary{
			ID:        c.Profile.ID,
			Name:      c.Profile.Name,
			Avatar:    c.Profile.Avatar,
			Rating:    c.Profile.Rating,
			Role:      c.Account.Role,
			AccountID: c.Account.ID,
			Schedule:  NewIntervalViews(c.Profile.Schedule),
		})
	}
	return out
}

func NewAccountView(a user.AccountSummary) AccountView {
	return AccountView(a)
}

func NewProfileView(v usecase.ProfileView) ProfileView {
	p := v.Profile
	return ProfileView{
		ID:                p.ID,
		Name:              p.Name,
		Address:           p.Address,
		DateOfBirth:       p.DateOfBirth,
		Avatar:            p.Avatar,
		PhoneNumber:       p.PhoneNumber,
		IsRestaurantOwner: p.IsRestaurantOwner,
		RestaurantName:    p.RestaurantName,
		Rating:            p.Rating,
		Account:           NewAccountView(v.Account),
		Schedule:          NewIntervalViews(p.Schedule),
		Requests:          NewRequestViews(p.Requests),
	}
}
