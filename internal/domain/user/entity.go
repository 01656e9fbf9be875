package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleGuest      Role = "GUEST"
	RoleHost       Role = "HOST"
	RoleDJ         Role = "DJ"
	RoleBartender  Role = "BARTENDER"
	RoleBottleGirl Role = "BOTTLEGIRL"
	RoleAdmin      Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleDJ, RoleBartender, RoleBottleGirl, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether accounts of this role can be hired.
func (r Role) IsStaff() bool {
	switch r {
	case RoleDJ, RoleBartender, RoleBottleGirl:
		return true
	default:
		return false
	}
}

type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	IsVerified   bool
	IsApproved   bool
	IsBlocked    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Profile struct {
	ID                uuid.UUID
	AccountID         uuid.UUID
	Name              string
	Address           string
	DateOfBirth       *time.Time
	Avatar            *string
	PhoneNumber       string
	LicensePhoto      string
	IsRestaurantOwner bool
	RestaurantName    string
	Rating            float64
	Schedule          []AvailabilityInterval
	Requests          []HiringRequest
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AccountSummary is the slice of an account exposed next to a profile.
type AccountSummary struct {
	ID         uuid.UUID
	Email      string
	Role       Role
	IsApproved bool
	IsBlocked  bool
}

type Candidate struct {
	Profile Profile
	Account AccountSummary
}
