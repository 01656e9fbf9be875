package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tha-drop/internal/domain/availability"
	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML layout of a seed file. Interval times use HH:MM.
type Fixture struct {
	Accounts []FixtureAccount `yaml:"accounts"`
}

type FixtureAccount struct {
	Email       string            `yaml:"email"`
	Password    string            `yaml:"password"`
	Role        string            `yaml:"role"`
	Approved    bool              `yaml:"approved"`
	Name        string            `yaml:"name"`
	PhoneNumber string            `yaml:"phoneNumber"`
	Rating      float64           `yaml:"rating"`
	Schedule    []FixtureInterval `yaml:"schedule"`
}

type FixtureInterval struct {
	Day      string `yaml:"day"`
	IsActive *bool  `yaml:"isActive"`
	StartAt  string `yaml:"startAt"`
	EndAt    string `yaml:"endAt"`
}

func ParseFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

// FixtureSeeder creates the accounts of a fixture. Accounts whose email
// already exists are left untouched, so the seeder can run repeatedly.
type FixtureSeeder struct {
	Label    string
	Data     []byte
	HashCost int
}

func (s FixtureSeeder) Name() string {
	if s.Label == "" {
		return "fixture"
	}
	return s.Label
}

func (s FixtureSeeder) Run(ctx context.Context, store user.Store) error {
	f, err := ParseFixture(s.Data)
	if err != nil {
		return err
	}
	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	for i, fa := range f.Accounts {
		acc, prof, err := fa.build(cost)
		if err != nil {
			return fmt.Errorf("account %d (%s): %w", i, fa.Email, err)
		}

		if _, err := store.Accounts().GetByEmail(ctx, acc.Email); err == nil {
			continue
		} else if !errors.Is(err, user.ErrNotFound) {
			return err
		}

		if err := store.Accounts().CreateWithProfile(ctx, acc, prof); err != nil && !errors.Is(err, user.ErrEmailTaken) {
			return err
		}
	}
	return nil
}

func (fa FixtureAccount) build(cost int) (user.Account, user.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(fa.Email))
	if email == "" {
		return user.Account{}, user.Profile{}, fmt.Errorf("empty email")
	}
	role := user.Role(strings.ToUpper(strings.TrimSpace(fa.Role)))
	if !role.Valid() {
		return user.Account{}, user.Profile{}, fmt.Errorf("invalid role %q", fa.Role)
	}

	schedule := make([]user.AvailabilityInterval, 0, len(fa.Schedule))
	for _, fi := range fa.Schedule {
		iv, err := fi.interval()
		if err != nil {
			return user.Account{}, user.Profile{}, err
		}
		schedule = append(schedule, iv)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(fa.Password), cost)
	if err != nil {
		return user.Account{}, user.Profile{}, fmt.Errorf("hash password: %w", err)
	}

	acc := user.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsVerified:   true,
		IsApproved:   fa.Approved || role == user.RoleGuest,
	}
	prof := user.Profile{
		ID:          uuid.New(),
		AccountID:   acc.ID,
		Name:        fa.Name,
		PhoneNumber: fa.PhoneNumber,
		Rating:      fa.Rating,
		Schedule:    schedule,
	}
	return acc, prof, nil
}

func (fi FixtureInterval) interval() (user.AvailabilityInterval, error) {
	start, err := availability.ParseClock(fi.StartAt)
	if err != nil {
		return user.AvailabilityInterval{}, fmt.Errorf("startAt %q: %w", fi.StartAt, err)
	}
	end, err := availability.ParseClock(fi.EndAt)
	if err != nil {
		return user.AvailabilityInterval{}, fmt.Errorf("endAt %q: %w", fi.EndAt, err)
	}

	iv := user.AvailabilityInterval{Day: user.Weekday(fi.Day), IsActive: true, StartAt: start, EndAt: end}
	if fi.IsActive != nil {
		iv.IsActive = *fi.IsActive
	}
	return iv, iv.Validate()
}
