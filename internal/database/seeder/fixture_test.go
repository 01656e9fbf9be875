package seeder

import (
	"context"
	"io"
	"log"
	"testing"

	"tha-drop/internal/domain/user"
	"tha-drop/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDefaults_SeedAndRerun(t *testing.T) {
	store := memory.New()
	seeders := Defaults()
	for i, s := range seeders {
		fs := s.(FixtureSeeder)
		fs.HashCost = bcrypt.MinCost
		seeders[i] = fs
	}
	r := Runner{Seeders: seeders, Logger: log.New(io.Discard, "", 0)}
	ctx := context.Background()

	require.NoError(t, r.Run(ctx, store))
	require.NoError(t, r.Run(ctx, store))

	acc, err := store.Accounts().GetByEmail(ctx, "dj.nova@thadrop.local")
	require.NoError(t, err)
	assert.Equal(t, user.RoleDJ, acc.Role)
	assert.True(t, acc.IsApproved)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("dj-password")))

	prof, err := store.Profiles().GetByAccountID(ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, prof.Schedule, 2)
	assert.Equal(t, user.AvailabilityInterval{Day: user.Saturday, IsActive: true, StartAt: 1200, EndAt: 1440}, prof.Schedule[1])

	bar, err := store.Accounts().GetByEmail(ctx, "bar.mia@thadrop.local")
	require.NoError(t, err)
	barProf, err := store.Profiles().GetByAccountID(ctx, bar.ID)
	require.NoError(t, err)
	assert.False(t, barProf.Schedule[1].IsActive)
}

func TestFixtureSeeder_Rejects(t *testing.T) {
	ctx := context.Background()
	for name, data := range map[string]string{
		"bad yaml":  "accounts: [",
		"bad role":  "accounts:\n  - {email: a@b.c, password: x, role: PILOT}",
		"bad clock": "accounts:\n  - {email: a@b.c, password: x, role: DJ, schedule: [{day: Monday, startAt: '8pm', endAt: '23:00'}]}",
		"bad day":   "accounts:\n  - {email: a@b.c, password: x, role: DJ, schedule: [{day: Funday, startAt: '20:00', endAt: '23:00'}]}",
		"no email":  "accounts:\n  - {password: x, role: DJ}",
	} {
		t.Run(name, func(t *testing.T) {
			err := FixtureSeeder{Data: []byte(data), HashCost: bcrypt.MinCost}.Run(ctx, memory.New())
			require.Error(t, err)
		})
	}

	require.Error(t, Runner{}.Run(ctx, nil))
}
