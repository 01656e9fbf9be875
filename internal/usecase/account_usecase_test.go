package usecase

import (
	"context"
	"testing"

	"tha-drop/internal/domain/user"
	"tha-drop/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context) { c.calls++ }

func TestAccounts_Moderation(t *testing.T) {
	s := memory.New()
	inv := &countingInvalidator{}
	uc := NewAccountUsecase(s.Accounts(), inv, nil)
	ctx := context.Background()

	prof := seed(t, s, user.RoleDJ, false)
	id := prof.AccountID.String()

	require.NoError(t, uc.Approve(ctx, id))
	require.NoError(t, uc.Block(ctx, id))
	acc, err := s.Accounts().GetByID(ctx, prof.AccountID)
	require.NoError(t, err)
	assert.True(t, acc.IsApproved)
	assert.True(t, acc.IsBlocked)

	require.NoError(t, uc.Unblock(ctx, id))
	acc, err = s.Accounts().GetByID(ctx, prof.AccountID)
	require.NoError(t, err)
	assert.False(t, acc.IsBlocked)
	assert.Equal(t, 3, inv.calls)

	require.ErrorIs(t, uc.Approve(ctx, uuid.NewString()), ErrAccountNotFound)
	require.ErrorIs(t, uc.Block(ctx, "bad"), ErrAccountNotFound)
	assert.Equal(t, 3, inv.calls)
}
