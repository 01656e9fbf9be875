package memory

import (
	"context"
	"testing"

	"tha-drop/internal/domain/user"
	"tha-drop/internal/repository/storetest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) user.Store { return New() })
}

func TestSavePairs_UnknownOwnerWritesNothing(t *testing.T) {
	s := New()
	host := storetest.Seed(t, s, user.RoleHost, true)

	pair := user.RequestPair{
		Sent:     user.HiringRequest{ID: uuid.New(), OwnerID: host.ID, Type: user.RequestSent},
		Received: user.HiringRequest{ID: uuid.New(), OwnerID: uuid.New(), Type: user.RequestReceived},
	}
	require.ErrorIs(t, s.Requests().SavePairs(context.Background(), []user.RequestPair{pair}), user.ErrNotFound)

	list, err := s.Requests().ListRequests(context.Background(), host.ID, user.RequestFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_HonorsCanceledContext(t *testing.T) {
	s := New()
	c, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Profiles().GetByID(c, uuid.New())
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, s.Ping(c), context.Canceled)
}
