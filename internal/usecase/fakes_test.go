package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"tha-drop/internal/domain/user"
	"tha-drop/internal/repository/memory"
	"tha-drop/internal/repository/storetest"

	"github.com/google/uuid"
)

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	locks   map[string]bool
	sets    int
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, locks: map[string]bool{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = b
	c.sets++
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	delete(c.locks, key)
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			c.deleted = append(c.deleted, k)
		}
	}
	return nil
}

func (c *fakeCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] {
		return false, nil
	}
	c.locks[key] = true
	return true, nil
}

type notification struct {
	ProfileID uuid.UUID
	Event     string
	Request   user.HiringRequest
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *fakeNotifier) NotifyRequest(profileID uuid.UUID, event string, req user.HiringRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{ProfileID: profileID, Event: event, Request: req})
}

type fakeRecorder struct {
	pairs     int
	responded []string
	hits      int
	misses    int
}

func (r *fakeRecorder) PairsCreated(n int)        { r.pairs += n }
func (r *fakeRecorder) Responded(decision string) { r.responded = append(r.responded, decision) }
func (r *fakeRecorder) CacheLookup(hit bool) {
	if hit {
		r.hits++
		return
	}
	r.misses++
}

func callerFor(t *testing.T, s *memory.Store, p user.Profile) Caller {
	t.Helper()
	acc, err := s.Accounts().GetByID(context.Background(), p.AccountID)
	if err != nil {
		t.Fatalf("load account: %v", err)
	}
	return Caller{AccountID: acc.ID, ProfileID: p.ID, Email: acc.Email, Role: acc.Role, IsApproved: acc.IsApproved, Name: p.Name}
}

func seed(t *testing.T, s *memory.Store, role user.Role, approved bool, schedule ...user.AvailabilityInterval) user.Profile {
	t.Helper()
	return storetest.Seed(t, s, role, approved, schedule...)
}
