package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/preston-bernstein/activities-service/internal/domain/activities"
)

type roster struct {
	mu       sync.RWMutex
	activity activities.Activity
}

// MemoryStore keeps activity rosters in memory with one lock per activity.
// The set of activities is fixed at construction, so lookups need no global lock.
type MemoryStore struct {
	order   []string
	rosters map[string]*roster
}

// NewMemoryStore seeds a store from the catalog, copying every roster.
func NewMemoryStore(seed []activities.Activity) *MemoryStore {
	s := &MemoryStore{
		order:   make([]string, 0, len(seed)),
		rosters: make(map[string]*roster, len(seed)),
	}
	for _, a := range seed {
		if _, exists := s.rosters[a.Name]; exists {
			continue
		}
		s.order = append(s.order, a.Name)
		s.rosters[a.Name] = &roster{activity: a.Clone()}
	}
	return s
}

// ListAll returns copies of every activity in catalog order.
func (s *MemoryStore) ListAll(ctx context.Context) ([]activities.Activity, error) {
	_ = ctx
	result := make([]activities.Activity, 0, len(s.order))
	for _, name := range s.order {
		r := s.rosters[name]
		r.mu.RLock()
		result = append(result, r.activity.Clone())
		r.mu.RUnlock()
	}
	return result, nil
}

// Get returns a copy of a single activity.
func (s *MemoryStore) Get(ctx context.Context, name string) (activities.Activity, error) {
	_ = ctx
	r, ok := s.rosters[name]
	if !ok {
		return activities.Activity{}, fmt.Errorf("%w: %s", activities.ErrNotFound, name)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activity.Clone(), nil
}

// Admit appends email to the roster when it is absent and a slot is free.
func (s *MemoryStore) Admit(ctx context.Context, name, email string) error {
	_ = ctx
	r, ok := s.rosters[name]
	if !ok {
		return fmt.Errorf("%w: %s", activities.ErrNotFound, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.activity.HasParticipant(email) {
		return activities.ErrAlreadyRegistered
	}
	if len(r.activity.Participants) >= r.activity.MaxParticipants {
		return activities.ErrCapacityExceeded
	}
	r.activity.Participants = append(r.activity.Participants, email)
	return nil
}

// Remove drops email from the roster, keeping the remaining admission order.
func (s *MemoryStore) Remove(ctx context.Context, name, email string) error {
	_ = ctx
	r, ok := s.rosters[name]
	if !ok {
		return fmt.Errorf("%w: %s", activities.ErrNotFound, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.activity.Participants {
		if p != email {
			continue
		}
		next := make([]string, 0, len(r.activity.Participants)-1)
		next = append(next, r.activity.Participants[:i]...)
		next = append(next, r.activity.Participants[i+1:]...)
		r.activity.Participants = next
		return nil
	}
	return activities.ErrNotRegistered
}
