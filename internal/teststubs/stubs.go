package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/activities-service/internal/domain/activities"
)

// StubStore is a test double for enrollment.Store. Err is returned from every
// mutation; ListErr from ListAll.
type StubStore struct {
	Activities []activities.Activity
	ListErr    error
	Err        error

	AdmitCalls  atomic.Int32
	RemoveCalls atomic.Int32

	mu        sync.Mutex
	lastName  string
	lastEmail string
}

// ListAll returns the configured activities.
func (s *StubStore) ListAll(ctx context.Context) ([]activities.Activity, error) {
	_ = ctx
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.Activities, nil
}

// Admit records the call and returns Err.
func (s *StubStore) Admit(ctx context.Context, name, email string) error {
	_ = ctx
	s.AdmitCalls.Add(1)
	s.remember(name, email)
	return s.Err
}

// Remove records the call and returns Err.
func (s *StubStore) Remove(ctx context.Context, name, email string) error {
	_ = ctx
	s.RemoveCalls.Add(1)
	s.remember(name, email)
	return s.Err
}

// LastCall returns the activity name and email of the most recent mutation.
func (s *StubStore) LastCall() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastName, s.lastEmail
}

func (s *StubStore) remember(name, email string) {
	s.mu.Lock()
	s.lastName, s.lastEmail = name, email
	s.mu.Unlock()
}
