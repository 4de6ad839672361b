package auth

import (
	"context"
	"sync"
	"time"
)

// FailureStore tracks sign-in failures and lockouts per identifier.
type FailureStore interface {
	// RecordFailure increments the failure count, keeping the record for ttl.
	RecordFailure(ctx context.Context, identifier string, ttl time.Duration) (int, error)
	ClearFailures(ctx context.Context, identifier string) error
	Lock(ctx context.Context, identifier string, duration time.Duration) error
	IsLocked(ctx context.Context, identifier string) (bool, error)
}

// Throttle adds brute-force protection to sign-in: after MaxFailures
// failures inside Window, the identifier is locked for LockDuration. A
// locked account is indistinguishable from a bad credential at the API
// boundary.
type Throttle struct {
	store        FailureStore
	maxFailures  int
	window       time.Duration
	lockDuration time.Duration
}

func NewThrottle(store FailureStore, maxFailures int, window, lockDuration time.Duration) *Throttle {
	return &Throttle{
		store:        store,
		maxFailures:  maxFailures,
		window:       window,
		lockDuration: lockDuration,
	}
}

func (t *Throttle) Locked(ctx context.Context, identifier string) (bool, error) {
	return t.store.IsLocked(ctx, identifier)
}

// Failure records one failed attempt, locking the identifier when the
// threshold is reached.
func (t *Throttle) Failure(ctx context.Context, identifier string) error {
	count, err := t.store.RecordFailure(ctx, identifier, t.window)
	if err != nil {
		return err
	}
	if count >= t.maxFailures {
		return t.store.Lock(ctx, identifier, t.lockDuration)
	}
	return nil
}

// Success clears the failure record after a successful sign-in.
func (t *Throttle) Success(ctx context.Context, identifier string) {
	_ = t.store.ClearFailures(ctx, identifier)
}

// MemoryFailureStore is a process-local FailureStore for single-instance
// deployments and tests. Deployments with more than one replica should use
// the Redis store so lockouts are shared.
type MemoryFailureStore struct {
	mu       sync.Mutex
	failures map[string]*failureRecord
	locks    map[string]time.Time
}

type failureRecord struct {
	count     int
	expiresAt time.Time
}

func NewMemoryFailureStore() *MemoryFailureStore {
	return &MemoryFailureStore{
		failures: make(map[string]*failureRecord),
		locks:    make(map[string]time.Time),
	}
}

func (s *MemoryFailureStore) RecordFailure(_ context.Context, identifier string, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.failures[identifier]
	if !ok || time.Now().After(rec.expiresAt) {
		rec = &failureRecord{expiresAt: time.Now().Add(ttl)}
		s.failures[identifier] = rec
	}
	rec.count++
	return rec.count, nil
}

func (s *MemoryFailureStore) ClearFailures(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, identifier)
	return nil
}

func (s *MemoryFailureStore) Lock(_ context.Context, identifier string, duration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks[identifier] = time.Now().Add(duration)
	delete(s.failures, identifier)
	return nil
}

func (s *MemoryFailureStore) IsLocked(_ context.Context, identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.locks[identifier]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(s.locks, identifier)
		return false, nil
	}
	return true, nil
}
