package repository

import (
	"context"
	"sync"

	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/pkg/logger"
)

// MemoryStore keeps the roster in a map guarded by a RWMutex. Every
// operation runs to completion before the next one observes the map.
type MemoryStore struct {
	mu         sync.RWMutex
	activities map[string]*activity.Activity
	logger     logger.Logger
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store and applies opts.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		activities: make(map[string]*activity.Activity),
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// load replaces the map contents with copies of seed. Callers hold mu or
// own s exclusively.
func (s *MemoryStore) load(seed map[string]activity.Activity) {
	s.activities = make(map[string]*activity.Activity, len(seed))
	for name, a := range seed {
		c := a.Clone()
		c.Name = name
		s.activities[name] = &c
	}
}

// List returns a snapshot of every activity.
func (s *MemoryStore) List(_ context.Context) (map[string]activity.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return activity.Snapshot(s.activities), nil
}

// Get returns a snapshot of one activity.
func (s *MemoryStore) Get(_ context.Context, name string) (activity.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[name]
	if !ok {
		return activity.Activity{}, ErrActivityNotFound
	}
	return a.Clone(), nil
}

// Signup enrolls email in the named activity.
func (s *MemoryStore) Signup(ctx context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[name]
	if !ok {
		return ErrActivityNotFound
	}
	if !a.Add(email) {
		return ErrAlreadyRegistered
	}
	s.logger.Debug(ctx, "participant added",
		logger.String("activity", name),
		logger.String("email", email),
		logger.Int("participants", len(a.Participants)),
	)
	return nil
}

// Unregister removes email from the named activity.
func (s *MemoryStore) Unregister(ctx context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[name]
	if !ok {
		return ErrActivityNotFound
	}
	if !a.Remove(email) {
		return ErrNotRegistered
	}
	s.logger.Debug(ctx, "participant removed",
		logger.String("activity", name),
		logger.String("email", email),
		logger.Int("participants", len(a.Participants)),
	)
	return nil
}

// Reset restores the store to seed.
func (s *MemoryStore) Reset(ctx context.Context, seed map[string]activity.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(seed)
	s.logger.Debug(ctx, "store reset", logger.Int("activities", len(s.activities)))
	return nil
}

// Count returns the number of activities and the total participants.
func (s *MemoryStore) Count(_ context.Context) (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	participants := 0
	for _, a := range s.activities {
		participants += len(a.Participants)
	}
	return len(s.activities), participants
}
