// Package service provides the application layer behind the HTTP API:
// it owns the activity store, formats confirmation messages, and records
// logs and metrics for every mutation.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

// Service implements the API dependencies for the activities system.
type Service struct {
	store  repository.Store
	seed   map[string]activity.Activity
	logger logger.Logger

	// gaugeMu covers reading the store and writing the gauges, so the last
	// writer always saw the latest roster.
	gaugeMu sync.Mutex
	gauged  map[string]struct{}
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the store. Without it the service builds a MemoryStore
// seeded from WithSeed. Without WithSeed, Reset restores the store's
// contents as of New.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSeed sets the roster used at construction and by Reset.
func WithSeed(seed map[string]activity.Activity) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service.
func New(opts ...Option) *Service {
	s := &Service{gauged: make(map[string]struct{})}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Discard()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(
			repository.WithSeed(s.seed),
			repository.WithLogger(s.logger.Named("store")),
		)
	}
	ctx := context.Background()
	if s.seed == nil {
		if all, err := s.store.List(ctx); err == nil {
			s.seed = all
		}
	}
	s.refreshGauges(ctx)
	return s
}

// Activities returns every activity keyed by name.
func (s *Service) Activities(ctx context.Context) (map[string]activity.Activity, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return all, nil
}

// Signup enrolls email in the named activity and returns a confirmation.
func (s *Service) Signup(ctx context.Context, name, email string) (string, error) {
	if err := s.store.Signup(ctx, name, email); err != nil {
		metrics.RecordSignup(activityLabel(name, err), resultOf(err))
		s.logger.Info(ctx, "signup rejected",
			logger.String("activity", name),
			logger.String("email", email),
			logger.Error(err),
		)
		return "", fmt.Errorf("signup %q: %w", name, err)
	}
	metrics.RecordSignup(name, metrics.ResultSuccess)
	s.refreshActivity(ctx, name)
	s.logger.Info(ctx, "student signed up",
		logger.String("activity", name),
		logger.String("email", email),
	)
	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Unregister removes email from the named activity and returns a confirmation.
func (s *Service) Unregister(ctx context.Context, name, email string) (string, error) {
	if err := s.store.Unregister(ctx, name, email); err != nil {
		metrics.RecordUnregistration(activityLabel(name, err), resultOf(err))
		s.logger.Info(ctx, "unregister rejected",
			logger.String("activity", name),
			logger.String("email", email),
			logger.Error(err),
		)
		return "", fmt.Errorf("unregister %q: %w", name, err)
	}
	metrics.RecordUnregistration(name, metrics.ResultSuccess)
	s.refreshActivity(ctx, name)
	s.logger.Info(ctx, "student unregistered",
		logger.String("activity", name),
		logger.String("email", email),
	)
	return fmt.Sprintf("Unregistered %s from %s", email, name), nil
}

// Reset restores the roster to the configured seed.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx, s.seed); err != nil {
		return fmt.Errorf("reset activities: %w", err)
	}
	s.refreshGauges(ctx)
	s.logger.Info(ctx, "activities reset", logger.Int("activities", len(s.seed)))
	return nil
}

// GetStats returns roster totals for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.gaugeMu.Lock()
	defer s.gaugeMu.Unlock()
	activities, participants := s.store.Count(context.Background())
	metrics.UpdateActivityCount(activities)
	metrics.UpdateParticipantCount(participants)
	return map[string]interface{}{
		"activities":   activities,
		"participants": participants,
	}
}

// refreshGauges rewrites every gauge from the whole roster and drops the
// series of activities that are gone.
func (s *Service) refreshGauges(ctx context.Context) {
	s.gaugeMu.Lock()
	defer s.gaugeMu.Unlock()
	all, err := s.store.List(ctx)
	if err != nil {
		return
	}
	for name := range s.gauged {
		if _, ok := all[name]; !ok {
			metrics.DeleteActivityParticipants(name)
		}
	}
	s.gauged = make(map[string]struct{}, len(all))
	total := 0
	for name, a := range all {
		metrics.UpdateActivityParticipants(name, len(a.Participants))
		s.gauged[name] = struct{}{}
		total += len(a.Participants)
	}
	metrics.UpdateActivityCount(len(all))
	metrics.UpdateParticipantCount(total)
}

// refreshActivity updates the gauge of one mutated activity and the totals.
func (s *Service) refreshActivity(ctx context.Context, name string) {
	s.gaugeMu.Lock()
	defer s.gaugeMu.Unlock()
	if a, err := s.store.Get(ctx, name); err == nil {
		metrics.UpdateActivityParticipants(name, len(a.Participants))
		s.gauged[name] = struct{}{}
	}
	activities, participants := s.store.Count(ctx)
	metrics.UpdateActivityCount(activities)
	metrics.UpdateParticipantCount(participants)
}

// activityLabel keeps unknown names out of metric labels.
func activityLabel(name string, err error) string {
	if errors.Is(err, repository.ErrActivityNotFound) {
		return "unknown"
	}
	return name
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return metrics.ResultAlreadyRegistered
	case errors.Is(err, repository.ErrNotRegistered):
		return metrics.ResultNotRegistered
	default:
		return metrics.ResultError
	}
}
