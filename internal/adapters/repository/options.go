package repository

import (
	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/pkg/logger"
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithSeed sets the activities the store starts with.
func WithSeed(seed map[string]activity.Activity) Option {
	return func(s *MemoryStore) {
		s.load(seed)
	}
}

// WithLogger sets the logger used for mutation records.
func WithLogger(l logger.Logger) Option {
	return func(s *MemoryStore) {
		if l != nil {
			s.logger = l
		}
	}
}
