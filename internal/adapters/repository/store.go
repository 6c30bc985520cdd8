// Package repository defines the activity store interface and errors.
package repository

import (
	"context"

	"github.com/okian/mergington/internal/domain/activity"
)

// Store provides read/write access to the activity roster.
type Store interface {
	// List returns a deep copy of every activity keyed by name.
	List(ctx context.Context) (map[string]activity.Activity, error)

	// Get returns a copy of one activity.
	// Returns ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (activity.Activity, error)

	// Signup appends email to the activity's participants.
	// Returns ErrActivityNotFound or ErrAlreadyRegistered.
	Signup(ctx context.Context, name, email string) error

	// Unregister removes email from the activity's participants.
	// Returns ErrActivityNotFound or ErrNotRegistered.
	Unregister(ctx context.Context, name, email string) error

	// Reset replaces the whole roster with a copy of seed.
	Reset(ctx context.Context, seed map[string]activity.Activity) error

	// Count returns the number of activities and the total participants.
	Count(ctx context.Context) (activities, participants int)
}
