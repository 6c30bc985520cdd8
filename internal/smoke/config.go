// Package smoke drives the activities HTTP contract end-to-end against a
// running server.
package smoke

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Defaults used when Config fields are left empty.
const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultActivity = "Chess Club"
	DefaultTimeout  = 10 * time.Second

	// UnknownActivity is assumed absent from every roster.
	UnknownActivity = "Nonexistent Club"
)

// Config holds the smoke run parameters.
type Config struct {
	BaseURL  string
	Activity string
	Email    string
	Timeout  time.Duration
	Verbose  bool
}

// withDefaults fills empty fields. A blank Email becomes a fresh address so
// repeated runs against one server never collide.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Activity == "" {
		c.Activity = DefaultActivity
	}
	if c.Email == "" {
		c.Email = "smoke-" + uuid.NewString()[:8] + "@mergington.edu"
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
