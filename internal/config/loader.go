package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "MERGINGTON_"
	envConfig  = envPrefix + "CONFIG"
	keyDelim   = "."
	keySeedMap = "activities"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MERGINGTON_CONFIG is set
//  3. env (prefix MERGINGTON_)
//
// An activities map in the file replaces the default seed instead of merging
// with it.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(keyDelim)

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// MERGINGTON_LOG_LEVEL -> log_level. Keys stay flat so underscores match
	// the koanf tags on the struct.
	envProvider := env.Provider(envPrefix, keyDelim, func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *New()
	if k.Get(keySeedMap) != nil {
		cfg.Activities = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the store relies on.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	for name, a := range c.Activities {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: activity name must not be empty", ErrInvalidConfig)
		}
		if a.MaxParticipants < 0 {
			return fmt.Errorf("%w: activity %q: max_participants must not be negative", ErrInvalidConfig, name)
		}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if _, dup := seen[email]; dup {
				return fmt.Errorf("%w: activity %q: duplicate participant %q", ErrInvalidConfig, name, email)
			}
			seen[email] = struct{}{}
		}
	}
	return nil
}
