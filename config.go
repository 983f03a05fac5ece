package sessionkit

import (
	"errors"
	"time"
)

// Config defines a public type used by sessionkit APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Bootstrap BootstrapConfig
	Flows     FlowConfig
	Tokens    TokenConfig
	Events    EventConfig
	Metrics   MetricsConfig
}

/*
====================================
BOOTSTRAP CONFIG
====================================
*/

// BootstrapConfig defines a public type used by sessionkit APIs.
//
// BootstrapConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BootstrapConfig struct {
	// OptimisticFromStoredToken seeds the authenticated flag from token
	// presence before silent reauthentication confirms it. The guess is a
	// UI hint only; the authorization gate ignores unconfirmed sessions.
	OptimisticFromStoredToken bool
	// SkipWhenTokenExpired drops the optimistic guess (and the dead slot)
	// when the stored token decodes with an expiry in the past.
	SkipWhenTokenExpired bool
	// RevalidateAfter makes EnsureFresh re-confirm sessions whose last
	// successful check is older than this. Zero disables staleness checks.
	RevalidateAfter time.Duration
}

/*
====================================
FLOW CONFIG
====================================
*/

// FlowConfig defines a public type used by sessionkit APIs.
//
// FlowConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type FlowConfig struct {
	// CallTimeout caps every transport call. Zero leaves timeouts to the
	// caller's context; expiry surfaces as a timeout-kind flow error.
	CallTimeout time.Duration
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by sessionkit APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	// PersistOnLogin writes the returned token into the credential store:
	// the primary slot when the user asked to be remembered, the
	// session-scoped fallback slot otherwise.
	PersistOnLogin bool
}

/*
====================================
EVENT CONFIG
====================================
*/

// EventConfig defines a public type used by sessionkit APIs.
//
// EventConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EventConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by sessionkit APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Bootstrap: BootstrapConfig{
			OptimisticFromStoredToken: true,
			SkipWhenTokenExpired:      true,
			RevalidateAfter:           0,
		},
		Flows: FlowConfig{
			CallTimeout: 0,
		},
		Tokens: TokenConfig{
			PersistOnLogin: true,
		},
		Events: EventConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// DefaultConfig returns the baseline configuration: optimistic bootstrap with
// expiry pre-check, token persistence on login, events and metrics off.
func DefaultConfig() Config {
	return defaultConfig()
}

// StrictBootstrapConfig returns a configuration that never guesses: the
// session stays anonymous until silent reauthentication confirms it.
func StrictBootstrapConfig() Config {
	cfg := defaultConfig()
	cfg.Bootstrap.OptimisticFromStoredToken = false
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Bootstrap.RevalidateAfter < 0 {
		return errors.New("bootstrap revalidate-after cannot be negative")
	}
	if c.Flows.CallTimeout < 0 {
		return errors.New("flow call timeout cannot be negative")
	}
	if c.Events.Enabled && c.Events.BufferSize < 0 {
		return errors.New("event buffer size cannot be negative")
	}
	return nil
}
