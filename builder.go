package sessionkit

import (
	"errors"
	"time"

	"github.com/skillswap/sessionkit/credstore"
	internalevents "github.com/skillswap/sessionkit/internal/events"
	"github.com/skillswap/sessionkit/userstore"
)

// Builder defines a public type used by sessionkit APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	auth      AuthTransport
	passwords PasswordTransport
	accounts  AccountTransport

	creds credstore.Store
	users *userstore.Store
	sink  EventSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithAuthTransport describes the withauthtransport operation and its observable behavior.
//
// WithAuthTransport may return an error when input validation, dependency calls, or security checks fail.
// WithAuthTransport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuthTransport(t AuthTransport) *Builder {
	b.auth = t
	return b
}

// WithPasswordTransport describes the withpasswordtransport operation and its observable behavior.
//
// WithPasswordTransport may return an error when input validation, dependency calls, or security checks fail.
// WithPasswordTransport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithPasswordTransport(t PasswordTransport) *Builder {
	b.passwords = t
	return b
}

// WithAccountTransport describes the withaccounttransport operation and its observable behavior.
//
// WithAccountTransport may return an error when input validation, dependency calls, or security checks fail.
// WithAccountTransport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAccountTransport(t AccountTransport) *Builder {
	b.accounts = t
	return b
}

// WithCredentialStore describes the withcredentialstore operation and its observable behavior.
//
// WithCredentialStore may return an error when input validation, dependency calls, or security checks fail.
// WithCredentialStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCredentialStore(s credstore.Store) *Builder {
	b.creds = s
	return b
}

// WithUserStore describes the withuserstore operation and its observable behavior.
//
// WithUserStore may return an error when input validation, dependency calls, or security checks fail.
// WithUserStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithUserStore(s *userstore.Store) *Builder {
	b.users = s
	return b
}

// WithEventSink describes the witheventsink operation and its observable behavior.
//
// WithEventSink may return an error when input validation, dependency calls, or security checks fail.
// WithEventSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.sink = sink
	return b
}

// WithEventsEnabled describes the witheventsenabled operation and its observable behavior.
//
// WithEventsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithEventsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithEventsEnabled(enabled bool) *Builder {
	b.config.Events.Enabled = enabled
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.auth == nil {
		return nil, errors.New("auth transport required")
	}

	users := b.users
	if users == nil {
		users = userstore.New()
	}

	var dispatcher *internalevents.Dispatcher
	if cfg.Events.Enabled {
		sink := b.sink
		if sink == nil {
			sink = NoOpSink{}
		}
		dispatcher = internalevents.New(internalevents.Config{
			Enabled:    true,
			BufferSize: cfg.Events.BufferSize,
			DropIfFull: cfg.Events.DropIfFull,
		}, sink)
	}

	manager := &Manager{
		config:    cfg,
		auth:      b.auth,
		passwords: b.passwords,
		accounts:  b.accounts,
		creds:     b.creds,
		users:     users,
		events:    dispatcher,
		metrics:   NewMetrics(cfg.Metrics),
		now:       time.Now,
	}

	b.built = true
	return manager, nil
}
