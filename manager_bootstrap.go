package sessionkit

import (
	"context"
	"log"

	"github.com/skillswap/sessionkit/credstore"
	"github.com/skillswap/sessionkit/token"
)

// HasStoredToken describes the hasstoredtoken operation and its observable behavior.
//
// HasStoredToken may return an error when input validation, dependency calls, or security checks fail.
// HasStoredToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// It is a pure storage probe: no decoding, no network, no state change.
func (m *Manager) HasStoredToken() bool {
	if m == nil || m.creds == nil {
		return false
	}
	return credstore.HasStoredToken(m.creds)
}

// Bootstrap describes the bootstrap operation and its observable behavior.
//
// Bootstrap may return an error when input validation, dependency calls, or security checks fail.
// Bootstrap does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Bootstrap is the application-start sequence: probe stored tokens, discard a
// token that is decodably expired, optionally mark the session optimistically
// authenticated, then confirm with the server. A cold start with no token
// returns nil without touching the network.
func (m *Manager) Bootstrap(ctx context.Context) error {
	if m == nil || m.auth == nil {
		return ErrManagerNotReady
	}

	raw, slot, ok := m.readStoredToken()
	if !ok {
		return nil
	}
	m.metricInc(MetricBootstrapTokenPresent)

	if m.config.Bootstrap.SkipWhenTokenExpired {
		if info, err := token.Inspect(raw); err == nil && info.Expired(m.now()) {
			m.deleteSlot(slot)
			return nil
		}
	}

	if m.config.Bootstrap.OptimisticFromStoredToken {
		m.mu.Lock()
		if m.rec.phase == PhaseAnonymous {
			m.rec.optimistic = true
		}
		m.mu.Unlock()
		m.emit(ctx, eventBootstrapOptimistic, true, "", nil, nil)
	}

	return m.reauthenticate(ctx, raw, slot, false)
}

// SilentReauthenticate describes the silentreauthenticate operation and its observable behavior.
//
// SilentReauthenticate may return an error when input validation, dependency calls, or security checks fail.
// SilentReauthenticate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A failed revalidation of a previously confirmed session returns
// [ErrSessionExpired]; a failed first-load attempt degrades to anonymous
// silently.
func (m *Manager) SilentReauthenticate(ctx context.Context) error {
	if m == nil || m.auth == nil {
		return ErrManagerNotReady
	}

	m.mu.Lock()
	hadSession := m.rec.phase == PhaseAuthenticated
	m.mu.Unlock()

	raw, slot, ok := m.readStoredToken()
	if !ok {
		if !hadSession {
			m.mu.Lock()
			m.rec.optimistic = false
			m.mu.Unlock()
			return nil
		}
		m.mu.Lock()
		m.resetRecordLocked()
		m.mu.Unlock()
		return ErrSessionExpired
	}

	return m.reauthenticate(ctx, raw, slot, hadSession)
}

// EnsureFresh describes the ensurefresh operation and its observable behavior.
//
// EnsureFresh may return an error when input validation, dependency calls, or security checks fail.
// EnsureFresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// It revalidates the authenticated session only when the last confirmation is
// older than Config.Bootstrap.RevalidateAfter; otherwise it is a no-op.
func (m *Manager) EnsureFresh(ctx context.Context) error {
	if m == nil || m.auth == nil {
		return ErrManagerNotReady
	}

	interval := m.config.Bootstrap.RevalidateAfter
	if interval <= 0 {
		return nil
	}

	m.mu.Lock()
	stale := m.rec.phase == PhaseAuthenticated && m.now().Sub(m.rec.lastAuthCheck) >= interval
	m.mu.Unlock()

	if !stale {
		return nil
	}
	return m.SilentReauthenticate(ctx)
}

// reauthenticate exchanges the stored token for a fresh session. hadSession
// escalates a failure from silent degradation to [ErrSessionExpired].
func (m *Manager) reauthenticate(ctx context.Context, raw, slot string, hadSession bool) error {
	m.mu.Lock()
	gen := m.rec.gen
	m.mu.Unlock()

	callCtx, cancel := m.callContext(ctx)
	outcome, err := m.auth.Reauthenticate(callCtx, raw)
	cancel()

	failed := err != nil || outcome == nil || outcome.User == nil

	m.mu.Lock()
	// A login or logout completed while we were on the wire; its result
	// outranks ours.
	if m.rec.gen != gen {
		m.mu.Unlock()
		m.metricInc(MetricStaleResponseDiscarded)
		return ErrStaleResponse
	}
	if !failed {
		if applyErr := m.applyAuthenticatedLocked(outcome); applyErr != nil {
			failed = true
			err = applyErr
		}
	}
	if failed {
		m.resetRecordLocked()
	}
	m.mu.Unlock()

	if failed {
		m.clearStoredTokens()
		m.metricInc(MetricReauthFailure)
		m.emit(ctx, eventReauthFailure, false, "", err, nil)
		if hadSession {
			return ErrSessionExpired
		}
		return nil
	}

	if outcome.Token != "" && outcome.Token != raw {
		// Token rotation: the refreshed token replaces the stored one in
		// the same slot, preserving the remember-me choice.
		m.persistToken(slot, outcome.Token)
	}
	m.metricInc(MetricReauthSuccess)
	m.emit(ctx, eventReauthSuccess, true, outcome.User.ID, nil, nil)
	return nil
}

func (m *Manager) readStoredToken() (raw, slot string, ok bool) {
	if m.creds == nil {
		return "", "", false
	}
	return credstore.ReadStoredToken(m.creds)
}

func (m *Manager) deleteSlot(slot string) {
	if m.creds == nil {
		return
	}

	defer func() {
		if recover() != nil {
			log.Print("sessionkit: credential store panicked on delete")
		}
	}()

	m.creds.TryDelete(slot)
}
