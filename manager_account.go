package sessionkit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap/sessionkit/validate"
)

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A transport outcome carrying a user auto-authenticates the fresh account; a
// nil outcome means the account exists but requires an explicit login, for
// example behind a verification email.
func (m *Manager) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	if m == nil || m.accounts == nil {
		return nil, ErrManagerNotReady
	}

	if v := validate.Register(req); len(v) > 0 {
		return nil, v
	}

	requestID := uuid.NewString()

	m.mu.Lock()
	if m.rec.phase == PhaseAuthenticated {
		m.mu.Unlock()
		return nil, ErrAlreadyAuthenticated
	}
	if m.rec.login.loading {
		m.mu.Unlock()
		m.metricInc(MetricFlowBusyRejected)
		return nil, ErrFlowBusy
	}
	m.rec.login = requestState{loading: true, requestID: requestID}
	m.mu.Unlock()

	callCtx, cancel := m.callContext(ctx)
	outcome, err := m.accounts.Register(callCtx, req)
	cancel()

	m.mu.Lock()

	if m.rec.login.requestID != requestID {
		m.mu.Unlock()
		m.metricInc(MetricStaleResponseDiscarded)
		return nil, ErrStaleResponse
	}
	m.rec.login.loading = false

	if err != nil {
		m.rec.login.errorMessage = "registration failed"
		m.mu.Unlock()
		m.metricInc(MetricRegisterFailure)
		m.emit(ctx, eventRegister, false, "", err, nil)
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	if outcome == nil || outcome.User == nil {
		// Account created, login deferred.
		m.mu.Unlock()
		m.metricInc(MetricRegisterSuccess)
		m.emit(ctx, eventRegister, true, "", nil, nil)
		return &LoginResult{}, nil
	}

	if applyErr := m.applyAuthenticatedLocked(outcome); applyErr != nil {
		m.rec.login.errorMessage = "registration failed"
		m.mu.Unlock()
		m.metricInc(MetricRegisterFailure)
		m.emit(ctx, eventRegister, false, "", applyErr, nil)
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, applyErr)
	}
	gen := m.rec.gen
	m.mu.Unlock()

	m.persistTokenFor(gen, false, outcome.Token)
	m.metricInc(MetricRegisterSuccess)
	m.emit(ctx, eventRegister, true, outcome.User.ID, nil, nil)
	return &LoginResult{User: outcome.User}, nil
}
