package sessionkit

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/sessionkit/credstore"
	"github.com/skillswap/sessionkit/validate"
)

// SubmitLogin describes the submitlogin operation and its observable behavior.
//
// SubmitLogin may return an error when input validation, dependency calls, or security checks fail.
// SubmitLogin does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Credentials are validated before any state change or network traffic; a
// [validate.Violations] error means nothing was submitted. A successful call
// either authenticates the session or parks it awaiting a second factor.
func (m *Manager) SubmitLogin(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if m == nil || m.auth == nil {
		return nil, ErrManagerNotReady
	}

	if v := validate.Login(creds); len(v) > 0 {
		m.metricInc(MetricLoginRejectedInvalid)
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
	outcome, err := m.auth.Login(callCtx, creds)
	cancel()

	m.mu.Lock()

	// A logout or competing submission may have advanced the record while
	// the call was in flight; that response no longer has a home.
	if m.rec.login.requestID != requestID {
		m.mu.Unlock()
		m.metricInc(MetricStaleResponseDiscarded)
		return nil, ErrStaleResponse
	}
	m.rec.login.loading = false

	if err == nil && (outcome == nil || (outcome.User == nil && !outcome.SecondFactorRequired)) {
		err = ErrInvalidCredentials
	}
	if err != nil {
		m.rec.login.errorMessage = "invalid email or password"
		m.mu.Unlock()
		m.metricInc(MetricLoginFailure)
		m.emit(ctx, eventLoginFailure, false, "", err, nil)
		return nil, ErrInvalidCredentials
	}

	if outcome.SecondFactorRequired {
		m.rec.phase = PhaseAwaitingSecondFactor
		m.rec.optimistic = false
		m.rec.pending = &pendingLogin{creds: creds, challengeID: outcome.ChallengeID}
		m.rec.gen++
		m.rec.login.errorMessage = ""
		m.mu.Unlock()
		m.metricInc(MetricSecondFactorRequired)
		m.emit(ctx, eventLoginSecondFactorRequired, true, "", nil, nil)
		return &LoginResult{SecondFactorRequired: true}, nil
	}

	// An outcome the user store rejects (no id) is a failed authentication:
	// no phase change, no token, no success event.
	if applyErr := m.applyAuthenticatedLocked(outcome); applyErr != nil {
		m.rec.login.errorMessage = "invalid email or password"
		m.mu.Unlock()
		m.metricInc(MetricLoginFailure)
		m.emit(ctx, eventLoginFailure, false, "", applyErr, nil)
		return nil, ErrInvalidCredentials
	}
	gen := m.rec.gen
	m.mu.Unlock()

	m.persistTokenFor(gen, creds.RememberMe, outcome.Token)
	m.metricInc(MetricLoginSuccess)
	m.emit(ctx, eventLoginSuccess, true, outcome.User.ID, nil, nil)
	return &LoginResult{User: outcome.User}, nil
}

// SubmitSecondFactor describes the submitsecondfactor operation and its observable behavior.
//
// SubmitSecondFactor may return an error when input validation, dependency calls, or security checks fail.
// SubmitSecondFactor does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A wrong code keeps the pending login intact so the user may retry; only
// logout or success leaves the awaiting phase.
func (m *Manager) SubmitSecondFactor(ctx context.Context, code string, trustDevice bool) (*LoginResult, error) {
	if m == nil || m.auth == nil {
		return nil, ErrManagerNotReady
	}

	if v := validate.TwoFactorCode(code); len(v) > 0 {
		return nil, v
	}

	m.mu.Lock()
	if m.rec.phase != PhaseAwaitingSecondFactor || m.rec.pending == nil {
		m.mu.Unlock()
		return nil, ErrNoPendingLogin
	}
	if m.rec.login.loading {
		m.mu.Unlock()
		m.metricInc(MetricFlowBusyRejected)
		return nil, ErrFlowBusy
	}
	requestID := uuid.NewString()
	m.rec.login.loading = true
	m.rec.login.requestID = requestID
	req := SecondFactorRequest{
		ChallengeID: m.rec.pending.challengeID,
		Credentials: m.rec.pending.creds,
		Code:        code,
		TrustDevice: trustDevice,
	}
	m.mu.Unlock()

	callCtx, cancel := m.callContext(ctx)
	outcome, err := m.auth.VerifySecondFactor(callCtx, req)
	cancel()

	m.mu.Lock()

	if m.rec.login.requestID != requestID {
		m.mu.Unlock()
		m.metricInc(MetricStaleResponseDiscarded)
		return nil, ErrStaleResponse
	}
	m.rec.login.loading = false

	if err == nil && (outcome == nil || outcome.User == nil) {
		err = ErrSecondFactorInvalid
	}
	if err == nil {
		err = m.applyAuthenticatedLocked(outcome)
	}
	if err != nil {
		// Pending login survives a bad code or a rejected outcome.
		m.rec.login.errorMessage = "verification code rejected"
		m.mu.Unlock()
		m.metricInc(MetricSecondFactorFailure)
		m.emit(ctx, eventSecondFactorFailure, false, "", err, nil)
		return nil, ErrSecondFactorInvalid
	}
	gen := m.rec.gen
	m.mu.Unlock()

	m.persistTokenFor(gen, req.Credentials.RememberMe, outcome.Token)
	m.metricInc(MetricSecondFactorSuccess)
	m.emit(ctx, eventSecondFactorSuccess, true, outcome.User.ID, nil, nil)
	return &LoginResult{User: outcome.User}, nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Logout is idempotent and local: it never fails and performs no network
// traffic. Stored tokens are cleared best-effort.
func (m *Manager) Logout(ctx context.Context) {
	if m == nil {
		return
	}

	m.mu.Lock()
	userID := m.rec.userID
	hadSession := m.rec.phase != PhaseAnonymous || m.rec.optimistic
	m.resetRecordLocked()
	m.mu.Unlock()

	m.clearStoredTokens()

	if hadSession {
		m.metricInc(MetricLogout)
		m.emit(ctx, eventLogout, true, userID, nil, nil)
	}
}

// persistTokenFor picks the slot by the remember-me choice and writes
// best-effort, without holding the manager lock: a slow backing store must
// not stall snapshot reads or permission checks. The write is discarded when
// the session generation has moved past gen, so a logout racing the persist
// never resurrects a token it just cleared.
func (m *Manager) persistTokenFor(gen uint64, rememberMe bool, token string) {
	slot := credstore.SlotFallback
	if rememberMe {
		slot = credstore.SlotPrimary
	}
	m.mu.Lock()
	current := m.rec.gen == gen
	m.mu.Unlock()
	if !current {
		return
	}
	m.persistToken(slot, token)
}
