package sessionkit

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/skillswap/sessionkit/credstore"
	internalevents "github.com/skillswap/sessionkit/internal/events"
	"github.com/skillswap/sessionkit/permission"
	"github.com/skillswap/sessionkit/userstore"
)

const (
	eventLoginSuccess              = "login.success"
	eventLoginFailure              = "login.failure"
	eventLoginSecondFactorRequired = "login.second_factor_required"
	eventSecondFactorSuccess       = "second_factor.success"
	eventSecondFactorFailure       = "second_factor.failure"
	eventLogout                    = "session.logout"
	eventBootstrapOptimistic       = "bootstrap.optimistic"
	eventReauthSuccess             = "reauth.success"
	eventReauthFailure             = "reauth.failure"
	eventForgotPassword            = "password.forgot"
	eventResetPassword             = "password.reset"
	eventChangePassword            = "password.change"
	eventRegister                  = "account.register"
)

// Manager defines a public type used by sessionkit APIs.
//
// Manager instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// One Manager is the single authoritative session record of an application
// instance; collaborators receive it by reference, never through an ambient
// global.
type Manager struct {
	config    Config
	auth      AuthTransport
	passwords PasswordTransport
	accounts  AccountTransport
	creds     credstore.Store
	users     *userstore.Store
	events    *internalevents.Dispatcher
	metrics   *Metrics

	// now is replaceable in tests.
	now func() time.Time

	mu  sync.Mutex
	rec record
}

// pendingLogin holds the originally submitted credentials while a second
// factor is required. Its presence is what makes the awaiting phase legal; it
// is cleared on every other transition.
type pendingLogin struct {
	creds       Credentials
	challengeID string
}

// requestState tracks the primary login/register request: loading flag,
// surfaced error, and the request id backing the stale-result guard.
type requestState struct {
	loading      bool
	errorMessage string
	requestID    string
}

// flowState is one password sub-flow. gen increases on every start and on
// every session reset, so a result arriving for an older generation is
// discarded instead of applied.
type flowState struct {
	loading      bool
	succeeded    bool
	errorMessage string
	gen          uint64
}

// record is the session state machine. Only the transition helpers below
// mutate it, each under the manager lock, so the documented invariants are
// construction guarantees rather than conventions:
//
//   - phase == PhaseAuthenticated    ⇒ userID set and present in the store.
//   - phase == PhaseAwaitingSecondFactor ⇒ pending != nil, not authenticated.
//   - phase == PhaseAnonymous        ⇒ neither.
type record struct {
	phase         Phase
	userID        string
	optimistic    bool
	pending       *pendingLogin
	lastAuthCheck time.Time

	// gen is the session generation: bumped on every phase transition so
	// suspended transport calls can detect that the world moved on.
	gen uint64

	login  requestState
	forgot flowState
	reset  flowState
	change flowState
}

type flowKind uint8

const (
	flowForgot flowKind = iota
	flowReset
	flowChange
)

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	if m.events != nil {
		m.events.Close()
	}
}

// EventsDropped describes the eventsdropped operation and its observable behavior.
//
// EventsDropped may return an error when input validation, dependency calls, or security checks fail.
// EventsDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) EventsDropped() uint64 {
	if m == nil || m.events == nil {
		return 0
	}
	return m.events.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	if m == nil || m.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return m.metrics.Snapshot()
}

// Users returns the shared normalized user store.
func (m *Manager) Users() *userstore.Store {
	if m == nil {
		return nil
	}
	return m.users
}

// Snapshot returns the read-only projection of the current session record.
func (m *Manager) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}

	m.mu.Lock()
	rec := m.rec
	m.mu.Unlock()

	snap := Snapshot{
		Phase:          rec.phase,
		Authenticated:  rec.phase == PhaseAuthenticated || rec.optimistic,
		Confirmed:      rec.phase == PhaseAuthenticated,
		LastAuthCheck:  rec.lastAuthCheck,
		LoginLoading:   rec.login.loading,
		LoginError:     rec.login.errorMessage,
		ForgotPassword: exportFlow(rec.forgot),
		ResetPassword:  exportFlow(rec.reset),
		ChangePassword: exportFlow(rec.change),
	}

	if rec.phase == PhaseAuthenticated {
		if u, ok := m.users.Get(rec.userID); ok {
			snap.CurrentUser = &u
		}
	}
	return snap
}

func exportFlow(st flowState) PasswordFlowState {
	return PasswordFlowState{
		Loading:      st.loading,
		Succeeded:    st.succeeded,
		ErrorMessage: st.errorMessage,
	}
}

// HasPermission describes the haspermission operation and its observable behavior.
//
// HasPermission may return an error when input validation, dependency calls, or security checks fail.
// HasPermission does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
// It returns false for any session that is not confirmed authenticated,
// regardless of residual role data.
func (m *Manager) HasPermission(p permission.Permission) bool {
	u, ok := m.confirmedUser()
	if !ok {
		return false
	}
	return permission.MaskFor(u.Roles...).Has(p)
}

// HasAnyPermission describes the hasanypermission operation and its observable behavior.
//
// HasAnyPermission may return an error when input validation, dependency calls, or security checks fail.
// HasAnyPermission does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) HasAnyPermission(perms ...permission.Permission) bool {
	u, ok := m.confirmedUser()
	if !ok {
		return false
	}
	return permission.MaskFor(u.Roles...).HasAny(perms...)
}

func (m *Manager) confirmedUser() (User, bool) {
	if m == nil {
		return User{}, false
	}

	m.mu.Lock()
	confirmed := m.rec.phase == PhaseAuthenticated
	userID := m.rec.userID
	m.mu.Unlock()

	if !confirmed || userID == "" {
		return User{}, false
	}
	return m.users.Get(userID)
}

// applyAuthenticatedLocked commits a confirmed login outcome: the user enters
// the store before the phase flips, keeping the authenticated invariant true
// at every observable instant. A record the store rejects (no id) leaves the
// phase untouched and is returned to the caller, which must treat the whole
// outcome as a failed authentication. Callers hold the lock and have verified
// outcome.User != nil.
func (m *Manager) applyAuthenticatedLocked(outcome *LoginOutcome) error {
	if err := m.users.Upsert(*outcome.User); err != nil {
		return err
	}

	m.rec.phase = PhaseAuthenticated
	m.rec.userID = outcome.User.ID
	m.rec.optimistic = false
	m.rec.pending = nil
	m.rec.lastAuthCheck = m.now()
	m.rec.gen++
	m.rec.login.errorMessage = ""
	return nil
}

// resetRecordLocked returns the record to the pristine anonymous shape. Flow
// generations advance past their in-flight values so suspended calls discard
// their results; the user store keeps its unrelated entries.
func (m *Manager) resetRecordLocked() {
	m.rec = record{
		gen:    m.rec.gen + 1,
		forgot: flowState{gen: m.rec.forgot.gen + 1},
		reset:  flowState{gen: m.rec.reset.gen + 1},
		change: flowState{gen: m.rec.change.gen + 1},
	}
}

func (m *Manager) flowRefLocked(kind flowKind) *flowState {
	switch kind {
	case flowForgot:
		return &m.rec.forgot
	case flowReset:
		return &m.rec.reset
	default:
		return &m.rec.change
	}
}

// persistToken writes the session token into the requested slot,
// best-effort. A refusing or broken store never fails the login that
// produced the token.
func (m *Manager) persistToken(slot, value string) {
	if m.creds == nil || !m.config.Tokens.PersistOnLogin || value == "" {
		return
	}

	defer func() {
		if recover() != nil {
			log.Print("sessionkit: credential store panicked on write")
		}
	}()

	if !m.creds.TryWrite(slot, value) {
		log.Print("sessionkit: credential persist failed")
	}
}

// clearStoredTokens removes both token slots, best-effort.
func (m *Manager) clearStoredTokens() {
	if m.creds == nil {
		return
	}

	defer func() {
		if recover() != nil {
			log.Print("sessionkit: credential store panicked on delete")
		}
	}()

	if !m.creds.TryDelete(credstore.SlotPrimary) {
		log.Print("sessionkit: primary token slot clear failed")
	}
	if !m.creds.TryDelete(credstore.SlotFallback) {
		log.Print("sessionkit: fallback token slot clear failed")
	}
}

func (m *Manager) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if m.config.Flows.CallTimeout > 0 {
		return context.WithTimeout(ctx, m.config.Flows.CallTimeout)
	}
	return context.WithCancel(ctx)
}

func (m *Manager) metricInc(id MetricID) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.Inc(id)
}

func (m *Manager) emit(ctx context.Context, eventType string, success bool, userID string, cause error, metadata func() map[string]string) {
	if m == nil || m.events == nil {
		return
	}

	event := Event{
		Timestamp: m.now(),
		EventType: eventType,
		UserID:    userID,
		Success:   success,
	}
	if cause != nil {
		event.Error = cause.Error()
	}
	if metadata != nil {
		event.Metadata = metadata()
	}

	m.events.Emit(ctx, event)
}
