package sessionkit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/skillswap/sessionkit/validate"
)

type mockAccountTransport struct {
	mu sync.Mutex

	outcome *LoginOutcome
	err     error

	registerCalls int
	lastReq       RegisterRequest
}

func (m *mockAccountTransport) Register(ctx context.Context, req RegisterRequest) (*LoginOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registerCalls++
	m.lastReq = req
	return m.outcome, m.err
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		UserName:        "ada",
		Email:           "ada@example.com",
		Password:        "Analyt1c@l",
		ConfirmPassword: "Analyt1c@l",
		AcceptTerms:     true,
		AcceptPrivacy:   true,
	}
}

func newAccountTestManager(t *testing.T, accounts AccountTransport) *Manager {
	t.Helper()

	m, err := New().
		WithAuthTransport(&mockAuthTransport{}).
		WithAccountTransport(accounts).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func TestRegisterAutoAuthenticates(t *testing.T) {
	at := &mockAccountTransport{
		outcome: &LoginOutcome{User: testUser(), Token: "tok-new"},
	}
	m := newAccountTestManager(t, at)

	res, err := m.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if res.User == nil || res.User.ID != "u1" {
		t.Fatalf("unexpected result user: %+v", res.User)
	}
	if snap := m.Snapshot(); snap.Phase != PhaseAuthenticated || !snap.Confirmed {
		t.Fatalf("fresh account not authenticated: %+v", snap)
	}
}

func TestRegisterWithDeferredLogin(t *testing.T) {
	// A nil outcome models an account parked behind email verification.
	at := &mockAccountTransport{}
	m := newAccountTestManager(t, at)

	res, err := m.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if res.User != nil || res.SecondFactorRequired {
		t.Fatalf("unexpected result: %+v", res)
	}
	if snap := m.Snapshot(); snap.Phase != PhaseAnonymous {
		t.Fatalf("deferred registration changed the phase: %+v", snap)
	}
	if got := m.MetricsSnapshot().Counters[MetricRegisterSuccess]; got != 1 {
		t.Fatalf("MetricRegisterSuccess = %d", got)
	}
}

func TestRegisterValidationGrid(t *testing.T) {
	at := &mockAccountTransport{}
	m := newAccountTestManager(t, at)

	req := validRegisterRequest()
	req.Password = "abcdefgh"
	req.ConfirmPassword = "abcdefgh"

	_, err := m.Register(context.Background(), req)
	var violations validate.Violations
	if !errors.As(err, &violations) {
		t.Fatalf("expected violations, got %v", err)
	}
	// All-lowercase reports every failed class, not just the first.
	if got := len(violations.ByField("password")); got != 3 {
		t.Fatalf("password violations = %d, want upper+digit+symbol: %v", got, violations)
	}
	if at.registerCalls != 0 {
		t.Fatalf("transport reached with weak password: %d calls", at.registerCalls)
	}
}

func TestRegisterMismatchedConfirmation(t *testing.T) {
	at := &mockAccountTransport{}
	m := newAccountTestManager(t, at)

	req := validRegisterRequest()
	req.ConfirmPassword = "D1ffer3nt!"

	_, err := m.Register(context.Background(), req)
	var violations validate.Violations
	if !errors.As(err, &violations) {
		t.Fatalf("expected violations, got %v", err)
	}
	if len(violations.ByField("confirmPassword")) != 1 {
		t.Fatalf("expected the mismatch on confirmPassword, got %v", violations)
	}
}

func TestRegisterTransportFailure(t *testing.T) {
	at := &mockAccountTransport{err: errors.New("email taken")}
	m := newAccountTestManager(t, at)

	_, err := m.Register(context.Background(), validRegisterRequest())
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("expected ErrRegistrationFailed, got %v", err)
	}
	if snap := m.Snapshot(); snap.Phase != PhaseAnonymous || snap.LoginError == "" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestRegisterRejectsOutcomeWithoutUserID(t *testing.T) {
	at := &mockAccountTransport{
		outcome: &LoginOutcome{User: &User{Email: "ada@example.com"}, Token: "tok"},
	}
	m := newAccountTestManager(t, at)

	_, err := m.Register(context.Background(), validRegisterRequest())
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("expected ErrRegistrationFailed for an outcome without a user id, got %v", err)
	}
	if snap := m.Snapshot(); snap.Phase != PhaseAnonymous || snap.Authenticated {
		t.Fatalf("session advanced on a rejected outcome: %+v", snap)
	}
	if got := m.MetricsSnapshot().Counters[MetricRegisterFailure]; got != 1 {
		t.Fatalf("MetricRegisterFailure = %d, want 1", got)
	}
}

func TestRegisterRejectedWhileAuthenticated(t *testing.T) {
	auth := &mockAuthTransport{
		loginOutcome: &LoginOutcome{User: testUser(), Token: "tok"},
	}
	at := &mockAccountTransport{}
	m, err := New().
		WithAuthTransport(auth).
		WithAccountTransport(at).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(m.Close)

	if _, err := m.SubmitLogin(context.Background(), testCredentials()); err != nil {
		t.Fatalf("SubmitLogin failed: %v", err)
	}
	if _, err := m.Register(context.Background(), validRegisterRequest()); !errors.Is(err, ErrAlreadyAuthenticated) {
		t.Fatalf("expected ErrAlreadyAuthenticated, got %v", err)
	}
}
