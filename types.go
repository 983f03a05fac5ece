package sessionkit

import (
	"context"
	"io"
	"time"

	internalevents "github.com/skillswap/sessionkit/internal/events"
	"github.com/skillswap/sessionkit/userstore"
	"github.com/skillswap/sessionkit/validate"
)

// User is the identity record owned by the normalized user store. The session
// holds a reference to the current user's id, never a second copy of truth.
type User = userstore.User

// Credentials is the raw login form. While a second factor is pending the
// submitted value is held verbatim so the retry never re-asks for the
// password.
type Credentials = validate.LoginInput

// RegisterRequest is the raw registration form.
type RegisterRequest = validate.RegisterInput

// ResetPasswordRequest is the raw reset-password form.
type ResetPasswordRequest = validate.ResetPasswordInput

// ChangePasswordRequest is the raw change-password form.
type ChangePasswordRequest = validate.ChangePasswordInput

// LoginOutcome is the typed response of the authentication transport: either
// an authenticated user payload, or a signal that a second factor is required
// for the challenge identified by ChallengeID.
type LoginOutcome struct {
	User  *User
	Token string

	SecondFactorRequired bool
	ChallengeID          string
}

// SecondFactorRequest pairs the verified factor with the originally submitted
// login, so the server can complete the challenge without a second password
// prompt.
type SecondFactorRequest struct {
	ChallengeID string
	Credentials Credentials
	Code        string
	TrustDevice bool
}

// AuthTransport is the network boundary for login, second-factor, and silent
// reauthentication calls. Implementations return a typed failure as an error;
// the session core never inspects wire formats.
type AuthTransport interface {
	Login(ctx context.Context, creds Credentials) (*LoginOutcome, error)
	VerifySecondFactor(ctx context.Context, req SecondFactorRequest) (*LoginOutcome, error)
	Reauthenticate(ctx context.Context, storedToken string) (*LoginOutcome, error)
}

// PasswordTransport is the network boundary for the three password sub-flows.
// Success carries no payload beyond the nil error.
type PasswordTransport interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}

// AccountTransport is the network boundary for account creation. A non-nil
// outcome with a user payload auto-authenticates the fresh account.
type AccountTransport interface {
	Register(ctx context.Context, req RegisterRequest) (*LoginOutcome, error)
}

// LoginResult is returned by [Manager.SubmitLogin], [Manager.SubmitSecondFactor],
// and [Manager.Register]. SecondFactorRequired signals the caller to collect a
// code; otherwise User is the authenticated identity.
type LoginResult struct {
	SecondFactorRequired bool
	User                 *User
}

// Phase is the explicit tag of the session state machine.
type Phase uint8

const (
	// PhaseAnonymous is an exported constant or variable used by the session core.
	PhaseAnonymous Phase = iota
	// PhaseAwaitingSecondFactor is an exported constant or variable used by the session core.
	PhaseAwaitingSecondFactor
	// PhaseAuthenticated is an exported constant or variable used by the session core.
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAwaitingSecondFactor:
		return "awaiting_second_factor"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// PasswordFlowState is the observable tri-state of one password sub-flow. At
// most one of Loading and Succeeded is true; a non-empty ErrorMessage implies
// both are false.
type PasswordFlowState struct {
	Loading      bool
	Succeeded    bool
	ErrorMessage string
}

// Snapshot is the read-only projection of the session record handed to UI and
// routing collaborators. Authenticated may be an optimistic bootstrap guess;
// Confirmed is true only after the server has validated the session, and only
// confirmed sessions carry authorization weight.
type Snapshot struct {
	Phase         Phase
	Authenticated bool
	Confirmed     bool
	CurrentUser   *User
	LastAuthCheck time.Time

	LoginLoading bool
	LoginError   string

	ForgotPassword PasswordFlowState
	ResetPassword  PasswordFlowState
	ChangePassword PasswordFlowState
}

// Event is a structured session event emitted on every transition.
type Event = internalevents.Event

// EventSink receives [Event] values from the manager's dispatcher.
type EventSink = internalevents.Sink

// NoOpSink is an [EventSink] that silently discards all events.
type NoOpSink = internalevents.NoOpSink

// ChannelSink is a buffered channel-based [EventSink].
type ChannelSink = internalevents.ChannelSink

// JSONWriterSink is an [EventSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalevents.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalevents.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalevents.NewJSONWriterSink(w)
}
