package sessionkit

import "errors"

var (
	// ErrManagerNotReady is an exported constant or variable used by the session core.
	ErrManagerNotReady = errors.New("manager not initialized")
	// ErrFlowBusy is an exported constant or variable used by the session core.
	ErrFlowBusy = errors.New("flow already in progress")
	// ErrAlreadyAuthenticated is an exported constant or variable used by the session core.
	ErrAlreadyAuthenticated = errors.New("session already authenticated")
	// ErrNoPendingLogin is an exported constant or variable used by the session core.
	ErrNoPendingLogin = errors.New("no login awaiting a second factor")
	// ErrInvalidCredentials is an exported constant or variable used by the session core.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSecondFactorInvalid is an exported constant or variable used by the session core.
	ErrSecondFactorInvalid = errors.New("invalid second factor code")
	// ErrSessionExpired is an exported constant or variable used by the session core.
	ErrSessionExpired = errors.New("session expired")
	// ErrStorageUnavailable is an exported constant or variable used by the session core.
	ErrStorageUnavailable = errors.New("credential storage unavailable")
	// ErrStaleResponse is an exported constant or variable used by the session core.
	ErrStaleResponse = errors.New("response arrived after the flow was abandoned")
	// ErrRegistrationFailed is an exported constant or variable used by the session core.
	ErrRegistrationFailed = errors.New("registration rejected")
)
