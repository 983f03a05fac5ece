package sessionkit

import (
	"context"
	"errors"

	"github.com/skillswap/sessionkit/validate"
)

// ForgotPassword describes the forgotpassword operation and its observable behavior.
//
// ForgotPassword may return an error when input validation, dependency calls, or security checks fail.
// ForgotPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The flow succeeds whenever the server accepts the request; whether the
// address exists is deliberately not observable here.
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	if m == nil || m.passwords == nil {
		return ErrManagerNotReady
	}

	if v := validate.ForgotPassword(validate.ForgotPasswordInput{Email: email}); len(v) > 0 {
		return v
	}

	return m.runFlow(ctx, flowForgot, eventForgotPassword,
		MetricForgotPasswordSuccess, MetricForgotPasswordFailure,
		func(ctx context.Context) error {
			return m.passwords.ForgotPassword(ctx, email)
		})
}

// ResetPassword describes the resetpassword operation and its observable behavior.
//
// ResetPassword may return an error when input validation, dependency calls, or security checks fail.
// ResetPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if m == nil || m.passwords == nil {
		return ErrManagerNotReady
	}

	if v := validate.ResetPassword(req); len(v) > 0 {
		return v
	}

	return m.runFlow(ctx, flowReset, eventResetPassword,
		MetricResetPasswordSuccess, MetricResetPasswordFailure,
		func(ctx context.Context) error {
			return m.passwords.ResetPassword(ctx, req)
		})
}

// ChangePassword describes the changepassword operation and its observable behavior.
//
// ChangePassword may return an error when input validation, dependency calls, or security checks fail.
// ChangePassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if m == nil || m.passwords == nil {
		return ErrManagerNotReady
	}

	if v := validate.ChangePassword(req); len(v) > 0 {
		return v
	}

	return m.runFlow(ctx, flowChange, eventChangePassword,
		MetricChangePasswordSuccess, MetricChangePasswordFailure,
		func(ctx context.Context) error {
			return m.passwords.ChangePassword(ctx, req)
		})
}

// runFlow drives one password sub-flow through its loading/succeeded/error
// lifecycle. Each flow is independently re-entrancy-guarded, and the
// generation captured at start fences out results that resolve after a
// session reset.
func (m *Manager) runFlow(ctx context.Context, kind flowKind, eventType string, okMetric, failMetric MetricID, call func(context.Context) error) error {
	m.mu.Lock()
	st := m.flowRefLocked(kind)
	if st.loading {
		m.mu.Unlock()
		m.metricInc(MetricFlowBusyRejected)
		return ErrFlowBusy
	}
	st.gen++
	gen := st.gen
	*st = flowState{loading: true, gen: gen}
	m.mu.Unlock()

	callCtx, cancel := m.callContext(ctx)
	err := call(callCtx)
	cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	st = m.flowRefLocked(kind)
	if st.gen != gen {
		m.metricInc(MetricStaleResponseDiscarded)
		return ErrStaleResponse
	}
	st.loading = false

	if err != nil {
		st.succeeded = false
		st.errorMessage = flowErrorMessage(err)
		m.metricInc(failMetric)
		m.emit(ctx, eventType, false, m.rec.userID, err, nil)
		return err
	}

	st.succeeded = true
	st.errorMessage = ""
	m.metricInc(okMetric)
	m.emit(ctx, eventType, true, m.rec.userID, nil, nil)
	return nil
}

func flowErrorMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return err.Error()
}
