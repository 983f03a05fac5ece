package validate

// LoginInput is the raw login form. It is held verbatim by the session core
// while a second factor is pending, so a retry never re-asks for the password.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// RegisterInput is the raw registration form.
type RegisterInput struct {
	FirstName       string
	LastName        string
	UserName        string
	Email           string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
	AcceptPrivacy   bool
}

// ForgotPasswordInput is the raw forgot-password form.
type ForgotPasswordInput struct {
	Email string
}

// ResetPasswordInput is the raw reset-password form. Token is the opaque
// challenge delivered out of band.
type ResetPasswordInput struct {
	Token           string
	Password        string
	ConfirmPassword string
}

// ChangePasswordInput is the raw change-password form.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// PhoneVerificationInput is the raw phone-verification form.
type PhoneVerificationInput struct {
	PhoneNumber string
	Code        string
}

func emailField[T any](get func(T) string) Validator[T] {
	return Field("email", get, Required("email is required"), EmailShaped())
}

// loginPasswordRules are intentionally weaker than the strong-password rules:
// login must accept passwords created under older policies.
func loginPasswordField[T any](name string, get func(T) string) Validator[T] {
	return Field(name, get,
		Required("password is required"),
		MinLen(6),
		MaxLen(128),
	)
}

func strongPasswordField[T any](name string, get func(T) string) Validator[T] {
	return EachField(name, get,
		MinLen(8),
		MaxLen(128),
		HasUpper(),
		HasLower(),
		HasDigit(),
		HasSymbol(),
	)
}

func confirmMatches[T any](field string, password, confirm func(T) string) Validator[T] {
	return func(input T) Violations {
		if password(input) != confirm(input) {
			return Violations{{Field: field, Message: "passwords do not match"}}
		}
		return nil
	}
}

// Login validates the login form.
var Login = All(
	emailField(func(f LoginInput) string { return f.Email }),
	loginPasswordField("password", func(f LoginInput) string { return f.Password }),
)

// Register validates the registration form. Cross-field checks run only once
// every per-field rule has passed.
var Register = Refine(
	All(
		Field("firstName", func(f RegisterInput) string { return f.FirstName }, Required("first name is required"), MaxLen(64)),
		Field("lastName", func(f RegisterInput) string { return f.LastName }, Required("last name is required"), MaxLen(64)),
		Field("userName", func(f RegisterInput) string { return f.UserName }, Required("user name is required"), MaxLen(32)),
		emailField(func(f RegisterInput) string { return f.Email }),
		strongPasswordField("password", func(f RegisterInput) string { return f.Password }),
	),
	confirmMatches("confirmPassword",
		func(f RegisterInput) string { return f.Password },
		func(f RegisterInput) string { return f.ConfirmPassword },
	),
	Checked("acceptTerms", func(f RegisterInput) bool { return f.AcceptTerms }, "the terms of service must be accepted"),
	Checked("acceptPrivacy", func(f RegisterInput) bool { return f.AcceptPrivacy }, "the privacy policy must be accepted"),
)

// ForgotPassword validates the forgot-password form.
var ForgotPassword = All(
	emailField(func(f ForgotPasswordInput) string { return f.Email }),
)

// ResetPassword validates the reset-password form.
var ResetPassword = Refine(
	All(
		Field("token", func(f ResetPasswordInput) string { return f.Token }, Required("reset token is required")),
		strongPasswordField("password", func(f ResetPasswordInput) string { return f.Password }),
	),
	confirmMatches("confirmPassword",
		func(f ResetPasswordInput) string { return f.Password },
		func(f ResetPasswordInput) string { return f.ConfirmPassword },
	),
)

// ChangePassword validates the change-password form. The new password must
// differ from the current one; that violation attaches to the new-password
// field.
var ChangePassword = Refine(
	All(
		Field("currentPassword", func(f ChangePasswordInput) string { return f.CurrentPassword }, Required("current password is required")),
		strongPasswordField("newPassword", func(f ChangePasswordInput) string { return f.NewPassword }),
	),
	confirmMatches("confirmPassword",
		func(f ChangePasswordInput) string { return f.NewPassword },
		func(f ChangePasswordInput) string { return f.ConfirmPassword },
	),
	func(f ChangePasswordInput) Violations {
		if f.NewPassword == f.CurrentPassword {
			return Violations{{Field: "newPassword", Message: "new password must differ from the current password"}}
		}
		return nil
	},
)

// TwoFactorCode validates a submitted second-factor code before any network
// call is attempted.
var TwoFactorCode = Field("code", func(code string) string { return code }, SixDigitCode())

// PhoneVerification validates the phone-verification form.
var PhoneVerification = All(
	Field("phoneNumber", func(f PhoneVerificationInput) string { return f.PhoneNumber }, Required("phone number is required"), PhoneShaped()),
	Field("code", func(f PhoneVerificationInput) string { return f.Code }, SixDigitCode()),
)
