package validate

import "testing"

func TestLoginAcceptsLegacyPasswords(t *testing.T) {
	// Login must accept any password of six characters or more, whatever
	// its character classes: older accounts predate the strong policy.
	vs := Login(LoginInput{Email: "ada@example.com", Password: "abcdef"})
	if len(vs) != 0 {
		t.Fatalf("legacy password rejected: %v", vs)
	}
}

func TestLoginReportsEveryFailingField(t *testing.T) {
	vs := Login(LoginInput{Email: "", Password: ""})
	if len(vs.ByField("email")) != 1 || len(vs.ByField("password")) != 1 {
		t.Fatalf("expected one violation per field, got %v", vs)
	}
}

func TestLoginFieldShortCircuits(t *testing.T) {
	// A blank password trips Required only; MinLen must not also fire.
	vs := Login(LoginInput{Email: "ada@example.com", Password: ""})
	if got := vs.ByField("password"); len(got) != 1 || got[0] != "password is required" {
		t.Fatalf("password violations = %v", got)
	}
}

func TestEmailShapes(t *testing.T) {
	bad := []string{"nonsense", "a@b", "a @b.com", "a@b .com", "@b.com", "a@.com "}
	for _, email := range bad {
		if vs := ForgotPassword(ForgotPasswordInput{Email: email}); len(vs) == 0 {
			t.Errorf("accepted %q", email)
		}
	}

	good := []string{"ada@example.com", "a.b+tag@sub.example.co"}
	for _, email := range good {
		if vs := ForgotPassword(ForgotPasswordInput{Email: email}); len(vs) != 0 {
			t.Errorf("rejected %q: %v", email, vs)
		}
	}
}

func TestStrongPasswordReportsEveryUnmetClass(t *testing.T) {
	vs := Register(RegisterInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		UserName:        "ada",
		Email:           "ada@example.com",
		Password:        "abcdefgh",
		ConfirmPassword: "abcdefgh",
		AcceptTerms:     true,
		AcceptPrivacy:   true,
	})

	got := vs.ByField("password")
	if len(got) != 3 {
		t.Fatalf("password violations = %v, want upper+digit+symbol", got)
	}
	want := map[string]bool{
		"must contain an uppercase letter": true,
		"must contain a digit":             true,
		"must contain a symbol":            true,
	}
	for _, msg := range got {
		if !want[msg] {
			t.Errorf("unexpected message %q", msg)
		}
	}
}

func TestRegisterCrossFieldChecksWaitForBasePass(t *testing.T) {
	// With a failing per-field rule the mismatch must stay silent.
	vs := Register(RegisterInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		UserName:        "ada",
		Email:           "ada@example.com",
		Password:        "short",
		ConfirmPassword: "different",
		AcceptTerms:     true,
		AcceptPrivacy:   true,
	})
	if len(vs.ByField("confirmPassword")) != 0 {
		t.Fatalf("mismatch surfaced before base passed: %v", vs)
	}

	vs = Register(RegisterInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		UserName:        "ada",
		Email:           "ada@example.com",
		Password:        "Analyt1c@l",
		ConfirmPassword: "Different1!",
		AcceptTerms:     true,
		AcceptPrivacy:   true,
	})
	if got := vs.ByField("confirmPassword"); len(got) != 1 || got[0] != "passwords do not match" {
		t.Fatalf("confirmPassword violations = %v", got)
	}
}

func TestRegisterRequiresBothConsents(t *testing.T) {
	vs := Register(RegisterInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		UserName:        "ada",
		Email:           "ada@example.com",
		Password:        "Analyt1c@l",
		ConfirmPassword: "Analyt1c@l",
	})
	if len(vs.ByField("acceptTerms")) != 1 || len(vs.ByField("acceptPrivacy")) != 1 {
		t.Fatalf("consent violations = %v", vs)
	}
}

func TestChangePasswordRejectsReusedPassword(t *testing.T) {
	vs := ChangePassword(ChangePasswordInput{
		CurrentPassword: "S4me!same",
		NewPassword:     "S4me!same",
		ConfirmPassword: "S4me!same",
	})
	if len(vs.ByField("newPassword")) != 1 {
		t.Fatalf("expected a reuse violation on newPassword, got %v", vs)
	}
}

func TestTwoFactorCodeShape(t *testing.T) {
	for _, code := range []string{"", "12345", "1234567", "12a456", "12 456"} {
		if vs := TwoFactorCode(code); len(vs) == 0 {
			t.Errorf("accepted %q", code)
		}
	}
	if vs := TwoFactorCode("000000"); len(vs) != 0 {
		t.Fatalf("rejected a valid code: %v", vs)
	}
}

func TestPhoneVerification(t *testing.T) {
	vs := PhoneVerification(PhoneVerificationInput{PhoneNumber: "+4915112345678", Code: "123456"})
	if len(vs) != 0 {
		t.Fatalf("rejected valid input: %v", vs)
	}

	vs = PhoneVerification(PhoneVerificationInput{PhoneNumber: "0123", Code: "123456"})
	if len(vs) == 0 {
		t.Fatal("accepted a malformed phone number")
	}
}

func TestViolationsErrorFormat(t *testing.T) {
	vs := Violations{
		{Field: "email", Message: "is required"},
		{Field: "password", Message: "too short"},
	}
	if got := vs.Error(); got != "email: is required; password: too short" {
		t.Fatalf("Error() = %q", got)
	}
}
