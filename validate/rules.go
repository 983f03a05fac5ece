package validate

import (
	"regexp"
	"strconv"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Optional leading +, 7-15 digits total, first digit non-zero.
	phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{6,14}$`)
	codePattern  = regexp.MustCompile(`^[0-9]{6}$`)
)

// Required rejects the empty string.
func Required(message string) Rule {
	return func(value string) string {
		if value == "" {
			return message
		}
		return ""
	}
}

// EmailShaped requires an RFC-shaped address. Empty values are left to
// Required so the shape message never fires on a blank field.
func EmailShaped() Rule {
	return func(value string) string {
		if value != "" && !emailPattern.MatchString(value) {
			return "must be a valid email address"
		}
		return ""
	}
}

// MinLen requires at least n characters.
func MinLen(n int) Rule {
	return func(value string) string {
		if len(value) < n {
			return "must be at least " + strconv.Itoa(n) + " characters"
		}
		return ""
	}
}

// MaxLen requires at most n characters.
func MaxLen(n int) Rule {
	return func(value string) string {
		if len(value) > n {
			return "must be at most " + strconv.Itoa(n) + " characters"
		}
		return ""
	}
}

// HasUpper requires at least one uppercase letter.
func HasUpper() Rule {
	return classRule(unicode.IsUpper, "must contain an uppercase letter")
}

// HasLower requires at least one lowercase letter.
func HasLower() Rule {
	return classRule(unicode.IsLower, "must contain a lowercase letter")
}

// HasDigit requires at least one digit.
func HasDigit() Rule {
	return classRule(unicode.IsDigit, "must contain a digit")
}

// HasSymbol requires at least one non-alphanumeric character.
func HasSymbol() Rule {
	return classRule(func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}, "must contain a symbol")
}

func classRule(match func(rune) bool, message string) Rule {
	return func(value string) string {
		for _, r := range value {
			if match(r) {
				return ""
			}
		}
		return message
	}
}

// SixDigitCode requires exactly six characters, all digits.
func SixDigitCode() Rule {
	return func(value string) string {
		if !codePattern.MatchString(value) {
			return "must be a 6-digit code"
		}
		return ""
	}
}

// PhoneShaped requires an international-dialing shape.
func PhoneShaped() Rule {
	return func(value string) string {
		if value != "" && !phonePattern.MatchString(value) {
			return "must be a valid phone number"
		}
		return ""
	}
}
