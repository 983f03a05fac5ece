package validate

import "strings"

// Violation is a single field-level rule failure with a user-facing message.
type Violation struct {
	Field   string
	Message string
}

// Violations is the failure value returned by every schema. A nil Violations
// means the input passed. It implements error so callers can return it
// directly from transition methods.
type Violations []Violation

func (v Violations) Error() string {
	if len(v) == 0 {
		return "validation passed"
	}

	var b strings.Builder
	for i, violation := range v {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(violation.Field)
		b.WriteString(": ")
		b.WriteString(violation.Message)
	}
	return b.String()
}

// ByField returns the messages attached to the named field, in rule order.
func (v Violations) ByField(field string) []string {
	var msgs []string
	for _, violation := range v {
		if violation.Field == field {
			msgs = append(msgs, violation.Message)
		}
	}
	return msgs
}

// Validator validates a whole form input and reports zero or more violations.
type Validator[T any] func(T) Violations

// Rule checks a single raw field value. It returns the violation message, or
// "" when the value passes.
type Rule func(value string) string

// All composes validators that each cover one field. Every validator runs;
// results are concatenated so one submission reports every failing field.
func All[T any](validators ...Validator[T]) Validator[T] {
	return func(input T) Violations {
		var out Violations
		for _, v := range validators {
			out = append(out, v(input)...)
		}
		return out
	}
}

// Refine runs cross-field checks only after the base validator passes.
// Violations from the base are returned as-is; checks never see a form whose
// per-field rules failed.
func Refine[T any](base Validator[T], checks ...Validator[T]) Validator[T] {
	return func(input T) Violations {
		if vs := base(input); len(vs) > 0 {
			return vs
		}

		var out Violations
		for _, check := range checks {
			out = append(out, check(input)...)
		}
		return out
	}
}

// Field applies rules to one string field, stopping at the first failure.
func Field[T any](name string, get func(T) string, rules ...Rule) Validator[T] {
	return func(input T) Violations {
		value := get(input)
		for _, rule := range rules {
			if msg := rule(value); msg != "" {
				return Violations{{Field: name, Message: msg}}
			}
		}
		return nil
	}
}

// EachField applies every rule to the field regardless of earlier failures,
// collecting one violation per failing rule. Used where each unmet requirement
// must be surfaced independently (strong passwords).
func EachField[T any](name string, get func(T) string, rules ...Rule) Validator[T] {
	return func(input T) Violations {
		value := get(input)

		var out Violations
		for _, rule := range rules {
			if msg := rule(value); msg != "" {
				out = append(out, Violation{Field: name, Message: msg})
			}
		}
		return out
	}
}

// Checked requires a boolean field to be true.
func Checked[T any](name string, get func(T) bool, message string) Validator[T] {
	return func(input T) Violations {
		if !get(input) {
			return Violations{{Field: name, Message: message}}
		}
		return nil
	}
}
