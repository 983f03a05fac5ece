// Package validate holds the credential validation rules and form schemas used
// by the session core and by form rendering. A schema is a plain function
// value: it takes a form input struct and returns every field-level violation
// at once, so a single submission surfaces all unmet rules.
//
// Per-field rules short-circuit within their own field (an empty email reports
// only "required", not a shape error on the empty string). Cross-field checks
// (password confirmation, terms acceptance) run only after every per-field rule
// has passed. The strong-password rule is the exception to short-circuiting:
// each character-class requirement is evaluated independently so the caller can
// render all missing classes together.
package validate
