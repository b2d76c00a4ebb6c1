// Package sqlerr carries the classified errors shared by planning and
// unparsing. Every failure is one of four kinds; callers branch on the kind
// through errors.As or the Is helpers and must never parse message text.
package sqlerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	// KindInternal is a bug: an invariant the code itself violated.
	KindInternal Kind = iota
	// KindNotImplemented marks syntax that is recognized but deliberately
	// unsupported.
	KindNotImplemented
	// KindPlan is invalid or inconsistent input syntax.
	KindPlan
	// KindResourcesExhausted marks input that exceeds a resource budget.
	KindResourcesExhausted
)

func (k Kind) prefix() string {
	switch k {
	case KindNotImplemented:
		return "This feature is not implemented: "
	case KindPlan:
		return "Error during planning: "
	case KindResourcesExhausted:
		return "Resources exhausted: "
	default:
		return "Internal error: "
	}
}

// Error is a classified planning or unparsing failure.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string { return e.Kind.prefix() + e.cause.Error() }

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.cause }

func newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, cause: fmt.Errorf(format, args...)}
}

// NotImplementedf reports recognized but unsupported syntax.
func NotImplementedf(format string, args ...interface{}) error {
	return newf(KindNotImplemented, format, args...)
}

// Planf reports invalid input.
func Planf(format string, args ...interface{}) error {
	return newf(KindPlan, format, args...)
}

// ResourcesExhaustedf reports input exceeding a resource budget.
func ResourcesExhaustedf(format string, args ...interface{}) error {
	return newf(KindResourcesExhausted, format, args...)
}

// Internalf reports a violated internal invariant.
func Internalf(format string, args ...interface{}) error {
	return newf(KindInternal, format, args...)
}

// Wrapf annotates err with context, preserving its classification.
func Wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// KindOf extracts the classification of err, unwrapping as needed.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsNotImplemented reports whether err is classified NotImplemented.
func IsNotImplemented(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotImplemented
}

// IsPlan reports whether err is classified as a planning error.
func IsPlan(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindPlan
}

// IsResourcesExhausted reports whether err is classified ResourcesExhausted.
func IsResourcesExhausted(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindResourcesExhausted
}
