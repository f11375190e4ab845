//nolint:ireturn
package envutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

var (
	ErrBadEnvVar     = errors.New("error parsing environment variable")
	ErrEnvVarMissing = errors.New("missing environment variable")
)

// Reader is a value read from an environment variable, together with
// whether it was present and any error hit while parsing it. Readers are
// immutable; the With* methods and Map return new ones.
type Reader[A any] struct {
	key     string
	present bool
	err     error

	value A
}

// NewReader returns a Reader over caller-supplied data rather than the
// process environment. Useful for layering values from other sources.
func NewReader[A any](key string, present bool, err error, value A) Reader[A] {
	return Reader[A]{
		key:     key,
		present: present,
		err:     err,
		value:   value,
	}
}

// Key returns the name of the environment variable.
func (e Reader[A]) Key() string {
	return e.key
}

// Value returns the parsed value, or an error if it is missing or invalid.
func (e Reader[A]) Value() (A, error) {
	if e.err != nil {
		return e.value, fmt.Errorf("%w %s: %w", ErrBadEnvVar, e.key, e.err)
	}

	if !e.present {
		return e.value, fmt.Errorf("%w %s", ErrEnvVarMissing, e.key)
	}

	return e.value, nil
}

// ValueOrFatal returns the value or exits the process if it is missing or
// invalid.
func (e Reader[A]) ValueOrFatal() A {
	value, err := e.Value()
	if err != nil {
		slog.Error("error reading environment variable", "key", e.key, "error", err)
		os.Exit(1)
	}

	return value
}

// ValueOrElse returns the value, or v when it is missing or invalid.
// Invalid values are logged.
func (e Reader[A]) ValueOrElse(v A) A {
	if e.present && e.err == nil {
		return e.value
	}

	if e.err != nil {
		slog.Warn("error reading environment variable, using fallback value",
			"key", e.key, "error", e.err, "fallback", v)
	}

	return v
}

// DoWithValue calls f with the value when it is present and valid.
func (e Reader[A]) DoWithValue(f func(A)) {
	if e.HasValue() {
		f(e.value)
	}
}

// HasValue reports whether the variable was set and parsed cleanly.
func (e Reader[A]) HasValue() bool {
	return e.present && e.err == nil
}

// WithDefault returns a Reader holding v when the variable is not set.
func (e Reader[A]) WithDefault(v A) Reader[A] {
	if e.present {
		return e
	}

	return Reader[A]{
		key:     e.key,
		present: true,
		err:     e.err,
		value:   v,
	}
}

// String renders the reader as KEY=value for diagnostics.
func (e Reader[A]) String() string {
	switch {
	case e.err != nil:
		return fmt.Sprintf("%s=<error: %v>", e.key, e.err)
	case e.present:
		return fmt.Sprintf("%s=%v", e.key, e.value)
	default:
		return e.key + "=<not set>"
	}
}

// Map transforms the value of a present, valid Reader. Missing values and
// earlier errors pass through untouched.
func Map[A any, B any](env Reader[A], f func(A) (B, error)) Reader[B] {
	if !env.present || env.err != nil {
		return Reader[B]{
			key:     env.key,
			present: env.present,
			err:     env.err,
		}
	}

	val, err := f(env.value)

	return Reader[B]{
		key:     env.key,
		present: true,
		err:     err,
		value:   val,
	}
}
