// Package envutil reads typed configuration values from environment
// variables.
//
// Example:
//
//	workers := envutil.Int[int]("SORTEDLIST_WORKERS",
//	    envutil.Default(4),
//	    envutil.Validate(positive)).ValueOrFatal()
package envutil

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Intish is the set of signed integer types Int can produce.
type Intish interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

func get(key string) Reader[string] {
	val, ok := os.LookupEnv(key)

	return Reader[string]{
		key:     key,
		present: ok,
		value:   val,
	}
}

func apply[T any](rdr Reader[T], opts []Option[T]) Reader[T] {
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// String reads a string variable.
func String(key string, opts ...Option[string]) Reader[string] {
	return apply(get(key), opts)
}

// Bool reads a boolean variable using strconv.ParseBool.
func Bool(key string, opts ...Option[bool]) Reader[bool] {
	return apply(Map(get(key), strconv.ParseBool), opts)
}

// Int reads a signed integer variable, rejecting values that overflow I.
func Int[I Intish](key string, opts ...Option[I]) Reader[I] {
	rdr := Map(get(key), func(s string) (I, error) {
		val, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, err
		}

		if int64(I(val)) != val {
			return 0, fmt.Errorf("%w: %d", strconv.ErrRange, val)
		}

		return I(val), nil
	})

	return apply(rdr, opts)
}

// Duration reads a variable with time.ParseDuration.
func Duration(key string, opts ...Option[time.Duration]) Reader[time.Duration] {
	return apply(Map(get(key), time.ParseDuration), opts)
}

// SlogLevel reads a log level such as "debug", "INFO" or "warn+2".
func SlogLevel(key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	rdr := Map(get(key), func(s string) (slog.Level, error) {
		var level slog.Level

		err := level.UnmarshalText([]byte(strings.TrimSpace(s)))

		return level, err
	})

	return apply(rdr, opts)
}
