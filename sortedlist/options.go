package sortedlist

import "log/slog"

const defaultName = "default"

// Option configures a List at creation time.
type Option[T any] func(*options[T])

// options holds the creation-time configuration of a List.
type options[T any] struct {
	name    string       // Metrics label and log attribute
	copier  func(T) T    // Deep-copy policy, nil means plain assignment
	logger  *slog.Logger // Logger for lifecycle and failure events
	invalid []string     // Names of options given unusable values
}

// WithName sets the name used as the "list" label on metrics and in logs.
// Lists sharing a name share metric series.
//
// Example:
//
//	list, err := sortedlist.New[string](sortedlist.WithName("hostnames"))
func WithName[T any](name string) Option[T] {
	return func(o *options[T]) {
		if name == "" {
			o.invalid = append(o.invalid, "WithName")

			return
		}

		o.name = name
	}
}

// WithCopy registers a function producing an independent copy of a value.
// It is applied when a value is stored in a node and again when a cursor
// copies a value out, so that element types holding slices, maps or
// pointers never share memory with the caller.
//
// Example:
//
//	list, err := sortedlist.New[[]byte](sortedlist.WithCopy(bytes.Clone))
func WithCopy[T any](copier func(T) T) Option[T] {
	return func(o *options[T]) {
		if copier == nil {
			o.invalid = append(o.invalid, "WithCopy")

			return
		}

		o.copier = copier
	}
}

// WithLogger sets the logger used by the list. Defaults to logger.Get().
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(o *options[T]) {
		if logger == nil {
			o.invalid = append(o.invalid, "WithLogger")

			return
		}

		o.logger = logger
	}
}
