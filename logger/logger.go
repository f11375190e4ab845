// Package logger configures log/slog for the process and hands out loggers
// enriched with values carried in a context.Context.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/amp-labs/amp-sortedlist/envutil"
)

// Default subsystem name, stamped on every log line unless overridden
// through the context.
var subsystem atomic.Value //nolint:gochecknoglobals

// configMutex serializes ConfigureLoggingWithOptions, which swaps global state.
var configMutex sync.Mutex //nolint:gochecknoglobals

type contextKey string

// Options is used to configure logging.
type Options struct {
	Subsystem   string
	JSON        bool
	MinLevel    slog.Level
	LegacyLevel slog.Level
	Output      io.Writer

	// Handlers receive every record in addition to the text/JSON handler
	// writing to Output, e.g. an OpenTelemetry log bridge.
	Handlers []slog.Handler
}

// ConfigureLoggingWithOptions configures logging for the process and returns
// the new default logger. Concurrent calls are serialized.
func ConfigureLoggingWithOptions(opts Options) *slog.Logger {
	configMutex.Lock()
	defer configMutex.Unlock()

	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.MinLevel}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(opts.Output, handlerOpts)
	}

	if len(opts.Handlers) > 0 {
		handler = newFanoutHandler(append([]slog.Handler{handler}, opts.Handlers...)...)
	}

	logger := slog.New(handler)

	slog.SetDefault(logger)

	// Third party packages still using the log package end up in slog too.
	def := log.Default()
	*def = *slog.NewLogLogger(handler, opts.LegacyLevel)

	subsystem.Store(opts.Subsystem)

	return logger
}

// Option is a functional option for ConfigureLogging.
type Option func(*Options)

// WithHandler adds a handler that receives every record.
func WithHandler(handler slog.Handler) Option {
	return func(o *Options) {
		if handler != nil {
			o.Handlers = append(o.Handlers, handler)
		}
	}
}

// WithOutput overrides the destination chosen from LOG_OUTPUT.
func WithOutput(output io.Writer) Option {
	return func(o *Options) {
		o.Output = output
	}
}

// ErrInvalidLogOutput is returned when LOG_OUTPUT names an unknown destination.
var ErrInvalidLogOutput = errors.New("invalid log output")

// ConfigureLogging configures logging from the environment:
//   - LOG_JSON: emit JSON instead of text (default false)
//   - LOG_LEVEL: minimum level (default info)
//   - LEGACY_LOG_LEVEL: level given to log package output (default info)
//   - LOG_OUTPUT: stdout or stderr (default stderr)
func ConfigureLogging(app string, opts ...Option) (*slog.Logger, error) {
	logJSON, err := envutil.Bool("LOG_JSON", envutil.Default(false)).Value()
	if err != nil {
		return nil, err
	}

	minLevel, err := envutil.SlogLevel("LOG_LEVEL", envutil.Default(slog.LevelInfo)).Value()
	if err != nil {
		return nil, err
	}

	legacyLevel, err := envutil.SlogLevel("LEGACY_LOG_LEVEL", envutil.Default(slog.LevelInfo)).Value()
	if err != nil {
		return nil, err
	}

	output, err := envutil.Map(envutil.String("LOG_OUTPUT"), func(outName string) (io.Writer, error) {
		switch outName {
		case "stdout":
			return os.Stdout, nil
		case "stderr":
			return os.Stderr, nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidLogOutput, outName)
		}
	}).WithDefault(os.Stderr).Value()
	if err != nil {
		return nil, err
	}

	options := Options{
		Subsystem:   app,
		JSON:        logJSON,
		MinLevel:    minLevel,
		LegacyLevel: legacyLevel,
		Output:      output,
	}

	for _, o := range opts {
		o(&options)
	}

	return ConfigureLoggingWithOptions(options), nil
}

// WithMuted marks the context so that loggers obtained from it discard
// everything.
func WithMuted(ctx context.Context, muted bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, contextKey("mute"), muted)
}

func isMuted(ctx context.Context) bool {
	muted, ok := ctx.Value(contextKey("mute")).(bool)

	return ok && muted
}

// WithSubsystem overrides the subsystem name for loggers obtained from ctx.
func WithSubsystem(ctx context.Context, subsystem string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, contextKey("subsystem"), subsystem)
}

// GetSubsystem returns the subsystem set on the context, falling back to the
// one given when logging was configured.
func GetSubsystem(ctx context.Context) string { //nolint:contextcheck
	if ctx == nil {
		ctx = context.Background()
	}

	if sub, ok := ctx.Value(contextKey("subsystem")).(string); ok {
		return sub
	}

	if sub, ok := subsystem.Load().(string); ok {
		return sub
	}

	return ""
}

// With returns a context carrying extra key-value pairs which loggers
// obtained from it include automatically.
func With(ctx context.Context, values ...any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	if len(values) == 0 {
		return ctx
	}

	vals := append(getValues(ctx), values...) //nolint:gocritic

	return context.WithValue(ctx, contextKey("loggerValues"), vals)
}

func getValues(ctx context.Context) []any {
	vals, ok := ctx.Value(contextKey("loggerValues")).([]any)
	if !ok {
		return nil
	}

	// Copy so that appends by one caller never leak into a sibling context.
	return append([]any(nil), vals...)
}

// nullHandler discards everything; it backs muted loggers.
type nullHandler struct{}

func (n *nullHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (n *nullHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (n *nullHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return n
}

func (n *nullHandler) WithGroup(_ string) slog.Handler {
	return n
}

var nullLogger = slog.New(&nullHandler{}) //nolint:gochecknoglobals

// Get returns the default logger, tagged with the subsystem and any values
// added with With. Only the first non-nil context is considered.
//
//nolint:contextcheck
func Get(ctx ...context.Context) *slog.Logger {
	realCtx := context.Background()

	for _, c := range ctx {
		if c != nil {
			realCtx = c

			break
		}
	}

	if isMuted(realCtx) {
		return nullLogger
	}

	logger := slog.Default()

	if sub := GetSubsystem(realCtx); sub != "" {
		logger = logger.With("subsystem", sub)
	}

	if vals := getValues(realCtx); len(vals) > 0 {
		logger = logger.With(vals...)
	}

	return logger
}
