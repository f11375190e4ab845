// Command sortedlist reads values, one per line, and writes them back out
// sorted with duplicates removed. The values are loaded concurrently into a
// sortedlist.List and written by walking it with a cursor.
//
// Usage:
//
//	sortedlist [flags] [input]
//
// Input may be "-" for standard input or a file, optionally compressed
// (.gz, .zst, .lz4 or .br). Settings come from -config, then SORTEDLIST_*
// environment variables, then flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amp-labs/amp-sortedlist/build"
	"github.com/amp-labs/amp-sortedlist/internal/config"
	"github.com/amp-labs/amp-sortedlist/internal/prompt"
	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/amp-labs/amp-sortedlist/telemetry"
)

const (
	appName         = "sortedlist"
	shutdownTimeout = 5 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		_, _ = fmt.Fprintln(stderr, err)

		return 2 //nolint:mnd
	}

	if cfg.showVersion {
		_, _ = fmt.Fprintln(stdout, appName, build.Get())

		return 0
	}

	if cfg.Interactive && !cfg.orderSet {
		cfg.Order, err = prompt.SelectOrder()
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)

			return 1
		}
	}

	order, err := cfg.Validate()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)

		return 2 //nolint:mnd
	}

	otelConfig, err := telemetry.LoadConfigFromEnv(appName)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)

		return 2 //nolint:mnd
	}

	otelHandler, err := telemetry.Initialize(ctx, otelConfig)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "telemetry disabled:", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			_, _ = fmt.Fprintln(stderr, "telemetry shutdown:", err)
		}
	}()

	if _, err := logger.ConfigureLogging(appName, logger.WithHandler(otelHandler)); err != nil {
		_, _ = fmt.Fprintln(stderr, err)

		return 2 //nolint:mnd
	}

	if err := execute(ctx, cfg.Config, order, stdout, stderr); err != nil {
		logger.Get(ctx).Error("sortedlist failed", "error", err)

		return 1
	}

	return 0
}

// settings is the resolved configuration plus what the flags said about it.
type settings struct {
	config.Config

	orderSet    bool
	showVersion bool
}

func parseConfig(args []string, stderr io.Writer) (settings, error) {
	flags := flag.NewFlagSet(appName, flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		configPath  = flags.String("config", "", "YAML configuration file")
		input       = flags.String("input", "", "input file, - for stdin")
		output      = flags.String("output", "", "output file, - for stdout")
		order       = flags.String("order", "", "lexical, natural, numeric or collate:<language>")
		reverse     = flags.Bool("reverse", false, "sort in descending order")
		workers     = flags.Int("workers", 0, "loader goroutines")
		digest      = flags.String("digest", "", "print an xxh3 or xxh64 digest of the output to stderr")
		interactive = flags.Bool("interactive", false, "prompt for missing settings")
		listName    = flags.String("name", "", "list name used in logs and metrics")
		timeout     = flags.Duration("timeout", 0, "give up after this long")
		metricsFile = flags.String("metrics-file", "", "write Prometheus metrics to this file on exit")
		showVersion = flags.Bool("version", false, "print the version and exit")
	)

	if err := flags.Parse(args); err != nil {
		return settings{}, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return settings{}, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return settings{}, err
	}

	result := settings{
		Config:      cfg,
		orderSet:    cfg.Order != config.Default().Order,
		showVersion: *showVersion,
	}

	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			result.Input = *input
		case "output":
			result.Output = *output
		case "order":
			result.Order = *order
			result.orderSet = true
		case "reverse":
			result.Reverse = *reverse
		case "workers":
			result.Workers = *workers
		case "digest":
			result.Digest = *digest
		case "interactive":
			result.Interactive = *interactive
		case "name":
			result.ListName = *listName
		case "timeout":
			result.Timeout = *timeout
		case "metrics-file":
			result.MetricsFile = *metricsFile
		}
	})

	if flags.NArg() > 1 {
		return settings{}, fmt.Errorf("%w: expected at most one input, got %d", config.ErrInvalidConfig, flags.NArg())
	}

	if flags.NArg() == 1 {
		result.Input = flags.Arg(0)
	}

	return result, nil
}
