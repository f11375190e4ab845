package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strconv"

	"github.com/OneOfOne/xxhash"
	"github.com/amp-labs/amp-sortedlist/compare"
	"github.com/amp-labs/amp-sortedlist/internal/config"
	"github.com/amp-labs/amp-sortedlist/internal/input"
	"github.com/amp-labs/amp-sortedlist/internal/loader"
	"github.com/amp-labs/amp-sortedlist/internal/prompt"
	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/amp-labs/amp-sortedlist/sortedlist"
	"github.com/amp-labs/amp-sortedlist/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	errNotNumber = errors.New("not an integer")
	errAborted   = errors.New("aborted")
)

type summary struct {
	loader.Stats

	Distinct int
	Digest   uint64
}

// execute reads, sorts and writes according to cfg.
func execute(ctx context.Context, cfg config.Config, order config.Order, stdout, stderr io.Writer) (err error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	ctx, span := telemetry.Tracer().Start(ctx, "sortedlist.run", trace.WithAttributes(
		attribute.String("sortedlist.input", cfg.Input),
		attribute.String("sortedlist.order", cfg.Order),
		attribute.Bool("sortedlist.reverse", cfg.Reverse),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
	}()

	ctx = logger.With(ctx, "list", cfg.ListName, "order", cfg.Order)

	lines, err := readInput(ctx, cfg.Input)
	if err != nil {
		return err
	}

	out, err := openOutput(cfg, stdout)
	if err != nil {
		return err
	}

	var result summary

	if order.Kind == config.OrderNumeric {
		numbers, parseErr := parseNumbers(lines)
		if parseErr != nil {
			return errors.Join(parseErr, out.Close())
		}

		result, err = sortInto(ctx, cfg, numbers, numericOrder(cfg.Reverse), formatInt, out)
	} else {
		result, err = sortInto(ctx, cfg, lines, stringOrder(order, cfg.Reverse), identity, out)
	}

	if err = errors.Join(err, out.Close()); err != nil {
		return err
	}

	span.SetAttributes(
		attribute.Int("sortedlist.values", result.Values),
		attribute.Int("sortedlist.distinct", result.Distinct),
	)

	if cfg.Digest != "" {
		_, _ = fmt.Fprintf(stderr, "%s:%016x\n", cfg.Digest, result.Digest)
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, prometheus.DefaultGatherer); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	logger.Get(ctx).Info("sorted input",
		"values", result.Values,
		"distinct", result.Distinct,
		"shards", result.Shards,
		"elapsed", result.Elapsed)

	return nil
}

// sortInto loads values into a fresh list and writes it to out, one value
// per line.
func sortInto[T any](
	ctx context.Context,
	cfg config.Config,
	values []T,
	cmp compare.Func[T],
	format func(T) string,
	out io.Writer,
) (summary, error) {
	list, err := sortedlist.New(
		sortedlist.WithName[T](cfg.ListName),
		sortedlist.WithLogger[T](logger.Get(ctx)),
	)
	if err != nil {
		return summary{}, err
	}
	defer list.Destroy()

	stats, err := loader.Load(ctx, list, values, cmp, cfg.Workers)
	if err != nil {
		return summary{}, err
	}

	hasher := newDigest(cfg.Digest)
	writer := bufio.NewWriter(io.MultiWriter(out, hasher))

	var value T

	cursor := list.Cursor()
	for cursor.Next(&value) {
		_, _ = writer.WriteString(format(value))
		_ = writer.WriteByte('\n')
	}

	if err := writer.Flush(); err != nil {
		return summary{}, err
	}

	return summary{Stats: stats, Distinct: list.Len(), Digest: hasher.Sum64()}, nil
}

// newDigest returns the hash the output is fingerprinted with. xxh3 is
// used when no digest was asked for, its result is simply not printed.
func newDigest(name string) hash.Hash64 {
	if name == config.DigestXXH64 {
		return xxhash.New64()
	}

	return xxh3.New()
}

func readInput(ctx context.Context, location string) ([]string, error) {
	reader, err := input.OpenContext(ctx, location)
	if err != nil {
		return nil, err
	}

	lines, err := input.ReadLines(reader)

	return lines, errors.Join(err, reader.Close())
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func openOutput(cfg config.Config, stdout io.Writer) (io.WriteCloser, error) {
	if cfg.Output == "" || cfg.Output == input.Stdin {
		return nopWriteCloser{stdout}, nil
	}

	if cfg.Interactive {
		if _, err := os.Stat(cfg.Output); err == nil {
			ok, err := prompt.Confirm("Overwrite " + cfg.Output)
			if err != nil {
				return nil, err
			}

			if !ok {
				return nil, errAborted
			}
		}
	}

	return os.Create(cfg.Output)
}

func parseNumbers(lines []string) ([]int64, error) {
	numbers := make([]int64, len(lines))

	for i, line := range lines {
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d: %q", errNotNumber, i+1, line)
		}

		numbers[i] = n
	}

	return numbers, nil
}

func formatInt(n int64) string { return strconv.FormatInt(n, 10) }

func identity(s string) string { return s }

func numericOrder(reverse bool) compare.Func[int64] {
	cmp := compare.Ordered[int64]()
	if reverse {
		return compare.Reverse(cmp)
	}

	return cmp
}

func stringOrder(order config.Order, reverse bool) compare.Func[string] {
	var cmp compare.Func[string]

	switch order.Kind {
	case config.OrderNatural:
		cmp = compare.Natural
	case config.OrderCollate:
		cmp = compare.Collated(order.Language)
	default:
		cmp = compare.Ordered[string]()
	}

	if reverse {
		return compare.Reverse(cmp)
	}

	return cmp
}
