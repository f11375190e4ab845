// Package config assembles the sortedlist command's configuration from a
// YAML file, SORTEDLIST_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/amp-labs/amp-sortedlist/envutil"
	"github.com/amp-labs/amp-sortedlist/should"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownOrder  = errors.New("unknown order")
	ErrUnknownDigest = errors.New("unknown digest")
)

// Digest algorithms the command can fingerprint its output with. An empty
// Config.Digest disables the fingerprint.
const (
	DigestXXH3  = "xxh3"
	DigestXXH64 = "xxh64"
)

// OrderKind names a family of orderings the command can sort by.
type OrderKind string

const (
	OrderLexical OrderKind = "lexical"
	OrderNatural OrderKind = "natural"
	OrderNumeric OrderKind = "numeric"
	OrderCollate OrderKind = "collate"
)

// Order is a parsed ordering. Language is only meaningful for OrderCollate.
type Order struct {
	Kind     OrderKind
	Language language.Tag
}

// ParseOrder parses "lexical", "natural", "numeric" or "collate:<BCP 47 tag>".
func ParseOrder(value string) (Order, error) {
	kind, tag, hasTag := strings.Cut(strings.TrimSpace(value), ":")

	switch OrderKind(strings.ToLower(kind)) {
	case OrderLexical, OrderNatural, OrderNumeric:
		if hasTag {
			return Order{}, fmt.Errorf("%w: %q takes no language", ErrUnknownOrder, value)
		}

		return Order{Kind: OrderKind(strings.ToLower(kind))}, nil
	case OrderCollate:
		lang, err := language.Parse(tag)
		if err != nil {
			return Order{}, fmt.Errorf("%w: %q: %w", ErrUnknownOrder, value, err)
		}

		return Order{Kind: OrderCollate, Language: lang}, nil
	default:
		return Order{}, fmt.Errorf("%w: %q", ErrUnknownOrder, value)
	}
}

// Config is the sortedlist command's configuration.
type Config struct {
	Input       string        `yaml:"input"`
	Output      string        `yaml:"output"`
	Order       string        `yaml:"order"`
	Reverse     bool          `yaml:"reverse"`
	Workers     int           `yaml:"workers"`
	Digest      string        `yaml:"digest"`
	Interactive bool          `yaml:"interactive"`
	ListName    string        `yaml:"list_name"`
	Timeout     time.Duration `yaml:"timeout"`
	MetricsFile string        `yaml:"metrics_file"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Input:    "-",
		Output:   "-",
		Order:    string(OrderLexical),
		Workers:  runtime.GOMAXPROCS(0),
		ListName: "sortedlist",
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path skips the file. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path) //nolint:gosec
	if err != nil {
		return cfg, err
	}
	defer should.Close(file, "closing config file")

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from SORTEDLIST_* environment variables. Every
// malformed variable is reported, not just the first.
func (c *Config) ApplyEnv() error {
	var errs []error

	override(&errs, envutil.String("SORTEDLIST_INPUT"), &c.Input)
	override(&errs, envutil.String("SORTEDLIST_OUTPUT"), &c.Output)
	override(&errs, envutil.String("SORTEDLIST_ORDER"), &c.Order)
	override(&errs, envutil.Bool("SORTEDLIST_REVERSE"), &c.Reverse)
	override(&errs, envutil.Int[int]("SORTEDLIST_WORKERS"), &c.Workers)
	override(&errs, envutil.String("SORTEDLIST_DIGEST"), &c.Digest)
	override(&errs, envutil.String("SORTEDLIST_LIST_NAME"), &c.ListName)
	override(&errs, envutil.Duration("SORTEDLIST_TIMEOUT"), &c.Timeout)
	override(&errs, envutil.String("SORTEDLIST_METRICS_FILE"), &c.MetricsFile)

	return errors.Join(errs...)
}

func override[T any](errs *[]error, rdr envutil.Reader[T], dst *T) {
	val, err := rdr.Value()

	switch {
	case err == nil:
		*dst = val
	case errors.Is(err, envutil.ErrEnvVarMissing):
	default:
		*errs = append(*errs, err)
	}
}

// Validate checks the configuration and returns the parsed order.
// All problems are reported together.
func (c *Config) Validate() (Order, error) {
	var errs []error

	order, err := ParseOrder(c.Order)
	if err != nil {
		errs = append(errs, err)
	}

	switch c.Digest {
	case "", DigestXXH3, DigestXXH64:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownDigest, c.Digest))
	}

	if c.Input == "" {
		errs = append(errs, fmt.Errorf("%w: input is required", ErrInvalidConfig))
	}

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers))
	}

	if c.ListName == "" {
		errs = append(errs, fmt.Errorf("%w: list_name is required", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig))
	}

	return order, errors.Join(errs...)
}
