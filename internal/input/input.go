// Package input opens the text the sortedlist command reads, transparently
// decompressing it and converting it to UTF-8.
package input

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/amp-labs/amp-sortedlist/internal/fetch"
	"github.com/amp-labs/amp-sortedlist/should"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// readCloser closes every layer of a decoding stack, innermost first.
type readCloser struct {
	io.Reader

	closers []func() error
}

func (r *readCloser) Close() error {
	errs := make([]error, 0, len(r.closers))
	for _, c := range r.closers {
		errs = append(errs, c())
	}

	return errors.Join(errs...)
}

// Open opens path for reading ("-" or "" is standard input). The file
// extension picks a decompressor: .gz, .zst/.zstd, .lz4 or .br.
func Open(path string) (io.ReadCloser, error) {
	if path == "" || path == Stdin {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, err
	}

	rc, err := decompress(path, file)
	if err != nil {
		_ = file.Close()

		return nil, err
	}

	return rc, nil
}

// OpenContext is Open that also accepts http and https URLs. The extension
// of the URL path picks a decompressor as it does for files, on top of any
// Content-Encoding the server applied.
func OpenContext(ctx context.Context, location string) (io.ReadCloser, error) {
	if !fetch.IsURL(location) {
		return Open(location)
	}

	parsed, err := url.Parse(location)
	if err != nil {
		return nil, err
	}

	body, err := fetch.Open(ctx, location)
	if err != nil {
		return nil, err
	}

	rc, err := decompress(parsed.Path, body)
	if err != nil {
		should.Close(body, "closing fetched input")

		return nil, err
	}

	return rc, nil
}

func decompress(name string, src io.ReadCloser) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		reader, err := gzip.NewReader(src)
		if err != nil {
			return nil, err
		}

		return &readCloser{Reader: reader, closers: []func() error{reader.Close, src.Close}}, nil
	case ".zst", ".zstd":
		decoder, err := zstd.NewReader(src)
		if err != nil {
			return nil, err
		}

		closeDecoder := func() error {
			decoder.Close()

			return nil
		}

		return &readCloser{Reader: decoder, closers: []func() error{closeDecoder, src.Close}}, nil
	case ".lz4":
		return &readCloser{Reader: lz4.NewReader(src), closers: []func() error{src.Close}}, nil
	case ".br":
		return &readCloser{Reader: brotli.NewReader(src), closers: []func() error{src.Close}}, nil
	default:
		return src, nil
	}
}

// ReadLines reads all of r, converts it to UTF-8 and returns its non-blank
// lines with surrounding whitespace removed.
func ReadLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	text, err := ToUTF8(data)
	if err != nil {
		return nil, err
	}

	var lines []string

	for line := range strings.Lines(text) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines, nil
}
