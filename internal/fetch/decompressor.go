package fetch

import (
	"errors"
	"io"
	"net/http"

	"github.com/fereidani/httpdecompressor"
)

// NewDecompressor wraps roundTripper so that response bodies are decoded
// according to their Content-Encoding (gzip, deflate, br, zstd and others).
// Unencoded responses pass through untouched.
func NewDecompressor(roundTripper http.RoundTripper) http.RoundTripper {
	if roundTripper == nil {
		panic("fetch: NewDecompressor called with a nil RoundTripper")
	}

	return &decompressor{roundTripper: roundTripper}
}

type decompressor struct {
	roundTripper http.RoundTripper
}

func (d *decompressor) RoundTrip(request *http.Request) (*http.Response, error) {
	rsp, err := d.roundTripper.RoundTrip(request)
	if err != nil {
		return rsp, err
	}

	origBody := rsp.Body

	bodyReader, err := httpdecompressor.Reader(rsp)
	if err != nil {
		_ = origBody.Close()

		return nil, err
	}

	if bodyReader == origBody {
		return rsp, nil
	}

	// Decoder first, then the connection.
	rsp.Body = &decodedBody{Reader: bodyReader, closers: []io.Closer{bodyReader, origBody}}
	rsp.Header.Del("Content-Encoding")
	rsp.ContentLength = -1

	return rsp, nil
}

type decodedBody struct {
	io.Reader

	closers []io.Closer
}

func (b *decodedBody) Close() error {
	errs := make([]error, 0, len(b.closers))
	for _, c := range b.closers {
		errs = append(errs, c.Close())
	}

	return errors.Join(errs...)
}

var _ http.RoundTripper = (*decompressor)(nil)
