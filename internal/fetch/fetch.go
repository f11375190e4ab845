// Package fetch downloads input over HTTP for the sortedlist command.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/amp-labs/amp-sortedlist/should"
)

var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

var client = sync.OnceValue(func() *http.Client { //nolint:gochecknoglobals
	return &http.Client{Transport: NewDecompressor(NewTransport())}
})

// IsURL reports whether location names an http or https resource.
func IsURL(location string) bool {
	lower := strings.ToLower(location)

	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Open issues a GET for location and returns the decoded response body.
// Any status other than 200 is an error.
func Open(ctx context.Context, location string) (io.ReadCloser, error) {
	return OpenWith(ctx, client(), location)
}

// OpenWith is Open using the given client.
func OpenWith(ctx context.Context, httpClient *http.Client, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}

	rsp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if rsp.StatusCode != http.StatusOK {
		should.Close(rsp.Body, "closing rejected response body")

		return nil, fmt.Errorf("%w: GET %s: %s", ErrUnexpectedStatus, location, rsp.Status)
	}

	logger.Get(ctx).Debug("fetched input", "url", location, "content_type", rsp.Header.Get("Content-Type"))

	return rsp.Body, nil
}
