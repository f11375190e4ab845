package should

import (
	"bytes"
	"errors"
	"testing"

	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/stretchr/testify/assert"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestClose(t *testing.T) {
	var buf bytes.Buffer

	logger.ConfigureLoggingWithOptions(logger.Options{JSON: true, Output: &buf})

	closed := false

	Close(closerFunc(func() error {
		closed = true

		return nil
	}), "closing ok")

	assert.True(t, closed)
	assert.Empty(t, buf.String())

	Close(closerFunc(func() error { return errors.New("disk on fire") }), "closing broken")

	assert.Contains(t, buf.String(), "closing broken")
	assert.Contains(t, buf.String(), "disk on fire")
}
