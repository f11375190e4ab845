package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testData = "banana\napple\ncherry\n"

func compressGzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func compressBrotli(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := brotli.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func compressZstd(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close() //nolint:errcheck

	return enc.EncodeAll(data, nil), nil
}

func uncompressed(data []byte) ([]byte, error) {
	return data, nil
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	assert.True(t, IsURL("http://example.com/values.txt"))
	assert.True(t, IsURL("HTTPS://example.com/values.txt"))
	assert.False(t, IsURL("values.txt"))
	assert.False(t, IsURL("-"))
	assert.False(t, IsURL("ftp://example.com/values.txt"))
}

func TestNewDecompressor_NilPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewDecompressor(nil)
	})
}

func TestOpen_ContentEncodings(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		contentEncoding string
		compressFunc    func([]byte) ([]byte, error)
	}{
		{"gzip", "gzip", compressGzip},
		{"brotli", "br", compressBrotli},
		{"zstd", "zstd", compressZstd},
		{"identity", "", uncompressed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			payload, err := tc.compressFunc([]byte(testData))
			require.NoError(t, err)

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tc.contentEncoding != "" {
					w.Header().Set("Content-Encoding", tc.contentEncoding)
				}

				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(payload)
			}))
			defer server.Close()

			body, err := Open(t.Context(), server.URL+"/values.txt")
			require.NoError(t, err)
			t.Cleanup(func() { _ = body.Close() })

			data, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.Equal(t, testData, string(data))
		})
	}
}

func TestOpen_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := Open(t.Context(), server.URL+"/missing.txt")
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "404")
}

func TestOpenWith_CanceledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testData))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := OpenWith(ctx, server.Client(), server.URL)
	require.ErrorIs(t, err, context.Canceled)
}
