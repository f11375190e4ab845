package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))

		lines = append(lines, entry)
	}

	return lines
}

func TestLogger(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{
		Subsystem: "test",
		JSON:      true,
		Output:    &buf,
	})

	Get().Info("default subsystem")
	Get(WithSubsystem(t.Context(), "overridden")).Info("overridden subsystem")
	Get(With(t.Context(), "list", "hosts")).Info("with values")
	Get(WithMuted(t.Context(), true)).Info("never printed")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)

	assert.Equal(t, "test", lines[0]["subsystem"])
	assert.Equal(t, "overridden", lines[1]["subsystem"])
	assert.Equal(t, "hosts", lines[2]["list"])
}

func TestWithDoesNotLeakBetweenSiblings(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{JSON: true, Output: &buf})

	base := With(t.Context(), "a", 1)
	left := With(base, "b", 2)
	right := With(base, "c", 3)

	Get(left).Info("left")
	Get(right).Info("right")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[1], "b")
	assert.Contains(t, lines[1], "c")
}

type recordingHandler struct {
	messages *[]string
}

func (r recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (r recordingHandler) Handle(_ context.Context, record slog.Record) error {
	*r.messages = append(*r.messages, record.Message)

	return nil
}

func (r recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return r }

func (r recordingHandler) WithGroup(string) slog.Handler { return r }

func TestExtraHandlers(t *testing.T) { //nolint:paralleltest
	var (
		buf      bytes.Buffer
		messages []string
	)

	ConfigureLoggingWithOptions(Options{
		JSON:     true,
		Output:   &buf,
		MinLevel: slog.LevelWarn,
		Handlers: []slog.Handler{recordingHandler{messages: &messages}},
	})

	Get().Info("only the extra handler wants this")
	Get().Warn("both handlers")

	assert.Equal(t, []string{"only the extra handler wants this", "both handlers"}, messages)
	assert.Len(t, decodeLines(t, &buf), 1)
}

func TestConfigureLogging(t *testing.T) { //nolint:paralleltest
	t.Setenv("LOG_JSON", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_OUTPUT", "stderr")

	var buf bytes.Buffer

	logger, err := ConfigureLogging("sortedlist", WithOutput(&buf))
	require.NoError(t, err)

	logger.Debug("debug enabled")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "debug enabled", lines[0]["msg"])
	assert.Equal(t, "sortedlist", GetSubsystem(t.Context()))

	t.Setenv("LOG_OUTPUT", "printer")

	_, err = ConfigureLogging("sortedlist")
	require.ErrorIs(t, err, ErrInvalidLogOutput)
}
