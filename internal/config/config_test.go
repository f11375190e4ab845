package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amp-labs/amp-sortedlist/envutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sortedlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Order
		wantErr  bool
	}{
		{"lexical", Order{Kind: OrderLexical}, false},
		{"Natural", Order{Kind: OrderNatural}, false},
		{" numeric ", Order{Kind: OrderNumeric}, false},
		{"collate:de", Order{Kind: OrderCollate, Language: language.German}, false},
		{"collate:", Order{}, true},
		{"numeric:en", Order{}, true},
		{"random", Order{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			order, err := ParseOrder(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownOrder)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, order)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("no file gives defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overlays defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "input: values.txt.gz\norder: natural\nworkers: 3\ntimeout: 30s\n")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "values.txt.gz", cfg.Input)
		assert.Equal(t, "natural", cfg.Order)
		assert.Equal(t, 3, cfg.Workers)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, "-", cfg.Output)
	})

	t.Run("empty file gives defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := Load(writeConfig(t, ""))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := Load(writeConfig(t, "wrokers: 3\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestApplyEnv(t *testing.T) {
	t.Run("overrides set variables only", func(t *testing.T) {
		t.Setenv("SORTEDLIST_ORDER", "numeric")
		t.Setenv("SORTEDLIST_WORKERS", "2")
		t.Setenv("SORTEDLIST_REVERSE", "true")

		cfg := Default()
		require.NoError(t, cfg.ApplyEnv())

		assert.Equal(t, "numeric", cfg.Order)
		assert.Equal(t, 2, cfg.Workers)
		assert.True(t, cfg.Reverse)
		assert.Equal(t, "-", cfg.Input)
	})

	t.Run("reports every malformed variable", func(t *testing.T) {
		t.Setenv("SORTEDLIST_WORKERS", "many")
		t.Setenv("SORTEDLIST_REVERSE", "sure")

		cfg := Default()
		err := cfg.ApplyEnv()
		require.ErrorIs(t, err, envutil.ErrBadEnvVar)
		assert.Contains(t, err.Error(), "SORTEDLIST_WORKERS")
		assert.Contains(t, err.Error(), "SORTEDLIST_REVERSE")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	order, err := cfg.Validate()
	require.NoError(t, err)
	assert.Equal(t, OrderLexical, order.Kind)

	cfg.Digest = DigestXXH64
	_, err = cfg.Validate()
	require.NoError(t, err)

	bad := Config{Order: "sideways", Workers: 0, Digest: "md5"}
	_, err = bad.Validate()
	require.ErrorIs(t, err, ErrUnknownOrder)
	require.ErrorIs(t, err, ErrUnknownDigest)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "workers")
	assert.Contains(t, err.Error(), "input")
}
