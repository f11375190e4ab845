package build

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("full document", func(t *testing.T) {
		t.Parallel()

		js := `{
			"version": "v1.4.0",
			"git_commit": "abc123",
			"git_date": "2026-10-05",
			"build_time": "2026-10-05T12:00:00Z",
			"go_version": "go1.25.5",
			"dependencies": {"github.com/alitto/pond/v2": "v2.6.0"}
		}`

		info, ok := Parse(js)
		require.True(t, ok)

		assert.Equal(t, "v1.4.0", info.Version)
		assert.Equal(t, "abc123", info.GitCommit)
		assert.Equal(t, "2026-10-05", info.GitDate)
		assert.Equal(t, "2026-10-05T12:00:00Z", info.BuildTime)
		assert.Equal(t, "go1.25.5", info.GoVersion)
		assert.Equal(t, map[string]string{"github.com/alitto/pond/v2": "v2.6.0"}, info.Dependencies)
	})

	for _, js := range []string{"", "{}", "not valid json"} {
		t.Run("rejects "+js, func(t *testing.T) {
			t.Parallel()

			info, ok := Parse(js)
			assert.False(t, ok)
			assert.Nil(t, info)
		})
	}
}

func TestFromBuildInfo(t *testing.T) {
	t.Parallel()

	info := fromBuildInfo(&debug.BuildInfo{
		GoVersion: "go1.25.5",
		Main:      debug.Module{Path: "github.com/amp-labs/amp-sortedlist"},
		Deps:      []*debug.Module{{Path: "github.com/zeebo/xxh3", Version: "v1.0.2"}},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.time", Value: "2026-10-01T00:00:00Z"},
		},
	})

	assert.Equal(t, develVersion, info.Version)
	assert.Equal(t, "deadbeef", info.GitCommit)
	assert.Equal(t, "2026-10-01T00:00:00Z", info.GitDate)
	assert.Equal(t, "v1.0.2", info.Dependencies["github.com/zeebo/xxh3"])
	assert.Equal(t, "(devel) (deadbeef, go1.25.5)", info.String())
}

func TestGet(t *testing.T) {
	t.Parallel()

	info := Get()
	require.NotNil(t, info)
	assert.NotEmpty(t, info.Version)
	assert.Same(t, info, Get())
}
