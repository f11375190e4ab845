// Package build reports how the sortedlist binary was built.
//
// Release builds inject a JSON document with
//
//	-ldflags "-X github.com/amp-labs/amp-sortedlist/build.injected=<json>"
//
// Other builds fall back to what the Go toolchain embedded in the binary.
package build

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/amp-labs/amp-sortedlist/logger"
)

const develVersion = "(devel)"

var injected string //nolint:gochecknoglobals

// Info is the build metadata of the running binary.
type Info struct {
	Version      string            `json:"version"`
	GitCommit    string            `json:"git_commit"` //nolint:tagliatelle
	GitDate      string            `json:"git_date"`   //nolint:tagliatelle
	BuildTime    string            `json:"build_time"` //nolint:tagliatelle
	GoVersion    string            `json:"go_version"` //nolint:tagliatelle
	Dependencies map[string]string `json:"dependencies"`
}

// Parse decodes injected build metadata. It returns false for an empty
// document or one that does not decode.
func Parse(js string) (*Info, bool) {
	if len(js) == 0 || js == "{}" {
		return nil, false
	}

	var info Info

	if err := json.Unmarshal([]byte(js), &info); err != nil {
		logger.Get().Warn("Failed to parse build info from JSON", "data", js, "error", err)

		return nil, false
	}

	return &info, true
}

// Get returns the metadata of the running binary. The result is computed
// once.
var Get = sync.OnceValue(func() *Info { //nolint:gochecknoglobals
	if info, ok := Parse(injected); ok {
		if info.Version == "" {
			info.Version = develVersion
		}

		return info
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return &Info{Version: develVersion, GoVersion: runtime.Version()}
	}

	return fromBuildInfo(bi)
})

func fromBuildInfo(bi *debug.BuildInfo) *Info {
	info := &Info{
		Version:      bi.Main.Version,
		GoVersion:    bi.GoVersion,
		Dependencies: make(map[string]string, len(bi.Deps)),
	}

	if info.Version == "" {
		info.Version = develVersion
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.GitCommit = setting.Value
		case "vcs.time":
			info.GitDate = setting.Value
		}
	}

	for _, dep := range bi.Deps {
		info.Dependencies[dep.Path] = dep.Version
	}

	return info
}

// String renders the version line printed by -version.
func (i *Info) String() string {
	if i.GitCommit == "" {
		return fmt.Sprintf("%s (%s)", i.Version, i.GoVersion)
	}

	return fmt.Sprintf("%s (%s, %s)", i.Version, i.GitCommit, i.GoVersion)
}
