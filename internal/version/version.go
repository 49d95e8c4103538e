// Package version reports the build's version, commit, date and platform.
package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var versionFile string

// Linker-injected variables. Set via:
//
//	go build -ldflags "-X github.com/azuyamat/mia/internal/version.gitCommit=VALUE"
var (
	gitCommit string // Set via -ldflags
	buildDate string // Set via -ldflags
)

// Unknown is reported for build details that are not available.
const Unknown = "unknown"

// Info represents version and build information.
type Info struct {
	// Version is the semantic version from the VERSION file, e.g. "0.1.0".
	Version string

	// GitCommit is the short commit hash, with a "-dirty" suffix for
	// modified trees.
	GitCommit string

	// BuildDate is the ISO 8601 build timestamp.
	BuildDate string

	// GoVersion is the toolchain the binary was built with.
	GoVersion string

	// Platform is "<os>/<arch>"; mia update downloads the asset for it.
	Platform string
}

// String formats Info for `mia version`.
func (i Info) String() string {
	return fmt.Sprintf("Version:    %s\nGit Commit: %s\nBuild Date: %s\nGo:         %s\nPlatform:   %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}

// Get returns the running binary's Info.
func Get() Info {
	revision, dirty := readBuildInfo()
	return Info{
		Version:   strings.TrimSpace(versionFile),
		GitCommit: commit(gitCommit, revision, dirty),
		BuildDate: orUnknown(buildDate),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// commit prefers the linker value, then the VCS revision stamped by go build.
func commit(linked, revision string, dirty bool) string {
	switch {
	case linked != "":
		return linked
	case revision == "":
		return Unknown
	case dirty:
		return revision + "-dirty"
	default:
		return revision
	}
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

// readBuildInfo returns the 7-character VCS revision and whether the tree
// was modified. Both are empty when the binary carries no VCS stamp.
func readBuildInfo() (revision string, dirty bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	return revision, dirty
}
