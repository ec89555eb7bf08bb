// Package version exposes build metadata for the gitgat binary.
package version

import "runtime/debug"

// Set with -ldflags "-X github.com/Sumatoshi-tech/gitgat/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const (
	unsetVersion = "dev"
	unsetCommit  = "none"
	unsetDate    = "unknown"

	shortCommitLen = 12
)

// InitBinaryVersion fills values not injected at link time from the module
// build info that `go install` embeds.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	apply(info)
}

func apply(info *debug.BuildInfo) {
	if Version == unsetVersion && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == unsetCommit && setting.Value != "" {
				Commit = setting.Value[:min(len(setting.Value), shortCommitLen)]
			}
		case "vcs.time":
			if Date == unsetDate && setting.Value != "" {
				Date = setting.Value
			}
		}
	}
}

// String formats the metadata for --version.
func String() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
