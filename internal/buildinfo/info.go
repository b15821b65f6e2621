// Package buildinfo carries version metadata stamped in with -ldflags.
package buildinfo

import "runtime/debug"

var (
	// Version will be set via ldflags during build.
	Version = "dev"
	// Commit will be set via ldflags during build.
	Commit = "none"
	// Date will be set via ldflags during build.
	Date = "unknown"
)

// String formats the version for `tally --version`. Builds without ldflags
// fall back to the module version recorded by `go install`.
func String() string {
	version := Version
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	return version + " (commit: " + Commit + ", built: " + Date + ")"
}
