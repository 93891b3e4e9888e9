// Package version exposes build metadata for linkvault binaries,
// stamped by the linker:
//
//	-ldflags "-X github.com/linkvault/linkvault/internal/version.Version=v1.2.3"
package version

// Overridden in release builds; the defaults identify a local build.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the version with its commit, as logged at startup.
func String() string {
	return Version + " (" + Commit + ")"
}
