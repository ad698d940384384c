// Package version holds build metadata stamped in by the linker:
//
//	go build -ldflags "-X github.com/dkoosis/spectrace/internal/version.Version=v0.1.0"
package version

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String returns the multi-line form printed by "spectrace version".
func String() string {
	return fmt.Sprintf("spectrace version %s\nCommit: %s\nBuilt: %s\n", Version, CommitHash, BuildDate)
}
