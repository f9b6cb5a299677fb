package argon2kdf

import "fmt"

// LibraryVersion is the version of the argon2kdf module
const LibraryVersion = "1.0.0"

// Build information (set by ldflags during build)
var (
	GitCommit string
	BuildDate string
)

// VersionInfo returns formatted version information
func VersionInfo() string {
	if GitCommit == "" {
		return fmt.Sprintf("argon2kdf v%s", LibraryVersion)
	}
	return fmt.Sprintf("argon2kdf v%s (commit: %s, built: %s)", LibraryVersion, GitCommit, BuildDate)
}
