package build

import "fmt"

// Set at link time:
//
//	go build -ldflags "-X github.com/rohmanhakim/jsxtree/internal/build.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// Summary is the line printed by the version command.
func Summary(appName string) string {
	return fmt.Sprintf("%s %s (built %s)", appName, FullVersion(), BuildTime)
}
