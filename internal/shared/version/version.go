// Package version holds build metadata injected through -ldflags.
package version

var (
	Version = "dev"
	Commit  = ""
)

// String returns the version with the commit appended when known.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
