// Package version carries the build identity stamped in via ldflags.
package version

// These variables are set via ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the bare version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version together with the commit and build
// date when they were stamped in
func GetFullVersion() string {
	if Version == "dev" {
		return "dev"
	}

	full := Version
	if GitCommit != "unknown" {
		full += " (" + GitCommit
		if BuildDate != "unknown" {
			full += ", " + BuildDate
		}
		full += ")"
	}
	return full
}
