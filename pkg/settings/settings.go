// Package settings provides build metadata and runtime configuration
// shared by the tablekit CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "tablekit"

// VersionInformation is populated at build time via ldflags and holds
// the commit hash, semantic version, and build timestamp of the
// running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration settings for a single execution of the CLI:
// logging, output, and error handling behavior.
type Run struct {
	MinLogLevel int8
	IsQuiet     bool
	NoColor     bool
	ExitOnError bool

	// StateDir is where per-user layout configurations are stored.
	// Empty means an in-memory store (nothing persists across runs).
	StateDir string
}

// NewCliParams returns the default CLI run parameters.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		IsQuiet:     false,
		NoColor:     false,
		ExitOnError: true,
	}
}
