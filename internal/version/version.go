// Package version holds build metadata set through -ldflags, e.g.
//
//	-X 'github.com/janekbaraniewski/focuschart/internal/version.Version=v0.3.0'
package version

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Dev reports an unreleased build.
func Dev() bool {
	return Version == "dev"
}

// String returns "<version> (<commit>) built <date>", dropping the parts
// that were not injected.
func String() string {
	s := Version
	if CommitHash != "unknown" && CommitHash != "" {
		short := CommitHash
		if len(short) > 7 {
			short = short[:7]
		}
		s += fmt.Sprintf(" (%s)", short)
	}
	if BuildDate != "unknown" && BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
