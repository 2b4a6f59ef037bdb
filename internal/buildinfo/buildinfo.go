// Package buildinfo reports the version the binary was built from.
package buildinfo

import (
	"runtime/debug"
	"sync"
)

// Version, Commit and Date may be set with -ldflags "-X". Commit and Date
// fall back to the VCS stamp the go command records.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

var stamp = sync.OnceValues(func() (rev, at string) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	return rev, at
})

func commit() string {
	if Commit != "" {
		return Commit
	}
	rev, _ := stamp()
	return rev
}

// Short returns a compact build identifier for titles and logs: the
// version if set, else a 12-character commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" {
		if len(c) > 12 {
			c = c[:12]
		}
		return c
	}
	return "dev"
}

// Long adds the full commit and build date to Short when known.
func Long() string {
	s := Short()
	if c := commit(); c != "" && c != s {
		s += " " + c
	}
	d := Date
	if d == "" {
		_, d = stamp()
	}
	if d != "" {
		s += " " + d
	}
	return s
}
