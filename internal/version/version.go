// Package version reports build metadata for the purse binary.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// Set with -ldflags "-X git.sr.ht/~jakintosh/purse/internal/version.version=v1.0.0".
var (
	version = ""
	commit  = ""
	date    = ""
)

const (
	devVersion   = "dev"
	unknown      = "unknown"
	commitLength = 12
)

// Info is the version, commit and build date of the running binary.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
}

// String renders the info on one line for `purse version`.
func (i Info) String() string {
	return fmt.Sprintf("purse %s (commit %s, built %s)", i.Version, i.Commit, i.BuildDate)
}

var current = sync.OnceValue(func() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(Info{Version: version, Commit: commit, BuildDate: date}, bi)
})

// Data returns the build metadata, preferring linker values over the
// module build info.
func Data() Info {
	return current()
}

// resolve fills the gaps in linked with values from the build info.
func resolve(linked Info, bi *debug.BuildInfo) Info {
	out := Info{
		Version:   strings.TrimSpace(linked.Version),
		Commit:    strings.TrimSpace(linked.Commit),
		BuildDate: strings.TrimSpace(linked.BuildDate),
	}

	if bi != nil {
		if isDevVersion(out.Version) && strings.HasPrefix(bi.Main.Version, "v") {
			out.Version = bi.Main.Version
		}
		if out.Commit == "" {
			if rev := buildSetting(bi, "vcs.revision"); rev != "" {
				out.Commit = rev
				if buildSetting(bi, "vcs.modified") == "true" {
					out.Commit += "-dirty"
				}
			}
		}
		if out.BuildDate == "" {
			out.BuildDate = buildSetting(bi, "vcs.time")
			if t, err := time.Parse(time.RFC3339, out.BuildDate); err == nil {
				out.BuildDate = t.UTC().Format(time.RFC3339)
			}
		}
	}

	if isDevVersion(out.Version) {
		out.Version = devVersion
	}
	if out.Commit == "" {
		out.Commit = unknown
	} else {
		out.Commit = shortenCommit(out.Commit)
	}
	if out.BuildDate == "" {
		out.BuildDate = unknown
	}
	return out
}

func isDevVersion(v string) bool {
	return v == "" || v == devVersion || v == "(devel)"
}

func buildSetting(bi *debug.BuildInfo, key string) string {
	for _, s := range bi.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

func shortenCommit(c string) string {
	rev, dirty := strings.CutSuffix(c, "-dirty")
	if len(rev) > commitLength {
		rev = rev[:commitLength]
	}
	if dirty {
		return rev + "-dirty"
	}
	return rev
}
