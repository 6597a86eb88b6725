// Package version reports recli's build identity: the release version,
// commit hash and build date baked in via -ldflags at release build time,
// falling back to the Go module's own embedded build info for a plain
// "go build" (the same two-tier scheme the ambient version package this
// one is trimmed from uses, minus its release-check HTTP call — recli has
// no update server to ask, §6 Non-goals).
package version

import "runtime/debug"

// These are overwritten at release build time via:
//
//	-ldflags "-X github.com/go-recli/recli/internal/version.Version=1.2.3 ..."
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Info is the build identity reported by "recli -version".
type Info struct {
	Version    string
	CommitHash string
	BuildDate  string
}

// Get returns the build identity, falling back to runtime/debug.BuildInfo
// for whichever fields ldflags never set (a developer's plain "go build").
func Get() Info {
	info := Info{Version: Version, CommitHash: CommitHash, BuildDate: BuildDate}
	if info.Version != "dev" && info.CommitHash != "unknown" {
		return info
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.CommitHash == "unknown" {
				info.CommitHash = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

// String renders the identity as recli's one-line version banner.
func (i Info) String() string {
	return "recli " + i.Version + " (commit " + i.CommitHash + ", built " + i.BuildDate + ")"
}
