package buildinfo

import (
	"runtime/debug"
	"sync"
)

// Version is the semantic version.
var Version = "1.0.0"

// Info contains build information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

var readBuildInfo = sync.OnceValue(func() Info {
	info := Info{Version: Version, Commit: "unknown", BuildTime: "unknown", GoVersion: "unknown"}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = shortCommit(s.Value)
		case "vcs.time":
			info.BuildTime = s.Value
		}
	}
	return info
})

// Get returns the build information.
func Get() Info {
	info := readBuildInfo()
	info.Version = Version
	return info
}

// String returns a formatted version string.
func String() string {
	info := Get()
	return info.Version + " (" + info.Commit + ", " + info.GoVersion + ")"
}

// UserAgent is sent with every API request.
func UserAgent() string {
	return "linearcli/" + Version
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
