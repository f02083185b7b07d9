// Package version reports sqlb build metadata and the database drivers linked in.
package version

import (
	"database/sql"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set through -ldflags "-X". Empty values are filled from the Go build info.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// Info describes the running binary.
type Info struct {
	Version  string
	Commit   string
	Date     string
	Go       string
	Platform string
	Drivers  []string
}

// Get collects version information.
func Get() Info {
	info := Info{
		Version:  Version,
		Commit:   Commit,
		Date:     Date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Drivers:  sql.Drivers(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "":
				info.Commit = shortRevision(s.Value)
			case s.Key == "vcs.time" && info.Date == "":
				info.Date = s.Value
			}
		}
	}

	info.Version = orUnknown(info.Version, "dev")
	info.Commit = orUnknown(info.Commit, "unknown")
	info.Date = orUnknown(info.Date, "unknown")
	return info
}

// String returns the one-line form printed by "sqlb version".
func (i Info) String() string {
	return "sqlb " + i.Version + " (commit " + i.Commit + ", " + i.Platform + " " + i.Go + ")"
}

// Rows returns the fields as label/value pairs for table output.
func (i Info) Rows() [][]string {
	drivers := "none"
	if len(i.Drivers) > 0 {
		drivers = strings.Join(i.Drivers, ", ")
	}
	return [][]string{
		{"version", i.Version},
		{"commit", i.Commit},
		{"built", i.Date},
		{"go", i.Go},
		{"platform", i.Platform},
		{"drivers", drivers},
	}
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

func orUnknown(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
