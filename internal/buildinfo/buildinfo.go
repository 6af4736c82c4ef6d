// Package buildinfo exposes version metadata stamped in at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/dessertcatalog/internal/buildinfo.buildVersion=v1.2.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// Info is the stamped build metadata.
type Info struct {
	Version string
	Date    string
	Commit  string
}

func Get() Info {
	return Info{Version: buildVersion, Date: buildDate, Commit: buildCommit}
}

// PrintBuildData writes the build metadata to w, one field per line.
func PrintBuildData(w io.Writer) {
	info := Get()
	fmt.Fprintf(w, "Build version: %s\n", info.Version)
	fmt.Fprintf(w, "Build date: %s\n", info.Date)
	fmt.Fprintf(w, "Build commit: %s\n", info.Commit)
}
