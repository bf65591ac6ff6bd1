// Package buildinfo exposes build metadata injected at link time via -ldflags.
package buildinfo

import (
	"fmt"
	"io"
)

// These are overridden by the build pipeline, e.g.:
//
//	go build -ldflags "-X .../internal/buildinfo.Version=v1.2.0 ..."
var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes a short build banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
