// Package buildinfo holds the version stamped into the binary at link time:
//
//	go build -ldflags "-X github.com/pohonku/pohonku/internal/buildinfo.Version=v1.2.0 \
//	  -X github.com/pohonku/pohonku/internal/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/pohonku/pohonku/internal/buildinfo.Date=$(date -u +%Y-%m-%d)"
package buildinfo

import (
	"fmt"
	"io"
)

const notAvailable = "N/A"

var (
	Version string
	Commit  string
	Date    string
)

func valueOrNA(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}

// PrintBuildData writes the build version, date and commit to w, one per
// line. Unset values print as N/A.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", valueOrNA(Version))
	fmt.Fprintf(w, "Build date: %s\n", valueOrNA(Date))
	fmt.Fprintf(w, "Build commit: %s\n", valueOrNA(Commit))
}
