// Package buildinfo exposes the version stamped into classlink binaries.
//
// Values come from ldflags at build time:
//
//	go build -ldflags "-X github.com/matzehuels/classlink/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/classlink/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/classlink/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// XMI documents record [Name] and [Version] as their exporter.
package buildinfo

import "fmt"

// Name is the exporter name written into generated documents.
const Name = "classlink"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies classlink in HTTP responses.
func UserAgent() string {
	return Name + "/" + Version
}
