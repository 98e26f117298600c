// Package version holds the application version, overridable at build time:
//
//	go build -ldflags "-X github.com/Norn-cloud/tag-scanner/internal/version.Version=1.2.3"
package version

// Version is the application version string.
var Version = "dev"
