// Package version carries the build version, overridden with -ldflags.
package version

// Version is the release string; "dev" for local builds.
var Version = "dev"
