// Package version exposes build version information for paikit binaries.
//
// Version, git commit, and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/paifilter/paikit/version.Version=1.0.0"
//
// When ldflags are absent, the package falls back to the VCS metadata Go
// embeds in the build info.
package version
