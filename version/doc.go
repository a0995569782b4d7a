// Package version reports the bundlegen build.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/bundlegen/version.Version=1.0.0" ./cmd/bundlegen
//
// Unset values fall back to the VCS stamps Go embeds in the binary.
package version
