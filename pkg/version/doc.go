// Package version provides version information for the application.
//
// The Major, Minor and Patch constants are generated from the project
// manifest (nyquist.yaml) by versiongen; do not edit them by hand. The display
// string is always formatted from those constants, so the two cannot
// disagree. Everything in this package is immutable and safe for concurrent
// use.
package version

//go:generate go run ../../cmd/versiongen --manifest ../../nyquist.yaml --output zz_generated.version.go
