// Package versiongen renders the version stamp consumed by package version.
//
// The project manifest is the single source of the version number. The
// generator validates it, substitutes the three components into an embedded
// template and writes the formatted Go source. Any failure (an unparseable
// version, an unresolved placeholder, output that is not valid Go) is
// returned as an error so that go generate, and therefore the build, fails.
package versiongen
