// Package configure substitutes @NAME@ placeholders in text templates.
//
// It is the build-time half of version stamping: a template containing
// placeholders such as @nyquist_VERSION_MAJOR@ is rendered with values read
// from the project manifest. Unlike a lenient substitution, a placeholder
// with no value is an error, so a half-rendered file never reaches the
// compiler.
package configure
