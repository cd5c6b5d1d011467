package versiongen

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"go/format"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/nqst/nyquist/pkg/configure"
)

var (
	// ErrInvalidVersion indicates the version could not be parsed.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrUnsupportedVersion indicates the version parsed, but carries parts
	// that cannot be represented by the three numeric components.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrInvalidManifest indicates the manifest is missing required fields.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrStale indicates a generated file does not match its inputs.
	ErrStale = errors.New("generated file is stale")

	// ErrFormat indicates the rendered source is not valid Go.
	ErrFormat = errors.New("format generated source")
)

//go:embed version.go.in
var versionTemplate []byte

// Template returns a copy of the embedded version template.
func Template() []byte {
	return bytes.Clone(versionTemplate)
}

// Manifest is the subset of the project manifest read by the generator.
type Manifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// LoadManifest reads and validates the YAML manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	//nolint:gosec // G304 not relevant for build-time generation.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, path, err)
	}

	if strings.TrimSpace(m.Name) == "" {
		return nil, fmt.Errorf("%w: %s: missing name", ErrInvalidManifest, path)
	}

	if strings.TrimSpace(m.Version) == "" {
		return nil, fmt.Errorf("%w: %s: missing version", ErrInvalidManifest, path)
	}

	return m, nil
}

// Stamp holds the three numeric version components of a build.
type Stamp struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// Parse validates raw and returns its numeric components. A leading "v" is
// accepted and missing trailing components are treated as zero.
func Parse(raw string) (Stamp, error) {
	v, err := semver.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return Stamp{}, fmt.Errorf("%w %q: %w", ErrInvalidVersion, raw, err)
	}

	if v.Prerelease() != "" || v.Metadata() != "" {
		return Stamp{}, fmt.Errorf("%w %q: prerelease and build metadata are not allowed", ErrUnsupportedVersion, raw)
	}

	// Components must fit an int on every platform package version builds for.
	if v.Major() > math.MaxInt32 || v.Minor() > math.MaxInt32 || v.Patch() > math.MaxInt32 {
		return Stamp{}, fmt.Errorf("%w %q: components must not exceed %d", ErrUnsupportedVersion, raw, math.MaxInt32)
	}

	return Stamp{Major: v.Major(), Minor: v.Minor(), Patch: v.Patch()}, nil
}

// String returns the dot-joined form of the stamp.
func (s Stamp) String() string {
	return fmt.Sprintf("%d.%d.%d", s.Major, s.Minor, s.Patch)
}

// Vars returns the template variables for the stamp, both project-scoped
// (<project>_VERSION_MAJOR) and generic (PROJECT_VERSION_MAJOR).
func (s Stamp) Vars(project string) map[string]string {
	vars := map[string]string{}

	for _, prefix := range []string{project, "PROJECT"} {
		vars[prefix+"_VERSION"] = s.String()
		vars[prefix+"_VERSION_MAJOR"] = strconv.FormatUint(s.Major, 10)
		vars[prefix+"_VERSION_MINOR"] = strconv.FormatUint(s.Minor, 10)
		vars[prefix+"_VERSION_PATCH"] = strconv.FormatUint(s.Patch, 10)
	}

	vars["PROJECT_NAME"] = project

	return vars
}

// Options configures [Render].
type Options struct {
	// Project is the project name, used as the placeholder prefix.
	Project string
	// Package is the Go package name of the generated file.
	Package string
	// Manifest is recorded in the generated file header by base name only,
	// so the output does not depend on the working directory.
	Manifest string
	// Template overrides the embedded template when non-nil.
	Template []byte
	Stamp    Stamp
}

// Render substitutes the stamp into the template and formats the result.
func Render(opts Options) ([]byte, error) {
	tmpl := opts.Template
	if tmpl == nil {
		tmpl = versionTemplate
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = "version"
	}

	vars := opts.Stamp.Vars(opts.Project)
	vars["PACKAGE"] = pkg
	vars["PROJECT_MANIFEST"] = "the project manifest"
	if opts.Manifest != "" {
		vars["PROJECT_MANIFEST"] = filepath.Base(opts.Manifest)
	}

	src, err := configure.Render(tmpl, vars)
	if err != nil {
		return nil, err
	}

	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return out, nil
}

// Write writes data to path, replacing it atomically. It reports whether the
// file changed; an identical file is left untouched.
func Write(path string, data []byte) (bool, error) {
	//nolint:gosec // G304 not relevant for build-time generation.
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return false, fmt.Errorf("create temp file: %w", err)
	}

	// Removing a renamed temp file fails harmlessly.
	defer os.Remove(tmp.Name()) //nolint:errcheck

	_, err = tmp.Write(data)
	if err != nil {
		_ = tmp.Close()

		return false, fmt.Errorf("write %s: %w", tmp.Name(), err)
	}

	err = tmp.Close()
	if err != nil {
		return false, fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	err = os.Chmod(tmp.Name(), 0o644)
	if err != nil {
		return false, fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return false, fmt.Errorf("rename to %s: %w", path, err)
	}

	return true, nil
}

// Check returns [ErrStale] if the file at path differs from data.
func Check(path string, data []byte) error {
	//nolint:gosec // G304 not relevant for build-time generation.
	existing, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStale, err)
	}

	if !bytes.Equal(existing, data) {
		return fmt.Errorf("%w: %s", ErrStale, path)
	}

	return nil
}
