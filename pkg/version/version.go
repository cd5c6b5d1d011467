package version

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidConstraint indicates a compatibility constraint could not be parsed.
var ErrInvalidConstraint = errors.New("invalid constraint")

const unknown = "unknown"

var str = strconv.Itoa(Major) + "." + strconv.Itoa(Minor) + "." + strconv.Itoa(Patch)

// String returns the version as "major.minor.patch".
func String() string {
	return str
}

// Banner returns "<name> <version>", for log lines and diagnostics.
func Banner(name string) string {
	return name + " " + str
}

// Semver returns the version as a [semver.Version]. Each call returns a new
// value.
func Semver() *semver.Version {
	return semver.New(Major, Minor, Patch, "", "")
}

// Satisfies reports whether this build satisfies constraint, for example
// ">= 1.2, < 2".
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("%w %q: %w", ErrInvalidConstraint, constraint, err)
	}

	return c.Check(Semver()), nil
}

// Info is a diagnostic report of the running build.
type Info struct {
	Version   string `json:"version"   yaml:"version"`
	Revision  string `json:"revision"  yaml:"revision"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform"  yaml:"platform"`
	Major     int    `json:"major"     yaml:"major"`
	Minor     int    `json:"minor"     yaml:"minor"`
	Patch     int    `json:"patch"     yaml:"patch"`
}

var revision = sync.OnceValue(func() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return unknown
	}

	return revisionFromSettings(bi.Settings)
})

func revisionFromSettings(settings []debug.BuildSetting) string {
	rev := ""
	dirty := false

	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if rev == "" {
		return unknown
	}

	if dirty {
		return rev + "-dirty"
	}

	return rev
}

// Revision returns the VCS revision recorded by the Go toolchain, or
// "unknown" when the binary was built without VCS information.
func Revision() string {
	return revision()
}

// Get returns the [Info] for the running build.
func Get() Info {
	return Info{
		Version:   str,
		Major:     Major,
		Minor:     Minor,
		Patch:     Patch,
		Revision:  Revision(),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
