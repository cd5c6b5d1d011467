package version_test

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqst/nyquist/pkg/version"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, version.String())
	assert.Equal(t, fmt.Sprintf("%d.%d.%d", version.Major, version.Minor, version.Patch), version.String())
	assert.Regexp(t, `^\d+\.\d+\.\d+$`, version.String())
}

func TestComponentsNonNegative(t *testing.T) {
	t.Parallel()

	assert.GreaterOrEqual(t, version.Major, 0)
	assert.GreaterOrEqual(t, version.Minor, 0)
	assert.GreaterOrEqual(t, version.Patch, 0)
}

func TestStableAcrossReads(t *testing.T) {
	t.Parallel()

	first := version.String()
	firstInfo := version.Get()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			assert.Equal(t, first, version.String())
			assert.Equal(t, firstInfo, version.Get())
		}()
	}

	wg.Wait()
}

func TestSemver(t *testing.T) {
	t.Parallel()

	v := version.Semver()
	assert.Equal(t, version.String(), v.String())
	assert.Equal(t, uint64(version.Major), v.Major())
	assert.Equal(t, uint64(version.Minor), v.Minor())
	assert.Equal(t, uint64(version.Patch), v.Patch())

	// Callers get their own copy.
	assert.NotSame(t, v, version.Semver())
}

func TestSatisfies(t *testing.T) {
	t.Parallel()

	current := version.String()
	next := fmt.Sprintf("%d.0.0", version.Major+1)

	tcs := map[string]struct {
		constraint string
		want       bool
	}{
		"exact":       {constraint: current, want: true},
		"at least":    {constraint: ">= " + current, want: true},
		"lowest":      {constraint: ">= 0.0.0", want: true},
		"next major":  {constraint: ">= " + next, want: false},
		"below next":  {constraint: "< " + next, want: true},
		"not current": {constraint: "!= " + current, want: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := version.Satisfies(tc.constraint)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSatisfiesInvalid(t *testing.T) {
	t.Parallel()

	_, err := version.Satisfies(">= one")
	require.ErrorIs(t, err, version.ErrInvalidConstraint)
}

func TestBanner(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nyquist "+version.String(), version.Banner("nyquist"))
}

func TestGet(t *testing.T) {
	t.Parallel()

	info := version.Get()
	assert.Equal(t, version.String(), info.Version)
	assert.Equal(t, version.Major, info.Major)
	assert.Equal(t, version.Minor, info.Minor)
	assert.Equal(t, version.Patch, info.Patch)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.NotEmpty(t, info.Revision)
	assert.Equal(t, version.Revision(), info.Revision)
}

func TestRevisionFromSettings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		settings []debug.BuildSetting
		want     string
	}{
		"none": {
			want: "unknown",
		},
		"clean": {
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.modified", Value: "false"},
			},
			want: "abc123",
		},
		"dirty": {
			settings: []debug.BuildSetting{
				{Key: "vcs.modified", Value: "true"},
				{Key: "vcs.revision", Value: "abc123"},
			},
			want: "abc123-dirty",
		},
		"modified without revision": {
			settings: []debug.BuildSetting{
				{Key: "vcs.modified", Value: "true"},
			},
			want: "unknown",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, version.RevisionFromSettings(tc.settings))
		})
	}
}
