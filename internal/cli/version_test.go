package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nqst/nyquist/internal/cli"
	"github.com/nqst/nyquist/pkg/version"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	tc := cli.NewRootCmd("test_version", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	tc.SetArgs(args)
	tc.SetOut(stdout)
	tc.SetErr(stderr)

	err := tc.Execute()

	return stdout.String(), stderr.String(), err
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Regexp(t, `\d+\.\d+\.\d+`, stdout)
	assert.Equal(t, version.String()+"\n", stdout)
	assert.Empty(t, stderr)
}

func TestVersionFlag(t *testing.T) {
	t.Parallel()

	stdout, _, err := executeRoot(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, version.String())
}

func TestVersionCmdLong(t *testing.T) {
	t.Parallel()

	stdout, _, err := executeRoot(t, "version", "--long")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Version:    "+version.String()+"\n")
	assert.Contains(t, stdout, "Revision:   "+version.Revision()+"\n")
	assert.Contains(t, stdout, "Platform:   ")
}

func TestVersionCmdJSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := executeRoot(t, "version", "--output", "json")
	require.NoError(t, err)

	var got version.Info
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, version.Get(), got)
}

func TestVersionCmdYAML(t *testing.T) {
	t.Parallel()

	stdout, _, err := executeRoot(t, "version", "-o", "yaml")
	require.NoError(t, err)

	var got version.Info
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, version.Get(), got)
}

func TestVersionCmdCheck(t *testing.T) {
	t.Parallel()

	next := fmt.Sprintf("%d.0.0", version.Major+1)

	stdout, _, err := executeRoot(t, "version", "--check", ">= "+version.String())
	require.NoError(t, err)
	assert.Equal(t, version.String()+"\n", stdout)

	stdout, _, err = executeRoot(t, "version", "--check", ">= "+next)
	require.ErrorIs(t, err, cli.ErrIncompatible)
	assert.Empty(t, stdout)

	_, _, err = executeRoot(t, "version", "--check", "not a constraint")
	require.ErrorIs(t, err, cli.ErrInvalidArgument)
	require.ErrorIs(t, err, version.ErrInvalidConstraint)
}

func TestVersionCmdErrors(t *testing.T) {
	t.Parallel()

	_, _, err := executeRoot(t, "version", "--output", "xml")
	require.ErrorIs(t, err, cli.ErrInvalidArgument)

	_, _, err = executeRoot(t, "version", "extra")
	require.Error(t, err)
}
