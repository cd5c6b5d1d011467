package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/nqst/nyquist/internal/cli"
)

const (
	cmdName = "nyquist"

	shortDesc = "The nyquist Command Line Interface (CLI)."
	longDesc  = `The nyquist Command Line Interface (CLI).

Reports the version of this nyquist build and checks it against version
constraints, for use in scripts and compatibility checks.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
