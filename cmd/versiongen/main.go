package main

import (
	"fmt"
	"os"

	"github.com/nqst/nyquist/internal/cli"
)

func main() {
	if err := cli.NewVersionGenCmd("versiongen").Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
