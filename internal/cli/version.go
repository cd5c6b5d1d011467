package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nqst/nyquist/pkg/version"
)

const (
	versionExample = `  # Print the version
  nyquist version

  # Print build details as JSON
  nyquist version --output json

  # Fail unless this build is compatible with 1.x
  nyquist version --check ">= 1.0, < 2"
`
)

var (
	// ErrIncompatible indicates the build does not satisfy a version constraint.
	ErrIncompatible = errors.New("incompatible version")

	versionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Show version of the nyquist CLI",
		Example: versionExample,
		Args:    cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			vals, err := getStrings(cc.Flags(), "output", "check")
			if err != nil {
				return err
			}

			long, err := cc.Flags().GetBool("long")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			if c := vals["check"]; c != "" {
				slog.Debug("checking compatibility", "constraint", c)

				ok, err := version.Satisfies(c)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
				}

				if !ok {
					return fmt.Errorf("%w: %s does not satisfy %q", ErrIncompatible, version.String(), c)
				}
			}

			return writeVersion(cc.OutOrStdout(), vals["output"], long)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().Bool("long", false, "Show full build information in text output")
	cmd.Flags().String("check", "", "Exit with an error unless the version satisfies this constraint")

	return cmd
}

func writeVersion(w io.Writer, format string, long bool) error {
	info := version.Get()

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}

		return nil

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("marshal YAML: %w", err)
		}

		if err := enc.Close(); err != nil {
			return fmt.Errorf("marshal YAML: %w", err)
		}

		return nil

	case "text", "":
		v := info.Version
		if isTerminal(w) {
			v = versionStyle.Render(v)
		}

		if !long {
			_, err := fmt.Fprintln(w, v)

			return err //nolint:wrapcheck
		}

		_, err := fmt.Fprintf(w, "Version:    %s\nRevision:   %s\nGo version: %s\nPlatform:   %s\n",
			v, info.Revision, info.GoVersion, info.Platform)

		return err //nolint:wrapcheck
	}

	return fmt.Errorf("%w: unknown output format %q", ErrInvalidArgument, format)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}
