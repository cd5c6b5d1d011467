package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nqst/nyquist/pkg/versiongen"
)

const versionGenDesc = `Render the version stamp of package version from the project manifest.

The manifest's version is validated and its major, minor and patch components
are substituted into the version template. Any placeholder that cannot be
resolved fails the command, so go generate never writes a partial file.
`

// NewVersionGenCmd returns the root command of the version stamp generator.
func NewVersionGenCmd(name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name,
		Short:         "Generate the version stamp",
		Long:          versionGenDesc,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			vals, err := getStrings(cc.Flags(), "manifest", "version", "output", "package")
			if err != nil {
				return err
			}

			check, err := cc.Flags().GetBool("check")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			return generateVersion(vals, check)
		},
	}

	addLogFlags(cmd)

	cmd.Flags().String("manifest", "nyquist.yaml", "Path to the project manifest")
	cmd.Flags().String("version", "", "Version to stamp instead of the manifest's (e.g. a git tag)")
	cmd.Flags().StringP("output", "o", "zz_generated.version.go", "Path of the generated file")
	cmd.Flags().String("package", "version", "Package name of the generated file")
	cmd.Flags().Bool("check", false, "Verify the generated file is up to date instead of writing it")

	if err := cmd.MarkFlagFilename("manifest", "yaml", "yml"); err != nil {
		panic(err)
	}

	return cmd
}

func generateVersion(vals map[string]string, check bool) error {
	manifest := vals["manifest"]

	m, err := versiongen.LoadManifest(manifest)
	if err != nil {
		return err //nolint:wrapcheck
	}

	raw := m.Version
	if vals["version"] != "" {
		slog.Debug("overriding manifest version", "manifest", m.Version, "version", vals["version"])

		raw = vals["version"]
	}

	stamp, err := versiongen.Parse(raw)
	if err != nil {
		return err //nolint:wrapcheck
	}

	out, err := versiongen.Render(versiongen.Options{
		Project:  m.Name,
		Package:  vals["package"],
		Manifest: manifest,
		Stamp:    stamp,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", vals["output"], err)
	}

	if check {
		if err := versiongen.Check(vals["output"], out); err != nil {
			return err //nolint:wrapcheck
		}

		slog.Info("version stamp is up to date", "path", vals["output"], "version", stamp.String())

		return nil
	}

	changed, err := versiongen.Write(vals["output"], out)
	if err != nil {
		return err //nolint:wrapcheck
	}

	slog.Info("wrote version stamp", "path", vals["output"], "version", stamp.String(), "changed", changed)

	return nil
}
