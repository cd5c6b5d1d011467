package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nqst/nyquist/pkg/log"
	"github.com/nqst/nyquist/pkg/version"
)

// ErrInvalidArgument indicates a flag could not be read or has an unusable value.
var ErrInvalidArgument = errors.New("invalid argument")

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
	}

	addLogFlags(cmd)

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func addLogFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "text", "Set the log format (text, logfmt, json)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		vals, err := getStrings(cc.Flags(), "log_level", "log_format")
		if err != nil {
			return err
		}

		h, err := log.CreateHandler(cc.ErrOrStderr(), vals["log_level"], vals["log_format"])
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}

		slog.SetDefault(slog.New(h))

		slog.Debug("ready to go", "command", cc.CommandPath(), "build", version.Banner(cc.Root().Name()))

		return nil
	}
}

// getStrings looks up string flags by name, reporting every lookup failure.
func getStrings(flags *pflag.FlagSet, names ...string) (map[string]string, error) {
	var merr error

	vals := make(map[string]string, len(names))

	for _, name := range names {
		v, err := flags.GetString(name)
		if err != nil {
			merr = multierror.Append(merr, err)

			continue
		}

		vals[name] = v
	}

	if merr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
	}

	return vals, nil
}
