/*
Package cli implements the circprog command line.

Commands:

	circprog run       animate the indicator in the terminal
	circprog frame     print a single frame at a chosen moment
	circprog mcp       serve the frame tools over MCP on stdio
	circprog version   print the version

Every flag can also be set through an environment variable named
CIRCPROG_<FLAG>, with dashes replaced by underscores (for example
CIRCPROG_METRICS_ADDR).
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"circprog/internal/config"
	"circprog/internal/logger"
)

// envPrefix is the prefix of environment variables bound to flags.
const envPrefix = "CIRCPROG"

// app carries the state shared by all commands.
type app struct {
	v       *viper.Viper
	fs      afero.Fs
	version string
}

// NewRootCommand builds the command tree. Configuration files are read from
// fs.
func NewRootCommand(version string, fs afero.Fs) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	a := &app{v: v, fs: fs, version: version}

	root := &cobra.Command{
		Use:           "circprog",
		Short:         "Circular progress indicator for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "YAML file of indicator options")
	root.PersistentFlags().StringArrayP("set", "s", nil, "Indicator option as key=value, may be repeated (e.g. --set mode=determinate)")
	root.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v debug, -vv trace)")

	root.AddCommand(
		a.newRunCommand(),
		a.newFrameCommand(),
		a.newMCPCommand(),
		a.newVersionCommand(),
	)
	return root
}

// Execute runs the command line with args and returns the command error.
func Execute(ctx context.Context, version string, args []string, out, errOut io.Writer) error {
	root := NewRootCommand(version, afero.NewOsFs())
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

// loadConfig builds the indicator configuration from --config and --set.
func (a *app) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := a.v.GetString("config"); path != "" {
		loaded, err := config.LoadFS(a.fs, path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	opts, err := parseOptions(a.v.GetStringSlice("set"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(opts); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseOptions turns key=value pairs into an option map.
func parseOptions(pairs []string) (map[string]any, error) {
	opts := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q: expected key=value", pair)
		}
		opts[key] = strings.TrimSpace(value)
	}
	return opts, nil
}

// newLogger creates the logger for a command, writing to its error stream.
func (a *app) newLogger(cmd *cobra.Command) logger.Logger {
	return logger.New(logger.Config{
		Verbosity: a.v.GetInt("verbose"),
		Output:    cmd.ErrOrStderr(),
	})
}
