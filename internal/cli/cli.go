package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/spectrokit/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables mirroring the
// global flags, e.g. SPECTROKIT_LOG_LEVEL.
const EnvPrefix = "SPECTROKIT"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// command carries the state shared by all subcommands of one invocation.
type command struct {
	v    *viper.Viper
	outW io.Writer
	errW io.Writer
}

// NewRootCommand builds the command tree. Results go to outW, logs to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	c := &command{v: viper.New(), outW: outW, errW: errW}
	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "spectrokit",
		Short: "Spectrokit - schema-driven model specifications for global spectral analysis.",
		Long: `Spectrokit reads kinetic model specifications and parameter sets,
validates them against each other, and converts them between formats.

Global flags can also be set through SPECTROKIT_* environment variables,
for example SPECTROKIT_LOG_LEVEL=debug.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringP("project", "C", ".", "Path to the project folder.")
	flags.Bool("ignore-unknown", false, "Ignore unrecognized top-level keys instead of failing.")
	flags.StringToString("default-type", nil, "Type used for items without one, as category=type. Repeatable.")
	for _, name := range []string{"log-level", "log-format", "project", "ignore-unknown", "default-type"} {
		if err := c.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag '%s': %v", name, err))
		}
	}

	root.AddCommand(
		c.validateCommand(),
		c.showCommand(),
		c.convertCommand(),
		c.typesCommand(),
		c.projectCommand(),
	)
	return root
}

// Execute runs the command line args. Failures are returned as *ExitError:
// code 2 for usage and configuration problems, 1 otherwise.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return usageError(err)
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

// config reads the global flags, with environment overrides applied.
func (c *command) config() (*app.Config, error) {
	defaultTypes, err := stringMap(c.v.Get("default-type"))
	if err != nil {
		return nil, usageError(fmt.Errorf("default-type: %w", err))
	}
	cfg, err := app.NewConfig(app.Config{
		ProjectPath:   c.v.GetString("project"),
		LogFormat:     c.v.GetString("log-format"),
		LogLevel:      c.v.GetString("log-level"),
		IgnoreUnknown: c.v.GetBool("ignore-unknown"),
		DefaultTypes:  defaultTypes,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

func (c *command) newApp() (*app.App, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return app.NewApp(c.errW, cfg)
}

// stringMap reads a category=type map. Flags arrive already parsed; the
// environment variable arrives as the raw "k=v,k=v" string.
func stringMap(raw any) (map[string]string, error) {
	out := make(map[string]string)
	switch tv := raw.(type) {
	case nil:
	case map[string]string:
		for k, v := range tv {
			out[k] = v
		}
	case map[string]any:
		for k, v := range tv {
			out[k] = fmt.Sprint(v)
		}
	case string:
		for _, pair := range strings.Split(tv, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("'%s' must be in category=type form", pair)
			}
			out[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	default:
		return nil, fmt.Errorf("unsupported value %v", raw)
	}
	return out, nil
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
