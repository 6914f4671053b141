package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// Input is handed to every command body.
type Input struct {
	Logger *slog.Logger
	Args   []string
	Stdout io.Writer
}

type CLI struct {
	rootCmd *cobra.Command
}

func NewCLI(name, short string) *CLI {
	rootCmd := &cobra.Command{
		Use:           name,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	return &CLI{rootCmd: rootCmd}
}

func (c *CLI) AddCommands(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		if cmd != nil {
			c.rootCmd.AddCommand(cmd)
		}
	}
}

// Run executes the root command with a context cancelled on SIGINT/SIGTERM.
func (c *CLI) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.rootCmd.ExecuteContext(ctx)
}

// WithContext adapts a command body to cobra's RunE.
func WithContext(fn func(ctx context.Context, input Input) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return fn(ctx, Input{
			Logger: logger,
			Args:   args,
			Stdout: cmd.OutOrStdout(),
		})
	}
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelName, err := cmd.Flags().GetString("log-level")
	if err != nil {
		levelName = "info"
	}
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		format = "text"
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", levelName)
	}
	opts := &slog.HandlerOptions{Level: level}

	out := cmd.ErrOrStderr()
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(out, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(out, opts)), nil
	default:
		return nil, errors.Newf("invalid log format %q", format)
	}
}
