package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestWithContext(t *testing.T) {
	var got Input
	c := NewCLI("test", "test cli")
	c.AddCommands(&cobra.Command{
		Use: "echo",
		RunE: WithContext(func(ctx context.Context, input Input) error {
			got = input
			input.Logger.Debug("hidden")
			input.Logger.Warn("visible", "key", "value")
			return nil
		}),
	}, nil)

	var stderr, stdout bytes.Buffer
	c.rootCmd.SetErr(&stderr)
	c.rootCmd.SetOut(&stdout)
	c.rootCmd.SetArgs([]string{"echo", "--log-level", "warn", "--log-format", "json", "a", "b"})
	require.NoError(t, c.rootCmd.ExecuteContext(context.Background()))

	require.Equal(t, []string{"a", "b"}, got.Args)
	require.Same(t, &stdout, got.Stdout)
	require.NotContains(t, stderr.String(), "hidden")
	require.Contains(t, stderr.String(), `"msg":"visible"`)
}

func TestWithContextInvalidLogFlags(t *testing.T) {
	run := WithContext(func(context.Context, Input) error { return nil })

	for _, args := range [][]string{
		{"noop", "--log-level", "loud"},
		{"noop", "--log-format", "xml"},
	} {
		c := NewCLI("test", "test cli")
		c.AddCommands(&cobra.Command{Use: "noop", RunE: run})
		c.rootCmd.SetErr(&bytes.Buffer{})
		c.rootCmd.SetArgs(args)
		require.Error(t, c.rootCmd.ExecuteContext(context.Background()))
	}
}
