package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/leapstack-labs/leapcalc/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// newTestRoot wraps sub in a root command that loads configuration the way
// the real root does, with a test logger.
func newTestRoot(t *testing.T, sub *cobra.Command) *cobra.Command {
	t.Helper()
	root := &cobra.Command{
		Use:           "leapcalc",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			res, err := config.Load("", cmd.Flags())
			if err != nil {
				return err
			}
			ctx := config.WithConfig(cmd.Context(), res.Config)
			ctx = config.WithLogger(ctx, testutil.NewTestLogger(t))
			cmd.SetContext(ctx)
			return nil
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	root.PersistentFlags().StringP("output", "o", "", "Output format")
	root.AddCommand(sub)
	return root
}

// execute runs sub with args and stdin from an empty working directory.
func execute(t *testing.T, sub *cobra.Command, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Chdir(t.TempDir())

	root := newTestRoot(t, sub)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewEvalCommand(), "eval [expression...]", []string{"file", "watch", "spell", "symbols-only", "debounce"}},
		{NewQueryCommand(), "query [SQL...]", []string{"file", "watch", "out", "interactive", "debounce"}},
		{NewTokensCommand(), "tokens <input...>", []string{"lang"}},
		{NewBatchCommand(), "batch <file>", []string{"lang", "workers"}},
		{NewServeCommand(), "serve", []string{"addr"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Long, "Long should not be empty")
			assert.NotEmpty(t, tt.cmd.Example, "Example should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestFileShorthands(t *testing.T) {
	assert.Equal(t, "f", NewEvalCommand().Flags().Lookup("file").Shorthand)
	assert.Equal(t, "f", NewQueryCommand().Flags().Lookup("file").Shorthand)
	assert.Equal(t, "i", NewQueryCommand().Flags().Lookup("interactive").Shorthand)
}
