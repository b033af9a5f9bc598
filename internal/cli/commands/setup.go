package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/internal/engine"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrReported is returned by commands that have already written their
// failure to the user. The caller should exit non-zero without printing it.
var ErrReported = errors.New("failure already reported")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the configuration and
// logger stored on the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   newEngine(cfg, logger, cfg.Calc.Words, cfg.Calc.Spell),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

func newEngine(cfg *config.Config, logger *slog.Logger, words, spell bool) *engine.Engine {
	opts := cfg.Calc.Options()
	opts.Words = words
	return engine.New(engine.Config{
		Calc:   opts,
		Spell:  spell,
		Logger: logger,
	})
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// source is where a command's program text comes from.
type source struct {
	text string
	file string // set when read from a file
	repl bool   // no input given on a terminal
}

// readSource resolves program text from arguments, a file or piped stdin,
// in that order.
func readSource(cmd *cobra.Command, args []string, file string) (source, error) {
	switch {
	case len(args) > 0:
		return source{text: strings.Join(args, " ")}, nil
	case file != "":
		text, err := readFile(file)
		if err != nil {
			return source{}, err
		}
		return source{text: text, file: file}, nil
	case !isTerminal(cmd.InOrStdin()):
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return source{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return source{text: strings.TrimSpace(string(content))}, nil
	default:
		return source{repl: true}, nil
	}
}

func readFile(path string) (string, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}

// reportError presents a failed run: as a document in structured modes,
// as a message with the offending source line otherwise.
func reportError(r *output.Renderer, src string, err error) error {
	if r.Structured() {
		if derr := r.Data(engine.DescribeError(err)); derr != nil {
			return derr
		}
		return ErrReported
	}
	r.SourceError(src, err)
	return ErrReported
}

func completeLanguages(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return engine.Languages(), cobra.ShellCompDirectiveNoFileComp
}
