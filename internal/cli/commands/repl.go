package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/internal/engine"
	"github.com/spf13/cobra"
)

// session is the state of an interactive REPL.
type session struct {
	cmdCtx *CommandContext
	lang   engine.Language
	words  bool
	spell  bool
}

// newSession starts from the lexicon and spelling of the command's engine,
// so flags such as --symbols-only carry into the session.
func newSession(cmdCtx *CommandContext, lang engine.Language) *session {
	return &session{
		cmdCtx: cmdCtx,
		lang:   lang,
		words:  cmdCtx.Engine.Words(),
		spell:  cmdCtx.Engine.Spells(),
	}
}

func (s *session) rebuild() {
	s.cmdCtx.Engine = newEngine(s.cmdCtx.Cfg, s.cmdCtx.Logger, s.words, s.spell)
}

func (s *session) prompt() string {
	return string(s.lang) + "> "
}

func (s *session) out() *output.Renderer {
	return s.cmdCtx.Renderer
}

// handle runs one input line and reports whether the session should end.
func (s *session) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return s.dotCommand(line)
	}

	res, err := s.cmdCtx.Engine.Run(s.lang, line)
	if err != nil {
		_ = reportError(s.out(), line, err)
		return false
	}
	if res.Eval != nil {
		err = renderEval(s.out(), res.Eval)
	} else {
		err = renderQuery(s.out(), res.Query)
	}
	if err != nil {
		s.out().Error(err.Error())
	}
	return false
}

func (s *session) dotCommand(line string) bool {
	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	r := s.out()

	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".lang":
		if arg == "" {
			r.Println(string(s.lang))
			return false
		}
		lang, err := engine.ParseLanguage(arg)
		if err != nil {
			r.Error(err.Error())
			return false
		}
		s.lang = lang

	case ".words":
		s.words = true
		s.rebuild()
		r.Muted("word operators and number words enabled")

	case ".symbols":
		s.words = false
		s.rebuild()
		r.Muted("symbols only")

	case ".spell":
		s.spell = !s.spell
		s.rebuild()
		if s.spell {
			r.Muted("spelling results")
		} else {
			r.Muted("not spelling results")
		}

	case ".tokens":
		if arg == "" {
			r.Warning("Usage: .tokens <input>")
			return false
		}
		toks, err := s.cmdCtx.Engine.Tokens(s.lang, arg)
		if err != nil {
			_ = reportError(r, arg, err)
			return false
		}
		if err := renderTokens(r, toks); err != nil {
			r.Error(err.Error())
		}

	default:
		r.Warning(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .lang [name]     Show or switch the language (calc, query)
  .words           Accept word operators and number words
  .symbols         Accept symbols only
  .spell           Toggle spelling results out in words
  .tokens <input>  Show the tokens of an input
  .quit / .exit    Exit the REPL

Tips:
  - Each line is one program
  - Use arrow keys to navigate history
  - Tab completes commands and keywords
`
	_, _ = fmt.Fprintln(w, help)
}

// historyFile returns the REPL history path, or "" when no cache
// directory is available.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "leapcalc")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

func newCompleter() *readline.PrefixCompleter {
	langs := make([]readline.PrefixCompleterInterface, 0, len(engine.Languages()))
	for _, l := range engine.Languages() {
		langs = append(langs, readline.PcItem(l))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".lang", langs...),
		readline.PcItem(".words"),
		readline.PcItem(".symbols"),
		readline.PcItem(".spell"),
		readline.PcItem(".tokens"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
		readline.PcItem("power("),
		readline.PcItem("SELECT"),
	)
}

func runREPL(cmd *cobra.Command, cmdCtx *CommandContext, lang engine.Language) error {
	s := newSession(cmdCtx, lang)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     historyFile(),
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "leapcalc %s session\n", lang)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			// io.EOF on Ctrl+D
			break
		}
		if s.handle(line) {
			break
		}
		rl.SetPrompt(s.prompt())
	}
	return nil
}
