package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/internal/engine"
	"github.com/spf13/cobra"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "tokens <input...>",
		Short: "Show the tokens of a program",
		Long: `Tokenize a program and list its tokens with their kind, precedence
tier and position. The list ends with the EOF token.`,
		Example: `  leapcalc tokens "2 plus 3 * four"
  leapcalc tokens --lang query "SELECT a FROM t WHERE a > 1"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := engine.ParseLanguage(lang)
			if err != nil {
				return err
			}
			return runTokens(cmd, l, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&lang, "lang", string(engine.LangCalc), "Language: calc or query")
	_ = cmd.RegisterFlagCompletionFunc("lang", completeLanguages)

	return cmd
}

func runTokens(cmd *cobra.Command, lang engine.Language, input string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	toks, err := cmdCtx.Engine.Tokens(lang, input)
	if err != nil {
		return reportError(r, input, err)
	}
	return renderTokens(r, toks)
}

func renderTokens(r *output.Renderer, toks []engine.TokenInfo) error {
	if r.Structured() {
		return r.Data(toks)
	}

	rows := make([][]string, len(toks))
	for i, t := range toks {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			t.Kind,
			t.Tier,
			t.Literal,
			fmt.Sprintf("%d:%d", t.Line, t.Column),
		}
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Tokens"))
		r.Println("")
	}
	r.Table([]string{"#", "Kind", "Tier", "Literal", "Position"}, rows)
	return nil
}
