package calc

import (
	g "github.com/leapstack-labs/leapcalc/pkg/grammar"
	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// Grammar returns the grammar the parser implements, for static checks.
func Grammar() *g.Grammar {
	return g.New(RuleExpression,
		g.NewRule(RuleExpression,
			g.Seq(g.Ref(RuleAddition))),
		g.NewRule(RuleAddition,
			g.Seq(g.Ref(RuleMultiplication),
				g.Many(g.Tier(token.TierAddition), g.Ref(RuleMultiplication)))),
		g.NewRule(RuleMultiplication,
			g.Seq(g.Ref(RuleAtomic),
				g.Many(g.Tier(token.TierMultiplication), g.Ref(RuleAtomic)))),
		g.NewRule(RuleAtomic,
			g.Seq(g.Ref(RuleParenthesis)),
			g.Seq(g.Tok(token.NUMBER)),
			g.Seq(g.Ref(RulePowerCall))),
		g.NewRule(RuleParenthesis,
			g.Seq(g.Tok(token.LPAREN), g.Ref(RuleExpression), g.Tok(token.RPAREN))),
		g.NewRule(RulePowerCall,
			g.Seq(g.Tok(token.POWER), g.Tok(token.LPAREN), g.Ref(RuleExpression),
				g.Tok(token.COMMA), g.Ref(RuleExpression), g.Tok(token.RPAREN))),
	)
}
