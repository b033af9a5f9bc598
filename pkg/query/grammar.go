package query

import (
	g "github.com/leapstack-labs/leapcalc/pkg/grammar"
	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// Grammar returns the grammar the parser implements, for static checks.
func Grammar() *g.Grammar {
	return g.New(RuleSelectStatement,
		g.NewRule(RuleSelectStatement,
			g.Seq(g.Ref(RuleSelectClause), g.Ref(RuleFromClause), g.Optional(g.Ref(RuleWhereClause)))),
		g.NewRule(RuleSelectClause,
			g.Seq(g.Tok(token.SELECT), g.Tok(token.IDENT), g.Many(g.Tok(token.COMMA), g.Tok(token.IDENT)))),
		g.NewRule(RuleFromClause,
			g.Seq(g.Tok(token.FROM), g.Tok(token.IDENT))),
		g.NewRule(RuleWhereClause,
			g.Seq(g.Tok(token.WHERE), g.Ref(RuleComparison))),
		g.NewRule(RuleComparison,
			g.Seq(g.Ref(RuleAtomic), g.Tier(token.TierComparison), g.Ref(RuleAtomic))),
		g.NewRule(RuleAtomic,
			g.Seq(g.Tok(token.INTEGER)),
			g.Seq(g.Tok(token.IDENT))),
	)
}
