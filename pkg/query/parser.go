package query

import "github.com/leapstack-labs/leapcalc/pkg/token"

// Grammar rule names, used in ParseError.Rule and in Grammar().
const (
	RuleSelectStatement = "SelectStatement"
	RuleSelectClause    = "SelectClause"
	RuleFromClause      = "FromClause"
	RuleWhereClause     = "WhereClause"
	RuleComparison      = "Comparison"
	RuleAtomic          = "Atomic"
)

// Parser builds a query syntax tree with one token of lookahead.
type Parser struct {
	tokens []token.Token
	pos    int
}

// NewParser creates a parser over tokens, which should end with EOF.
func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses one statement. All input must be consumed.
func (p *Parser) Parse() (*SelectStatement, error) {
	sel, err := p.parseSelectClause()
	if err != nil {
		return nil, err
	}
	from, err := p.parseFromClause()
	if err != nil {
		return nil, err
	}
	stmt := &SelectStatement{Select: sel, From: from}

	switch tok := p.current(); tok.Kind {
	case token.WHERE:
		if stmt.Where, err = p.parseWhereClause(); err != nil {
			return nil, err
		}
	case token.EOF:
	default:
		return nil, token.Unexpected(tok, "", token.WHERE, token.EOF)
	}

	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}
	return stmt, nil
}

// ---------- Token Helpers ----------

func (p *Parser) current() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	if n := len(p.tokens); n > 0 {
		return token.Token{Kind: token.EOF, Pos: p.tokens[n-1].Pos}
	}
	return token.Token{Kind: token.EOF, Pos: token.Position{Line: 1, Column: 1}}
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if tok := p.current(); tok.Kind != k {
		return token.Token{}, token.Unexpected(tok, "", k)
	}
	return p.advance(), nil
}

// ---------- Rules ----------

func (p *Parser) parseSelectClause() (*SelectClause, error) {
	kw, err := p.expect(token.SELECT)
	if err != nil {
		return nil, err
	}
	col, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	n := &SelectClause{Keyword: kw, Columns: []token.Token{col}}
	for p.current().Kind == token.COMMA {
		p.advance()
		col, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		n.Columns = append(n.Columns, col)
	}
	return n, nil
}

func (p *Parser) parseFromClause() (*FromClause, error) {
	kw, err := p.expect(token.FROM)
	if err != nil {
		return nil, err
	}
	table, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	return &FromClause{Keyword: kw, Table: table}, nil
}

func (p *Parser) parseWhereClause() (*WhereClause, error) {
	kw, err := p.expect(token.WHERE)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	return &WhereClause{Keyword: kw, Condition: cond}, nil
}

func (p *Parser) parseComparison() (*Comparison, error) {
	lhs, err := p.parseAtomic()
	if err != nil {
		return nil, err
	}
	op := p.current()
	if op.Kind.Tier() != token.TierComparison {
		return nil, token.Unexpected(op, "", token.LT, token.GT)
	}
	p.advance()
	rhs, err := p.parseAtomic()
	if err != nil {
		return nil, err
	}
	return &Comparison{LHS: lhs, Operator: op, RHS: rhs}, nil
}

// atomicStart lists the kinds that select an Atomic alternative.
func atomicStart() []token.Kind {
	return []token.Kind{token.IDENT, token.INTEGER}
}

func (p *Parser) parseAtomic() (token.Token, error) {
	switch tok := p.current(); tok.Kind {
	case token.INTEGER, token.IDENT:
		return p.advance(), nil
	default:
		return token.Token{}, token.Unexpected(tok, RuleAtomic, atomicStart()...)
	}
}
