package calc

import "github.com/leapstack-labs/leapcalc/pkg/token"

// Grammar rule names, used in ParseError.Rule and in Grammar().
const (
	RuleExpression     = "Expression"
	RuleAddition       = "AdditionExpression"
	RuleMultiplication = "MultiplicationExpression"
	RuleAtomic         = "AtomicExpression"
	RuleParenthesis    = "ParenthesisExpression"
	RulePowerCall      = "PowerCall"
)

// Parser builds a syntax tree from a token sequence with one token of
// lookahead. It never backtracks.
type Parser struct {
	tokens []token.Token
	pos    int
}

// NewParser creates a parser over tokens, which should end with EOF.
func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a complete expression. All input must be consumed.
func (p *Parser) Parse() (*Expression, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}
	return expr, nil
}

// ---------- Token Helpers ----------

// current returns the lookahead token. Past the end it is EOF.
func (p *Parser) current() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	if n := len(p.tokens); n > 0 {
		return token.Token{Kind: token.EOF, Pos: p.tokens[n-1].Pos}
	}
	return token.Token{Kind: token.EOF, Pos: token.Position{Line: 1, Column: 1}}
}

// advance consumes and returns the lookahead token.
func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the lookahead token if it is of kind k.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if tok := p.current(); tok.Kind != k {
		return token.Token{}, token.Unexpected(tok, "", k)
	}
	return p.advance(), nil
}

// ---------- Rules ----------

func (p *Parser) parseExpression() (*Expression, error) {
	add, err := p.parseAddition()
	if err != nil {
		return nil, err
	}
	return &Expression{Addition: add}, nil
}

func (p *Parser) parseAddition() (*AdditionExpression, error) {
	lhs, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}
	n := &AdditionExpression{Operands: []*MultiplicationExpression{lhs}}
	for p.current().Kind.Tier() == token.TierAddition {
		n.Operators = append(n.Operators, p.advance())
		rhs, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}
		n.Operands = append(n.Operands, rhs)
	}
	return n, nil
}

func (p *Parser) parseMultiplication() (*MultiplicationExpression, error) {
	lhs, err := p.parseAtomic()
	if err != nil {
		return nil, err
	}
	n := &MultiplicationExpression{Operands: []*AtomicExpression{lhs}}
	for p.current().Kind.Tier() == token.TierMultiplication {
		n.Operators = append(n.Operators, p.advance())
		rhs, err := p.parseAtomic()
		if err != nil {
			return nil, err
		}
		n.Operands = append(n.Operands, rhs)
	}
	return n, nil
}

// atomicStart lists the kinds that select an AtomicExpression alternative.
func atomicStart() []token.Kind {
	return []token.Kind{token.NUMBER, token.LPAREN, token.POWER}
}

func (p *Parser) parseAtomic() (*AtomicExpression, error) {
	var (
		inner Node
		err   error
	)
	switch tok := p.current(); tok.Kind {
	case token.LPAREN:
		inner, err = p.parseParenthesis()
	case token.NUMBER:
		inner = &NumberLiteral{Token: p.advance()}
	case token.POWER:
		inner, err = p.parsePowerCall()
	default:
		return nil, token.Unexpected(tok, RuleAtomic, atomicStart()...)
	}
	if err != nil {
		return nil, err
	}
	return &AtomicExpression{Inner: inner}, nil
}

func (p *Parser) parseParenthesis() (*ParenthesisExpression, error) {
	lparen, err := p.expect(token.LPAREN)
	if err != nil {
		return nil, err
	}
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	rparen, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return &ParenthesisExpression{LParen: lparen, Inner: inner, RParen: rparen}, nil
}

func (p *Parser) parsePowerCall() (*PowerCall, error) {
	keyword, err := p.expect(token.POWER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	base, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	exponent, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	rparen, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return &PowerCall{Keyword: keyword, Base: base, Exponent: exponent, RParen: rparen}, nil
}
