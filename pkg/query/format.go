package query

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/leapcalc/pkg/token"
)

const indentSize = 2

// printer writes query text, either on one line or one clause per line.
type printer struct {
	output      *bytes.Buffer
	multiline   bool
	depth       int
	atLineStart bool
}

func newPrinter(multiline bool) *printer {
	return &printer{output: &bytes.Buffer{}, multiline: multiline, atLineStart: true}
}

func (p *printer) String() string {
	return strings.TrimRight(p.output.String(), "\n")
}

func (p *printer) write(s string) {
	if p.atLineStart && len(s) > 0 {
		for i := 0; i < p.depth*indentSize; i++ {
			p.output.WriteByte(' ')
		}
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

// sep ends a clause: a newline in multiline mode, a space otherwise.
func (p *printer) sep() {
	if p.multiline {
		p.output.WriteByte('\n')
		p.atLineStart = true
		return
	}
	p.output.WriteByte(' ')
}

func (p *printer) kw(k token.Kind) {
	p.write(k.String())
}

func (p *printer) statement(s *Statement) {
	p.kw(token.SELECT)
	if p.multiline && len(s.Select.Columns) > 1 {
		p.depth++
		for i, col := range s.Select.Columns {
			p.sep()
			p.write(col)
			if i < len(s.Select.Columns)-1 {
				p.write(",")
			}
		}
		p.depth--
	} else {
		p.write(" " + strings.Join(s.Select.Columns, ", "))
	}

	p.sep()
	p.kw(token.FROM)
	p.write(" " + s.From.Table)

	if s.Where != nil {
		c := s.Where.Condition
		p.sep()
		p.kw(token.WHERE)
		p.write(" " + c.LHS + " " + c.Operator + " " + c.RHS)
	}
}

// Format renders s as canonical single-line query text. Parsing the result
// yields a Statement equal to s.
func Format(s *Statement) string {
	p := newPrinter(false)
	p.statement(s)
	return p.String()
}

// Pretty renders s with one clause per line and an indented column list
// when more than one column is selected.
func Pretty(s *Statement) string {
	p := newPrinter(true)
	p.statement(s)
	return p.String()
}
