package output

import (
	"fmt"

	"github.com/leapstack-labs/leapcalc/internal/engine"
)

// SourceError writes err to the diagnostics writer. Lexer and parser errors
// are followed by the offending line of src with a caret under the position.
func (r *Renderer) SourceError(src string, err error) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("Error: ")+err.Error())

	pos, ok := engine.Position(err)
	if !ok {
		return
	}
	line, marker := engine.SourceLine(src, pos)
	if line == "" && marker == "" {
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "  "+line)
	_, _ = fmt.Fprintln(r.errOut, "  "+r.styles.Caret.Render(marker))
}
