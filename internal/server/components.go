package server

import (
	"encoding/json"
	"strings"

	"github.com/leapstack-labs/leapcalc/internal/engine"
)

// pageData is the state the playground opens with.
type pageData struct {
	Expression string
	SQL        string
	Runs       int
	History    []Entry
}

// panelData is the content of the result panel.
type panelData struct {
	Lang    engine.Language
	Input   string
	Output  string
	Detail  string // pretty-printed query description
	Error   string
	Source  string // failing source line
	Marker  string // caret under the failing position
	Runs    int
	Message string
}

// signalsJSON is the playground's initial signal set. The attribute value
// is HTML-escaped as a whole, so JSON's own HTML escaping is turned off.
func signalsJSON(d pageData) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(map[string]string{
		"expression": d.Expression,
		"sql":        d.SQL,
	})
	return strings.TrimSpace(b.String())
}
