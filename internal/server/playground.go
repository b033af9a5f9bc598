package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/leapstack-labs/leapcalc/internal/engine"
	"github.com/leapstack-labs/leapcalc/pkg/query"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	sessionName     = "leapcalc"
	sessionRuns     = "runs"
	sessionLastLang = "lang"

	defaultExpression = "2 plus 3 times four"
)

// playgroundSignals represents the signals sent from the frontend.
type playgroundSignals struct {
	Expression string `json:"expression"`
	SQL        string `json:"sql"`
}

// playgroundPage renders the playground shell.
func (s *Server) playgroundPage(w http.ResponseWriter, r *http.Request) {
	d := pageData{
		Expression: defaultExpression,
		SQL:        s.defaultQuery,
		Runs:       s.sessionRuns(r),
		History:    s.history.Entries(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page(d).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// evalSSE evaluates the expression signal and patches the result panel.
func (s *Server) evalSSE(w http.ResponseWriter, r *http.Request) {
	s.runSSE(w, r, engine.LangCalc)
}

// querySSE parses the sql signal and patches the result panel.
func (s *Server) querySSE(w http.ResponseWriter, r *http.Request) {
	s.runSSE(w, r, engine.LangQuery)
}

func (s *Server) runSSE(w http.ResponseWriter, r *http.Request, lang engine.Language) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals playgroundSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.PatchElementTempl(resultPanel(panelData{
			Message: "Failed to read signals: " + err.Error(),
		}))
		return
	}

	input := signals.Expression
	if lang == engine.LangQuery {
		input = signals.SQL
	}

	// The session cookie must be set before the event stream starts.
	runs := s.countRun(w, r, lang)

	sse := datastar.NewSSE(w, r)

	id := uuid.NewString()
	res, err := s.engine.Run(lang, input)
	panel := panelData{Lang: lang, Input: input, Runs: runs}
	if err != nil {
		s.record(id, lang, input, "", err)
		panel.Error = err.Error()
		if pos, ok := engine.Position(err); ok {
			panel.Source, panel.Marker = engine.SourceLine(input, pos)
		}
	} else {
		panel.Output = res.Summary()
		if res.Query != nil {
			panel.Detail = query.Pretty(res.Query.Statement)
		}
		s.record(id, lang, input, panel.Output, nil)
	}

	if err := sse.PatchElementTempl(resultPanel(panel)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// historySSE streams the shared history, re-sending it after every run
// until the client goes away.
func (s *Server) historySSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := s.history.Subscribe()
	defer s.history.Unsubscribe(updates)

	if err := sse.PatchElementTempl(historyList(s.history.Entries())); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-updates:
			if err := sse.PatchElementTempl(historyList(s.history.Entries())); err != nil {
				return
			}
		}
	}
}

// sessionRuns returns how many programs the caller's session has run.
func (s *Server) sessionRuns(r *http.Request) int {
	session, err := s.sessionStore.Get(r, sessionName)
	if err != nil {
		return 0
	}
	runs, _ := session.Values[sessionRuns].(int)
	return runs
}

// countRun increments the caller's run counter and returns the new count.
// A session that cannot be decoded starts over.
func (s *Server) countRun(w http.ResponseWriter, r *http.Request, lang engine.Language) int {
	session, err := s.sessionStore.Get(r, sessionName)
	if err != nil {
		s.logger.Debug("discarding invalid session", "error", err)
	}
	runs, _ := session.Values[sessionRuns].(int)
	runs++
	session.Values[sessionRuns] = runs
	session.Values[sessionLastLang] = string(lang)
	if err := session.Save(r, w); err != nil {
		s.logger.Error("failed to save session", "error", err)
	}
	return runs
}
