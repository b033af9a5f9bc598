package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/leapcalc/internal/engine"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// errorKindRequest marks a malformed request rather than a bad program.
const errorKindRequest = "request"

type evalRequest struct {
	Expression string `json:"expression"`
}

type queryRequest struct {
	SQL string `json:"sql"`
}

type evalResponse struct {
	ID string `json:"id"`
	*engine.EvalResult
}

type queryResponse struct {
	ID string `json:"id"`
	*engine.QueryResult
}

type tokensResponse struct {
	ID     string             `json:"id"`
	Lang   engine.Language    `json:"lang"`
	Tokens []engine.TokenInfo `json:"tokens"`
}

type errorResponse struct {
	ID string `json:"id"`
	engine.ErrorInfo
}

func (s *Server) apiEval(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	var req evalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeRequestError(w, id, err)
		return
	}

	res, err := s.engine.Eval(req.Expression)
	s.record(id, engine.LangCalc, req.Expression, summaryOf(res, nil), err)
	if err != nil {
		s.writeProgramError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, evalResponse{ID: id, EvalResult: res})
}

func (s *Server) apiQuery(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	var req queryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeRequestError(w, id, err)
		return
	}

	res, err := s.engine.Query(req.SQL)
	s.record(id, engine.LangQuery, req.SQL, summaryOf(nil, res), err)
	if err != nil {
		s.writeProgramError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{ID: id, QueryResult: res})
}

func (s *Server) apiTokens(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	lang := engine.LangCalc
	if v := r.URL.Query().Get("lang"); v != "" {
		var err error
		if lang, err = engine.ParseLanguage(v); err != nil {
			s.writeRequestError(w, id, err)
			return
		}
	}

	toks, err := s.engine.Tokens(lang, r.URL.Query().Get("input"))
	if err != nil {
		s.writeProgramError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, tokensResponse{ID: id, Lang: lang, Tokens: toks})
}

func (s *Server) apiHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.history.Entries())
}

// record adds a run to the shared history.
func (s *Server) record(id string, lang engine.Language, input, output string, err error) {
	e := Entry{
		ID:     id,
		Lang:   lang,
		Input:  input,
		Output: output,
		At:     time.Now().UTC(),
	}
	if err != nil {
		e.Output = ""
		e.Error = err.Error()
	}
	s.history.Add(e)
}

func summaryOf(eval *engine.EvalResult, q *engine.QueryResult) string {
	switch {
	case eval != nil:
		return (&engine.Result{Eval: eval}).Summary()
	case q != nil:
		return q.SQL
	}
	return ""
}

func (s *Server) writeRequestError(w http.ResponseWriter, id string, err error) {
	s.logger.Debug("bad request", "id", id, "error", err)
	writeJSON(w, http.StatusBadRequest, errorResponse{
		ID:        id,
		ErrorInfo: engine.ErrorInfo{Kind: errorKindRequest, Message: err.Error()},
	})
}

// writeProgramError reports a lexer or parser error as 422 and anything
// else as 500.
func (s *Server) writeProgramError(w http.ResponseWriter, id string, err error) {
	info := engine.DescribeError(err)
	status := http.StatusUnprocessableEntity
	if info.Kind == engine.ErrorKindInternal {
		status = http.StatusInternalServerError
		s.logger.Error("request failed", "id", id, "error", err)
	}
	writeJSON(w, status, errorResponse{ID: id, ErrorInfo: info})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
