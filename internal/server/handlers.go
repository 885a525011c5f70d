package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"runtime"

	"github.com/matzehuels/polycalc/pkg/buildinfo"
	"github.com/matzehuels/polycalc/pkg/errors"
	"github.com/matzehuels/polycalc/pkg/factor"
	"github.com/matzehuels/polycalc/pkg/parser"
	"github.com/matzehuels/polycalc/pkg/pipeline"
	"github.com/matzehuels/polycalc/pkg/poly"
)

// =============================================================================
// Request / Response Types
// =============================================================================

// EvaluateRequest is the body of POST /v1/evaluate.
type EvaluateRequest struct {
	Expression string `json:"expression"`
}

// FactorRequest is the body of POST /v1/factor. Coefficients are lowest
// degree first.
type FactorRequest struct {
	Coefficients []float64 `json:"coefficients"`
}

// Response is the body of every successful calculator request.
type Response struct {
	ID         string        `json:"id"`
	Operation  string        `json:"operation"`
	Input      string        `json:"input"`
	Output     string        `json:"output"`
	Degree     int           `json:"degree"`
	Roots      []factor.Root `json:"roots,omitempty"`
	Value      *float64      `json:"value,omitempty"`
	Cached     bool          `json:"cached,omitempty"`
	DurationMS float64       `json:"duration_ms"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
		"go":      runtime.Version(),
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.runner.Run(r.Context(), req.Expression)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newResponse(res))
}

func (s *Server) handleFactor(w http.ResponseWriter, r *http.Request) {
	var req FactorRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := errors.ValidateCoefficients(req.Coefficients); err != nil {
		s.fail(w, r, err)
		return
	}

	p := poly.New(req.Coefficients...).Trim()
	if limit := s.runner.Options.MaxDegree; p.Degree() > limit {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "degree %d exceeds maximum degree %d", p.Degree(), limit))
		return
	}

	res, err := s.runner.Execute(r.Context(), parser.Request{Op: parser.OpFactor, Poly: p})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := newResponse(res)
	resp.Input = p.String()
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

func newResponse(res *pipeline.Result) Response {
	resp := Response{
		ID:         res.ID,
		Operation:  string(res.Op),
		Input:      res.Input,
		Output:     res.Output,
		Degree:     res.Polynomial.Degree(),
		Cached:     res.Cached,
		DurationMS: float64(res.Duration.Microseconds()) / 1000,
	}
	if res.Factorization != nil {
		resp.Roots = res.Factorization.Roots
	}
	if res.Op == parser.OpEvaluate {
		v := res.Value
		resp.Value = &v
	}
	return resp
}

// decode reads a JSON body into v, writing a 400 and returning false on
// failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body"))
		return false
	}
	return true
}

// fail maps err to a status code and writes it.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", requestIDFrom(r.Context()), "err", err)
		if code == "" {
			code = string(errors.ErrCodeInternal)
			msg = "internal error"
		}
	}
	writeError(w, status, code, msg)
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeParse), errors.Is(err, errors.ErrCodeInvalidInput):
		return http.StatusBadRequest
	case errors.IsEngineFault(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Code: code, Error: msg})
}
