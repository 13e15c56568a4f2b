package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/cicalc/internal/config"
	apperrors "github.com/agbru/cicalc/internal/errors"
	"github.com/agbru/cicalc/internal/estimate"
	"github.com/agbru/cicalc/internal/format"
	"github.com/agbru/cicalc/internal/logging"
)

// indexCSP allows the inline stylesheet and the form submission of the page.
const indexCSP = "default-src 'none'; style-src 'unsafe-inline'; form-action 'self'; frame-ancestors 'none'"

// estimateRequest is a parsed estimate query.
type estimateRequest struct {
	input   estimate.Input
	levels  []float64
	clamped bool
}

// errorResponse is the JSON body of a rejected request.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// indexPage is the data rendered by the HTML template.
type indexPage struct {
	Population int64
	Sample     int64
	Percent    string
	Lines      []string
	Error      string
	Clamped    bool
}

// parseEstimateRequest reads population, sample, percent and level from the
// query, falling back to the server defaults for missing values. A sample
// above the population is clamped.
func (s *Server) parseEstimateRequest(q url.Values) (estimateRequest, error) {
	req := estimateRequest{input: s.defaults}

	if v := q.Get("population"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, apperrors.NewValidationError("population", "not an integer: %q", v)
		}
		req.input.PopulationSize = n
	}
	if limit := s.security.MaxPopulation; limit > 0 && req.input.PopulationSize > limit {
		return req, apperrors.NewValidationError("population", "population size must not exceed %d", limit)
	}
	if v := q.Get("sample"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, apperrors.NewValidationError("sample", "not an integer: %q", v)
		}
		req.input.SampleSize = n
	}
	if v := q.Get("percent"); v != "" {
		pct, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, apperrors.NewValidationError("percent", "not a number: %q", v)
		}
		p, err := estimate.ProportionFromPercentage(pct)
		if err != nil {
			return req, err
		}
		req.input.Proportion = p
	}

	req.levels = s.levels
	if raw := q["level"]; len(raw) > 0 {
		levels, err := config.ParseLevels(strings.Join(raw, ","))
		if err != nil {
			return req, apperrors.NewValidationError("level", "%v", err)
		}
		req.levels = levels
	}

	clamped := estimate.ClampSample(req.input.SampleSize, req.input.PopulationSize)
	req.clamped = clamped != req.input.SampleSize
	req.input.SampleSize = clamped
	return req, nil
}

// compute runs the estimator inside a span and records the outcome.
func (s *Server) compute(ctx context.Context, req estimateRequest) (estimate.Result, error) {
	_, span := s.tracer.Start(ctx, "estimate")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("cicalc.population", req.input.PopulationSize),
		attribute.Int64("cicalc.sample", req.input.SampleSize),
		attribute.Float64("cicalc.proportion", req.input.Proportion),
		attribute.Bool("cicalc.sample_clamped", req.clamped),
	)

	res, err := estimate.ComputeLevels(req.input, req.levels)
	s.metrics.RecordEstimate(err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	span.SetAttributes(attribute.Float64("cicalc.standard_error", res.StandardError))
	return res, nil
}

// handleEstimate serves GET /api/estimate.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}

	req, err := s.parseEstimateRequest(r.URL.Query())
	if err != nil {
		s.metrics.RecordEstimate(false)
		writeError(w, err)
		return
	}
	res, err := s.compute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleIndex serves the HTML calculator.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}

	page := indexPage{
		Population: s.defaults.PopulationSize,
		Sample:     s.defaults.SampleSize,
		Percent:    strconv.FormatFloat(s.defaults.Proportion*100, 'f', -1, 64),
	}
	status := http.StatusOK

	req, err := s.parseEstimateRequest(r.URL.Query())
	if err == nil {
		page.Population = req.input.PopulationSize
		page.Sample = req.input.SampleSize
		page.Percent = strconv.FormatFloat(req.input.Proportion*100, 'f', -1, 64)
		page.Clamped = req.clamped
		var res estimate.Result
		if res, err = s.compute(r.Context(), req); err == nil {
			page.Lines = format.ResultLines(res)
		}
	} else {
		s.metrics.RecordEstimate(false)
	}
	if err != nil {
		page.Error = validationMessage(err)
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Security-Policy", indexCSP)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, page); err != nil && s.logger != nil {
		s.logger.Error("render index", err)
	}
}

// handleMetrics serves GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth serves GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if s.logger != nil {
		s.logger.Debug("method not allowed",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
		)
	}
	w.Header().Set("Allow", http.MethodGet)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

// validationMessage returns the message of a ValidationError, or err's text.
func validationMessage(err error) string {
	var ve apperrors.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: validationMessage(err)}
	var ve apperrors.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
