// Package server exposes the settlement engine over HTTP
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rgehrsitz/rescisao/internal/breakeven"
	"github.com/rgehrsitz/rescisao/internal/calculation"
	"github.com/rgehrsitz/rescisao/internal/compare"
	"github.com/rgehrsitz/rescisao/internal/config"
	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/rgehrsitz/rescisao/internal/legacy"
	"github.com/rgehrsitz/rescisao/internal/observability"
	"github.com/rgehrsitz/rescisao/internal/output"
	"github.com/rgehrsitz/rescisao/internal/transform"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Server holds the engine shared by all requests
type Server struct {
	engine     *calculation.Engine
	parser     *config.InputParser
	transforms *transform.TransformRegistry
	logger     *zap.Logger
	cfg        Config
}

// New returns a server for engine. A nil logger disables logging.
func New(engine *calculation.Engine, cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine:     engine,
		parser:     config.NewInputParser(),
		transforms: transform.NewTransformRegistry(),
		logger:     logger,
		cfg:        cfg,
	}
}

// Router builds the chi router with the middleware stack and all routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(AccessLog(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(BodyLimit(s.cfg.MaxBodyBytes))
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/motivos", s.ListReasons)
		r.Post("/rescisao", s.Calculate)
		r.Post("/rescisao/pdf", s.CalculatePDF)
		r.Post("/rescisao/legacy", s.CalculateLegacy)
		r.Post("/rescisao/comparativo", s.Compare)
		r.Post("/rescisao/equilibrio", s.BreakEven)
	})

	return r
}

// ReasonDTO is one entry of the reason catalog
type ReasonDTO struct {
	Code                string `json:"codigo"`
	Description         string `json:"descricao"`
	Category            string `json:"categoria"`
	CategoryDescription string `json:"categoria_descricao,omitempty"`
}

// LegacyResponse carries the settlement and the notes produced by the conversion
type LegacyResponse struct {
	Result *domain.SettlementResult `json:"result"`
	Notes  []string                 `json:"notes,omitempty"`
}

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ListReasons returns the termination reasons in catalog order
func (s *Server) ListReasons(w http.ResponseWriter, r *http.Request) {
	rules := s.engine.Rules()
	dtos := make([]ReasonDTO, 0, len(rules.Reasons))
	for _, reason := range rules.Reasons {
		dto := ReasonDTO{Code: reason.Code, Description: reason.Description, Category: reason.Category}
		if cat, ok := rules.Category(reason.Category); ok {
			dto.CategoryDescription = cat.Description
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Calculate computes a settlement from a canonical JSON input
func (s *Server) Calculate(w http.ResponseWriter, r *http.Request) {
	result, ok := s.calculateFromBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CalculatePDF computes a settlement and returns it as a PDF statement
func (s *Server) CalculatePDF(w http.ResponseWriter, r *http.Request) {
	result, ok := s.calculateFromBody(w, r)
	if !ok {
		return
	}
	data, err := output.PDFFormatter{}.Format(result)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "rescisao.pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// CalculateLegacy converts a legacy-shaped input and computes its settlement
func (s *Server) CalculateLegacy(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	var li legacy.Input
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&li); err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, "invalid_json", err.Error(), "")
		return
	}
	in, notes, err := legacy.Convert(li)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.requestEngine(r).Calculate(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LegacyResponse{Result: result, Notes: notes})
}

// Compare computes the input under a base reason and alternatives. Query parameters:
// base (default: the input's reason) and with (comma-separated, default: all others).
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	in, ok := s.inputFromBody(w, r)
	if !ok {
		return
	}
	var alternatives []string
	for _, code := range strings.Split(r.URL.Query().Get("with"), ",") {
		if code = strings.TrimSpace(code); code != "" {
			alternatives = append(alternatives, code)
		}
	}
	compSet, err := compare.NewCompareEngine(s.requestEngine(r)).Compare(*in, compare.CompareOptions{
		BaseReason:   r.URL.Query().Get("base"),
		Alternatives: alternatives,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, compSet)
}

// BreakEven solves for the bonus or salary reaching a target net. Query parameters:
// target (bonus or salary, default bonus) and either net or match_reason.
func (s *Server) BreakEven(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	constraints := breakeven.Constraints{MatchReason: q.Get("match_reason")}
	goal := breakeven.GoalMatchReason
	if constraints.MatchReason == "" {
		goal = breakeven.GoalMatchNet
		if v := q.Get("net"); v != "" {
			net, err := decimal.NewFromString(v)
			if err != nil {
				writeErrorResponse(w, r, http.StatusBadRequest, "invalid_query", fmt.Sprintf("invalid net %q", v), "net")
				return
			}
			constraints.TargetNet = &net
		}
	}
	target := breakeven.SolveTarget(q.Get("target"))
	if target == "" {
		target = breakeven.TargetBonus
	}

	in, ok := s.inputFromBody(w, r)
	if !ok {
		return
	}
	result, err := breakeven.NewDefaultSolver(s.requestEngine(r)).Solve(r.Context(), breakeven.SolveRequest{
		Base:        in,
		Target:      target,
		Goal:        goal,
		Constraints: constraints,
	})
	if err != nil {
		var be *breakeven.BreakEvenError
		if errors.As(err, &be) && be.Cause == nil {
			writeErrorResponse(w, r, http.StatusUnprocessableEntity, "invalid_breakeven", be.Error(), "")
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// inputFromBody decodes a canonical input and applies the what_if query transforms
func (s *Server) inputFromBody(w http.ResponseWriter, r *http.Request) (*domain.TerminationInput, bool) {
	body, ok := s.readBody(w, r)
	if !ok {
		return nil, false
	}
	in, err := s.parser.ParseInput(body, config.FormatJSON)
	if err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, "invalid_json", err.Error(), "")
		return nil, false
	}
	specs := r.URL.Query()["what_if"]
	if len(specs) == 0 {
		return in, true
	}
	transforms, err := s.transforms.ParseAll(specs)
	if err == nil {
		in, err = transform.ApplyTransforms(in, transforms)
	}
	if err != nil {
		writeErrorResponse(w, r, http.StatusUnprocessableEntity, "invalid_what_if", err.Error(), "")
		return nil, false
	}
	observability.FromContext(r.Context()).Debug("what-if transforms applied",
		zap.Strings("transforms", transform.Describe(transforms)))
	return in, true
}

func (s *Server) calculateFromBody(w http.ResponseWriter, r *http.Request) (*domain.SettlementResult, bool) {
	in, ok := s.inputFromBody(w, r)
	if !ok {
		return nil, false
	}
	result, err := s.requestEngine(r).Calculate(*in)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return result, true
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorResponse(w, r, http.StatusRequestEntityTooLarge, "body_too_large",
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), "")
			return nil, false
		}
		writeErrorResponse(w, r, http.StatusBadRequest, "invalid_body", err.Error(), "")
		return nil, false
	}
	return body, true
}

func (s *Server) requestEngine(r *http.Request) *calculation.Engine {
	return s.engine.WithLogger(observability.NewAdapter(observability.FromContext(r.Context())))
}

// writeError maps engine errors: caller mistakes are 422, anything else is 500
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		lookup     *calculation.LookupError
		validation *calculation.ValidationError
	)
	switch {
	case errors.As(err, &validation):
		writeErrorResponse(w, r, http.StatusUnprocessableEntity, "invalid_input", validation.Message, validation.Field)
	case errors.As(err, &lookup):
		writeErrorResponse(w, r, http.StatusUnprocessableEntity, lookup.Kind+"_not_found", err.Error(), "")
	case calculation.IsClientError(err):
		writeErrorResponse(w, r, http.StatusUnprocessableEntity, "invalid_input", err.Error(), "")
	default:
		observability.FromContext(r.Context()).Error("settlement failed", zap.Error(err))
		writeErrorResponse(w, r, http.StatusInternalServerError, "internal", "internal error", "")
	}
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, code, message, field string) {
	writeJSON(w, status, ErrorResponse{
		Error:     code,
		Message:   message,
		Field:     field,
		RequestID: GetRequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
