// Package server provides the HTTP surface for the refinance calculator: the
// embedded single-page form and the JSON API it consumes.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/refinance-calculator/internal/cache"
	"github.com/iwvelando/refinance-calculator/internal/compare"
	"github.com/iwvelando/refinance-calculator/internal/config"
	"github.com/iwvelando/refinance-calculator/pkg/constants"
	"github.com/iwvelando/refinance-calculator/pkg/output"
	"github.com/iwvelando/refinance-calculator/pkg/refinance"
	"github.com/iwvelando/refinance-calculator/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

// Options carries the runtime parameters for the HTTP handler.
type Options struct {
	MaxBodySize       int64
	Version           string
	Cache             cache.Cache
	Defaults          refinance.Input
	Sensitivity       config.SensitivityConfig
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Server serves the web UI and refinance API.
type Server struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	cache       cache.Cache
	defaults    refinance.Input
	sensitivity config.SensitivityConfig
	limiter     *rateLimiter
	mux         *http.ServeMux
}

// New constructs the server. Call Close when done to stop the rate limiter's
// cleanup loop.
func New(logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if opts.RateLimitRequests <= 0 {
		opts.RateLimitRequests = constants.DefaultRateLimitRequests
	}
	if opts.RateLimitWindow <= 0 {
		opts.RateLimitWindow = constants.DefaultRateLimitWindow
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemory(constants.DefaultCacheTTL)
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	s := &Server{
		logger:      logger,
		maxBodySize: opts.MaxBodySize,
		version:     trimmedVersion,
		cache:       opts.Cache,
		defaults:    opts.Defaults,
		sensitivity: opts.Sensitivity,
		limiter:     newRateLimiter(logger, opts.RateLimitRequests, opts.RateLimitWindow),
	}

	mux := http.NewServeMux()

	// Refinance API endpoints
	mux.Handle("/api/refinance", s.limiter.middleware(http.HandlerFunc(s.handleRefinance)))
	mux.Handle("/api/defaults", s.limiter.middleware(http.HandlerFunc(s.handleDefaults)))
	mux.Handle("/api/export", s.limiter.middleware(http.HandlerFunc(s.handleExport)))
	mux.Handle("/api/report/pdf", s.limiter.middleware(http.HandlerFunc(s.handleReportPDF)))

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", s.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	s.mux = mux
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close stops the rate limiter's background cleanup loop.
func (s *Server) Close() {
	s.limiter.Stop()
}

type refinanceRequest struct {
	Input   refinance.Input `json:"input"`
	Options requestOptions  `json:"options"`
}

type requestOptions struct {
	Sensitivity bool `json:"sensitivity"`
}

type refinanceResponse struct {
	Input       refinance.Input              `json:"input"`
	Report      refinance.Report             `json:"report"`
	Sensitivity []refinance.SensitivityPoint `json:"sensitivity,omitempty"`
	Warnings    []string                     `json:"warnings,omitempty"`
	Duration    string                       `json:"duration"`
	Cached      bool                         `json:"cached"`
}

// cachedReport is the payload stored in the report cache; the per-request
// fields (duration, warnings) stay out of it.
type cachedReport struct {
	Report      refinance.Report             `json:"report"`
	Sensitivity []refinance.SensitivityPoint `json:"sensitivity,omitempty"`
}

func (s *Server) handleRefinance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	op := "server.handleRefinance"

	req, ok := s.decodeRequest(w, r, op)
	if !ok {
		return
	}

	sanitized, warnings := validation.SanitizeInput(req.Input)
	key := cache.Key(sanitized, req.Options.Sensitivity)

	var payload cachedReport
	cached := false
	if value, hit := s.cache.Get(r.Context(), key); hit {
		if err := json.Unmarshal([]byte(value), &payload); err == nil {
			cached = true
		} else {
			s.logger.Warn("discarding undecodable cache entry",
				zap.String("op", op),
				zap.Error(err),
			)
		}
	}

	if !cached {
		payload.Report = refinance.ComputeReport(sanitized)
		if req.Options.Sensitivity {
			payload.Sensitivity = refinance.RateSensitivity(sanitized,
				s.sensitivity.SpanOrDefault(), s.sensitivity.StepOrDefault())
		}
		if encoded, err := json.Marshal(payload); err == nil {
			s.cache.Set(r.Context(), key, string(encoded))
		}
	}

	elapsed := time.Since(start)
	s.logger.Info("report computed",
		zap.String("op", op),
		zap.Bool("cached", cached),
		zap.Duration("duration", elapsed),
	)

	s.writeJSON(w, http.StatusOK, refinanceResponse{
		Input:       sanitized,
		Report:      payload.Report,
		Sensitivity: payload.Sensitivity,
		Warnings:    warnings,
		Duration:    elapsed.String(),
		Cached:      cached,
	})
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	sanitized, _ := validation.SanitizeInput(s.defaults)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"input": sanitized,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	op := "server.handleExport"
	req, ok := s.decodeRequest(w, r, op)
	if !ok {
		return
	}

	sanitized, _ := validation.SanitizeInput(req.Input)

	payload := map[string]interface{}{
		"defaults": map[string]interface{}{
			"currentBalance": sanitized.CurrentBalance,
			"currentRate":    sanitized.CurrentRate,
			"newRate":        sanitized.NewRate,
			"remainingTerm":  sanitized.RemainingTerm,
			"closingCosts":   sanitized.ClosingCosts,
		},
		"sensitivity": map[string]interface{}{
			"enabled": req.Options.Sensitivity,
			"span":    s.sensitivity.SpanOrDefault(),
			"step":    s.sensitivity.StepOrDefault(),
		},
		"output": map[string]interface{}{
			"format": constants.OutputFormatPretty,
		},
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	op := "server.handleReportPDF"
	req, ok := s.decodeRequest(w, r, op)
	if !ok {
		return
	}

	sanitized, warnings := validation.SanitizeInput(req.Input)
	report := refinance.ComputeReport(sanitized)

	scenario := compare.ScenarioReport{
		Name:     "refinance",
		Input:    sanitized,
		Report:   report,
		Warnings: warnings,
	}
	if req.Options.Sensitivity {
		scenario.Sensitivity = refinance.RateSensitivity(sanitized,
			s.sensitivity.SpanOrDefault(), s.sensitivity.StepOrDefault())
	}

	pdfBytes, err := output.PDFReport(compare.Results{scenario})
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render PDF: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.DefaultPDFFile))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfBytes); err != nil {
		s.logger.Error("failed to write PDF response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"version": s.version,
	})
}

// decodeRequest reads a JSON refinance request within the body size limit,
// writing the error response itself on failure.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, op string) (refinanceRequest, bool) {
	var req refinanceRequest

	if s.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBodySize)
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", s.maxBodySize), op)
			return req, false
		}
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return req, false
	}

	return req, true
}

// marshalOrderedConfigYAML serializes the export payload with a stable
// top-level key order, so downloaded configs read the way the examples do.
func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"defaults", "scenarios", "sensitivity", "logging", "output"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string, op string) {
	s.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
