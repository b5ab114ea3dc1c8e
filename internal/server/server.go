package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BenTyson/calcverse/internal/cache"
	"github.com/BenTyson/calcverse/internal/config"
	"github.com/BenTyson/calcverse/internal/registry"
	"github.com/BenTyson/calcverse/internal/report"
	"github.com/BenTyson/calcverse/internal/scenario"
	"github.com/BenTyson/calcverse/internal/sharestate"
	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/output"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Options wires the handler dependencies. Registry is required; a nil Cache
// disables caching and a nil Limiter disables rate limiting.
type Options struct {
	Registry      *registry.Registry
	Cache         cache.Cache
	Limiter       *RateLimiter
	MaxUploadSize int64
	BaseURL       string
	Version       string
	Now           func() time.Time
}

type handler struct {
	logger        *zap.Logger
	registry      *registry.Registry
	cache         cache.Cache
	maxUploadSize int64
	baseURL       string
	version       string
	now           func() time.Time
}

// NewHandler constructs the HTTP handler that serves the index page and the
// calculator API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	reg := opts.Registry
	if reg == nil {
		reg = registry.New(logger)
	}

	c := opts.Cache
	if c == nil {
		c = cache.Noop{}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	h := &handler{
		logger:        logger,
		registry:      reg,
		cache:         c,
		maxUploadSize: maxUploadSize,
		baseURL:       baseURL,
		version:       trimmedVersion,
		now:           now,
	}

	r := mux.NewRouter()
	r.Use(requestIDMiddleware, accessLogMiddleware(logger))
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h.respondErrorWithOp(w, req, http.StatusNotFound, "not found", "server.notFound")
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h.respondErrorWithOp(w, req, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), "server.methodNotAllowed")
	})
	r.MethodNotAllowedHandler = methodNotAllowed

	api := r.PathPrefix("/api").Subrouter()
	api.MethodNotAllowedHandler = methodNotAllowed
	if opts.Limiter != nil {
		api.Use(h.rateLimitMiddleware(opts.Limiter))
	}
	api.HandleFunc("/calculators", h.handleList).Methods(http.MethodGet)
	api.HandleFunc("/calculators/{slug}", h.handleEvaluateQuery).Methods(http.MethodGet)
	api.HandleFunc("/calculators/{slug}", h.handleEvaluateBody).Methods(http.MethodPost)
	api.HandleFunc("/calculators/{slug}/defaults", h.handleDefaults).Methods(http.MethodGet)
	api.HandleFunc("/calculators/{slug}/pdf", h.handlePDF).Methods(http.MethodGet)
	api.HandleFunc("/scenarios", h.handleScenarios).Methods(http.MethodPost)
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)

	r.HandleFunc("/", h.handleIndex).Methods(http.MethodGet)

	return r
}

type evaluationResponse struct {
	registry.Evaluation
	ShareURL string `json:"shareUrl,omitempty"`
}

type evaluateRequest struct {
	Mode   string          `json:"mode"`
	Inputs json.RawMessage `json:"inputs"`
}

type scenariosResponse struct {
	Scenarios  []string      `json:"scenarios"`
	Rows       []scenarioRow `json:"rows"`
	CSV        string        `json:"csv"`
	Warnings   []string      `json:"warnings,omitempty"`
	Duration   string        `json:"duration"`
	ConfigYAML string        `json:"configYaml,omitempty"`
}

type scenarioRow struct {
	Name       string                `json:"name"`
	Calculator string                `json:"calculator"`
	Mode       calculator.Mode       `json:"mode"`
	Highlights []calculator.Metric   `json:"highlights"`
	Lines      []calculator.LineItem `json:"lines"`
	ShareURL   string                `json:"shareUrl,omitempty"`
}

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := render(w, r, indexPage(h.registry.List(), h.version)); err != nil {
		h.logger.Error("failed to render index page",
			zap.String("op", "server.handleIndex"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleList(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"calculators": h.registry.List(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	defaults, err := h.registry.Defaults(mux.Vars(r)["slug"])
	if err != nil {
		h.respondLookupError(w, r, err, "server.handleDefaults")
		return
	}
	h.writeJSON(w, http.StatusOK, defaults)
}

func (h *handler) handleEvaluateQuery(w http.ResponseWriter, r *http.Request) {
	raw, mode := h.stateFromQuery(r, "server.handleEvaluateQuery")
	h.evaluate(w, r, mux.Vars(r)["slug"], raw, mode, h.registry.EvaluateState, "server.handleEvaluateQuery")
}

func (h *handler) handleEvaluateBody(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEvaluateBody"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
		return
	}

	inputs := bytes.TrimSpace(req.Inputs)
	if len(inputs) > 0 && !bytes.Equal(inputs, []byte("null")) && inputs[0] != '{' {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "inputs must be a JSON object", op)
		return
	}

	h.evaluate(w, r, mux.Vars(r)["slug"], json.RawMessage(inputs), calculator.ParseMode(req.Mode), h.registry.Evaluate, op)
}

// stateFromQuery reads the s and mode parameters. A missing or undecodable
// state yields nil so the calculator defaults apply.
func (h *handler) stateFromQuery(r *http.Request, op string) (json.RawMessage, calculator.Mode) {
	q := r.URL.Query()
	mode := calculator.ParseMode(q.Get(constants.ModeParam))

	encoded := q.Get(constants.StateParam)
	if encoded == "" {
		return nil, mode
	}
	raw, err := sharestate.Raw(encoded)
	if err != nil {
		h.logger.Debug("ignoring invalid share state",
			zap.String("op", op),
			zap.String("requestId", RequestID(r.Context())),
			zap.Error(err),
		)
		return nil, mode
	}
	return raw, mode
}

// evalFunc is Registry.Evaluate or Registry.EvaluateState.
type evalFunc func(slug string, raw json.RawMessage, mode calculator.Mode) (registry.Evaluation, error)

func (h *handler) evaluate(w http.ResponseWriter, r *http.Request, slug string, raw json.RawMessage, mode calculator.Mode, eval evalFunc, op string) {
	info, err := h.registry.Lookup(slug)
	if err != nil {
		h.respondLookupError(w, r, err, op)
		return
	}

	key, keyErr := cache.Key(info.Slug, mode, raw)
	if keyErr == nil {
		if body, ok := h.cache.Get(r.Context(), key); ok {
			w.Header().Set("X-Cache", "HIT")
			h.writeRawJSON(w, http.StatusOK, body)
			return
		}
	}

	ev, err := eval(info.Slug, raw, mode)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	body, err := json.Marshal(evaluationResponse{Evaluation: ev, ShareURL: h.shareURL(ev)})
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to encode evaluation: %v", err), op)
		return
	}

	if keyErr == nil {
		if err := h.cache.Set(r.Context(), key, body); err != nil {
			h.logger.Warn("failed to cache evaluation",
				zap.String("op", op),
				zap.String("calculator", info.Slug),
				zap.Error(err),
			)
		}
	}

	w.Header().Set("X-Cache", "MISS")
	h.writeRawJSON(w, http.StatusOK, body)
}

func (h *handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePDF"

	raw, mode := h.stateFromQuery(r, op)
	ev, err := h.registry.EvaluateState(mux.Vars(r)["slug"], raw, mode)
	if err != nil {
		h.respondLookupError(w, r, err, op)
		return
	}

	generated := h.now()
	var buf bytes.Buffer
	if err := report.GeneratePDF(ev, report.Options{ShareURL: h.shareURL(ev), Generated: generated}, &buf); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render PDF: %v", err), op)
		return
	}

	filename := fmt.Sprintf("%s_%s.pdf", ev.Slug, generated.Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("failed to write PDF response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarios"

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing scenario file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read scenario file: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration(h.slugs())
	results, err := scenario.Run(h.logger, h.registry, *cfg)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	resp := scenariosResponse{
		Scenarios: make([]string, 0, len(results)),
		Rows:      make([]scenarioRow, 0, len(results)),
		CSV:       output.CsvString(results),
		Warnings:  warnings,
	}
	for _, res := range results {
		resp.Scenarios = append(resp.Scenarios, res.Name)
		resp.Rows = append(resp.Rows, scenarioRow{
			Name:       res.Name,
			Calculator: res.Evaluation.Slug,
			Mode:       res.Evaluation.Mode,
			Highlights: res.Evaluation.Highlights,
			Lines:      res.Evaluation.Lines,
			ShareURL:   h.shareURL(res.Evaluation),
		})
	}

	if resolved, err := scenario.Resolve(*cfg, results); err == nil {
		if data, err := resolved.Export(); err == nil {
			resp.ConfigYAML = string(data)
		}
	} else {
		h.logger.Warn("failed to resolve scenario inputs",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	elapsed := time.Since(start)
	resp.Duration = elapsed.String()

	h.logger.Info("scenarios computed",
		zap.String("op", op),
		zap.String("requestId", RequestID(r.Context())),
		zap.Int("scenarios", len(resp.Scenarios)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) shareURL(ev registry.Evaluation) string {
	u, err := sharestate.ShareURL(h.baseURL+"/api/calculators/"+ev.Slug, ev.Inputs, ev.Mode)
	if err != nil {
		h.logger.Debug("failed to build share URL",
			zap.String("op", "server.shareURL"),
			zap.String("calculator", ev.Slug),
			zap.Error(err),
		)
		return ""
	}
	return u
}

func (h *handler) slugs() []string {
	list := h.registry.List()
	slugs := make([]string, len(list))
	for i, info := range list {
		slugs[i] = info.Slug
	}
	return slugs
}

func (h *handler) respondLookupError(w http.ResponseWriter, r *http.Request, err error, op string) {
	status := http.StatusBadRequest
	if errors.Is(err, registry.ErrUnknownCalculator) {
		status = http.StatusNotFound
	}
	h.respondErrorWithOp(w, r, status, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("requestId", RequestID(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Warn("request rejected", fields...)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *handler) writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
