package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/BenTyson/calcverse/internal/cache"
	"github.com/BenTyson/calcverse/internal/registry"
	"github.com/BenTyson/calcverse/internal/sharestate"
	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, time.August, 15, 9, 30, 0, 0, time.UTC)

const scenarioFile = `
scenarios:
  - name: weekend rental
    calculator: airbnb-profit
    mode: advanced
    active: true
    inputs:
      nightlyRate: 180
  - name: contract offer
    calculator: w2-vs-1099
    active: true
  - name: parked
    calculator: quarterly-tax
    active: false
`

func newTestHandler(t *testing.T, opts Options) http.Handler {
	t.Helper()
	if opts.Registry == nil {
		opts.Registry = registry.New(zap.NewNop(), registry.WithClock(func() time.Time { return testNow }))
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://calc.example.com/"
	}
	if opts.Version == "" {
		opts.Version = "1.2.3"
	}
	return NewHandler(zap.NewNop(), opts)
}

func perform(handler http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func performUpload(t *testing.T, handler http.Handler, content, filename string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/scenarios", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp["error"]
}

// evaluationBody mirrors the JSON shape of an evaluation response.
type evaluationBody struct {
	Slug       string                `json:"slug"`
	Mode       calculator.Mode       `json:"mode"`
	Inputs     map[string]any        `json:"inputs"`
	Results    map[string]any        `json:"results"`
	Highlights []calculator.Metric   `json:"highlights"`
	Lines      []calculator.LineItem `json:"lines"`
	ShareURL   string                `json:"shareUrl"`
}

func decodeEvaluation(t *testing.T, rr *httptest.ResponseRecorder) evaluationBody {
	t.Helper()
	var body evaluationBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode evaluation: %v", err)
	}
	return body
}

func TestHandleList(t *testing.T) {
	handler := newTestHandler(t, Options{})

	rr := perform(handler, http.MethodGet, "/api/calculators", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp struct {
		Calculators []registry.Info `json:"calculators"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Calculators, 16)
}

func TestHandleEvaluateQuery(t *testing.T) {
	handler := newTestHandler(t, Options{})

	state := sharestate.Encode(map[string]any{"nightlyRate": 250})
	rr := perform(handler, http.MethodGet, "/api/calculators/airbnb-profit?s="+state+"&mode=advanced", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	body := decodeEvaluation(t, rr)
	assert.Equal(t, "airbnb-profit", body.Slug)
	assert.Equal(t, calculator.ModeAdvanced, body.Mode)
	assert.EqualValues(t, 250, body.Inputs["nightlyRate"])
	assert.NotEmpty(t, body.Highlights)
	assert.True(t, strings.HasPrefix(body.ShareURL, "https://calc.example.com/api/calculators/airbnb-profit?"),
		"share URL %q", body.ShareURL)
	assert.Contains(t, body.ShareURL, "mode=advanced")
}

func TestHandleEvaluateQueryInvalidStateUsesDefaults(t *testing.T) {
	handler := newTestHandler(t, Options{})

	withGarbage := perform(handler, http.MethodGet, "/api/calculators/airbnb-profit?s=%21%21notbase64", nil)
	plain := perform(handler, http.MethodGet, "/api/calculators/airbnb-profit", nil)
	require.Equal(t, http.StatusOK, withGarbage.Code)
	require.Equal(t, http.StatusOK, plain.Code)

	assert.Equal(t, decodeEvaluation(t, plain).Inputs, decodeEvaluation(t, withGarbage).Inputs)
	assert.Equal(t, calculator.DefaultMode, decodeEvaluation(t, plain).Mode)
}

func TestHandleEvaluateBody(t *testing.T) {
	handler := newTestHandler(t, Options{})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "partial inputs", body: `{"mode":"advanced","inputs":{"nightlyRate":300}}`, wantStatus: http.StatusOK},
		{name: "empty body", body: ``, wantStatus: http.StatusOK},
		{name: "null inputs", body: `{"inputs":null}`, wantStatus: http.StatusOK},
		{name: "malformed", body: `{"inputs":`, wantStatus: http.StatusBadRequest, wantError: "invalid request body"},
		{name: "inputs not an object", body: `{"inputs":[1,2]}`, wantStatus: http.StatusBadRequest, wantError: "inputs must be a JSON object"},
		{name: "wrong field type", body: `{"inputs":{"nightlyRate":"cheap"}}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := perform(handler, http.MethodPost, "/api/calculators/airbnb-profit", []byte(tt.body))
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if tt.wantError != "" {
				if msg := decodeError(t, rr); !strings.Contains(msg, tt.wantError) {
					t.Errorf("error = %q, want it to contain %q", msg, tt.wantError)
				}
			}
		})
	}

	rr := perform(handler, http.MethodPost, "/api/calculators/airbnb-profit", []byte(`{"mode":"advanced","inputs":{"nightlyRate":300}}`))
	assert.EqualValues(t, 300, decodeEvaluation(t, rr).Inputs["nightlyRate"])
}

func TestHandleEvaluateBodyTooLarge(t *testing.T) {
	handler := newTestHandler(t, Options{MaxUploadSize: 32})

	payload := `{"inputs":{"nightlyRate":1` + strings.Repeat("0", 64) + `}}`
	rr := perform(handler, http.MethodPost, "/api/calculators/airbnb-profit", []byte(payload))
	require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Contains(t, decodeError(t, rr), "request exceeds limit")
}

func TestHandleUnknownCalculator(t *testing.T) {
	handler := newTestHandler(t, Options{})

	paths := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/calculators/lemonade-stand"},
		{http.MethodPost, "/api/calculators/lemonade-stand"},
		{http.MethodGet, "/api/calculators/lemonade-stand/defaults"},
		{http.MethodGet, "/api/calculators/lemonade-stand/pdf"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.target, func(t *testing.T) {
			rr := perform(handler, p.method, p.target, nil)
			if rr.Code != http.StatusNotFound {
				t.Fatalf("expected status 404, got %d: %s", rr.Code, rr.Body.String())
			}
			assert.Contains(t, decodeError(t, rr), "unknown calculator")
		})
	}
}

func TestHandleNotFoundAndMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, Options{})

	rr := perform(handler, http.MethodGet, "/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not found", decodeError(t, rr))

	rr = perform(handler, http.MethodDelete, "/api/calculators/airbnb-profit", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = perform(handler, http.MethodGet, "/api/scenarios", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandleMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, Options{})

	tests := []struct {
		method string
		target string
	}{
		{http.MethodDelete, "/api/calculators/airbnb-profit"},
		{http.MethodPut, "/api/calculators/airbnb-profit"},
		{http.MethodPost, "/api/calculators"},
		{http.MethodPost, "/api/calculators/airbnb-profit/defaults"},
		{http.MethodPost, "/api/calculators/airbnb-profit/pdf"},
		{http.MethodGet, "/api/scenarios"},
		{http.MethodPost, "/api/version"},
		{http.MethodPost, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rr := perform(handler, tt.method, tt.target, nil)
			if rr.Code != http.StatusMethodNotAllowed {
				t.Fatalf("expected status 405, got %d: %s", rr.Code, rr.Body.String())
			}
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, http.StatusText(http.StatusMethodNotAllowed), decodeError(t, rr))
		})
	}
}

func TestHandleWrongTypedStateUsesDefaults(t *testing.T) {
	handler := newTestHandler(t, Options{})
	plain := decodeEvaluation(t, perform(handler, http.MethodGet, "/api/calculators/airbnb-profit?mode=advanced", nil))

	tests := []struct {
		name  string
		state map[string]any
	}{
		{name: "string for number", state: map[string]any{"nightlyRate": "abc"}},
		{name: "object for number", state: map[string]any{"nightlyRate": map[string]any{"x": 1}}},
		{name: "bool for number", state: map[string]any{"cleaningFee": true}},
		{name: "one bad field among good ones", state: map[string]any{"nightlyRate": 250, "occupancyRate": "full"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := "?mode=advanced&s=" + url.QueryEscape(sharestate.Encode(tt.state))

			rr := perform(handler, http.MethodGet, "/api/calculators/airbnb-profit"+query, nil)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			got := decodeEvaluation(t, rr)
			assert.Equal(t, plain.Inputs, got.Inputs)
			assert.Equal(t, calculator.ModeAdvanced, got.Mode)

			pdf := perform(handler, http.MethodGet, "/api/calculators/airbnb-profit/pdf"+query, nil)
			require.Equal(t, http.StatusOK, pdf.Code, pdf.Body.String())
			assert.Equal(t, "application/pdf", pdf.Header().Get("Content-Type"))
		})
	}
}

func TestHandleDefaults(t *testing.T) {
	handler := newTestHandler(t, Options{})

	rr := perform(handler, http.MethodGet, "/api/calculators/kofi-earnings/defaults", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Slug          string         `json:"slug"`
		Inputs        map[string]any `json:"inputs"`
		QuickDefaults map[string]any `json:"quickDefaults"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "kofi-earnings", resp.Slug)
	assert.NotEmpty(t, resp.Inputs)
	assert.NotEmpty(t, resp.QuickDefaults)
}

func TestHandlePDF(t *testing.T) {
	handler := newTestHandler(t, Options{})

	rr := perform(handler, http.MethodGet, "/api/calculators/freelancer-rate/pdf", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="freelancer-rate_20240815.pdf"`, rr.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
}

func TestHandleScenariosSuccess(t *testing.T) {
	handler := newTestHandler(t, Options{})

	rr := performUpload(t, handler, scenarioFile, "scenarios.yaml")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp scenariosResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	assert.Equal(t, []string{"weekend rental", "contract offer"}, resp.Scenarios)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "airbnb-profit", resp.Rows[0].Calculator)
	assert.Equal(t, calculator.ModeAdvanced, resp.Rows[0].Mode)
	assert.Equal(t, calculator.DefaultMode, resp.Rows[1].Mode)
	net, ok := testutil.FindHighlight(resp.Rows[0].Highlights, "monthlyNet")
	require.True(t, ok, "monthlyNet highlight")
	assert.Equal(t, calculator.UnitCurrency, net.Unit)
	assert.NotEmpty(t, resp.Rows[0].ShareURL)
	assert.Empty(t, resp.Warnings)
	assert.NotEmpty(t, resp.Duration)

	assert.True(t, strings.HasPrefix(resp.CSV, "scenario,calculator,mode,section,label,value,unit,percentage\n"))
	assert.Contains(t, resp.CSV, "weekend rental,airbnb-profit,advanced,")

	assert.Contains(t, resp.ConfigYAML, "calculator: airbnb-profit")
	assert.Contains(t, resp.ConfigYAML, "nightlyRate: 180")
}

func TestHandleScenariosWarnings(t *testing.T) {
	handler := newTestHandler(t, Options{})

	content := `
scenarios:
  - name: a
    calculator: airbnb-profit
    mode: turbo
    active: true
  - name: a
    calculator: doordash-earnings
    active: true
`
	rr := performUpload(t, handler, content, "scenarios.yaml")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp scenariosResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Warnings, 2)
	assert.Len(t, resp.Rows, 2)
}

func TestHandleScenariosDuplicateNames(t *testing.T) {
	handler := newTestHandler(t, Options{})

	content := `
scenarios:
  - name: a
    calculator: doordash-earnings
    active: true
    inputs:
      deliveriesPerWeek: 10
  - name: a
    calculator: doordash-earnings
    active: true
    inputs:
      deliveriesPerWeek: 99
`
	rr := performUpload(t, handler, content, "scenarios.yaml")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp scenariosResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 2)
	assert.NotEqual(t, resp.Rows[0].Highlights, resp.Rows[1].Highlights)
	assert.Contains(t, resp.ConfigYAML, "deliveriesPerWeek: 10\n")
	assert.Contains(t, resp.ConfigYAML, "deliveriesPerWeek: 99\n")
}

func TestHandleScenariosFailures(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid YAML",
			content:    "scenarios: [\n",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no scenarios",
			content:    "scenarios: []\n",
			wantStatus: http.StatusBadRequest,
			wantError:  "no scenarios defined",
		},
		{
			name: "unknown calculator",
			content: `
scenarios:
  - name: stand
    calculator: lemonade-stand
    active: true
`,
			wantStatus: http.StatusBadRequest,
			wantError:  "scenario stand",
		},
	}

	handler := newTestHandler(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := performUpload(t, handler, tt.content, "scenarios.yaml")
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if tt.wantError != "" {
				if msg := decodeError(t, rr); !strings.Contains(msg, tt.wantError) {
					t.Errorf("error = %q, want it to contain %q", msg, tt.wantError)
				}
			}
		})
	}
}

func TestHandleScenariosUploadTooLarge(t *testing.T) {
	handler := newTestHandler(t, Options{MaxUploadSize: 64})

	rr := performUpload(t, handler, strings.Repeat("a", 128), "scenarios.yaml")
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rr.Code)
	}
	if msg := decodeError(t, rr); !strings.Contains(msg, "upload exceeds limit") {
		t.Fatalf("expected upload limit error message, got %q", msg)
	}
}

func TestHandleScenariosMissingFile(t *testing.T) {
	handler := newTestHandler(t, Options{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "no file here"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/scenarios", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "missing scenario file", decodeError(t, rr))
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t, Options{})

	rr := perform(handler, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "1.2.3", resp["version"])
}

func TestHandleIndex(t *testing.T) {
	handler := newTestHandler(t, Options{})

	rr := perform(handler, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	page := rr.Body.String()
	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "/api/calculators/airbnb-profit")
	assert.Contains(t, page, "/api/calculators/w2-vs-1099/pdf")
	assert.Contains(t, page, "1.2.3")
}

func TestRequestID(t *testing.T) {
	handler := newTestHandler(t, Options{})

	rr := perform(handler, http.MethodGet, "/api/version", nil)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(RequestIDHeader, "trace-123")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "trace-123", rr.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()

	handler := newTestHandler(t, Options{Limiter: limiter})

	for i := 0; i < 2; i++ {
		rr := perform(handler, http.MethodGet, "/api/version", nil)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := perform(handler, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "rate limit exceeded", decodeError(t, rr))
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))

	// The index page sits outside the limited API.
	rr = perform(handler, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestEvaluationCache(t *testing.T) {
	mem := cache.NewMemory(time.Minute)
	defer mem.Close()

	handler := newTestHandler(t, Options{Cache: mem})

	first := perform(handler, http.MethodPost, "/api/calculators/etsy-fees", []byte(`{"inputs":{"itemPrice":40}}`))
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, 1, mem.Len())

	second := perform(handler, http.MethodPost, "/api/calculators/Etsy-Fees", []byte(`{"mode":"quick","inputs":{"itemPrice":40}}`))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	third := perform(handler, http.MethodPost, "/api/calculators/etsy-fees", []byte(`{"inputs":{"itemPrice":41}}`))
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
}

func TestNewHandlerDefaults(t *testing.T) {
	handler := NewHandler(nil, Options{})

	rr := perform(handler, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "dev", resp["version"])

	rr = perform(handler, http.MethodGet, "/api/calculators/airbnb-profit", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(decodeEvaluation(t, rr).ShareURL, constants.DefaultBaseURL+"/api/calculators/airbnb-profit"))
}
