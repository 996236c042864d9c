package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quantpulse/internal/domain"
	"quantpulse/internal/marketdata"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type mockPredictor struct {
	result domain.EnsembleResult
	err    error

	lastSymbol string
	lastPrice  float64
	lastShock  bool

	price  float64
	source string
}

func (m *mockPredictor) Predict(ctx context.Context, symbol string, requestPrice float64, shock bool) (domain.EnsembleResult, error) {
	m.lastSymbol = symbol
	m.lastPrice = requestPrice
	m.lastShock = shock
	if m.err != nil {
		return domain.EnsembleResult{}, m.err
	}
	return m.result, nil
}

func (m *mockPredictor) ResolvePrice(ctx context.Context, symbol string) (float64, string) {
	m.lastSymbol = symbol
	return m.price, m.source
}

func newTestRouter(p Predictor, series *marketdata.SeriesStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(testTracer, p, series).RegisterRoutes(r)
	return r
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&mockPredictor{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"healthy"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestEnsemblePredictPost(t *testing.T) {
	p := &mockPredictor{
		result: domain.EnsembleResult{
			Symbol:             "RELIANCE",
			WeightedPrediction: 3009.0,
			ConfidenceScore:    72.5,
			Direction:          domain.DirectionUp,
		},
	}
	r := newTestRouter(p, nil)

	body := `{"symbol":"reliance","current_price":2950,"shock_simulation":true}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/ensemble-predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if p.lastSymbol != "RELIANCE" || p.lastPrice != 2950 || !p.lastShock {
		t.Fatalf("unexpected predictor args: %s %v %v", p.lastSymbol, p.lastPrice, p.lastShock)
	}

	var res domain.EnsembleResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.WeightedPrediction != 3009.0 || res.ConfidenceScore != 72.5 {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestEnsemblePredictPostRejectsShortSymbol(t *testing.T) {
	r := newTestRouter(&mockPredictor{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/ensemble-predict", strings.NewReader(`{"symbol":"A"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestEnsemblePredictPostRejectsBadBody(t *testing.T) {
	r := newTestRouter(&mockPredictor{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/ensemble-predict", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestEnsemblePredictPostServiceError(t *testing.T) {
	p := &mockPredictor{err: errors.New("fusion produced non-finite result")}
	r := newTestRouter(p, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/ensemble-predict", strings.NewReader(`{"symbol":"TCS"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
}

func TestEnsemblePredictGetBySymbol(t *testing.T) {
	p := &mockPredictor{result: domain.EnsembleResult{Symbol: "TCS"}}
	r := newTestRouter(p, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/ensemble-predict/tcs?current_price=4200&shock_simulation=true", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if p.lastSymbol != "TCS" || p.lastPrice != 4200 || !p.lastShock {
		t.Fatalf("unexpected predictor args: %s %v %v", p.lastSymbol, p.lastPrice, p.lastShock)
	}
}

func TestEnsemblePredictGetRejectsBadPrice(t *testing.T) {
	r := newTestRouter(&mockPredictor{}, nil)

	for _, q := range []string{"current_price=abc", "current_price=-5", "current_price=0"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/ensemble-predict/TCS?"+q, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %q, got %d", q, w.Code)
		}
	}
}

func TestGetPrice(t *testing.T) {
	p := &mockPredictor{price: 2950, source: "fallback"}
	r := newTestRouter(p, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/price/reliance", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var res struct {
		Symbol       string  `json:"symbol"`
		CurrentPrice float64 `json:"current_price"`
		Source       string  `json:"source"`
		Supported    bool    `json:"supported"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Symbol != "RELIANCE" || res.CurrentPrice != 2950 || res.Source != "fallback" || !res.Supported {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestGetDataQuality(t *testing.T) {
	series := marketdata.NewSeriesStore(map[string][]float64{
		"RELIANCE.NS": {100, 101, 102, 103, 104, 105},
	})
	r := newTestRouter(&mockPredictor{}, series)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/data-quality/RELIANCE", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var report marketdata.QualityReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.Column != "RELIANCE.NS" || report.Observations != 6 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestGetDataQualityNoSeriesLoaded(t *testing.T) {
	r := newTestRouter(&mockPredictor{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/data-quality/RELIANCE", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(APIKeyAuth("secret"))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-API-Key", "wrong")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with wrong key, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-API-Key", "secret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with correct key, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://app.example.com"}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for unknown origin, got %q", got)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("OPTIONS", "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
}
