package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quantpulse/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// MarketDataProvider pulls live quotes and news sentiment from the upstream
// market-data API. Both fetches are best-effort for callers: the service
// layer falls back to demo prices and neutral sentiment when they fail.
type MarketDataProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewMarketDataProvider(tracer trace.Tracer, baseURL string) *MarketDataProvider {
	return &MarketDataProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		tracer:  tracer,
	}
}

// FetchCurrentPrice returns the latest traded price for the symbol.
func (p *MarketDataProvider) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	_, span := p.tracer.Start(ctx, "marketdata.fetch-price")
	defer span.End()

	url := fmt.Sprintf("%s/stock/%s", p.baseURL, strings.ToUpper(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("stock API error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		CurrentPrice float64 `json:"currentPrice"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode stock response: %w", err)
	}
	if payload.CurrentPrice <= 0 {
		return 0, fmt.Errorf("stock response has no usable price for %s", symbol)
	}
	return payload.CurrentPrice, nil
}

// FetchSentiment returns the upstream news sentiment call for the symbol.
func (p *MarketDataProvider) FetchSentiment(ctx context.Context, symbol string) (*domain.SentimentPayload, error) {
	_, span := p.tracer.Start(ctx, "marketdata.fetch-sentiment")
	defer span.End()

	url := fmt.Sprintf("%s/ai-prediction/%s", p.baseURL, strings.ToUpper(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ai-prediction API error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		News struct {
			SentimentDirection string  `json:"sentimentDirection"`
			Confidence         float64 `json:"confidence"`
		} `json:"news"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode ai-prediction response: %w", err)
	}
	if payload.News.SentimentDirection == "" {
		return nil, fmt.Errorf("ai-prediction response has no sentiment for %s", symbol)
	}
	return &domain.SentimentPayload{
		Direction:  payload.News.SentimentDirection,
		Confidence: payload.News.Confidence,
	}, nil
}
