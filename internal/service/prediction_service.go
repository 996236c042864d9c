package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"quantpulse/internal/domain"
	"quantpulse/internal/ensemble"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const priceCacheTTL = 90 * time.Second

// Price source labels reported alongside resolved quotes.
const (
	PriceSourceRequest  = "request"
	PriceSourceCache    = "cache"
	PriceSourceLive     = "live"
	PriceSourceFallback = "fallback"
)

type PriceSource interface {
	FetchCurrentPrice(ctx context.Context, symbol string) (float64, error)
}

type SentimentSource interface {
	FetchSentiment(ctx context.Context, symbol string) (*domain.SentimentPayload, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// PredictionService resolves the inputs for an ensemble run and invokes the
// orchestrator. Upstream quote and sentiment outages never fail a request:
// prices fall back to the demo table and sentiment degrades to neutral.
type PredictionService struct {
	tracer       trace.Tracer
	prices       PriceSource
	sentiment    SentimentSource
	orchestrator *ensemble.Orchestrator
	redis        RedisClient
}

func NewPredictionService(
	tracer trace.Tracer,
	prices PriceSource,
	sentiment SentimentSource,
	orchestrator *ensemble.Orchestrator,
	redisClient RedisClient,
) *PredictionService {
	return &PredictionService{
		tracer:       tracer,
		prices:       prices,
		sentiment:    sentiment,
		orchestrator: orchestrator,
		redis:        redisClient,
	}
}

// Predict runs the full ensemble for a symbol. A positive requestPrice
// overrides quote resolution, which lets clients replay scenarios.
func (s *PredictionService) Predict(ctx context.Context, symbol string, requestPrice float64, shock bool) (domain.EnsembleResult, error) {
	ctx, span := s.tracer.Start(ctx, "prediction-service.predict")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if len(symbol) < 2 {
		return domain.EnsembleResult{}, fmt.Errorf("invalid symbol %q", symbol)
	}

	price := requestPrice
	if price <= 0 {
		price, _ = s.ResolvePrice(ctx, symbol)
	}

	payload := s.fetchSentiment(ctx, symbol)
	return s.orchestrator.Predict(ctx, symbol, price, payload, shock)
}

// ResolvePrice returns the best available quote for a symbol and where it
// came from: the Redis price cache, a live upstream fetch, or the demo
// fallback table.
func (s *PredictionService) ResolvePrice(ctx context.Context, symbol string) (float64, string) {
	ctx, span := s.tracer.Start(ctx, "prediction-service.resolve-price")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if s.redis != nil {
		if cached, err := s.getPriceCache(ctx, symbol); err != nil {
			log.Printf("redis cache read error: %v", err)
		} else if cached > 0 {
			return cached, PriceSourceCache
		}
	}

	if s.prices != nil {
		price, err := s.prices.FetchCurrentPrice(ctx, symbol)
		if err == nil && price > 0 {
			if s.redis != nil {
				if err := s.setPriceCache(ctx, symbol, price); err != nil {
					log.Printf("redis cache write error for %s: %v", symbol, err)
				}
			}
			return price, PriceSourceLive
		}
		if err != nil {
			log.Printf("live price fetch failed for %s, using fallback: %v", symbol, err)
		}
	}

	if price, ok := domain.FallbackPrices[symbol]; ok {
		return price, PriceSourceFallback
	}
	return domain.DefaultFallbackPrice, PriceSourceFallback
}

// RefreshPrices warms the Redis price cache for every supported symbol.
func (s *PredictionService) RefreshPrices(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "prediction-service.refresh-prices")
	defer span.End()

	if s.prices == nil {
		return fmt.Errorf("no live price source configured")
	}

	refreshed := 0
	var lastErr error
	for _, symbol := range domain.SupportedSymbols {
		price, err := s.prices.FetchCurrentPrice(ctx, symbol)
		if err != nil || price <= 0 {
			if err != nil {
				lastErr = err
			}
			continue
		}
		if s.redis != nil {
			if err := s.setPriceCache(ctx, symbol, price); err != nil {
				log.Printf("redis cache write error for %s: %v", symbol, err)
				continue
			}
		}
		refreshed++
	}

	if refreshed == 0 && lastErr != nil {
		return fmt.Errorf("refresh prices: %w", lastErr)
	}
	log.Printf("Refreshed prices for %d symbols", refreshed)
	return nil
}

// fetchSentiment degrades to nil, which the normalizer maps to neutral.
func (s *PredictionService) fetchSentiment(ctx context.Context, symbol string) *domain.SentimentPayload {
	if s.sentiment == nil {
		return nil
	}
	payload, err := s.sentiment.FetchSentiment(ctx, symbol)
	if err != nil {
		log.Printf("sentiment fetch failed for %s, using neutral: %v", symbol, err)
		return nil
	}
	return payload
}

func (s *PredictionService) setPriceCache(ctx context.Context, symbol string, price float64) error {
	value := strconv.FormatFloat(price, 'f', -1, 64)
	return s.redis.Set(ctx, "price:"+symbol, value, priceCacheTTL).Err()
}

func (s *PredictionService) getPriceCache(ctx context.Context, symbol string) (float64, error) {
	data, err := s.redis.Get(ctx, "price:"+symbol).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(data, 64)
}
