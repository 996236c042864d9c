package ensemble

import (
	"context"
	"fmt"
	"math"
	"time"

	"quantpulse/internal/domain"
	"quantpulse/internal/quant"
	"quantpulse/internal/sentiment"
	"quantpulse/internal/topology"

	"go.opentelemetry.io/otel/trace"
)

// Fixed agent weights for the ensemble confidence score.
const (
	WeightQuant     = 0.50
	WeightTopology  = 0.30
	WeightSentiment = 0.20
)

const (
	resultTTL = 5 * time.Minute

	// Percent-change band inside which the fused direction is SIDEWAYS.
	// The comparison is strict: exactly +/-1% still classifies SIDEWAYS.
	directionBandPct = 1.0

	Disclaimer = "This ensemble prediction is for demonstration purposes only. It combines multiple AI agents but should NOT be used for actual trading decisions."
)

// ResultCache stores fused results by request fingerprint.
type ResultCache interface {
	Get(key string) (any, bool)
	Set(key string, v any, ttl time.Duration)
}

// Orchestrator fuses the quant forecast, the topology risk discount, and
// the sentiment multiplier into one weighted prediction. The three agents
// share no mutable state and are invoked independently; results are cached
// by (symbol, price, shock) for five minutes.
type Orchestrator struct {
	tracer     trace.Tracer
	forecaster *quant.Forecaster
	analyzer   *topology.Analyzer
	cache      ResultCache
	now        func() time.Time
}

func NewOrchestrator(tracer trace.Tracer, forecaster *quant.Forecaster, analyzer *topology.Analyzer, cache ResultCache) *Orchestrator {
	return &Orchestrator{
		tracer:     tracer,
		forecaster: forecaster,
		analyzer:   analyzer,
		cache:      cache,
		now:        time.Now,
	}
}

func cacheKey(symbol string, currentPrice float64, shock bool) string {
	return fmt.Sprintf("%s|%.4f|%t", symbol, currentPrice, shock)
}

// Predict returns the fused ensemble prediction. The only errors surfaced
// are from the fusion arithmetic itself; the three agents are total
// functions that degrade to documented defaults.
func (o *Orchestrator) Predict(ctx context.Context, symbol string, currentPrice float64, payload *domain.SentimentPayload, shock bool) (domain.EnsembleResult, error) {
	_, span := o.tracer.Start(ctx, "ensemble.predict")
	defer span.End()

	if currentPrice <= 0 {
		return domain.EnsembleResult{}, fmt.Errorf("non-positive current price %f", currentPrice)
	}

	key := cacheKey(symbol, currentPrice, shock)
	if o.cache != nil {
		if cached, ok := o.cache.Get(key); ok {
			if result, ok := cached.(domain.EnsembleResult); ok {
				return result, nil
			}
		}
	}

	forecast := o.forecaster.BaseForecast(symbol, currentPrice)
	topo := o.analyzer.ComputeRisk(symbol)
	sent := sentiment.Normalize(payload)

	if shock {
		topo.RiskAdjustment = round(topo.RiskAdjustment*0.9, 4)
		topo.NetworkRiskPenalty = round(topo.NetworkRiskPenalty+0.1, 4)
		topo.ContagionRisk = round(math.Min(topo.ContagionRisk+0.3, 1.0), 3)
	}

	base := forecast.PredictedPrice
	if base <= 0 {
		return domain.EnsembleResult{}, fmt.Errorf("non-positive base forecast %f for %s", base, symbol)
	}

	topologyAdjusted := base * topo.RiskAdjustment
	final := topologyAdjusted * sent.SentimentMultiplier

	topologyConfidence := (1 - topo.NetworkRiskPenalty) * 100
	confidence := forecast.Confidence*WeightQuant +
		topologyConfidence*WeightTopology +
		sent.Confidence*WeightSentiment

	pct := (final - currentPrice) / currentPrice * 100

	topologyAdjPct := (topologyAdjusted - base) / base * 100
	sentimentAdjPct := 0.0
	if topologyAdjusted > 0 {
		sentimentAdjPct = (final - topologyAdjusted) / topologyAdjusted * 100
	}
	naivePct := (base - currentPrice) / currentPrice * 100
	totalAdjPct := pct - naivePct

	if !isFinite(final) || !isFinite(confidence) || !isFinite(pct) {
		return domain.EnsembleResult{}, fmt.Errorf("fusion produced non-finite result for %s", symbol)
	}

	result := domain.EnsembleResult{
		Symbol:             symbol,
		Timestamp:          o.now().UTC().Format(time.RFC3339),
		CurrentPrice:       currentPrice,
		WeightedPrediction: round(final, 2),
		ConfidenceScore:    round(confidence, 1),
		Direction:          directionFor(pct),
		PriceChangePercent: round(pct, 2),
		Components: domain.EnsembleComponents{
			QuantAgent: domain.QuantComponent{
				BaseForecast:  round(base, 2),
				Confidence:    forecast.Confidence,
				Direction:     forecast.Direction,
				Volatility:    forecast.Volatility,
				TrendStrength: forecast.TrendStrength,
				Weight:        WeightQuant,
			},
			TopologyAgent: domain.TopologyComponent{
				RiskAdjustment:     topo.RiskAdjustment,
				AdjustedPrice:      round(topologyAdjusted, 2),
				NetworkRiskPenalty: topo.NetworkRiskPenalty,
				ClusterName:        topo.ClusterName,
				ClusterRisk:        topo.ClusterRisk,
				CentralityScore:    topo.CentralityScore,
				ContagionRisk:      topo.ContagionRisk,
				NeighborSignals:    topo.NeighborSignals,
				Weight:             WeightTopology,
			},
			SentimentAgent: domain.SentimentComponent{
				SentimentMultiplier: sent.SentimentMultiplier,
				ConsensusScore:      sent.ConsensusScore,
				SentimentLabel:      sent.SentimentLabel,
				BullBearRatio:       sent.BullBearRatio,
				Confidence:          sent.Confidence,
				Weight:              WeightSentiment,
			},
		},
		Comparison: domain.Comparison{
			LSTMBase:               round(base, 2),
			AgenticAdjusted:        round(final, 2),
			TopologyAdjustmentPct:  round(topologyAdjPct, 2),
			SentimentAdjustmentPct: round(sentimentAdjPct, 2),
			TotalAdjustmentPct:     round(totalAdjPct, 2),
		},
		ShockSimulationActive: shock,
		Disclaimer:            Disclaimer,
	}

	if o.cache != nil {
		o.cache.Set(key, result, resultTTL)
	}
	return result, nil
}

func directionFor(pct float64) domain.Direction {
	if pct > directionBandPct {
		return domain.DirectionUp
	}
	if pct < -directionBandPct {
		return domain.DirectionDown
	}
	return domain.DirectionSideways
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
