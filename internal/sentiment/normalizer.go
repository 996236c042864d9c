package sentiment

import (
	"math"
	"strings"

	"quantpulse/internal/domain"
)

const (
	multiplierFloor = 0.9
	multiplierCeil  = 1.1
)

func neutralResult() domain.SentimentResult {
	return domain.SentimentResult{
		ConsensusScore:      0.0,
		SentimentMultiplier: 1.0,
		SentimentLabel:      domain.SentimentNeutral,
		BullBearRatio:       0.5,
		Confidence:          50.0,
	}
}

// Normalize maps an optional upstream sentiment payload into a bounded
// forecast multiplier. A nil payload or an unrecognized direction yields the
// neutral default; the multiplier is always clamped to [0.9, 1.1].
func Normalize(payload *domain.SentimentPayload) domain.SentimentResult {
	if payload == nil {
		return neutralResult()
	}

	var base, consensus float64
	var label string
	switch strings.ToUpper(strings.TrimSpace(payload.Direction)) {
	case "UP":
		base, consensus, label = 1.05, 0.5, domain.SentimentBullish
	case "DOWN":
		base, consensus, label = 0.95, -0.5, domain.SentimentBearish
	default:
		base, consensus, label = 1.0, 0.0, domain.SentimentNeutral
	}

	confidence := clamp(payload.Confidence, 0, 100)
	confidenceFactor := confidence / 100

	multiplier := 1.0
	if base > 1 {
		multiplier = 1 + 0.1*confidenceFactor*(base-1)/0.05
	} else if base < 1 {
		multiplier = 1 - 0.1*confidenceFactor*(1-base)/0.05
	}
	multiplier = clamp(multiplier, multiplierFloor, multiplierCeil)

	return domain.SentimentResult{
		ConsensusScore:      round(consensus, 2),
		SentimentMultiplier: round(multiplier, 4),
		SentimentLabel:      label,
		BullBearRatio:       round(0.5+consensus*0.5, 2),
		Confidence:          confidence,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
