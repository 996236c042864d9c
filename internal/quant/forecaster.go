package quant

import (
	"math"

	"quantpulse/internal/domain"
	"quantpulse/internal/ta"
)

const (
	minObservations = 20
	smaShortPeriod  = 5
	smaLongPeriod   = 20
	trendThreshold  = 0.01
)

// SeriesSource provides historical prices by column name.
type SeriesSource interface {
	Prices(column string) []float64
}

// Forecaster derives a directional price forecast from a historical price
// series. It never fails: missing or degenerate data yields the documented
// fallback forecast.
type Forecaster struct {
	series SeriesSource
}

// NewForecaster accepts a nil source; every forecast then falls back.
func NewForecaster(series SeriesSource) *Forecaster {
	return &Forecaster{series: series}
}

func fallbackForecast(currentPrice float64, reason string) domain.ForecastResult {
	return domain.ForecastResult{
		BasePrice:      currentPrice,
		PredictedPrice: currentPrice * 1.02,
		Direction:      domain.DirectionUp,
		Confidence:     65.0,
		Volatility:     0.02,
		TrendStrength:  0.5,
		Method:         domain.ForecastMethodFallback,
		DegradedReason: reason,
	}
}

// BaseForecast produces the quant agent forecast for a symbol at the given
// current price.
func (f *Forecaster) BaseForecast(symbol string, currentPrice float64) domain.ForecastResult {
	var prices []float64
	if f.series != nil {
		prices = f.series.Prices(domain.SeriesColumn(symbol))
	}
	if len(prices) < minObservations {
		return fallbackForecast(currentPrice, "insufficient-history")
	}

	returns := ta.Returns(prices)
	_, volatility := ta.MeanStd(returns)

	sma5 := ta.SMA(prices, smaShortPeriod)
	sma20 := ta.SMA(prices, smaLongPeriod)
	last := prices[len(prices)-1]
	if sma5 == 0 || sma20 == 0 || math.IsNaN(sma5) || math.IsNaN(sma20) {
		return fallbackForecast(currentPrice, "zero-moving-average")
	}

	trend := (sma5 - sma20) / sma20
	momentum := (last - sma5) / sma5

	var direction domain.Direction
	var priceChange float64
	switch {
	case trend > trendThreshold && momentum > 0:
		direction = domain.DirectionUp
		priceChange = math.Abs(trend) * (1 + momentum)
	case trend < -trendThreshold && momentum < 0:
		direction = domain.DirectionDown
		priceChange = -math.Abs(trend) * (1 + math.Abs(momentum))
	default:
		direction = domain.DirectionSideways
		priceChange = trend * 0.5
	}

	predicted := currentPrice * (1 + priceChange)
	trendStrength := math.Min(math.Abs(trend)*100, 1.0)
	confidence := 50 + trendStrength*40

	if !isFinite(predicted) || !isFinite(volatility) || !isFinite(confidence) {
		return fallbackForecast(currentPrice, "non-finite-computation")
	}

	return domain.ForecastResult{
		BasePrice:      currentPrice,
		PredictedPrice: round(predicted, 2),
		Direction:      direction,
		Confidence:     round(confidence, 1),
		Volatility:     round(volatility, 4),
		TrendStrength:  round(trendStrength, 2),
		Method:         domain.ForecastMethodTechnical,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
