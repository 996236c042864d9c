package ta

import "math"

func MeanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// SMA returns the simple moving average of the last period values.
// Returns NaN when fewer than period values are available.
func SMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return math.NaN()
	}
	mean, _ := MeanStd(values[len(values)-period:])
	return mean
}

// Returns computes simple period-over-period returns: (p[i]-p[i-1])/p[i-1].
// A zero previous price yields NaN for that element.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			out[i-1] = math.NaN()
			continue
		}
		out[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
	}
	return out
}
