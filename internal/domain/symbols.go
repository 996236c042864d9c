package domain

// FallbackPrices maps known NSE symbols to demo prices used when no live
// price is provided and the upstream price feed is unreachable.
var FallbackPrices = map[string]float64{
	"RELIANCE":   2950.0,
	"TCS":        4200.0,
	"HDFCBANK":   1750.0,
	"INFY":       1850.0,
	"ICICIBANK":  1250.0,
	"BHARTIARTL": 1650.0,
	"ITC":        485.0,
	"SBIN":       850.0,
	"LT":         3650.0,
	"HCLTECH":    1750.0,
}

// DefaultFallbackPrice covers symbols outside the demo table.
const DefaultFallbackPrice = 1000.0

// SupportedSymbols lists all tracked instruments.
var SupportedSymbols = []string{
	"RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK",
	"BHARTIARTL", "ITC", "SBIN", "LT", "HCLTECH",
}

// SeriesColumn maps a symbol to its column name in the historical
// price table (NSE listings carry the ".NS" suffix).
func SeriesColumn(symbol string) string {
	return symbol + ".NS"
}
