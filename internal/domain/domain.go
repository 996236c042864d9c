package domain

// Direction is the predicted short-term price direction for an instrument.
type Direction string

const (
	DirectionUp       Direction = "UP"
	DirectionDown     Direction = "DOWN"
	DirectionSideways Direction = "SIDEWAYS"
)

// Sentiment labels as exposed to API consumers.
const (
	SentimentBullish = "Bullish"
	SentimentBearish = "Bearish"
	SentimentNeutral = "Neutral"
)

// Cluster risk tiers carried by the topology graph data.
const (
	ClusterRiskLow      = "Low"
	ClusterRiskModerate = "Moderate"
	ClusterRiskHigh     = "High"
	ClusterRiskCritical = "Critical"
)

const (
	ForecastMethodTechnical = "lstm_technical"
	ForecastMethodFallback  = "fallback"
)

// ForecastResult is the Quant agent output for one instrument.
type ForecastResult struct {
	BasePrice      float64   `json:"base_price"`
	PredictedPrice float64   `json:"predicted_price"`
	Direction      Direction `json:"direction"`
	Confidence     float64   `json:"confidence"`
	Volatility     float64   `json:"volatility"`
	TrendStrength  float64   `json:"trend_strength"`
	Method         string    `json:"method"`
	DegradedReason string    `json:"degraded_reason,omitempty"`
}

// NeighborSignal describes one instrument directly connected to the
// requested symbol in the topology graph.
type NeighborSignal struct {
	Symbol    string  `json:"symbol"`
	Signal    string  `json:"signal"`
	RiskScore float64 `json:"risk_score"`
}

// TopologyRiskResult is the Topology agent output for one instrument.
type TopologyRiskResult struct {
	NetworkRiskPenalty float64          `json:"network_risk_penalty"`
	RiskAdjustment     float64          `json:"risk_adjustment"`
	CentralityScore    float64          `json:"centrality_score"`
	ClusterName        string           `json:"cluster_name"`
	ClusterRisk        string           `json:"cluster_risk"`
	NeighborSignals    []NeighborSignal `json:"neighbor_signals"`
	ContagionRisk      float64          `json:"contagion_risk"`
	DegradedReason     string           `json:"degraded_reason,omitempty"`
}

// SentimentPayload is the raw upstream sentiment signal: a direction
// (UP, DOWN, NEUTRAL) plus a confidence percentage.
type SentimentPayload struct {
	Direction  string  `json:"direction"`
	Confidence float64 `json:"confidence"`
}

// SentimentResult is the Sentiment agent output.
type SentimentResult struct {
	ConsensusScore      float64 `json:"consensus_score"`
	SentimentMultiplier float64 `json:"sentiment_multiplier"`
	SentimentLabel      string  `json:"sentiment_label"`
	BullBearRatio       float64 `json:"bull_bear_ratio"`
	Confidence          float64 `json:"confidence"`
}

// QuantComponent is the quant agent slice of the ensemble breakdown.
type QuantComponent struct {
	BaseForecast  float64   `json:"base_forecast"`
	Confidence    float64   `json:"confidence"`
	Direction     Direction `json:"direction"`
	Volatility    float64   `json:"volatility"`
	TrendStrength float64   `json:"trend_strength"`
	Weight        float64   `json:"weight"`
}

// TopologyComponent is the topology agent slice of the ensemble breakdown.
type TopologyComponent struct {
	RiskAdjustment     float64          `json:"risk_adjustment"`
	AdjustedPrice      float64          `json:"adjusted_price"`
	NetworkRiskPenalty float64          `json:"network_risk_penalty"`
	ClusterName        string           `json:"cluster_name"`
	ClusterRisk        string           `json:"cluster_risk"`
	CentralityScore    float64          `json:"centrality_score"`
	ContagionRisk      float64          `json:"contagion_risk"`
	NeighborSignals    []NeighborSignal `json:"neighbor_signals"`
	Weight             float64          `json:"weight"`
}

// SentimentComponent is the sentiment agent slice of the ensemble breakdown.
type SentimentComponent struct {
	SentimentMultiplier float64 `json:"sentiment_multiplier"`
	ConsensusScore      float64 `json:"consensus_score"`
	SentimentLabel      string  `json:"sentiment_label"`
	BullBearRatio       float64 `json:"bull_bear_ratio"`
	Confidence          float64 `json:"confidence"`
	Weight              float64 `json:"weight"`
}

type EnsembleComponents struct {
	QuantAgent     QuantComponent     `json:"quant_agent"`
	TopologyAgent  TopologyComponent  `json:"topology_agent"`
	SentimentAgent SentimentComponent `json:"sentiment_agent"`
}

// Comparison exposes the adjustment chain for visualization: raw forecast,
// topology-discounted price, and the relative adjustment percentages.
type Comparison struct {
	LSTMBase               float64 `json:"lstm_base"`
	AgenticAdjusted        float64 `json:"agentic_adjusted"`
	TopologyAdjustmentPct  float64 `json:"topology_adjustment_pct"`
	SentimentAdjustmentPct float64 `json:"sentiment_adjustment_pct"`
	TotalAdjustmentPct     float64 `json:"total_adjustment_pct"`
}

// EnsembleResult is the fused prediction returned to API consumers.
type EnsembleResult struct {
	Symbol                string             `json:"symbol"`
	Timestamp             string             `json:"timestamp"`
	CurrentPrice          float64            `json:"current_price"`
	WeightedPrediction    float64            `json:"weighted_prediction"`
	ConfidenceScore       float64            `json:"confidence_score"`
	Direction             Direction          `json:"direction"`
	PriceChangePercent    float64            `json:"price_change_percent"`
	Components            EnsembleComponents `json:"components"`
	Comparison            Comparison         `json:"comparison"`
	ShockSimulationActive bool               `json:"shock_simulation_active"`
	Disclaimer            string             `json:"disclaimer"`
}
