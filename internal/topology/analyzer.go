package topology

import (
	"math"

	"quantpulse/internal/domain"
)

const (
	maxNeighborSignals = 5
	bullishRiskCutoff  = 0.4

	// Contagion default when the Laplacian eigen-decomposition is
	// unavailable. Deliberately different from the unknown-symbol default
	// of 0.0 (see DESIGN.md).
	contagionMatrixDefault = 0.3
)

// Analyzer derives a bounded network risk discount for one instrument from
// the static topology graph. ComputeRisk is a total function: every failure
// mode degrades to a documented neutral default instead of returning an error.
type Analyzer struct {
	graph *Graph
}

// NewAnalyzer accepts a nil graph; all lookups then degrade to the neutral
// default.
func NewAnalyzer(graph *Graph) *Analyzer {
	return &Analyzer{graph: graph}
}

func neutralRisk(reason string) domain.TopologyRiskResult {
	return domain.TopologyRiskResult{
		NetworkRiskPenalty: 0.0,
		RiskAdjustment:     1.0,
		CentralityScore:    0.5,
		ClusterName:        "Unknown",
		ClusterRisk:        domain.ClusterRiskModerate,
		NeighborSignals:    []domain.NeighborSignal{},
		ContagionRisk:      0.0,
		DegradedReason:     reason,
	}
}

// ComputeRisk returns the topology risk profile for a symbol.
func (a *Analyzer) ComputeRisk(symbol string) domain.TopologyRiskResult {
	if a == nil || a.graph == nil {
		return neutralRisk("no-graph")
	}
	idx, ok := a.graph.Lookup(symbol)
	if !ok {
		return neutralRisk("symbol-not-in-graph")
	}

	centrality := 0.5
	if a.graph.Size() > 1 {
		centrality = float64(a.graph.Degree(idx)) / float64(a.graph.Size()-1)
	}

	clusterName, clusterRisk := a.graph.ClusterFor(symbol)

	contagion := contagionMatrixDefault
	if fiedler, ok := a.graph.Fiedler(); ok {
		contagion = math.Min(fiedler/10, 1.0)
	}

	neighbors := a.graph.Neighbors(idx)
	if len(neighbors) > maxNeighborSignals {
		neighbors = neighbors[:maxNeighborSignals]
	}
	signals := make([]domain.NeighborSignal, 0, len(neighbors))
	bearishCount := 0
	for _, j := range neighbors {
		node := a.graph.NodeAt(j)
		signal := "bearish"
		if node.RiskScore < bullishRiskCutoff {
			signal = "bullish"
		} else {
			bearishCount++
		}
		signals = append(signals, domain.NeighborSignal{
			Symbol:    node.ID,
			Signal:    signal,
			RiskScore: node.RiskScore,
		})
	}

	var penalty float64
	switch clusterRisk {
	case domain.ClusterRiskCritical:
		penalty = 0.05 + contagion*0.05
	case domain.ClusterRiskHigh:
		penalty = 0.03 + contagion*0.03
	default:
		penalty = contagion * 0.02
	}
	if float64(bearishCount) > float64(len(signals))/2 {
		penalty += 0.02 * float64(bearishCount)
	}

	return domain.TopologyRiskResult{
		NetworkRiskPenalty: round(penalty, 4),
		RiskAdjustment:     round(1-penalty, 4),
		CentralityScore:    round(centrality, 3),
		ClusterName:        clusterName,
		ClusterRisk:        clusterRisk,
		NeighborSignals:    signals,
		ContagionRisk:      round(contagion, 3),
	}
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
