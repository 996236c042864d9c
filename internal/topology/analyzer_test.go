package topology

import (
	"math"
	"testing"

	"quantpulse/internal/domain"
)

func TestComputeRiskUnknownSymbolNeutralDefault(t *testing.T) {
	a := NewAnalyzer(NewGraph(pairGraph(1)))

	got := a.ComputeRisk("UNLISTED")
	if got.NetworkRiskPenalty != 0 {
		t.Fatalf("expected zero penalty, got %f", got.NetworkRiskPenalty)
	}
	if got.RiskAdjustment != 1.0 {
		t.Fatalf("expected adjustment 1.0, got %f", got.RiskAdjustment)
	}
	if got.CentralityScore != 0.5 {
		t.Fatalf("expected centrality 0.5, got %f", got.CentralityScore)
	}
	if got.ClusterName != "Unknown" || got.ClusterRisk != domain.ClusterRiskModerate {
		t.Fatalf("expected Unknown/Moderate cluster, got %s/%s", got.ClusterName, got.ClusterRisk)
	}
	if len(got.NeighborSignals) != 0 {
		t.Fatalf("expected no neighbor signals, got %d", len(got.NeighborSignals))
	}
	if got.ContagionRisk != 0.0 {
		t.Fatalf("expected contagion 0.0 for unknown symbol, got %f", got.ContagionRisk)
	}
	if got.DegradedReason != "symbol-not-in-graph" {
		t.Fatalf("unexpected degrade reason: %s", got.DegradedReason)
	}
}

func TestComputeRiskNilGraph(t *testing.T) {
	a := NewAnalyzer(nil)
	got := a.ComputeRisk("RELIANCE")
	if got.RiskAdjustment != 1.0 || got.DegradedReason != "no-graph" {
		t.Fatalf("expected neutral no-graph default, got %+v", got)
	}
}

func TestComputeRiskCriticalClusterWithBearishSurcharge(t *testing.T) {
	gf := pairGraph(1) // Fiedler 2 -> contagion 0.2
	gf.Insights.Clusters = []Cluster{
		{Name: "Energy", Risk: domain.ClusterRiskCritical, Members: []string{"RELIANCE"}},
	}
	a := NewAnalyzer(NewGraph(gf))

	got := a.ComputeRisk("RELIANCE")
	// TCS risk 0.2 is bullish, so no surcharge: 0.05 + 0.2*0.05 = 0.06.
	if math.Abs(got.NetworkRiskPenalty-0.06) > 1e-9 {
		t.Fatalf("expected penalty 0.06, got %f", got.NetworkRiskPenalty)
	}
	if math.Abs(got.RiskAdjustment-0.94) > 1e-9 {
		t.Fatalf("expected adjustment 0.94, got %f", got.RiskAdjustment)
	}
	if got.CentralityScore != 1.0 {
		t.Fatalf("expected full centrality, got %f", got.CentralityScore)
	}
	if got.ContagionRisk != 0.2 {
		t.Fatalf("expected contagion 0.2, got %f", got.ContagionRisk)
	}

	// Flip the neighbor to bearish: majority bearish adds 0.02 per bearish
	// neighbor: 0.06 + 0.02 = 0.08.
	gf.Nodes[1].RiskScore = 0.8
	a = NewAnalyzer(NewGraph(gf))
	got = a.ComputeRisk("RELIANCE")
	if math.Abs(got.NetworkRiskPenalty-0.08) > 1e-9 {
		t.Fatalf("expected penalty 0.08 with bearish neighbor, got %f", got.NetworkRiskPenalty)
	}
	if got.NeighborSignals[0].Signal != "bearish" {
		t.Fatalf("expected bearish neighbor signal, got %s", got.NeighborSignals[0].Signal)
	}
}

func TestComputeRiskHighAndModerateTiers(t *testing.T) {
	gf := pairGraph(1)
	gf.Insights.Clusters = []Cluster{
		{Name: "Banks", Risk: domain.ClusterRiskHigh, Members: []string{"RELIANCE"}},
	}
	a := NewAnalyzer(NewGraph(gf))
	got := a.ComputeRisk("RELIANCE")
	// 0.03 + 0.2*0.03 = 0.036.
	if math.Abs(got.NetworkRiskPenalty-0.036) > 1e-9 {
		t.Fatalf("expected penalty 0.036 for High tier, got %f", got.NetworkRiskPenalty)
	}

	// No cluster membership falls back to General/Moderate: 0.2*0.02.
	got = a.ComputeRisk("TCS")
	if math.Abs(got.NetworkRiskPenalty-0.004) > 1e-9 {
		t.Fatalf("expected penalty 0.004 for default tier, got %f", got.NetworkRiskPenalty)
	}
	if got.ClusterName != "General" {
		t.Fatalf("expected General cluster, got %s", got.ClusterName)
	}
}

func TestComputeRiskNeighborCap(t *testing.T) {
	gf := &GraphFile{Nodes: []Node{{ID: "HUB", RiskScore: 0.3}}}
	for _, id := range []string{"N1", "N2", "N3", "N4", "N5", "N6", "N7"} {
		gf.Nodes = append(gf.Nodes, Node{ID: id, RiskScore: 0.5})
		gf.Links = append(gf.Links, Link{Source: "HUB", Target: id, Value: 1})
	}
	a := NewAnalyzer(NewGraph(gf))

	got := a.ComputeRisk("HUB")
	if len(got.NeighborSignals) != maxNeighborSignals {
		t.Fatalf("expected %d neighbor signals, got %d", maxNeighborSignals, len(got.NeighborSignals))
	}
	if got.NeighborSignals[0].Symbol != "N1" {
		t.Fatalf("expected adjacency-ordered neighbors, got %s first", got.NeighborSignals[0].Symbol)
	}
}

func TestComputeRiskBoundedFields(t *testing.T) {
	gf := pairGraph(100) // absurd edge weight pushes the Fiedler value high
	a := NewAnalyzer(NewGraph(gf))

	got := a.ComputeRisk("RELIANCE")
	if got.ContagionRisk > 1.0 {
		t.Fatalf("contagion must be clamped to 1.0, got %f", got.ContagionRisk)
	}
	if got.RiskAdjustment <= 0 || got.RiskAdjustment > 1 {
		t.Fatalf("risk adjustment out of range: %f", got.RiskAdjustment)
	}
	if got.CentralityScore < 0 || got.CentralityScore > 1 {
		t.Fatalf("centrality out of range: %f", got.CentralityScore)
	}
}
