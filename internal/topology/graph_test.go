package topology

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func pairGraph(weight float64) *GraphFile {
	gf := &GraphFile{
		Nodes: []Node{
			{ID: "RELIANCE", RiskScore: 0.5, Group: 1},
			{ID: "TCS", RiskScore: 0.2, Group: 2},
		},
		Links: []Link{{Source: "RELIANCE", Target: "TCS", Value: weight}},
	}
	return gf
}

func TestNewGraphExplicitLinks(t *testing.T) {
	g := NewGraph(pairGraph(1))

	idx, ok := g.Lookup("RELIANCE")
	if !ok {
		t.Fatal("expected RELIANCE in index")
	}
	if got := g.Degree(idx); got != 1 {
		t.Fatalf("expected degree 1, got %d", got)
	}

	// L = [[1,-1],[-1,1]] has eigenvalues 0 and 2.
	fiedler, ok := g.Fiedler()
	if !ok {
		t.Fatal("expected successful eigen-decomposition")
	}
	if math.Abs(fiedler-2) > 1e-9 {
		t.Fatalf("expected Fiedler value 2, got %f", fiedler)
	}
}

func TestNewGraphSynthesizedEdges(t *testing.T) {
	gf := &GraphFile{
		Nodes: []Node{
			{ID: "A", Group: 1},
			{ID: "B", Group: 1},
			{ID: "C", Group: 2},
		},
	}
	g := NewGraph(gf)

	a, _ := g.Lookup("A")
	b, _ := g.Lookup("B")
	c, _ := g.Lookup("C")
	if g.adj[a][b] != sameGroupWeight {
		t.Fatalf("expected same-group weight %.1f, got %f", sameGroupWeight, g.adj[a][b])
	}
	if g.adj[a][c] != crossGroupWeight {
		t.Fatalf("expected cross-group weight %.1f, got %f", crossGroupWeight, g.adj[a][c])
	}
	if g.adj[a][a] != 0 {
		t.Fatalf("expected empty diagonal, got %f", g.adj[a][a])
	}
}

func TestCompleteGraphFiedler(t *testing.T) {
	// Complete graph on 3 nodes with uniform weight w has Laplacian
	// eigenvalues {0, 3w, 3w}.
	gf := &GraphFile{
		Nodes: []Node{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Links: []Link{
			{Source: "A", Target: "B", Value: 0.5},
			{Source: "A", Target: "C", Value: 0.5},
			{Source: "B", Target: "C", Value: 0.5},
		},
	}
	g := NewGraph(gf)
	fiedler, ok := g.Fiedler()
	if !ok {
		t.Fatal("expected successful eigen-decomposition")
	}
	if math.Abs(fiedler-1.5) > 1e-9 {
		t.Fatalf("expected Fiedler value 1.5, got %f", fiedler)
	}
}

func TestSingleNodeGraphHasNoFiedler(t *testing.T) {
	g := NewGraph(&GraphFile{Nodes: []Node{{ID: "A"}}})
	if _, ok := g.Fiedler(); ok {
		t.Fatal("expected no Fiedler value for single-node graph")
	}
}

func TestClusterFor(t *testing.T) {
	gf := pairGraph(1)
	gf.Insights.Clusters = []Cluster{
		{Name: "IT Services", Risk: "Low", Members: []string{"TCS"}},
	}
	g := NewGraph(gf)

	name, risk := g.ClusterFor("TCS")
	if name != "IT Services" || risk != "Low" {
		t.Fatalf("unexpected cluster: %s/%s", name, risk)
	}
	name, risk = g.ClusterFor("RELIANCE")
	if name != "General" || risk != "Moderate" {
		t.Fatalf("expected General/Moderate default, got %s/%s", name, risk)
	}
}

func TestLoadGraphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	payload := `{
		"nodes": [
			{"id": "RELIANCE", "risk_score": 0.35, "group": 1},
			{"id": "TCS", "risk_score": 0.25, "group": 2}
		],
		"links": [{"source": "RELIANCE", "target": "TCS", "value": 0.6}],
		"insights": {"clusters": [{"name": "Energy", "risk": "High", "members": ["RELIANCE"]}]}
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	gf, err := LoadGraphFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gf.Nodes) != 2 || len(gf.Links) != 1 {
		t.Fatalf("unexpected graph shape: %+v", gf)
	}
	if gf.Insights.Clusters[0].Risk != "High" {
		t.Fatalf("unexpected cluster risk: %s", gf.Insights.Clusters[0].Risk)
	}

	if _, err := LoadGraphFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
