package topology

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// Edge weights synthesized when the graph file carries no explicit links:
// instruments in the same sector group correlate stronger than cross-group pairs.
const (
	sameGroupWeight  = 0.7
	crossGroupWeight = 0.3
)

// Node is one instrument in the topology graph.
type Node struct {
	ID        string  `json:"id"`
	RiskScore float64 `json:"risk_score"`
	Group     int     `json:"group"`
}

// Link is an explicit weighted edge between two instruments.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// Cluster is a named group of instruments sharing a risk tier.
type Cluster struct {
	Name    string   `json:"name"`
	Risk    string   `json:"risk"`
	Members []string `json:"members"`
}

// GraphFile is the on-disk topology format.
type GraphFile struct {
	Nodes    []Node `json:"nodes"`
	Links    []Link `json:"links"`
	Insights struct {
		Clusters []Cluster `json:"clusters"`
	} `json:"insights"`
}

// LoadGraphFile parses the static topology JSON.
func LoadGraphFile(path string) (*GraphFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph file: %w", err)
	}
	var gf GraphFile
	if err := json.Unmarshal(data, &gf); err != nil {
		return nil, fmt.Errorf("parse graph file: %w", err)
	}
	return &gf, nil
}

// Graph is the read-only instrument graph built once at startup.
// The symbol index and the Fiedler value are precomputed at load time
// so per-request lookups never scan or re-decompose.
type Graph struct {
	nodes    []Node
	index    map[string]int
	adj      [][]float64
	clusters []Cluster

	fiedler   float64
	fiedlerOK bool
}

// NewGraph builds adjacency, the symbol index, and the spectral
// connectivity measure from a parsed graph file.
func NewGraph(gf *GraphFile) *Graph {
	n := len(gf.Nodes)
	g := &Graph{
		nodes:    gf.Nodes,
		index:    make(map[string]int, n),
		clusters: gf.Insights.Clusters,
	}
	for i, node := range gf.Nodes {
		g.index[node.ID] = i
	}

	g.adj = make([][]float64, n)
	for i := range g.adj {
		g.adj[i] = make([]float64, n)
	}

	if len(gf.Links) > 0 {
		for _, link := range gf.Links {
			i, okI := g.index[link.Source]
			j, okJ := g.index[link.Target]
			if !okI || !okJ || i == j {
				continue
			}
			w := link.Value
			if w <= 0 {
				w = 1
			}
			g.adj[i][j] = w
			g.adj[j][i] = w
		}
	} else {
		for i, a := range gf.Nodes {
			for j, b := range gf.Nodes {
				if i == j {
					continue
				}
				if a.Group == b.Group {
					g.adj[i][j] = sameGroupWeight
				} else {
					g.adj[i][j] = crossGroupWeight
				}
			}
		}
	}

	g.computeFiedler()
	return g
}

// computeFiedler eigen-decomposes the graph Laplacian L = D - A and keeps
// the second-smallest eigenvalue (algebraic connectivity).
func (g *Graph) computeFiedler() {
	n := len(g.nodes)
	if n < 2 {
		return
	}

	lap := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		var degree float64
		for j := 0; j < n; j++ {
			degree += g.adj[i][j]
		}
		lap.SetSym(i, i, degree)
		for j := i + 1; j < n; j++ {
			lap.SetSym(i, j, -g.adj[i][j])
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(lap, false) {
		return
	}
	values := eig.Values(nil)
	// EigenSym yields eigenvalues in ascending order; index 1 is the
	// Fiedler value.
	g.fiedler = values[1]
	g.fiedlerOK = true
}

// Size returns the node count.
func (g *Graph) Size() int { return len(g.nodes) }

// Lookup resolves a symbol to its node index.
func (g *Graph) Lookup(symbol string) (int, bool) {
	idx, ok := g.index[symbol]
	return idx, ok
}

// NodeAt returns the node at index i.
func (g *Graph) NodeAt(i int) Node { return g.nodes[i] }

// Degree counts neighbors connected by a positive edge weight.
func (g *Graph) Degree(i int) int {
	count := 0
	for _, w := range g.adj[i] {
		if w > 0 {
			count++
		}
	}
	return count
}

// Neighbors returns the indices of positively connected nodes, in
// adjacency order.
func (g *Graph) Neighbors(i int) []int {
	var out []int
	for j, w := range g.adj[i] {
		if w > 0 {
			out = append(out, j)
		}
	}
	return out
}

// ClusterFor scans the cluster list for the symbol's membership.
// Instruments without a cluster default to General/Moderate.
func (g *Graph) ClusterFor(symbol string) (string, string) {
	for _, cluster := range g.clusters {
		for _, member := range cluster.Members {
			if member == symbol {
				return cluster.Name, cluster.Risk
			}
		}
	}
	return "General", "Moderate"
}

// Fiedler returns the precomputed algebraic connectivity and whether the
// eigen-decomposition succeeded.
func (g *Graph) Fiedler() (float64, bool) {
	return g.fiedler, g.fiedlerOK
}
