package project

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"viz-proxy/api/internal/viz"
)

// GraphNode is one vertex of a projected graph.
type GraphNode struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Level int     `json:"level,omitempty"`
}

// GraphLink is one edge. Source/Target reference GraphNode IDs.
type GraphLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value,omitempty"`
}

// Graph is the {nodes, links} shape shared by the network-style projectors.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// ChordData is the {names, matrix} shape for chord diagrams. The matrix is
// synthetic relationship data, not a pairwise measurement.
type ChordData struct {
	Names  []string    `json:"names"`
	Matrix [][]float64 `json:"matrix"`
}

// Chord selects the top 10 items and synthesizes an N×N relationship matrix:
// cell (i,j) = clamp(5, 30, sqrt(vi*vj)/(total/N)*(0.5+r)) with r drawn from
// the injected source, so a fixed seed reproduces the matrix. Diagonal is 0.
func (p *Projector) Chord(res viz.Result) ChordData {
	recs := records(res)
	sortDesc(recs)
	if len(recs) > 10 {
		recs = recs[:10]
	}
	n := len(recs)
	total := totalOf(recs)
	if total <= 0 {
		total = float64(n)
	}
	avg := total / float64(n)

	out := ChordData{Matrix: make([][]float64, n)}
	for _, r := range recs {
		out.Names = append(out.Names, r.Name)
	}
	for i := range recs {
		out.Matrix[i] = make([]float64, n)
		for j := range recs {
			if i == j {
				continue
			}
			raw := math.Sqrt(math.Abs(recs[i].Value*recs[j].Value)) / avg * (0.5 + p.rng.Float64())
			out.Matrix[i][j] = clamp(raw, 5, 30)
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NetworkGraph builds a graph from the result. Trees contribute their
// parent→child edges with level-decaying default node values; flat lists get
// synthetic edges between items whose value similarity exceeds 0.7, and every
// isolate is connected to its nearest-value neighbor.
func (p *Projector) NetworkGraph(res viz.Result) Graph {
	if res.IsHierarchical && res.Tree != nil {
		return treeGraph(*res.Tree, func(name string, _ int) string { return name })
	}
	return similarityGraph(records(res))
}

// ConnectionMap shares the network-graph topology; the renderer lays the
// nodes out geographically.
func (p *Projector) ConnectionMap(res viz.Result) Graph {
	return p.NetworkGraph(res)
}

// treeGraph walks parent→child edges. Nodes without explicit values get
// max(5, 20-5*level).
func treeGraph(root viz.Node, id func(string, int) string) Graph {
	var g Graph
	var walk func(n viz.Node, level int)
	walk = func(n viz.Node, level int) {
		value := math.Max(5, float64(20-5*level))
		if n.Value != nil {
			value = *n.Value
		}
		g.Nodes = append(g.Nodes, GraphNode{ID: id(n.Name, level), Name: n.Name, Value: value, Level: level})
		for _, c := range n.Children {
			g.Links = append(g.Links, GraphLink{Source: id(n.Name, level), Target: id(c.Name, level+1)})
			walk(c, level+1)
		}
	}
	walk(root, 0)
	return g
}

const similarityThreshold = 0.7

func valueSimilarity(a, b float64) float64 {
	a, b = math.Abs(a), math.Abs(b)
	max := math.Max(a, b)
	if max == 0 {
		return 1
	}
	return 1 - math.Abs(a-b)/max
}

func similarityGraph(recs []viz.Record) Graph {
	var g Graph
	for _, r := range recs {
		g.Nodes = append(g.Nodes, GraphNode{ID: r.Name, Name: r.Name, Value: r.Value})
	}
	degree := make([]int, len(recs))
	for i := 0; i < len(recs); i++ {
		for j := i + 1; j < len(recs); j++ {
			if sim := valueSimilarity(recs[i].Value, recs[j].Value); sim > similarityThreshold {
				g.Links = append(g.Links, GraphLink{Source: recs[i].Name, Target: recs[j].Name, Value: sim})
				degree[i]++
				degree[j]++
			}
		}
	}
	// Isolate rescue: connect every degree-0 node to its nearest-value
	// neighbor so the rendered graph has no floating vertices.
	for i, d := range degree {
		if d > 0 || len(recs) < 2 {
			continue
		}
		best, bestDiff := -1, math.MaxFloat64
		for j := range recs {
			if j == i {
				continue
			}
			if diff := math.Abs(recs[i].Value - recs[j].Value); diff < bestDiff {
				best, bestDiff = j, diff
			}
		}
		g.Links = append(g.Links, GraphLink{Source: recs[i].Name, Target: recs[best].Name})
		degree[i]++
		degree[best]++
	}
	return g
}

var reSlug = regexp.MustCompile(`[^a-z0-9 ]+`)

// Slug derives a collision-safe node ID from a display name: non-word chars
// stripped, lower-cased, spaces to underscores.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = reSlug.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return "node"
	}
	return strings.ReplaceAll(s, " ", "_")
}

// DAG projects the same traversal as NetworkGraph but with slug IDs and
// edges de-duplicated by "{parent}-{child}". If no edges were produced, the
// nodes are chained to keep the diagram connected.
func (p *Projector) DAG(res viz.Result) Graph {
	// Same display name at two levels must not collapse into one vertex, so
	// IDs are cached per (level, name) and suffixed on collision.
	cache := map[string]string{}
	used := map[string]bool{}
	idFor := func(name string, level int) string {
		key := strconv.Itoa(level) + "|" + name
		if v, ok := cache[key]; ok {
			return v
		}
		base := Slug(name)
		s := base
		for i := 2; used[s]; i++ {
			s = base + "_" + strconv.Itoa(i)
		}
		used[s] = true
		cache[key] = s
		return s
	}

	var g Graph
	if res.IsHierarchical && res.Tree != nil {
		g = treeGraph(*res.Tree, idFor)
	} else {
		recs := records(res)
		for i, r := range recs {
			g.Nodes = append(g.Nodes, GraphNode{ID: idFor(r.Name, i), Name: r.Name, Value: r.Value})
		}
	}

	seen := map[string]bool{}
	deduped := g.Links[:0]
	for _, l := range g.Links {
		key := l.Source + "-" + l.Target
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, l)
	}
	g.Links = deduped

	if len(g.Links) == 0 && len(g.Nodes) > 1 {
		for i := 0; i < len(g.Nodes)-1; i++ {
			g.Links = append(g.Links, GraphLink{Source: g.Nodes[i].ID, Target: g.Nodes[i+1].ID})
		}
	}
	return g
}
