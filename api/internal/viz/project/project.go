// Package project turns one canonical result into the input shapes of the
// chart renderers. Every projector is a pure function of the result (and,
// where synthesis needs randomness, of the seeded generator injected at
// construction); the canonical data is never aliased into the output.
package project

import (
	"math/rand"
	"sort"

	"viz-proxy/api/internal/viz"
)

// Projector holds the shared projection dependencies: the seeded random
// source used by chord/stacked-area synthesis and the fallback knowledge
// base consulted by the sunburst projector.
type Projector struct {
	rng *rand.Rand
	kb  viz.KnowledgeBase
}

// New builds a projector. The same seed reproduces the same synthetic
// matrices and trends.
func New(seed int64) *Projector {
	return &Projector{
		rng: rand.New(rand.NewSource(seed)),
		kb:  viz.LoadKnowledgeBase(),
	}
}

// Shape dispatches to the projector for one chart family. The query is only
// consulted by the sunburst knowledge-base fallback.
func (p *Projector) Shape(chart viz.ChartType, res viz.Result, query string) any {
	switch chart {
	case viz.ChartBar:
		return p.Bar(res)
	case viz.ChartLine:
		return p.Line(res)
	case viz.ChartArea:
		return p.Area(res)
	case viz.ChartDonut:
		return p.Donut(res)
	case viz.ChartPolarArea:
		return p.PolarArea(res)
	case viz.ChartHeatmap:
		return p.Heatmap(res)
	case viz.ChartWordCloud:
		return p.WordCloud(res)
	case viz.ChartChordDiagram:
		return p.Chord(res)
	case viz.ChartNetworkGraph:
		return p.NetworkGraph(res)
	case viz.ChartConnectionMap:
		return p.ConnectionMap(res)
	case viz.ChartDAG:
		return p.DAG(res)
	case viz.ChartTreeDiagram:
		return p.TreeDiagram(res)
	case viz.ChartTreeMap:
		return p.TreeMap(res)
	case viz.ChartCirclePacking:
		return p.CirclePacking(res)
	case viz.ChartSunBurst:
		return p.SunBurst(res, query)
	case viz.ChartMosaicPlot:
		return p.Mosaic(res)
	case viz.ChartSmallMultiples:
		return p.SmallMultiples(res)
	case viz.ChartStackedArea:
		return p.StackedArea(res)
	case viz.ChartVoronoiMap:
		return p.Voronoi(res)
	default:
		return p.Bar(res)
	}
}

// records returns the flat view of the result. Hierarchies are flattened with
// the synthetic root dropped; an empty result falls back to the sample set.
func records(res viz.Result) []viz.Record {
	if res.IsHierarchical && res.Tree != nil {
		flat := viz.Flatten(*res.Tree)
		if len(flat) > 1 {
			return flat[1:]
		}
		return flat
	}
	if len(res.Records) == 0 {
		return viz.SampleRecords()
	}
	out := make([]viz.Record, len(res.Records))
	copy(out, res.Records)
	return out
}

// tree returns the hierarchical view of the result, wrapping flat records as
// a single-level hierarchy sorted descending by value when needed.
func tree(res viz.Result) viz.Node {
	if res.IsHierarchical && res.Tree != nil {
		return viz.WithValues(*res.Tree, 0)
	}
	recs := records(res)
	sortDesc(recs)
	root := viz.Node{Name: titleOr(res, "Data")}
	for _, r := range recs {
		v := r.Value
		root.Children = append(root.Children, viz.Node{Name: r.Name, Value: &v})
	}
	return root
}

func titleOr(res viz.Result, def string) string {
	if res.Title != "" {
		return res.Title
	}
	return def
}

func sortDesc(recs []viz.Record) {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Value > recs[j].Value })
}

func totalOf(recs []viz.Record) float64 {
	var t float64
	for _, r := range recs {
		t += r.Value
	}
	return t
}
