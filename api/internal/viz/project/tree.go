package project

import "viz-proxy/api/internal/viz"

// TreeData is the shared shape of the hierarchy renderers: a value-complete
// tree plus the aggregate metadata treemap/circle-packing badges display.
type TreeData struct {
	Root       viz.Node `json:"root"`
	TotalValue float64  `json:"totalValue"`
	MaxDepth   int      `json:"maxDepth"`
	NodeCount  int      `json:"nodeCount"`
}

func treeData(root viz.Node) TreeData {
	filled := viz.WithValues(root, 0)
	return TreeData{
		Root:       filled,
		TotalValue: viz.TotalValue(filled),
		MaxDepth:   viz.MaxDepth(filled),
		NodeCount:  viz.CountNodes(filled),
	}
}

// TreeDiagram passes a valid tree through with computed aggregates; flat data
// is wrapped as a single-level hierarchy sorted descending by value.
func (p *Projector) TreeDiagram(res viz.Result) TreeData { return treeData(tree(res)) }

// TreeMap mirrors TreeDiagram; the renderer sizes rectangles by value.
func (p *Projector) TreeMap(res viz.Result) TreeData { return treeData(tree(res)) }

// CirclePacking mirrors TreeDiagram with nested circles.
func (p *Projector) CirclePacking(res viz.Result) TreeData { return treeData(tree(res)) }

// SunBurst additionally falls back to the static knowledge base when the
// result carries no real data, keyed by a topic word in the query.
func (p *Projector) SunBurst(res viz.Result, query string) TreeData {
	if res.Source == viz.SourceSample || (res.Tree == nil && len(res.Records) == 0) {
		if kbTree, ok := p.kb.Lookup(query); ok {
			return treeData(*kbTree)
		}
	}
	return treeData(tree(res))
}
