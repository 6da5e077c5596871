package project

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"viz-proxy/api/internal/viz"
)

// MosaicCell is one {category, subcategory, value} triple.
type MosaicCell struct {
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Value       float64 `json:"value"`
}

// Mosaic uses the first two hierarchy levels as category/subcategory. Flat
// data is bucketed into Low/Medium/High value tertiles crossed with the first
// letter of each item's name.
func (p *Projector) Mosaic(res viz.Result) []MosaicCell {
	if res.IsHierarchical && res.Tree != nil {
		filled := viz.WithValues(*res.Tree, 0)
		var cells []MosaicCell
		for _, cat := range filled.Children {
			if cat.IsLeaf() {
				v := 0.0
				if cat.Value != nil {
					v = *cat.Value
				}
				cells = append(cells, MosaicCell{Category: filled.Name, Subcategory: cat.Name, Value: v})
				continue
			}
			for _, sub := range cat.Children {
				cells = append(cells, MosaicCell{Category: cat.Name, Subcategory: sub.Name, Value: viz.TotalValue(sub)})
			}
		}
		if len(cells) > 0 {
			return cells
		}
	}

	recs := records(res)
	sorted := make([]viz.Record, len(recs))
	copy(sorted, recs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })
	tertile := func(v float64) string {
		n := len(sorted)
		switch {
		case v <= sorted[(n-1)/3].Value:
			return "Low"
		case v <= sorted[(n-1)*2/3].Value:
			return "Medium"
		default:
			return "High"
		}
	}
	var cells []MosaicCell
	for _, r := range recs {
		initial := "?"
		if r.Name != "" {
			initial = strings.ToUpper(r.Name[:1])
		}
		cells = append(cells, MosaicCell{Category: tertile(r.Value), Subcategory: initial, Value: r.Value})
	}
	return cells
}

// Panel is one facet of a small-multiples layout.
type Panel struct {
	Name string       `json:"name"`
	Data []viz.Record `json:"data"`
}

// SmallMultiples groups items into at most six panels by value-range banding.
func (p *Projector) SmallMultiples(res viz.Result) []Panel {
	recs := records(res)
	min, max := recs[0].Value, recs[0].Value
	for _, r := range recs[1:] {
		if r.Value < min {
			min = r.Value
		}
		if r.Value > max {
			max = r.Value
		}
	}
	bands := 6
	if len(recs) < bands {
		bands = len(recs)
	}
	span := max - min
	if span == 0 || bands == 0 {
		return []Panel{{Name: titleOr(res, "All"), Data: recs}}
	}
	width := span / float64(bands)
	panels := make([]Panel, bands)
	for i := range panels {
		lo := min + float64(i)*width
		panels[i].Name = fmt.Sprintf("%.0f–%.0f", lo, lo+width)
	}
	for _, r := range recs {
		idx := int((r.Value - min) / width)
		if idx >= bands {
			idx = bands - 1
		}
		panels[idx].Data = append(panels[idx].Data, r)
	}
	out := panels[:0]
	for _, pn := range panels {
		if len(pn.Data) > 0 {
			out = append(out, pn)
		}
	}
	return out
}

// StackedPoint is one synthetic time step with a value per category.
type StackedPoint struct {
	Step   string             `json:"step"`
	Values map[string]float64 `json:"values"`
}

// StackedData is the stacked-area shape: synthetic series per top category.
type StackedData struct {
	Data       []StackedPoint `json:"data"`
	Categories []string       `json:"categories"`
}

// StackedArea promotes the top five items to categories and generates five
// synthetic time points per category with a ±10%/−5% random trend step drawn
// from the injected source.
func (p *Projector) StackedArea(res viz.Result) StackedData {
	recs := records(res)
	sortDesc(recs)
	if len(recs) > 5 {
		recs = recs[:5]
	}

	out := StackedData{}
	for _, r := range recs {
		out.Categories = append(out.Categories, r.Name)
	}
	current := make(map[string]float64, len(recs))
	for _, r := range recs {
		current[r.Name] = r.Value
	}
	for step := 1; step <= 5; step++ {
		point := StackedPoint{Step: fmt.Sprintf("T%d", step), Values: map[string]float64{}}
		for _, cat := range out.Categories {
			point.Values[cat] = current[cat]
			// Next step drifts by -5%..+10% of the current value.
			trend := 1 + (p.rng.Float64()*0.15 - 0.05)
			current[cat] *= trend
		}
		out.Data = append(out.Data, point)
	}
	return out
}

// VoronoiPoint is one site with deterministic coordinates.
type VoronoiPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Voronoi assigns each item an (x, y) in [0,100)² hashed from its name, so
// positions stay stable across re-renders without explicit coordinates.
func (p *Projector) Voronoi(res viz.Result) []VoronoiPoint {
	recs := records(res)
	out := make([]VoronoiPoint, 0, len(recs))
	for _, r := range recs {
		h := fnv.New64a()
		_, _ = h.Write([]byte(r.Name))
		sum := h.Sum64()
		out = append(out, VoronoiPoint{
			Name:  r.Name,
			Value: r.Value,
			X:     float64(sum%10000) / 100,
			Y:     float64((sum/10000)%10000) / 100,
		})
	}
	return out
}
