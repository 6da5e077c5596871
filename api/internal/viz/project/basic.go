package project

import (
	"fmt"
	"math"

	"viz-proxy/api/internal/viz"
)

// Bar is a near-identity projection over the flat record list.
func (p *Projector) Bar(res viz.Result) []viz.Record { return records(res) }

// Line keeps the record order produced by the extractor (time extractors have
// already sorted by ordinal).
func (p *Projector) Line(res viz.Result) []viz.Record { return records(res) }

// Area mirrors Line; the renderer fills under the curve.
func (p *Projector) Area(res viz.Result) []viz.Record { return records(res) }

// PolarArea mirrors Bar in polar coordinates.
func (p *Projector) PolarArea(res viz.Result) []viz.Record { return records(res) }

// DonutSlice is one segment with its share of the total.
type DonutSlice struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Donut computes each item's percentage of the total.
func (p *Projector) Donut(res viz.Result) []DonutSlice {
	recs := records(res)
	total := totalOf(recs)
	out := make([]DonutSlice, 0, len(recs))
	for _, r := range recs {
		pct := 0.0
		if total > 0 {
			pct = math.Round(r.Value/total*1000) / 10
		}
		out = append(out, DonutSlice{Name: r.Name, Value: r.Value, Percentage: pct})
	}
	return out
}

// HeatCell carries a per-item intensity normalized into [0,1] against the
// global min/max.
type HeatCell struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Intensity float64 `json:"intensity"`
}

// HeatmapData is the heatmap shape: cells plus the global range.
type HeatmapData struct {
	Cells []HeatCell `json:"cells"`
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
}

func (p *Projector) Heatmap(res viz.Result) HeatmapData {
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
	out := HeatmapData{Min: min, Max: max}
	span := max - min
	for _, r := range recs {
		intensity := 1.0
		if span > 0 {
			intensity = (r.Value - min) / span
		}
		out.Cells = append(out.Cells, HeatCell{Name: r.Name, Value: r.Value, Intensity: intensity})
	}
	return out
}

// Word is one word-cloud entry with a derived HSL color.
type Word struct {
	Text       string  `json:"text"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// WordCloud flattens hierarchies, then sizes each word by its share of the
// total. The hue is the value modulo 360, which keeps colors stable across
// re-renders.
func (p *Projector) WordCloud(res viz.Result) []Word {
	recs := records(res)
	total := totalOf(recs)
	out := make([]Word, 0, len(recs))
	for _, r := range recs {
		pct := 0.0
		if total > 0 {
			pct = math.Round(r.Value/total*1000) / 10
		}
		hue := int(math.Abs(r.Value)) % 360
		out = append(out, Word{
			Text:       r.Name,
			Value:      r.Value,
			Percentage: pct,
			Color:      fmt.Sprintf("hsl(%d, 70%%, 50%%)", hue),
		})
	}
	return out
}
