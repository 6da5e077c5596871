package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viz-proxy/api/internal/viz"
)

func flatResult(recs ...viz.Record) viz.Result {
	return viz.Result{Records: recs, Title: "Test", Source: viz.SourceText}
}

func TestBarIsIdentityCopy(t *testing.T) {
	p := New(1)
	res := flatResult(viz.Record{Name: "A", Value: 1}, viz.Record{Name: "B", Value: 2})
	out := p.Bar(res)

	require.Equal(t, res.Records, out)
	out[0].Value = 99
	assert.Equal(t, 1.0, res.Records[0].Value)
}

func TestBarFallsBackToSample(t *testing.T) {
	p := New(1)
	out := p.Bar(viz.Result{})

	assert.Equal(t, viz.SampleRecords(), out)
}

func TestBarFlattensHierarchyWithoutRoot(t *testing.T) {
	p := New(1)
	tree := viz.Node{Name: "Data", Children: []viz.Node{
		{Name: "A", Value: viz.Float(10)},
		{Name: "B", Value: viz.Float(20)},
	}}
	out := p.Bar(viz.Result{Tree: &tree, IsHierarchical: true})

	require.Len(t, out, 2)
	assert.Equal(t, "Data > A", out[0].Name)
}

func TestDonutPercentages(t *testing.T) {
	p := New(1)
	out := p.Donut(flatResult(
		viz.Record{Name: "A", Value: 50},
		viz.Record{Name: "B", Value: 30},
		viz.Record{Name: "C", Value: 20},
	))

	require.Len(t, out, 3)
	assert.Equal(t, 50.0, out[0].Percentage)
	assert.Equal(t, 30.0, out[1].Percentage)
	assert.Equal(t, 20.0, out[2].Percentage)

	var sum float64
	for _, s := range out {
		sum += s.Percentage
	}
	assert.InDelta(t, 100, sum, 0.5)
}

func TestDonutZeroTotal(t *testing.T) {
	p := New(1)
	out := p.Donut(flatResult(viz.Record{Name: "A", Value: 0}, viz.Record{Name: "B", Value: 0}))

	for _, s := range out {
		assert.Equal(t, 0.0, s.Percentage)
	}
}

func TestHeatmapIntensityRange(t *testing.T) {
	p := New(1)
	out := p.Heatmap(flatResult(
		viz.Record{Name: "lo", Value: 10},
		viz.Record{Name: "mid", Value: 20},
		viz.Record{Name: "hi", Value: 30},
	))

	assert.Equal(t, 10.0, out.Min)
	assert.Equal(t, 30.0, out.Max)
	require.Len(t, out.Cells, 3)
	assert.Equal(t, 0.0, out.Cells[0].Intensity)
	assert.Equal(t, 0.5, out.Cells[1].Intensity)
	assert.Equal(t, 1.0, out.Cells[2].Intensity)
}

func TestHeatmapUniformValues(t *testing.T) {
	p := New(1)
	out := p.Heatmap(flatResult(viz.Record{Name: "a", Value: 7}, viz.Record{Name: "b", Value: 7}))

	for _, c := range out.Cells {
		assert.Equal(t, 1.0, c.Intensity)
	}
}

func TestWordCloudColors(t *testing.T) {
	p := New(1)
	out := p.WordCloud(flatResult(
		viz.Record{Name: "w1", Value: 370},
		viz.Record{Name: "w2", Value: 30},
	))

	require.Len(t, out, 2)
	assert.Equal(t, "hsl(10, 70%, 50%)", out[0].Color)
	assert.Equal(t, "hsl(30, 70%, 50%)", out[1].Color)

	// Same values always render the same color.
	again := p.WordCloud(flatResult(viz.Record{Name: "x", Value: 370}))
	assert.Equal(t, out[0].Color, again[0].Color)
}
