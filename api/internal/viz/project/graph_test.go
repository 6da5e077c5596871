package project

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viz-proxy/api/internal/viz"
)

func TestNetworkGraphSimilarPairGetsOneEdge(t *testing.T) {
	p := New(1)
	g := p.NetworkGraph(flatResult(
		viz.Record{Name: "A", Value: 10},
		viz.Record{Name: "B", Value: 10},
	))

	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Links, 1)
	assert.Equal(t, "A", g.Links[0].Source)
	assert.Equal(t, "B", g.Links[0].Target)
	assert.Equal(t, 1.0, g.Links[0].Value)
}

func TestNetworkGraphNoIsolates(t *testing.T) {
	p := New(1)
	g := p.NetworkGraph(flatResult(
		viz.Record{Name: "A", Value: 1},
		viz.Record{Name: "B", Value: 100},
		viz.Record{Name: "C", Value: 10000},
	))

	degree := map[string]int{}
	for _, l := range g.Links {
		degree[l.Source]++
		degree[l.Target]++
	}
	for _, n := range g.Nodes {
		assert.GreaterOrEqual(t, degree[n.ID], 1, n.ID)
	}
}

func TestNetworkGraphFromTree(t *testing.T) {
	p := New(1)
	tree := viz.Node{Name: "Root", Children: []viz.Node{
		{Name: "A", Value: viz.Float(42)},
		{Name: "B", Children: []viz.Node{{Name: "B1"}}},
	}}
	g := p.NetworkGraph(viz.Result{Tree: &tree, IsHierarchical: true})

	require.Len(t, g.Nodes, 4)
	require.Len(t, g.Links, 3)
	assert.Equal(t, 20.0, g.Nodes[0].Value)
	assert.Equal(t, 42.0, g.Nodes[1].Value)
	// Level 4+ would floor at 5; level 2 default is 20-5*2.
	assert.Equal(t, 10.0, g.Nodes[3].Value)
	assert.Equal(t, "Root", g.Links[0].Source)
}

func TestChordDeterministicPerSeed(t *testing.T) {
	res := flatResult(
		viz.Record{Name: "A", Value: 40},
		viz.Record{Name: "B", Value: 30},
		viz.Record{Name: "C", Value: 20},
	)

	first := New(7).Chord(res)
	second := New(7).Chord(res)
	assert.Equal(t, first, second)
}

func TestChordMatrixShape(t *testing.T) {
	var recs []viz.Record
	for i := 0; i < 12; i++ {
		recs = append(recs, viz.Record{Name: fmt.Sprintf("item-%d", i), Value: float64(100 - i)})
	}
	out := New(1).Chord(flatResult(recs...))

	// Top 10 by value only.
	require.Len(t, out.Names, 10)
	require.Len(t, out.Matrix, 10)
	assert.Equal(t, "item-0", out.Names[0])

	for i, row := range out.Matrix {
		require.Len(t, row, 10)
		assert.Equal(t, 0.0, row[i])
		for j, cell := range row {
			if i == j {
				continue
			}
			assert.GreaterOrEqual(t, cell, 5.0)
			assert.LessOrEqual(t, cell, 30.0)
		}
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "act_1_setup", Slug("Act 1: Setup"))
	assert.Equal(t, "qa", Slug("Q&A"))
	assert.Equal(t, "node", Slug("***"))
}

func TestDAGDuplicateNamesStayDistinct(t *testing.T) {
	tree := viz.Node{Name: "Ops", Children: []viz.Node{
		{Name: "Ops", Value: viz.Float(1)},
		{Name: "Other", Value: viz.Float(2)},
	}}
	g := New(1).DAG(viz.Result{Tree: &tree, IsHierarchical: true})

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "ops", g.Nodes[0].ID)
	assert.Equal(t, "ops_2", g.Nodes[1].ID)
	require.Len(t, g.Links, 2)
	assert.Equal(t, "ops", g.Links[0].Source)
	assert.Equal(t, "ops_2", g.Links[0].Target)
}

func TestDAGChainsFlatRecords(t *testing.T) {
	g := New(1).DAG(flatResult(
		viz.Record{Name: "First", Value: 1},
		viz.Record{Name: "Second", Value: 2},
		viz.Record{Name: "Third", Value: 3},
	))

	require.Len(t, g.Nodes, 3)
	require.Len(t, g.Links, 2)
	assert.Equal(t, "first", g.Links[0].Source)
	assert.Equal(t, "second", g.Links[0].Target)
	assert.Equal(t, "third", g.Links[1].Target)
}

func TestConnectionMapMatchesNetworkGraph(t *testing.T) {
	p := New(1)
	res := flatResult(viz.Record{Name: "A", Value: 5}, viz.Record{Name: "B", Value: 6})

	assert.Equal(t, p.NetworkGraph(res), p.ConnectionMap(res))
}
