package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendAlwaysFourWithWordCloudLast(t *testing.T) {
	picks := Recommend("anything", "whatever text")

	require.Len(t, picks, 4)
	assert.Equal(t, ChartWordCloud, picks[3].Chart)

	seen := map[ChartType]bool{}
	for _, p := range picks {
		assert.False(t, seen[p.Chart], "duplicate pick %s", p.Chart)
		seen[p.Chart] = true
		assert.GreaterOrEqual(t, p.Score, 0.0)
		assert.LessOrEqual(t, p.Score, 1.0)
	}
}

func TestRecommendDonutForPartToWhole(t *testing.T) {
	picks := Recommend(
		"What is the market share breakdown of browsers?",
		"Chrome: 65%, Safari: 19%, Firefox: 10%, Edge: 6%",
	)

	assert.Equal(t, ChartDonut, picks[0].Chart)
	assert.Equal(t, 1.0, picks[0].Score)
}

func TestRecommendLineForTimeSeries(t *testing.T) {
	picks := Recommend("How did sales trend over time?", "January: 45\nFebruary: 52\nMarch: 40")

	assert.Equal(t, ChartLine, picks[0].Chart)
}

func TestRecommendNetworkForRelations(t *testing.T) {
	picks := Recommend(
		"Show the network of connections between the teams",
		"Team A is linked to Team B. The interaction flow goes between all departments.",
	)

	assert.Equal(t, ChartNetworkGraph, picks[0].Chart)
}

func TestRecommendScoresDescendAmongTopThree(t *testing.T) {
	picks := Recommend("compare revenue versus cost by region over time", "2021: 10\n2022: 20\n2023: 30")

	for i := 1; i < 3; i++ {
		assert.GreaterOrEqual(t, picks[i-1].Score, picks[i].Score)
	}
}

func TestRecommendNeutralInputIsDeterministic(t *testing.T) {
	picks := Recommend("hello", "world")

	require.Len(t, picks, 4)
	assert.Equal(t, ChartWordCloud, picks[3].Chart)
	// With no real signal the word cloud carries the only non-zero score
	// and normalizes to 1.
	assert.Equal(t, 1.0, picks[3].Score)
	assert.Equal(t, picks, Recommend("hello", "world"))
}
