package viz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHierarchyWinsOverOtherDetectors(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize("**Act 1: Setup**\n1. **Introduction**\n* Inciting incident", "story structure")

	require.True(t, res.IsHierarchical)
	require.NotNil(t, res.Tree)
	assert.Equal(t, "Act 1: Setup", res.Tree.Name)
	assert.Equal(t, 2, MaxDepth(*res.Tree))
	assert.Equal(t, SourceHierarchy, res.Source)
}

func TestNormalizeHierarchyFalsePositiveKeepsLineData(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize("Revenue structure:\n  Alpha: 10\n  Beta: 20", "revenue")

	assert.Equal(t, SourceText, res.Source)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "Alpha", res.Records[0].Name)
	assert.Equal(t, 20.0, res.Records[1].Value)
}

func TestNormalizeCurrencyBeatsPercentage(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize("Revenue: $500\nGrowth: 20%", "company results")

	assert.Equal(t, SourceCurrency, res.Source)
	require.NotEmpty(t, res.Records)
	assert.Equal(t, "Revenue", res.Records[0].Name)
	assert.Equal(t, 500.0, res.Records[0].Value)
}

func TestNormalizeEmptyStringFallsBackToSample(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize("", "anything")

	assert.Equal(t, SourceSample, res.Source)
	assert.NotEmpty(t, res.Message)
	require.Len(t, res.Records, 5)
	assert.Equal(t, SampleRecords(), res.Records)
}

func TestNormalizeSavedChatUsesAssistantTurn(t *testing.T) {
	n := NewNormalizer()
	text := "Saved Chat\nUser: show me monthly sales\nAssistant: January: 45\nFebruary: 52"
	res := n.Normalize(text, "")

	assert.Equal(t, SourceTime, res.Source)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "January", res.Records[0].Name)
}

func TestNormalizeRefusalIsInvalid(t *testing.T) {
	n := NewNormalizer()
	text := "Saved Chat\nUser: do something\nAssistant: I'm sorry, I can't help with that."
	res := n.Normalize(text, "")

	assert.True(t, res.IsInvalid)
	assert.Empty(t, res.Records)
	assert.NotEmpty(t, res.Message)
}

func TestNormalizeSavedChatWithoutAssistantTurn(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize("Saved Chat\nUser: hello\nUser: anyone there?", "")

	assert.Equal(t, SourceSample, res.Source)
	assert.NotEmpty(t, res.Records)
}

func TestNormalizeObjectWithResponseField(t *testing.T) {
	n := NewNormalizer()
	data := map[string]any{"response": "Q1: 100\nQ2: 200"}
	res := n.Normalize(data, "quarterly numbers")

	assert.Equal(t, SourceTime, res.Source)
	require.Len(t, res.Records, 2)
}

func TestNormalizeArrayOfMaps(t *testing.T) {
	n := NewNormalizer()
	data := []any{
		map[string]any{"name": "Alpha", "value": 10.0},
		map[string]any{"label": "Beta", "count": 20.0},
		7.5,
		"3 widgets",
	}
	res := n.Normalize(data, "")

	assert.Equal(t, SourceStructured, res.Source)
	require.Len(t, res.Records, 4)
	assert.Equal(t, "Alpha", res.Records[0].Name)
	assert.Equal(t, 20.0, res.Records[1].Value)
	assert.Equal(t, "Item 3", res.Records[2].Name)
	assert.Equal(t, 3.0, res.Records[3].Value)
}

func TestNormalizeObjectNumericEntries(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize(map[string]any{"cats": 3.0, "birds": 7.0, "note": "hi"}, "")

	assert.Equal(t, SourceStructured, res.Source)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "birds", res.Records[0].Name)
	assert.Equal(t, "cats", res.Records[1].Name)
}

func TestNormalizeObjectWithoutNumbersRunsTextCascade(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize(map[string]any{"summary": "Alpha: 12, Beta: 30"}, "")

	assert.NotEqual(t, SourceSample, res.Source)
	assert.NotEmpty(t, res.Records)
}

func TestNormalizeRawMessage(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize(json.RawMessage(`{"response": "Apples: 10\nPears: 20"}`), "fruit")

	require.Len(t, res.Records, 2)
	assert.Equal(t, "Apples", res.Records[0].Name)
}

func TestNormalizeNilWithResponseOnQuerySide(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize(nil, map[string]any{"response": "Dogs: 4\nCats: 2"})

	require.Len(t, res.Records, 2)
	assert.Equal(t, "Dogs", res.Records[0].Name)
}

func TestNormalizeNeverReturnsEmptyRecordsUnlessInvalid(t *testing.T) {
	n := NewNormalizer()
	inputs := []any{nil, "", "   ", []any{}, map[string]any{}, []any{"no digits"}, 42.0}
	for _, in := range inputs {
		res := n.Normalize(in, "q")
		if res.IsInvalid {
			continue
		}
		hasTree := res.Tree != nil && len(res.Tree.Children) > 0
		assert.True(t, len(res.Records) > 0 || hasTree, "input %#v", in)
	}
}
