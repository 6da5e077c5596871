package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeBaseLookup(t *testing.T) {
	kb := LoadKnowledgeBase()

	tree, ok := kb.Lookup("tell me about the TECHNOLOGY sector")
	require.True(t, ok)
	assert.Equal(t, "Technology", tree.Name)

	tree, ok = kb.Lookup("market trends this year")
	require.True(t, ok)
	assert.Equal(t, "Market", tree.Name)

	_, ok = kb.Lookup("completely unrelated question")
	assert.False(t, ok)
}

func TestKnowledgeBaseIsCached(t *testing.T) {
	first := LoadKnowledgeBase()
	second := LoadKnowledgeBase()
	assert.Equal(t, first, second)

	for topic, tree := range first {
		require.NotNil(t, tree, topic)
		assert.NotEmpty(t, tree.Children, topic)
	}
}
