package viz

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// KnowledgeBase is the static fallback dataset consulted when a projector has
// no usable data at all. Entries are keyed by topic; lookup scans the query
// for a topic keyword.
type KnowledgeBase map[string]*Node

var (
	kbOnce   sync.Once
	kbLoaded KnowledgeBase
)

// LoadKnowledgeBase reads <KNOWLEDGE_DIR>/knowledge.json when present,
// otherwise falls back to the embedded default topics. Cached after first use.
func LoadKnowledgeBase() KnowledgeBase {
	kbOnce.Do(func() {
		kbLoaded = defaultKnowledgeBase()
		dir := os.Getenv("KNOWLEDGE_DIR")
		if dir == "" {
			return
		}
		b, err := os.ReadFile(filepath.Join(dir, "knowledge.json"))
		if err != nil || len(b) == 0 {
			return
		}
		var kb KnowledgeBase
		if err := json.Unmarshal(b, &kb); err == nil && len(kb) > 0 {
			kbLoaded = kb
		}
	})
	return kbLoaded
}

// Lookup returns the first topic whose key occurs in the query text.
func (kb KnowledgeBase) Lookup(query string) (*Node, bool) {
	lower := strings.ToLower(query)
	for topic, tree := range kb {
		if strings.Contains(lower, topic) {
			return tree, true
		}
	}
	return nil, false
}

func defaultKnowledgeBase() KnowledgeBase {
	return KnowledgeBase{
		"technology": {
			Name: "Technology",
			Children: []Node{
				{Name: "Software", Children: []Node{
					{Name: "Applications", Value: Float(45)},
					{Name: "Infrastructure", Value: Float(30)},
				}},
				{Name: "Hardware", Children: []Node{
					{Name: "Devices", Value: Float(35)},
					{Name: "Components", Value: Float(25)},
				}},
			},
		},
		"organization": {
			Name: "Organization",
			Children: []Node{
				{Name: "Operations", Children: []Node{
					{Name: "Production", Value: Float(40)},
					{Name: "Logistics", Value: Float(25)},
				}},
				{Name: "Support", Children: []Node{
					{Name: "Finance", Value: Float(20)},
					{Name: "HR", Value: Float(15)},
				}},
			},
		},
		"market": {
			Name: "Market",
			Children: []Node{
				{Name: "Consumer", Children: []Node{
					{Name: "Retail", Value: Float(50)},
					{Name: "Online", Value: Float(35)},
				}},
				{Name: "Enterprise", Children: []Node{
					{Name: "SMB", Value: Float(30)},
					{Name: "Corporate", Value: Float(45)},
				}},
			},
		},
	}
}
