package viz

import (
	"regexp"
	"strings"
)

// Default values per line class. A depth proxy used only when the line carries
// no explicit number.
const (
	defSectionValue = 100
	defSubItemValue = 70
	defBulletValue  = 50
	defDetailValue  = 30
)

var (
	reSectionLine  = regexp.MustCompile(`^\s*\*\*([^*]+?)\*\*\s*:?\s*(.*)$`)
	reNumberedBold = regexp.MustCompile(`^\s*\d+[.)]\s*\*\*([^*]+?)\*\*\s*:?\s*(.*)$`)
	reBulletItem   = regexp.MustCompile(`^\s*[-*•]\s+(.*)$`)
	reDetailLine   = regexp.MustCompile(`^\s*\+\s+(.*)$`)
	reTrailingNum  = regexp.MustCompile(`[:\-(]\s*\$?(-?\d+(?:,\d{3})*(?:\.\d+)?)\s*%?\)?\s*$`)
	reExamplesList = regexp.MustCompile(`(?i)examples?\s*:\s*(.+)$`)
)

// lineValue splits a raw line into its label and an explicit numeric value if
// the line ends in one; ok is false when the default for the class applies.
func lineValue(s string) (label string, value float64, ok bool) {
	if m := reTrailingNum.FindStringSubmatchIndex(s); m != nil {
		label = strings.TrimSpace(s[:m[0]])
		return label, parseNum(s[m[2]:m[3]]), true
	}
	return strings.TrimSpace(s), 0, false
}

// extractHierarchy runs the line-by-line state machine over markdown text.
// Bold headers open sections, numbered bold lines open sub-items, bullets
// append under the active sub-item (or section), "+"-prefixed lines nest under
// the last bullet. Two domain post-passes take over when their keyword and a
// structural cue are both present.
func extractHierarchy(text, query string, cfg DetectorConfig) Result {
	if actRooted, ok := extractActStructure(text, cfg); ok {
		return Result{
			Tree:           actRooted,
			Title:          "Story Structure",
			Source:         SourceHierarchy,
			Metadata:       InferMetadata(text, query),
			IsHierarchical: true,
		}
	}
	if org, ok := extractOrgStructure(text, cfg); ok {
		return Result{
			Tree:           org,
			Title:          "Organizational Structure",
			Source:         SourceHierarchy,
			Metadata:       InferMetadata(text, query),
			IsHierarchical: true,
		}
	}

	// The hierarchy probe is permissive; when the state machine finds no
	// actual structure the text goes to the general line extractor instead.
	root := genericHierarchy(text)
	if len(root.Children) == 0 {
		return extractGeneral(text, query)
	}
	title := "Hierarchical Data"
	if len(root.Children) == 1 {
		title = root.Children[0].Name
	}
	return Result{
		Tree:           &root,
		Title:          title,
		Source:         SourceHierarchy,
		Metadata:       InferMetadata(text, query),
		IsHierarchical: true,
	}
}

// genericHierarchy is the four-class state machine. The returned root is a
// synthetic container; its children are the top-level sections.
func genericHierarchy(text string) Node {
	root := Node{Name: "Data"}

	// Active ancestor chain: indexes into the growing tree.
	var curSection *Node
	var curSub *Node
	var curBullet *Node

	attachSection := func(n Node) *Node {
		root.Children = append(root.Children, n)
		return &root.Children[len(root.Children)-1]
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := reNumberedBold.FindStringSubmatch(line); m != nil {
			name, val, has := lineValue(m[1])
			node := Node{Name: cleanLabel(name)}
			if has {
				node.Value = Float(val)
			} else {
				node.Value = Float(defSubItemValue)
			}
			if curSection == nil {
				curSection = attachSection(Node{Name: "Items", Value: Float(defSectionValue)})
			}
			curSection.Children = append(curSection.Children, node)
			curSub = &curSection.Children[len(curSection.Children)-1]
			curBullet = nil
			continue
		}

		if m := reSectionLine.FindStringSubmatch(line); m != nil {
			name, val, has := lineValue(m[1])
			node := Node{Name: cleanLabel(name)}
			if has {
				node.Value = Float(val)
			} else if _, v2, h2 := lineValue(m[2]); h2 {
				node.Value = Float(v2)
			} else {
				node.Value = Float(defSectionValue)
			}
			curSection = attachSection(node)
			curSub = nil
			curBullet = nil
			continue
		}

		if m := reDetailLine.FindStringSubmatch(line); m != nil {
			name, val, has := lineValue(m[1])
			node := Node{Name: cleanLabel(name)}
			if has {
				node.Value = Float(val)
			} else {
				node.Value = Float(defDetailValue)
			}
			switch {
			case curBullet != nil:
				curBullet.Children = append(curBullet.Children, node)
			case curSub != nil:
				curSub.Children = append(curSub.Children, node)
			case curSection != nil:
				curSection.Children = append(curSection.Children, node)
			default:
				curSection = attachSection(node)
			}
			continue
		}

		if m := reBulletItem.FindStringSubmatch(line); m != nil {
			node := bulletNode(m[1])
			switch {
			case curSub != nil:
				curSub.Children = append(curSub.Children, node)
				curBullet = &curSub.Children[len(curSub.Children)-1]
			case curSection != nil:
				curSection.Children = append(curSection.Children, node)
				curBullet = &curSection.Children[len(curSection.Children)-1]
			default:
				curSection = attachSection(Node{Name: "Items", Value: Float(defSectionValue)})
				curSection.Children = append(curSection.Children, node)
				curBullet = &curSection.Children[len(curSection.Children)-1]
			}
			continue
		}
	}
	return root
}

// bulletNode builds a bullet item. An embedded "Examples: a, b, c" sub-list
// becomes grandchildren.
func bulletNode(body string) Node {
	name, val, has := lineValue(body)
	node := Node{Name: cleanLabel(name)}
	if has {
		node.Value = Float(val)
	} else {
		node.Value = Float(defBulletValue)
	}
	if m := reExamplesList.FindStringSubmatch(body); m != nil {
		node.Name = cleanLabel(strings.TrimSpace(reExamplesList.ReplaceAllString(name, "")))
		if node.Name == "Item" {
			node.Name = "Examples"
		}
		for _, ex := range strings.Split(m[1], ",") {
			ex = strings.TrimSpace(strings.TrimSuffix(ex, "."))
			if ex == "" {
				continue
			}
			node.Children = append(node.Children, Node{Name: ex, Value: Float(defDetailValue)})
		}
	}
	return node
}

var reActHeader = regexp.MustCompile(`(?im)^\s*(?:\*\*)?\s*(Act\s+[1-3][^*\n]*?)\s*(?:\*\*)?\s*$`)

// extractActStructure handles three-act dramatic text: act headers become the
// top level, the state machine fills each act. A single act becomes the root
// itself.
func extractActStructure(text string, cfg DetectorConfig) (*Node, bool) {
	lower := strings.ToLower(text)
	hasKeyword := false
	for _, kw := range cfg.ActKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword || !reActHeader.MatchString(text) {
		return nil, false
	}

	var acts []Node
	lines := strings.Split(text, "\n")
	var cur *Node
	var curSub *Node
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := reActHeader.FindStringSubmatch(line); m != nil {
			acts = append(acts, Node{Name: cleanLabel(m[1]), Value: Float(defSectionValue)})
			cur = &acts[len(acts)-1]
			curSub = nil
			continue
		}
		if cur == nil {
			continue
		}
		if m := reNumberedBold.FindStringSubmatch(line); m != nil {
			cur.Children = append(cur.Children, Node{Name: cleanLabel(m[1]), Value: Float(defSubItemValue)})
			curSub = &cur.Children[len(cur.Children)-1]
			continue
		}
		if m := reBulletItem.FindStringSubmatch(line); m != nil {
			node := Node{Name: cleanLabel(m[1]), Value: Float(defBulletValue)}
			if curSub != nil {
				curSub.Children = append(curSub.Children, node)
			} else {
				cur.Children = append(cur.Children, node)
			}
			continue
		}
	}
	if len(acts) == 0 {
		return nil, false
	}
	if len(acts) == 1 {
		return &acts[0], true
	}
	return &Node{Name: "Story Structure", Children: acts}, true
}

var reOrgHeader = regexp.MustCompile(`(?m)^\s*\*\*([^*]+?)\*\*\s*:?\s*$`)

// extractOrgStructure handles studio/subsidiary org text: bold headers become
// organizations, their bullets subsidiaries.
func extractOrgStructure(text string, cfg DetectorConfig) (*Node, bool) {
	lower := strings.ToLower(text)
	hasKeyword := false
	for _, kw := range cfg.OrgKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword || !reOrgHeader.MatchString(text) {
		return nil, false
	}

	root := Node{Name: "Organizations"}
	var cur *Node
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := reOrgHeader.FindStringSubmatch(line); m != nil {
			root.Children = append(root.Children, Node{Name: cleanLabel(m[1]), Value: Float(defSectionValue)})
			cur = &root.Children[len(root.Children)-1]
			continue
		}
		if cur == nil {
			continue
		}
		if m := reBulletItem.FindStringSubmatch(line); m != nil {
			cur.Children = append(cur.Children, bulletNode(m[1]))
		}
	}
	if len(root.Children) == 0 {
		return nil, false
	}
	return &root, true
}
