package viz

// WithValues returns a copy of the tree in which every leaf has a numeric
// value, defaulting to max(100-depth*20, 1) where the input left it out.
// The input tree is never modified.
func WithValues(n Node, depth int) Node {
	out := Node{Name: n.Name, Value: n.Value}
	if n.IsLeaf() {
		if out.Value == nil {
			def := float64(100 - depth*20)
			if def < 1 {
				def = 1
			}
			out.Value = Float(def)
		}
		return out
	}
	out.Children = make([]Node, 0, len(n.Children))
	for _, c := range n.Children {
		out.Children = append(out.Children, WithValues(c, depth+1))
	}
	return out
}

// Flatten walks the tree depth-first and emits one Record per visited node.
// Non-root names carry the full "Ancestor > ... > Name" path; missing values
// default to 100-level*20.
func Flatten(n Node) []Record {
	return flatten(n, 0, "")
}

func flatten(n Node, level int, parentPath string) []Record {
	name := n.Name
	if parentPath != "" {
		name = parentPath + " > " + n.Name
	}
	value := float64(100 - level*20)
	if n.Value != nil {
		value = *n.Value
	}
	out := []Record{{Name: name, Value: value, Order: level}}
	for _, c := range n.Children {
		out = append(out, flatten(c, level+1, name)...)
	}
	return out
}

// TotalValue sums the explicit values of all leaves.
func TotalValue(n Node) float64 {
	if n.IsLeaf() {
		if n.Value != nil {
			return *n.Value
		}
		return 0
	}
	var total float64
	for _, c := range n.Children {
		total += TotalValue(c)
	}
	return total
}

// MaxDepth returns the depth of the deepest node, the root being depth 0.
func MaxDepth(n Node) int {
	deepest := 0
	for _, c := range n.Children {
		if d := MaxDepth(c) + 1; d > deepest {
			deepest = d
		}
	}
	return deepest
}

// CountNodes counts every node in the tree, root included.
func CountNodes(n Node) int {
	count := 1
	for _, c := range n.Children {
		count += CountNodes(c)
	}
	return count
}
