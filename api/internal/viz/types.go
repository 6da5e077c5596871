package viz

import "encoding/json"

// ValueType tags what kind of quantity the records carry.
type ValueType string

const (
	ValueNumeric    ValueType = "numeric"
	ValuePercentage ValueType = "percentage"
	ValueCurrency   ValueType = "currency"
	ValueCount      ValueType = "count"
	ValueScore      ValueType = "score"
)

// Record is one normalized data point. Value is always finite; Name is never
// empty after normalization.
type Record struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	Order        int     `json:"order,omitempty"`
	IsPercentage bool    `json:"isPercentage,omitempty"`
	Currency     string  `json:"currency,omitempty"`
}

// Node is one node of a hierarchy. Leaves carry a resolved Value after
// normalization; internal nodes may leave Value nil (consumers sum leaves).
type Node struct {
	Name     string   `json:"name"`
	Value    *float64 `json:"value,omitempty"`
	Children []Node   `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool { return len(n.Children) == 0 }

// Metadata describes axis labels and units inferred from the text. Built once
// per Process call and never mutated afterwards.
type Metadata struct {
	ValueLabel string    `json:"valueLabel"`
	XAxisLabel string    `json:"xAxisLabel"`
	YAxisLabel string    `json:"yAxisLabel"`
	Unit       string    `json:"unit"`
	ValueType  ValueType `json:"valueType"`
}

// Source values a Result can carry. Projectors and color schemes key off them.
const (
	SourceCurrency   = "currency data"
	SourceTime       = "time series data"
	SourcePercentage = "percentage data"
	SourceHierarchy  = "hierarchical data"
	SourceBullets    = "bullet list data"
	SourceText       = "text data"
	SourceStructured = "structured data"
	SourceSample     = "sample"
)

// Result is the canonical hand-off between the normalizer and every projector.
// Exactly one of Records/Tree is set; IsHierarchical tells which.
type Result struct {
	Records        []Record `json:"records,omitempty"`
	Tree           *Node    `json:"tree,omitempty"`
	Title          string   `json:"title"`
	Source         string   `json:"source"`
	Metadata       Metadata `json:"metadata"`
	IsHierarchical bool     `json:"isHierarchical"`
	IsInvalid      bool     `json:"isInvalid,omitempty"`
	Message        string   `json:"message,omitempty"`
}

// RawKind discriminates the shapes Normalize accepts.
type RawKind int

const (
	RawString RawKind = iota
	RawArray
	RawObjectWithResponse
	RawObject
	RawEmpty
)

// RawInput is the tagged view of the upstream value. Classify builds it from a
// decoded JSON value so the cascade can switch on kind instead of type probes.
type RawInput struct {
	Kind     RawKind
	Text     string
	Array    []any
	Object   map[string]any
	Response string
}

// Classify maps a dynamically typed value onto the RawInput union.
func Classify(data any) RawInput {
	switch v := data.(type) {
	case nil:
		return RawInput{Kind: RawEmpty}
	case string:
		return RawInput{Kind: RawString, Text: v}
	case json.RawMessage:
		var inner any
		if err := json.Unmarshal(v, &inner); err != nil {
			return RawInput{Kind: RawString, Text: string(v)}
		}
		return Classify(inner)
	case []any:
		return RawInput{Kind: RawArray, Array: v}
	case map[string]any:
		if resp, ok := v["response"].(string); ok {
			return RawInput{Kind: RawObjectWithResponse, Object: v, Response: resp}
		}
		return RawInput{Kind: RawObject, Object: v}
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return RawInput{Kind: RawEmpty}
		}
		var inner any
		if err := json.Unmarshal(b, &inner); err != nil {
			return RawInput{Kind: RawEmpty}
		}
		switch t := inner.(type) {
		case string:
			return RawInput{Kind: RawString, Text: t}
		case []any:
			return RawInput{Kind: RawArray, Array: t}
		case map[string]any:
			if resp, ok := t["response"].(string); ok {
				return RawInput{Kind: RawObjectWithResponse, Object: t, Response: resp}
			}
			return RawInput{Kind: RawObject, Object: t}
		default:
			// Scalars (numbers, booleans) carry nothing to extract.
			return RawInput{Kind: RawEmpty}
		}
	}
}

// ChartType names one target chart family. The names double as store keys.
type ChartType string

const (
	ChartBar            ChartType = "Bar"
	ChartLine           ChartType = "Line"
	ChartArea           ChartType = "Area"
	ChartDonut          ChartType = "Donut"
	ChartHeatmap        ChartType = "Heatmap"
	ChartWordCloud      ChartType = "WordCloud"
	ChartTreeMap        ChartType = "TreeMap"
	ChartTreeDiagram    ChartType = "TreeDiagram"
	ChartSunBurst       ChartType = "SunBurst"
	ChartCirclePacking  ChartType = "CirclePacking"
	ChartDAG            ChartType = "DAG"
	ChartNetworkGraph   ChartType = "NetworkGraph"
	ChartChordDiagram   ChartType = "ChordDiagram"
	ChartConnectionMap  ChartType = "ConnectionMap"
	ChartMosaicPlot     ChartType = "MosaicPlot"
	ChartSmallMultiples ChartType = "SmallMultiples"
	ChartStackedArea    ChartType = "StackedArea"
	ChartVoronoiMap     ChartType = "VoronoiMap"
	ChartPolarArea      ChartType = "PolarArea"
)

// AllChartTypes lists every chart family in persist order.
var AllChartTypes = []ChartType{
	ChartBar, ChartLine, ChartArea, ChartDonut, ChartHeatmap,
	ChartWordCloud, ChartTreeMap, ChartTreeDiagram, ChartSunBurst,
	ChartCirclePacking, ChartDAG, ChartNetworkGraph, ChartChordDiagram,
	ChartConnectionMap, ChartMosaicPlot, ChartSmallMultiples,
	ChartStackedArea, ChartVoronoiMap, ChartPolarArea,
}

// Float returns a pointer to v. Convenience for building Node literals.
func Float(v float64) *float64 { return &v }
