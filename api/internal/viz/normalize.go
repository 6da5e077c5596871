package viz

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Normalizer is the single classification entry point. Zero value is usable;
// NewNormalizer wires the default keyword tables.
type Normalizer struct {
	Detectors DetectorConfig
}

// NewNormalizer returns a normalizer with the stock detector tables.
func NewNormalizer() *Normalizer {
	return &Normalizer{Detectors: DefaultDetectorConfig()}
}

// Normalize classifies the raw upstream value and extracts a canonical Result.
// It never fails: any internal panic is recovered and converted into the
// sample fallback with the message embedded.
func (n *Normalizer) Normalize(data any, query any) (res Result) {
	queryText := queryString(query)
	defer func() {
		if r := recover(); r != nil {
			res = sampleResult(queryText, fmt.Sprintf("Could not extract usable data: %v", r))
		}
	}()

	in := Classify(data)

	// Step 1: saved-chat envelope.
	if in.Kind == RawString && detectSavedChat(in.Text) {
		turn, ok := parseEnvelope(in.Text)
		if !ok {
			return sampleResult(queryText, "Saved chat contains no assistant turn")
		}
		if isRefusal(turn) {
			return Result{
				IsInvalid: true,
				Source:    SourceSample,
				Metadata:  InferMetadata(turn, queryText),
				Message:   "The assistant declined to answer; nothing to visualize",
			}
		}
		return n.normalizeText(turn, queryText)
	}

	switch in.Kind {
	case RawObjectWithResponse:
		return n.normalizeText(in.Response, queryText)
	case RawString:
		if strings.TrimSpace(in.Text) == "" {
			return sampleResult(queryText, "Could not extract usable data")
		}
		return n.normalizeText(in.Text, queryText)
	case RawArray:
		if res, ok := n.normalizeArray(in.Array, queryText); ok {
			return res
		}
		return sampleResult(queryText, "Could not extract usable data")
	case RawObject:
		if res, ok := n.normalizeObject(in.Object, queryText); ok {
			return res
		}
		// No numeric fields: stringify and run the text cascade.
		b, err := json.Marshal(in.Object)
		if err == nil && len(b) > 2 {
			return n.normalizeText(string(b), queryText)
		}
		return sampleResult(queryText, "Could not extract usable data")
	default:
		// Some callers put the model reply on the query side.
		if qm, ok := query.(map[string]any); ok {
			if resp, ok := qm["response"].(string); ok && strings.TrimSpace(resp) != "" {
				return n.normalizeText(resp, queryText)
			}
		}
		return sampleResult(queryText, "Could not extract usable data")
	}
}

// normalizeText runs the detector cascade over free text in fixed priority:
// hierarchy > currency > time > percentage > bullets > general. The order is a
// behavioral contract; several probes can match the same text.
func (n *Normalizer) normalizeText(text, query string) Result {
	switch {
	case n.Detectors.hasHierarchyMarkers(text):
		return extractHierarchy(text, query, n.Detectors)
	case detectCurrency(text):
		return extractCurrency(text, query)
	case detectTime(text):
		return extractTime(text, query)
	case detectPercentage(text):
		return extractPercentage(text, query)
	case detectBullets(text):
		return extractBullets(text, query)
	default:
		return extractGeneral(text, query)
	}
}

var nameKeys = []string{"name", "label", "category", "title", "key"}
var valueKeys = []string{"value", "count", "amount", "total", "score"}

// normalizeArray treats the input as already tabular, inferring name/value
// keys per item.
func (n *Normalizer) normalizeArray(arr []any, query string) (Result, bool) {
	var records []Record
	for i, item := range arr {
		switch v := item.(type) {
		case map[string]any:
			if rec, ok := recordFromMap(v, i); ok {
				records = append(records, rec)
			}
		case float64:
			records = append(records, Record{Name: fmt.Sprintf("Item %d", i+1), Value: v})
		case string:
			if num := reFirstNumber.FindString(v); num != "" {
				records = append(records, Record{Name: v, Value: parseNum(num)})
			}
		}
	}
	if len(records) == 0 {
		return Result{}, false
	}
	return Result{
		Records:  records,
		Title:    "Structured Data",
		Source:   SourceStructured,
		Metadata: InferMetadata("", query),
	}, true
}

func recordFromMap(m map[string]any, idx int) (Record, bool) {
	rec := Record{}
	for _, k := range nameKeys {
		for mk, mv := range m {
			if strings.Contains(strings.ToLower(mk), k) {
				if s, ok := mv.(string); ok && s != "" {
					rec.Name = s
				}
			}
		}
		if rec.Name != "" {
			break
		}
	}
	found := false
	for _, k := range valueKeys {
		for mk, mv := range m {
			if strings.Contains(strings.ToLower(mk), k) {
				if f, ok := toFloat(mv); ok {
					rec.Value = f
					found = true
				}
			}
		}
		if found {
			break
		}
	}
	if !found {
		// Any numeric-typed field serves as the value.
		for _, mv := range m {
			if f, ok := toFloat(mv); ok {
				rec.Value = f
				found = true
				break
			}
		}
	}
	if !found {
		return Record{}, false
	}
	if rec.Name == "" {
		rec.Name = fmt.Sprintf("Item %d", idx+1)
	}
	return rec, true
}

// normalizeObject extracts numeric-valued entries as {name: key, value} pairs.
func (n *Normalizer) normalizeObject(obj map[string]any, query string) (Result, bool) {
	var records []Record
	for k, v := range obj {
		if f, ok := toFloat(v); ok {
			records = append(records, Record{Name: k, Value: f})
		}
	}
	if len(records) == 0 {
		return Result{}, false
	}
	sortRecordsByName(records)
	return Result{
		Records:  records,
		Title:    "Structured Data",
		Source:   SourceStructured,
		Metadata: InferMetadata("", query),
	}, true
}

func sortRecordsByName(records []Record) {
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func queryString(query any) string {
	switch q := query.(type) {
	case nil:
		return ""
	case string:
		return q
	case map[string]any:
		if s, ok := q["response"].(string); ok {
			return s
		}
		if s, ok := q["query"].(string); ok {
			return s
		}
		return ""
	default:
		return fmt.Sprintf("%v", q)
	}
}
