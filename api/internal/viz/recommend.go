package viz

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Recommendation is one ranked chart suggestion.
type Recommendation struct {
	Chart ChartType `json:"chart"`
	Score float64   `json:"score"`
}

var chartKeywords = map[ChartType][]string{
	ChartArea:           {"trend", "growth", "over time", "cumulative", "increase", "decrease", "progression", "continuous", "time series", "evolution", "historical"},
	ChartBar:            {"compare", "comparison", "versus", "ranking", "top", "best", "worst", "category", "different", "contrast", "rank"},
	ChartChordDiagram:   {"relationship", "connection", "flow", "interaction", "between", "network", "exchange", "transfer", "link"},
	ChartCirclePacking:  {"hierarchy", "nested", "contains", "part of", "within", "organization", "structure", "grouped"},
	ChartConnectionMap:  {"geographic", "location", "map", "route", "distance", "between places", "spatial"},
	ChartDAG:            {"process", "workflow", "step", "sequence", "dependency", "before", "after", "requires", "depends on", "pipeline"},
	ChartDonut:          {"percentage", "proportion", "share", "breakdown", "distribution", "composition", "market share", "allocation", "split"},
	ChartHeatmap:        {"correlation", "pattern", "intensity", "matrix", "multi-dimensional", "cluster", "density"},
	ChartLine:           {"trend", "change", "over time", "fluctuation", "variation", "progress", "historical"},
	ChartMosaicPlot:     {"categorical", "contingency", "cross-tabulation", "multi-category"},
	ChartNetworkGraph:   {"network", "connection", "link", "influence", "relationship", "graph", "connected", "social"},
	ChartPolarArea:      {"cyclic", "seasonal", "periodic", "radial", "circular", "rotation", "angle"},
	ChartSmallMultiples: {"compare", "multiple", "side by side", "faceted", "across", "comparison", "parallel"},
	ChartStackedArea:    {"composition", "breakdown", "over time", "cumulative", "parts", "changing", "evolution"},
	ChartSunBurst:       {"hierarchy", "nested", "layers", "levels", "drill down", "multi-level", "concentric"},
	ChartTreeDiagram:    {"hierarchy", "tree", "parent", "child", "structure", "organization", "taxonomy", "branch"},
	ChartTreeMap:        {"hierarchy", "nested", "size", "quantity", "proportion", "rectangle"},
	ChartVoronoiMap:     {"proximity", "territory", "region", "distance", "coverage", "area", "partition"},
	ChartWordCloud:      {"text", "word", "frequency", "common", "theme", "keyword", "terms", "language"},
}

// chartCategory groups families for the diversity pass: at most one pick per
// group unless the score is dominant.
var chartCategory = map[ChartType]string{
	ChartLine: "time", ChartArea: "time", ChartStackedArea: "time",
	ChartTreeMap: "hierarchy", ChartSunBurst: "hierarchy", ChartCirclePacking: "hierarchy", ChartTreeDiagram: "hierarchy",
	ChartNetworkGraph: "relational", ChartChordDiagram: "relational", ChartDAG: "relational",
	ChartBar: "comparison", ChartSmallMultiples: "comparison", ChartMosaicPlot: "comparison",
	ChartConnectionMap: "geographic", ChartVoronoiMap: "geographic",
	ChartHeatmap: "distribution", ChartDonut: "proportion",
	ChartWordCloud: "text", ChartPolarArea: "polar",
}

var (
	reTemporalPattern = regexp.MustCompile(`(?i)\b(?:\d{4}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	rePercentToken    = regexp.MustCompile(`\d+(?:\.\d+)?\s*%`)
	reVsToken         = regexp.MustCompile(`(?i)\bvs\b|\bversus\b|\bcompared\s+(?:to|with)\b`)
	reTopN            = regexp.MustCompile(`(?i)\btop\s+\d+\b`)
	reByCross         = regexp.MustCompile(`(?i)\w+\s+by\s+\w+`)
)

var (
	trendWords     = []string{"increase", "decline", "growth", "rise", "drop", "trend", "fall", "surge", "peak", "upward", "downward", "change"}
	relationWords  = []string{"prefer", "dominate", "correlation", "influence", "impact", "between", "connection", "network", "interaction", "flow", "linked", "related", "depends"}
	hierarchyWords = []string{"structure", "hierarchy", "nested", "parent", "child", "tree", "branch", "tier", "layer", "taxonomy", "subcategory", "subgroup", "breakdown"}
	partWholeWords = []string{"percentage", "proportion", "fraction", "share", "allocation", "distribution", "portion", "composition", "ratio", "percent", "split", "makes up", "accounts for"}
	compareWords   = []string{"versus", "against", "compare", "contrast", "difference", "benchmark", "outperform", "rank", "exceed", "higher", "lower", "relative"}
	temporalWords  = []string{"time", "year", "month", "week", "day", "quarter", "period", "timeline", "seasonal", "quarterly", "annually", "monthly"}
	geoWords       = []string{"map", "geographic", "location", "country", "city", "region", "route"}
	processWords   = []string{"process", "workflow", "step", "sequence", "procedure", "pipeline", "stage"}
)

type textFeatures struct {
	trends, relations, hierarchies, partWhole, comparisons, temporal int
	percentTokens                                                    int
	sumToWhole                                                       bool
	hasTimeSeries                                                    bool
	multipleDates                                                    bool
	listStructure                                                    bool
	comparisonStructure                                              bool
	multiDimensional                                                 bool
	textHeavy                                                        bool
	geographic                                                       bool
	process                                                          bool
}

func countWords(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

func extractFeatures(query, response string) textFeatures {
	combined := strings.ToLower(query + " " + response)

	f := textFeatures{
		trends:      countWords(combined, trendWords),
		relations:   countWords(combined, relationWords),
		hierarchies: countWords(combined, hierarchyWords),
		partWhole:   countWords(combined, partWholeWords),
		comparisons: countWords(combined, compareWords),
		temporal:    countWords(combined, temporalWords),
	}

	temporalHits := reTemporalPattern.FindAllString(combined, -1)
	f.hasTimeSeries = len(temporalHits) > 1 || f.temporal > 2
	f.multipleDates = len(temporalHits) > 1

	pcts := rePercentToken.FindAllString(combined, -1)
	f.percentTokens = len(pcts)
	if len(pcts) > 2 {
		var sum float64
		for _, t := range pcts {
			sum += parseNum(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "%")))
		}
		f.sumToWhole = sum >= 95 && sum <= 105
	}

	bullets := strings.Count(response, "\n-") + strings.Count(response, "\n*") + strings.Count(response, "\n•")
	numbered := len(reNumberedLine.FindAllString(response, -1))
	f.listStructure = bullets > 2 || numbered > 2

	f.comparisonStructure = reVsToken.MatchString(combined)
	f.multiDimensional = reByCross.MatchString(combined) && len(reFirstNumber.FindAllString(combined, -1)) > 5

	words := strings.Fields(combined)
	unique := map[string]bool{}
	for _, w := range words {
		unique[w] = true
	}
	f.textHeavy = len(words) > 50 && float64(len(unique))/float64(len(words)) > 0.5

	f.geographic = countWords(combined, geoWords) > 0
	f.process = countWords(combined, processWords) > 0
	return f
}

func keywordScores(combined string) map[ChartType]float64 {
	scores := make(map[ChartType]float64, len(chartKeywords))
	for chart, kws := range chartKeywords {
		matches := 0
		for _, kw := range kws {
			if strings.Contains(combined, kw) {
				matches++
			}
		}
		if matches > 0 {
			scores[chart] = math.Min(float64(matches)/float64(len(kws))*2, 1)
		}
	}
	return scores
}

func boostScores(scores map[ChartType]float64, f textFeatures) {
	if f.hasTimeSeries {
		if f.multipleDates {
			scores[ChartLine] += 0.8
			scores[ChartArea] += 0.7
			scores[ChartStackedArea] += 0.6
		} else {
			scores[ChartLine] += 0.5
			scores[ChartArea] += 0.4
		}
	}
	if f.trends > 1 {
		scores[ChartLine] += 0.4
		scores[ChartArea] += 0.3
	}
	switch {
	case f.relations > 2:
		scores[ChartNetworkGraph] += 1.2
		scores[ChartChordDiagram] += 1.0
		scores[ChartDAG] += 0.8
	case f.relations > 0:
		scores[ChartNetworkGraph] += 0.6
		scores[ChartChordDiagram] += 0.5
	}
	switch {
	case f.hierarchies > 2:
		scores[ChartTreeMap] += 1.2
		scores[ChartSunBurst] += 1.0
		scores[ChartCirclePacking] += 0.8
		scores[ChartTreeDiagram] += 0.7
	case f.hierarchies > 0:
		scores[ChartTreeMap] += 0.6
		scores[ChartSunBurst] += 0.5
	}
	switch {
	case f.sumToWhole:
		scores[ChartDonut] += 1.5
		scores[ChartTreeMap] += 0.8
	case f.percentTokens >= 3:
		scores[ChartDonut] += 1.0
		if !f.hasTimeSeries {
			scores[ChartDonut] += 0.4
		}
	case f.percentTokens > 0:
		scores[ChartDonut] += 0.6
	}
	if f.partWhole >= 3 {
		scores[ChartDonut] += 1.2
	} else if f.partWhole > 0 {
		scores[ChartDonut] += 0.6
	}
	if f.geographic {
		scores[ChartConnectionMap] += 0.7
		scores[ChartVoronoiMap] += 0.4
	}
	if f.comparisonStructure || f.comparisons > 1 {
		scores[ChartBar] += 0.8
		scores[ChartSmallMultiples] += 1.0
		scores[ChartMosaicPlot] += 0.7
	}
	if f.multiDimensional {
		scores[ChartHeatmap] += 1.2
		scores[ChartSmallMultiples] += 0.8
	}
	if f.textHeavy {
		scores[ChartWordCloud] += 1.0
	}
	if f.process {
		scores[ChartDAG] += 1.0
		scores[ChartTreeDiagram] += 0.6
	}
	if f.listStructure {
		scores[ChartBar] += 0.5
	}
	if f.hasTimeSeries && f.partWhole > 0 {
		scores[ChartStackedArea] += 0.9
	}
}

func contextBoosts(scores map[ChartType]float64, query string, f textFeatures) {
	q := strings.ToLower(query)
	if strings.Contains(q, "hierarchy") || strings.Contains(q, "hierarchical") {
		scores[ChartTreeMap] += 1.0
		scores[ChartSunBurst] += 0.9
		scores[ChartTreeDiagram] += 0.8
		scores[ChartCirclePacking] += 0.7
	}
	if strings.Contains(q, "network") || strings.Contains(q, "connections between") {
		scores[ChartNetworkGraph] += 1.2
		scores[ChartChordDiagram] += 0.9
	}
	if strings.Contains(q, "over time") || (strings.Contains(q, "trend") && f.hasTimeSeries) {
		scores[ChartLine] += 0.8
		scores[ChartArea] += 0.7
	}
	if strings.Contains(q, "map") || strings.Contains(q, "geographic") {
		scores[ChartConnectionMap] += 1.0
		scores[ChartVoronoiMap] += 0.6
	}
	if strings.Contains(q, "compar") || f.comparisonStructure {
		scores[ChartBar] += 0.7
		scores[ChartSmallMultiples] += 1.0
	}
	for _, term := range []string{"breakdown", "what percentage", "what proportion", "distribution", "composition of", "share of", "pie chart", "donut"} {
		if strings.Contains(q, term) {
			scores[ChartDonut] += 1.0
			break
		}
	}
	for _, term := range []string{"market share", "budget allocation", "demographic", "spending"} {
		if strings.Contains(q, term) && !f.hasTimeSeries {
			scores[ChartDonut] += 0.9
			break
		}
	}
	if reTopN.MatchString(q) {
		scores[ChartBar] += 0.6
	}
	if strings.HasPrefix(q, "which") {
		scores[ChartBar] += 0.5
	}
}

// Recommend ranks chart families for a query/response pair: keyword scores,
// feature boosts, context boosts, then the top three diverse picks with
// word cloud always appended fourth. Scores are min-max normalized.
func Recommend(query, response string) []Recommendation {
	combined := strings.ToLower(query + " " + response)
	f := extractFeatures(query, response)

	scores := keywordScores(combined)
	boostScores(scores, f)
	contextBoosts(scores, query, f)

	ranked := make([]Recommendation, 0, len(AllChartTypes))
	for _, chart := range AllChartTypes {
		ranked = append(ranked, Recommendation{Chart: chart, Score: scores[chart]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	wordCloudScore := scores[ChartWordCloud]
	if wordCloudScore == 0 {
		wordCloudScore = 0.5
	}

	var picks []Recommendation
	usedCategories := map[string]bool{}
	for _, r := range ranked {
		if len(picks) >= 3 {
			break
		}
		if r.Chart == ChartWordCloud {
			continue
		}
		cat := chartCategory[r.Chart]
		if usedCategories[cat] && r.Score <= 0.7 {
			continue
		}
		picks = append(picks, r)
		usedCategories[cat] = true
	}
	for _, r := range ranked {
		if len(picks) >= 3 {
			break
		}
		if r.Chart == ChartWordCloud || containsChart(picks, r.Chart) {
			continue
		}
		picks = append(picks, r)
	}
	picks = append(picks, Recommendation{Chart: ChartWordCloud, Score: wordCloudScore})

	min, max := picks[0].Score, picks[0].Score
	for _, r := range picks[1:] {
		min = math.Min(min, r.Score)
		max = math.Max(max, r.Score)
	}
	if max > min {
		for i := range picks {
			picks[i].Score = math.Round((picks[i].Score-min)/(max-min)*100) / 100
		}
	} else {
		for i := range picks {
			picks[i].Score = math.Round(picks[i].Score*100) / 100
		}
	}
	return picks
}

func containsChart(recs []Recommendation, c ChartType) bool {
	for _, r := range recs {
		if r.Chart == c {
			return true
		}
	}
	return false
}
