package viz

import (
	"regexp"
	"strings"
)

var reScoreNoun = regexp.MustCompile(`(?i)\b([a-z]+)\s+(?:score|rating|points)\b`)

// InferMetadata derives axis labels, unit and value type from the combined
// response and query text. Priority is fixed: percentage > currency > count >
// score > revenue > growth > temperature > population. A second independent
// scan picks the x-axis label.
func InferMetadata(responseText, queryText string) Metadata {
	combined := strings.ToLower(responseText + " " + queryText)

	md := Metadata{ValueLabel: "Value", YAxisLabel: "Value", ValueType: ValueNumeric}

	switch {
	case containsAny(combined, "%", "percent", "percentage", "share", "proportion"):
		md = Metadata{ValueLabel: "Percentage", YAxisLabel: "Percentage (%)", Unit: "%", ValueType: ValuePercentage}
	case containsAny(combined, "$", "usd", "eur", "dollar", "euro", "price", "cost", "exchange rate", "currency"):
		md = Metadata{ValueLabel: "Amount", YAxisLabel: "Amount ($)", Unit: "$", ValueType: ValueCurrency}
	case containsAny(combined, "count", "number of", "total of", "quantity", "frequency"):
		md = Metadata{ValueLabel: "Count", YAxisLabel: "Count", ValueType: ValueCount}
	case containsAny(combined, "score", "rating", "points"):
		label := "Score"
		if m := reScoreNoun.FindStringSubmatch(combined); m != nil {
			label = titleCase(m[1]) + " Score"
		}
		md = Metadata{ValueLabel: label, YAxisLabel: label, ValueType: ValueScore}
	case containsAny(combined, "revenue", "sales", "income", "earnings"):
		md = Metadata{ValueLabel: "Revenue", YAxisLabel: "Revenue", Unit: "$", ValueType: ValueCurrency}
	case containsAny(combined, "growth", "increase", "decline", "change rate"):
		md = Metadata{ValueLabel: "Growth Rate", YAxisLabel: "Growth Rate (%)", Unit: "%", ValueType: ValuePercentage}
	case containsAny(combined, "temperature", "celsius", "fahrenheit", "degrees"):
		md = Metadata{ValueLabel: "Temperature", YAxisLabel: "Temperature (°)", Unit: "°", ValueType: ValueNumeric}
	case containsAny(combined, "population", "people", "residents", "inhabitants"):
		md = Metadata{ValueLabel: "Population", YAxisLabel: "Population", ValueType: ValueCount}
	}

	switch {
	case containsAny(combined, "month", "year", "quarter", "week", "day", "date", "time", "period"):
		md.XAxisLabel = "Time"
	case containsAny(combined, "category", "type", "kind", "group", "segment"):
		md.XAxisLabel = "Category"
	case containsAny(combined, "product", "item", "service", "brand"):
		md.XAxisLabel = "Item"
	case containsAny(combined, "country", "city", "region", "location", "state"):
		md.XAxisLabel = "Location"
	default:
		md.XAxisLabel = "Category"
	}

	return md
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
