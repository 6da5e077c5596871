package viz

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var monthOrder = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
}

func parseNum(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// extractCurrency tries, in order: "Month Year: N CUR = M CUR" exchange-rate
// lines, generic "N CUR = M CUR", "Label: $N" / "$N Label" value lines, and a
// month-table special case for the common USD/EUR/CAD/JPY layout. The first
// form producing records wins.
func extractCurrency(text string, query string) Result {
	md := InferMetadata(text, query)
	md.ValueType = ValueCurrency

	if ms := reExchangeRate.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		records := make([]Record, 0, len(ms))
		for i, m := range ms {
			records = append(records, Record{
				Name:     strings.TrimSpace(m[1]),
				Value:    parseNum(m[4]),
				Order:    i + 1,
				Currency: m[5],
			})
		}
		return Result{Records: records, Title: "Exchange Rates", Source: SourceCurrency, Metadata: md}
	}

	if ms := reGenericRate.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		records := make([]Record, 0, len(ms))
		for i, m := range ms {
			records = append(records, Record{
				Name:     m[2] + " to " + m[4],
				Value:    parseNum(m[3]) / nonZero(parseNum(m[1])),
				Order:    i + 1,
				Currency: m[4],
			})
		}
		return Result{Records: records, Title: "Currency Conversion", Source: SourceCurrency, Metadata: md}
	}

	if ms := reDollarValue.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		records := make([]Record, 0, len(ms))
		for _, m := range ms {
			var name, val string
			if m[1] != "" {
				name, val = m[1], m[2]
			} else {
				name, val = m[4], m[3]
			}
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			records = append(records, Record{Name: name, Value: parseNum(val), Currency: "USD"})
		}
		if len(records) > 0 {
			return Result{Records: records, Title: "Currency Values", Source: SourceCurrency, Metadata: md}
		}
	}

	if records := extractCurrencyTable(text); len(records) > 0 {
		return Result{Records: records, Title: "Currency Comparison", Source: SourceCurrency, Metadata: md}
	}

	return sampleResult(query, "No currency values found")
}

var reTableRate = regexp.MustCompile(`(?i)\b(USD|EUR|CAD|JPY)\b[^\d\n]*(\d+(?:\.\d+)?)`)

// extractCurrencyTable handles the bare per-code table layout without labels.
func extractCurrencyTable(text string) []Record {
	seen := map[string]bool{}
	var records []Record
	for _, m := range reTableRate.FindAllStringSubmatch(text, -1) {
		code := strings.ToUpper(m[1])
		if seen[code] {
			continue
		}
		seen[code] = true
		records = append(records, Record{Name: code, Value: parseNum(m[2]), Currency: code})
	}
	if len(records) < 2 {
		return nil
	}
	return records
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// extractTime probes month names, then quarters, then bare years, each
// requiring a trailing ": number". Records are sorted by the detected ordinal.
func extractTime(text string, query string) Result {
	md := InferMetadata(text, query)
	md.XAxisLabel = "Time"

	title := "Time Series Data"
	lower := strings.ToLower(text + " " + query)
	switch {
	case strings.Contains(lower, "temperature"):
		title = "Temperature Over Time"
	case strings.Contains(lower, "sales"):
		title = "Sales Over Time"
	case strings.Contains(lower, "growth"):
		title = "Growth Over Time"
	}

	if ms := reMonthValue.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		records := make([]Record, 0, len(ms))
		for _, m := range ms {
			name := titleCase(strings.ToLower(m[1]))
			records = append(records, Record{Name: name, Value: parseNum(m[2]), Order: monthOrder[strings.ToLower(m[1])]})
		}
		sortByOrder(records)
		if title == "Time Series Data" {
			title = "Monthly Data"
		}
		return Result{Records: records, Title: title, Source: SourceTime, Metadata: md}
	}

	if ms := reQuarterValue.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		records := make([]Record, 0, len(ms))
		for _, m := range ms {
			q := m[1]
			if q == "" {
				q = m[2]
			}
			n, _ := strconv.Atoi(q)
			records = append(records, Record{Name: "Q" + q, Value: parseNum(m[3]), Order: n})
		}
		sortByOrder(records)
		if title == "Time Series Data" {
			title = "Quarterly Data"
		}
		return Result{Records: records, Title: title, Source: SourceTime, Metadata: md}
	}

	if ms := reYearValue.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		records := make([]Record, 0, len(ms))
		for _, m := range ms {
			y, _ := strconv.Atoi(m[1])
			records = append(records, Record{Name: m[1], Value: parseNum(m[2]), Order: y})
		}
		sortByOrder(records)
		if title == "Time Series Data" {
			title = "Yearly Data"
		}
		return Result{Records: records, Title: title, Source: SourceTime, Metadata: md}
	}

	return sampleResult(query, "No time series values found")
}

func sortByOrder(records []Record) {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Order < records[j].Order })
}

// extractPercentage matches "Label: N%" and "Label (N%)". The two matches are
// unioned without dedup; callers that need uniqueness do their own pass.
func extractPercentage(text string, query string) Result {
	md := InferMetadata(text, query)
	md.ValueType = ValuePercentage

	var records []Record
	for _, m := range rePercentColon.FindAllStringSubmatch(text, -1) {
		records = append(records, Record{Name: cleanLabel(m[1]), Value: parseNum(m[2]), IsPercentage: true})
	}
	for _, m := range rePercentParen.FindAllStringSubmatch(text, -1) {
		records = append(records, Record{Name: cleanLabel(m[1]), Value: parseNum(m[2]), IsPercentage: true})
	}
	if len(records) == 0 {
		return sampleResult(query, "No percentage values found")
	}

	title := "Percentage Breakdown"
	if strings.Contains(strings.ToLower(text+" "+query), "market share") {
		title = "Market Share"
	}
	return Result{Records: records, Title: title, Source: SourcePercentage, Metadata: md}
}

// extractBullets matches "- Label: N" and "N. Label: N" lines.
func extractBullets(text string, query string) Result {
	var records []Record
	for _, m := range reBulletValue.FindAllStringSubmatch(text, -1) {
		records = append(records, Record{Name: cleanLabel(m[1]), Value: parseNum(m[2])})
	}
	for _, m := range reNumberedValue.FindAllStringSubmatch(text, -1) {
		records = append(records, Record{Name: cleanLabel(m[1]), Value: parseNum(m[2])})
	}
	if len(records) == 0 {
		return sampleResult(query, "No list values found")
	}
	return Result{Records: records, Title: "List Data", Source: SourceBullets, Metadata: InferMetadata(text, query)}
}

var (
	reKeyValue     = regexp.MustCompile(`(?m)^\s*([A-Za-z][A-Za-z\s/&-]{0,50}?)\s*[:\-]\s*\$?(-?\d+(?:,\d{3})*(?:\.\d+)?)\s*%?\s*$`)
	reInlinePair   = regexp.MustCompile(`([A-Za-z][A-Za-z\s]{1,40}?)\s*:\s*(-?\d+(?:\.\d+)?)`)
	reFirstNumber  = regexp.MustCompile(`-?\d+(?:,\d{3})*(?:\.\d+)?`)
	reSentenceStop = regexp.MustCompile(`[.!?]\s+|\n`)
)

var numberWords = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	"hundred": 100, "thousand": 1000, "million": 1000000,
}

// spelledNumber resolves simple and compound number words of up to two parts,
// e.g. "twenty-five" -> 25, "three hundred" -> 300.
func spelledNumber(words string) (float64, bool) {
	parts := strings.FieldsFunc(strings.ToLower(words), func(r rune) bool {
		return r == ' ' || r == '-'
	})
	if len(parts) == 0 || len(parts) > 2 {
		return 0, false
	}
	first, ok := numberWords[parts[0]]
	if !ok {
		return 0, false
	}
	if len(parts) == 1 {
		return first, true
	}
	second, ok := numberWords[parts[1]]
	if !ok {
		return 0, false
	}
	if second >= 100 {
		return first * second, true
	}
	return first + second, true
}

var reSpelledPair = regexp.MustCompile(`(?i)([A-Za-z][A-Za-z\s]{1,40}?)\s*:\s*((?:[a-z]+[\s-])?[a-z]+)\b`)

// extractGeneral is the last extractor in the cascade: key:value pairs,
// spelled-out number values, then a first-number-per-sentence sweep.
func extractGeneral(text string, query string) Result {
	md := InferMetadata(text, query)

	var records []Record
	for _, m := range reKeyValue.FindAllStringSubmatch(text, -1) {
		records = append(records, Record{Name: cleanLabel(m[1]), Value: parseNum(m[2])})
	}
	if len(records) == 0 {
		for _, m := range reInlinePair.FindAllStringSubmatch(text, -1) {
			records = append(records, Record{Name: cleanLabel(m[1]), Value: parseNum(m[2])})
		}
	}
	if len(records) == 0 {
		for _, m := range reSpelledPair.FindAllStringSubmatch(text, -1) {
			if v, ok := spelledNumber(m[2]); ok {
				records = append(records, Record{Name: cleanLabel(m[1]), Value: v})
			}
		}
	}
	if len(records) == 0 {
		records = extractPerSentence(text)
	}
	if len(records) == 0 {
		return sampleResult(query, "Could not extract usable data")
	}
	return Result{Records: records, Title: "Extracted Data", Source: SourceText, Metadata: md}
}

// extractPerSentence takes the first number of each sentence and a truncated
// form of the sentence as its label.
func extractPerSentence(text string) []Record {
	var records []Record
	for _, sentence := range reSentenceStop.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		num := reFirstNumber.FindString(sentence)
		if num == "" {
			continue
		}
		label := sentence
		if len(label) > 40 {
			label = strings.TrimSpace(label[:40]) + "..."
		}
		records = append(records, Record{Name: label, Value: parseNum(num)})
	}
	return records
}

func cleanLabel(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*-• \t")
	s = strings.TrimSpace(s)
	if s == "" {
		return "Item"
	}
	return s
}
