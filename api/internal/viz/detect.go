package viz

import (
	"regexp"
	"strings"
)

// DetectorConfig carries the keyword tables the shape detectors match against.
// The defaults mirror the demo corpus; callers with a different domain can
// substitute their own tables without touching the detectors.
type DetectorConfig struct {
	HierarchyKeywords []string
	// OrgKeywords routes hierarchical text to the organizational special case.
	OrgKeywords []string
	// ActKeywords routes hierarchical text to the three-act special case.
	ActKeywords []string
}

// DefaultDetectorConfig returns the stock keyword tables.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		HierarchyKeywords: []string{
			"structure", "hierarchy", "hierarchical", "nested", "parent", "child",
			"tier", "taxonomy", "breakdown", "organization", "subsidiary",
			"division", "levels", "branches", "tree",
		},
		OrgKeywords: []string{"studio", "subsidiary", "subsidiaries", "division", "parent company"},
		ActKeywords: []string{"act 1", "act 2", "act 3", "three-act", "setup", "confrontation", "resolution"},
	}
}

var (
	reBoldColon     = regexp.MustCompile(`\*\*[^*]+\*\*\s*:?`)
	reBulletLine    = regexp.MustCompile(`(?m)^\s*[-*•]\s+\S`)
	reNumberedLine  = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+\S`)
	reIndentedLine  = regexp.MustCompile(`(?m)^(?:\t| {2,})\S`)
	reNestedBullet  = regexp.MustCompile(`(?m)^\s+[-*•]\s+\S`)
	reNestedNumber  = regexp.MustCompile(`(?m)^\s+\d+[.)]\s+\S`)
	reParentChild   = regexp.MustCompile(`(?i)\b(parent|child|sub-?\w+)\b.*\b(of|under|within)\b`)
	reSavedEnvelope = regexp.MustCompile(`^\s*(?:###\s*)?(?:Saved Chat|Chat Export|Conversation)\b`)

	reExchangeRate = regexp.MustCompile(`(?i)([A-Za-z]+\s+\d{4})\s*:\s*(\d+(?:\.\d+)?)\s*([A-Z]{3})\s*=\s*(\d+(?:\.\d+)?)\s*([A-Z]{3})`)
	reGenericRate  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([A-Z]{3})\s*=\s*(\d+(?:\.\d+)?)\s*([A-Z]{3})`)
	reDollarValue  = regexp.MustCompile(`([A-Za-z][A-Za-z\s]{0,40}?)\s*:\s*\$\s*(\d+(?:,\d{3})*(?:\.\d+)?)|\$\s*(\d+(?:,\d{3})*(?:\.\d+)?)\s+([A-Za-z][A-Za-z\s]{0,40})`)
	reCurrencyCode = regexp.MustCompile(`\b(USD|EUR|CAD|JPY|GBP|AUD|CHF|CNY)\b`)

	reMonthValue   = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\b[^:\n]*:\s*\$?(-?\d+(?:,\d{3})*(?:\.\d+)?)`)
	reQuarterValue = regexp.MustCompile(`(?i)\b(?:Q([1-4])|Quarter\s+([1-4]))\b[^:\n]*:\s*\$?(-?\d+(?:,\d{3})*(?:\.\d+)?)`)
	reYearValue    = regexp.MustCompile(`\b(20\d{2})\b[^:\n]*:\s*\$?(-?\d+(?:,\d{3})*(?:\.\d+)?)`)

	rePercentColon = regexp.MustCompile(`([A-Za-z][A-Za-z\s/&-]{0,50}?)\s*:\s*(\d+(?:\.\d+)?)\s*%`)
	rePercentParen = regexp.MustCompile(`([A-Za-z][A-Za-z\s/&-]{0,50}?)\s*\(\s*(\d+(?:\.\d+)?)\s*%\s*\)`)

	reBulletValue   = regexp.MustCompile(`(?m)^\s*[-*•]\s*([^:\n]+?)\s*:\s*\$?(-?\d+(?:,\d{3})*(?:\.\d+)?)\s*%?\s*$`)
	reNumberedValue = regexp.MustCompile(`(?m)^\s*\d+[.)]\s*([^:\n]+?)\s*:\s*\$?(-?\d+(?:,\d{3})*(?:\.\d+)?)\s*%?\s*$`)
)

// containsHierarchicalData is the permissive three-way OR probe: keyword hit,
// markdown pattern, or structural repetition. False positives fall through to
// the general extractor's line scan.
func (c DetectorConfig) containsHierarchicalData(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range c.HierarchyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	if reBoldColon.MatchString(text) && (reBulletLine.MatchString(text) || reNumberedLine.MatchString(text)) {
		return true
	}
	if reIndentedLine.MatchString(text) && reBulletLine.MatchString(text) {
		return true
	}
	if reParentChild.MatchString(text) {
		return true
	}
	// Structural repetition: several markers of the same class, or nesting.
	if len(reBulletLine.FindAllStringIndex(text, -1)) >= 3 && reNestedBullet.MatchString(text) {
		return true
	}
	if len(reNumberedLine.FindAllStringIndex(text, -1)) >= 3 && reNestedNumber.MatchString(text) {
		return true
	}
	return false
}

// hasHierarchyMarkers requires actual markdown structure on top of the keyword
// probe; plain prose mentioning "structure" is not enough to route step 2.
func (c DetectorConfig) hasHierarchyMarkers(text string) bool {
	markers := reBoldColon.MatchString(text) || reBulletLine.MatchString(text) ||
		reNumberedLine.MatchString(text) || reIndentedLine.MatchString(text)
	return markers && c.containsHierarchicalData(text)
}

func detectSavedChat(text string) bool { return reSavedEnvelope.MatchString(text) }

func detectCurrency(text string) bool {
	return reExchangeRate.MatchString(text) || reGenericRate.MatchString(text) ||
		(reDollarValue.MatchString(text) && strings.Contains(text, "$")) ||
		(reCurrencyCode.MatchString(text) && strings.Contains(text, "="))
}

func detectTime(text string) bool {
	return reMonthValue.MatchString(text) || reQuarterValue.MatchString(text) || reYearValue.MatchString(text)
}

func detectPercentage(text string) bool {
	return rePercentColon.MatchString(text) || rePercentParen.MatchString(text)
}

func detectBullets(text string) bool {
	return reBulletValue.MatchString(text) || reNumberedValue.MatchString(text)
}
