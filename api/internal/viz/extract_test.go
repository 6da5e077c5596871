package viz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTimeMonths(t *testing.T) {
	res := extractTime("January: 45\nFebruary: 52\nMarch: 40", "")

	require.Len(t, res.Records, 3)
	assert.Equal(t, "Monthly Data", res.Title)
	assert.Equal(t, SourceTime, res.Source)
	assert.Equal(t, Record{Name: "January", Value: 45, Order: 1}, res.Records[0])
	assert.Equal(t, Record{Name: "February", Value: 52, Order: 2}, res.Records[1])
	assert.Equal(t, Record{Name: "March", Value: 40, Order: 3}, res.Records[2])
}

func TestExtractTimeSortsByOrdinal(t *testing.T) {
	res := extractTime("March: 40\nJanuary: 45", "")

	require.Len(t, res.Records, 2)
	assert.Equal(t, "January", res.Records[0].Name)
	assert.Equal(t, "March", res.Records[1].Name)
}

func TestExtractTimeQuartersAndYears(t *testing.T) {
	res := extractTime("Q2: 200\nQ1: 100", "")
	require.Len(t, res.Records, 2)
	assert.Equal(t, "Q1", res.Records[0].Name)
	assert.Equal(t, "Quarterly Data", res.Title)

	res = extractTime("2023: 10\n2021: 5", "sales by year")
	require.Len(t, res.Records, 2)
	assert.Equal(t, "2021", res.Records[0].Name)
	assert.Equal(t, "Sales Over Time", res.Title)
}

func TestExtractPercentageBothForms(t *testing.T) {
	res := extractPercentage("Market share: 45%, Market share: Widgets (30%)", "")

	require.Len(t, res.Records, 2)
	assert.Equal(t, "Market Share", res.Title)
	for _, r := range res.Records {
		assert.True(t, r.IsPercentage)
	}
	assert.Equal(t, 45.0, res.Records[0].Value)
	assert.Equal(t, "Widgets", res.Records[1].Name)
	assert.Equal(t, 30.0, res.Records[1].Value)
}

func TestExtractCurrencyExchangeRates(t *testing.T) {
	res := extractCurrency("January 2024: 1 USD = 0.92 EUR\nFebruary 2024: 1 USD = 0.93 EUR", "")

	require.Len(t, res.Records, 2)
	assert.Equal(t, "Exchange Rates", res.Title)
	assert.Equal(t, "January 2024", res.Records[0].Name)
	assert.Equal(t, 0.92, res.Records[0].Value)
	assert.Equal(t, "EUR", res.Records[0].Currency)
}

func TestExtractCurrencyDollarLabels(t *testing.T) {
	res := extractCurrency("Revenue: $1,200\nCosts: $800", "")

	require.Len(t, res.Records, 2)
	assert.Equal(t, 1200.0, res.Records[0].Value)
	assert.Equal(t, "Revenue", res.Records[0].Name)
	assert.Equal(t, "USD", res.Records[0].Currency)
}

func TestExtractBullets(t *testing.T) {
	res := extractBullets("- Apples: 10\n- Pears: 20\n3. Plums: 5", "")

	require.Len(t, res.Records, 3)
	assert.Equal(t, SourceBullets, res.Source)
	assert.Equal(t, "Plums", res.Records[2].Name)
}

func TestExtractGeneralKeyValues(t *testing.T) {
	res := extractGeneral("Alpha: 12\nBeta - 30", "")

	require.Len(t, res.Records, 2)
	assert.Equal(t, 12.0, res.Records[0].Value)
	assert.Equal(t, "Beta", res.Records[1].Name)
}

func TestSpelledNumber(t *testing.T) {
	cases := map[string]float64{
		"five":        5,
		"twenty-five": 25,
		"twenty five": 25,
		"three hundred": 300,
		"ninety":      90,
	}
	for in, want := range cases {
		got, ok := spelledNumber(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := spelledNumber("banana")
	assert.False(t, ok)
	_, ok = spelledNumber("one two three")
	assert.False(t, ok)
}

func TestExtractGeneralPerSentenceFallback(t *testing.T) {
	res := extractGeneral("The fleet grew to 42 ships last year. Another 7 were added later.", "")

	require.Len(t, res.Records, 2)
	assert.Equal(t, 42.0, res.Records[0].Value)
	assert.Equal(t, 7.0, res.Records[1].Value)
}

func TestExtractorsNeverReturnEmptyOrNaN(t *testing.T) {
	inputs := []string{"", "no numbers here at all", "???"}
	for _, in := range inputs {
		for _, res := range []Result{
			extractCurrency(in, ""), extractTime(in, ""),
			extractPercentage(in, ""), extractBullets(in, ""), extractGeneral(in, ""),
		} {
			require.NotEmpty(t, res.Records)
			for _, r := range res.Records {
				assert.False(t, math.IsNaN(r.Value))
				assert.False(t, math.IsInf(r.Value, 0))
				assert.NotEmpty(t, r.Name)
			}
		}
	}
}
