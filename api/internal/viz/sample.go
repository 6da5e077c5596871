package viz

// SampleRecords returns the fixed placeholder dataset used whenever no
// extractor produces usable records. Always a fresh slice; callers may mutate.
func SampleRecords() []Record {
	return []Record{
		{Name: "Category A", Value: 400},
		{Name: "Category B", Value: 300},
		{Name: "Category C", Value: 300},
		{Name: "Category D", Value: 200},
		{Name: "Category E", Value: 100},
	}
}

// sampleResult wraps the placeholder dataset in a canonical Result.
func sampleResult(query, message string) Result {
	return Result{
		Records:  SampleRecords(),
		Title:    "Sample Data",
		Source:   SourceSample,
		Metadata: InferMetadata("", query),
		Message:  message,
	}
}
