package viz

// ColorScheme returns the fixed 5-color palette for a result source. Pure:
// same source, same palette, every call.
func ColorScheme(source string) []string {
	switch source {
	case SourceCurrency:
		return []string{"#2E7D32", "#43A047", "#66BB6A", "#81C784", "#A5D6A7"}
	case SourcePercentage:
		return []string{"#1565C0", "#1E88E5", "#42A5F5", "#64B5F6", "#90CAF9"}
	case SourceTime:
		return []string{"#6A1B9A", "#8E24AA", "#AB47BC", "#BA68C8", "#CE93D8"}
	default:
		return []string{"#E65100", "#F57C00", "#FB8C00", "#FFA726", "#FFB74D"}
	}
}
