package viz

import (
	"regexp"
	"strings"
)

var (
	reTurnMarker = regexp.MustCompile(`(?im)^(?:\*\*)?(user|assistant|bot|ai)(?:\*\*)?\s*:\s*`)
	reRefusal    = regexp.MustCompile(`(?i)\b(i'?m sorry|i apologi[sz]e|i can('?|no)t (help|assist|answer|provide)|as an ai)\b`)
)

// parseEnvelope extracts the last assistant/bot turn from a saved-chat export.
// The bool is false when no such turn is present.
func parseEnvelope(text string) (string, bool) {
	locs := reTurnMarker.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return "", false
	}
	var best string
	for i, loc := range locs {
		role := strings.ToLower(text[loc[2]:loc[3]])
		if role == "user" {
			continue
		}
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		best = strings.TrimSpace(text[loc[1]:end])
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// isRefusal reports whether the assistant turn is an apology/refusal rather
// than data.
func isRefusal(text string) bool { return reRefusal.MatchString(text) }
