package analysis

import "strings"

// extractJSON strips markdown code fences from a string that may contain
// JSON wrapped in ```json ... ``` or ``` ... ``` blocks. Providers without
// a JSON response mode sometimes fence their answer.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)

	// Try ```json ... ``` first.
	if after, found := strings.CutPrefix(s, "```json"); found {
		if idx := strings.LastIndex(after, "```"); idx >= 0 {
			after = after[:idx]
		}
		return strings.TrimSpace(after)
	}

	// Try plain ``` ... ```.
	if after, found := strings.CutPrefix(s, "```"); found {
		if idx := strings.LastIndex(after, "```"); idx >= 0 {
			after = after[:idx]
		}
		return strings.TrimSpace(after)
	}

	return s
}
