package gemini

import (
	"encoding/json"
	"strings"
)

// SalvageJSON digs a JSON array or object out of free-form model output.
// Grounded responses arrive wrapped in prose and markdown fences, so the
// text is cleaned up and bracket-matched before parsing. A false return
// means "no data", never an error: batch operations degrade to an empty
// result when the model produced unusable text.
func SalvageJSON(raw string, v any) bool {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return false
	}

	cleaned = stripFences(cleaned)

	// Prefer the embedded array, then the embedded object, then the text
	// as a whole.
	for _, candidate := range []string{span(cleaned, "[", "]"), span(cleaned, "{", "}"), cleaned} {
		if candidate == "" {
			continue
		}
		if json.Unmarshal([]byte(candidate), v) == nil {
			return true
		}
	}
	return false
}

func stripFences(s string) string {
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// span returns the widest substring from the first opening bracket to the
// last closing bracket, or "" when no such span exists.
func span(s, opening, closing string) string {
	start := strings.Index(s, opening)
	end := strings.LastIndex(s, closing)
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
