// ABOUTME: JSON extraction helper for oracle responses
// ABOUTME: Recovers the object body when a completion wraps JSON in prose or fences
package util

import "strings"

// ExtractJSON returns the outermost {...} span of text, or "{}" when no
// object is present. Oracle responses in JSON mode are already bare
// objects; this guards against fenced or prefixed output.
func ExtractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start >= end {
		return "{}"
	}
	return text[start : end+1]
}
