package params

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>?`)

// SanitizeValue strips markup and control characters from a raw parameter
// value. Filter values end up in rendered attributes and query constraints,
// so script content is removed rather than escaped.
func SanitizeValue(raw string) string {
	cleaned := tagPattern.ReplaceAllString(raw, "")
	cleaned = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, cleaned)
	return strings.TrimSpace(cleaned)
}

func sanitizeAll(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if cleaned := SanitizeValue(v); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
