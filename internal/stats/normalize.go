package stats

import "strings"

// UnknownName is substituted when a player record carries no usable
// name at all.
const UnknownName = "Unknown"

var namePlaceholders = map[string]struct{}{
	"not applicable": {},
	"n/a":            {},
	"na":             {},
	"not available":  {},
}

// CleanName trims a raw name and collapses placeholder markers to the
// empty string. The original casing of real names is preserved.
// Idempotent: CleanName(CleanName(x)) == CleanName(x).
func CleanName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if _, placeholder := namePlaceholders[strings.ToLower(trimmed)]; placeholder {
		return ""
	}
	return trimmed
}

// FullName joins the cleaned given and family names with one space
// and falls back to UnknownName when nothing remains.
func FullName(given, family string) string {
	full := strings.TrimSpace(CleanName(given) + " " + CleanName(family))
	if full == "" {
		return UnknownName
	}
	return full
}
