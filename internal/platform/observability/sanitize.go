package observability

import "unicode"

// sanitizeString drops control runes that would corrupt a structured log
// line and truncates to the given rune limit.
func sanitizeString(value string, limit int) string {
	if limit <= 0 {
		limit = 256
	}
	kept := make([]rune, 0, len(value))
	for _, r := range value {
		switch {
		case r == '\n', r == '\r', r == '\t':
			kept = append(kept, r)
		case unicode.IsControl(r):
		default:
			kept = append(kept, r)
		}
		if len(kept) == limit {
			break
		}
	}
	return string(kept)
}

// SanitizeRoute normalises a route pattern for log fields.
func SanitizeRoute(route string) string {
	if route == "" {
		return "/"
	}
	return sanitizeString(route, 180)
}

// SanitizeMethod bounds the method string.
func SanitizeMethod(method string) string {
	return sanitizeString(method, 10)
}

// SanitizeSessionID bounds session identifiers before they hit logs.
func SanitizeSessionID(id string) string {
	return sanitizeString(id, 64)
}
