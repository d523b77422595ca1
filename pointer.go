package shapecheck

import "strings"

// JSON Pointer construction for issue paths (RFC 6901 escaping).

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointerToken(s string) string {
	return jsonPointerEscaper.Replace(s)
}

func joinPointer(base, token string) string {
	return base + "/" + escapePointerToken(token)
}

// normalizePath renders the document root as "/" instead of the empty
// internal base.
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
