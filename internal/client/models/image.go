package models

import "strings"

// ImageURL resolves a stored image reference against base. Absolute http(s)
// URLs and "/"-rooted paths are returned unchanged; other references are
// joined to base. A nil or empty reference yields "".
func ImageURL(base string, ref *string) string {
	if ref == nil || *ref == "" {
		return ""
	}
	r := *ref
	if strings.HasPrefix(r, "http://") || strings.HasPrefix(r, "https://") || strings.HasPrefix(r, "/") {
		return r
	}
	if base == "" {
		return "/" + r
	}
	return strings.TrimRight(base, "/") + "/" + r
}
