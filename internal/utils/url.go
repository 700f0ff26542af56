package utils

import "strings"

// inlineImageThreshold is the length beyond which a "URL" is assumed to be
// a pasted base64 image rather than a link.  Inline payloads of that size
// blow up the persisted event list, so they are rejected at validation.
const inlineImageThreshold = 5000

// LooksLikeInlineImage reports whether s is a pasted image payload instead
// of a real link: very long and either a data URI or missing an http
// scheme entirely.
func LooksLikeInlineImage(s string) bool {
	if len(s) <= inlineImageThreshold {
		return false
	}
	return strings.Contains(s, "data:image") || !strings.HasPrefix(s, "http")
}

// NormalizeURL prepends https:// when the value carries no scheme, so that
// hand-typed links like "cdn.example.com/flyer.jpg" still render.  Empty
// strings and data URIs pass through untouched.
func NormalizeURL(u string) string {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "data:") {
		return u
	}
	return "https://" + u
}
