package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// commentPolicy allows only basic inline formatting in comment bodies.
// bluemonday drops event-handler attributes and javascript: URIs outright,
// so everything outside the allow-list is stripped before persistence.
var commentPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "br", "p")
	return p
}()

// SanitizeCommentContent strips all markup from content except the small
// formatting allow-list. Runs server-side on every write, regardless of any
// escaping the client claims to have done.
func SanitizeCommentContent(content string) string {
	return commentPolicy.Sanitize(content)
}

// HasRepeatedRun reports whether any single rune appears at least limit
// times consecutively. Used as the comment spam heuristic.
func HasRepeatedRun(s string, limit int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= limit {
			return true
		}
	}
	return false
}

// TrimContent normalizes comment/title input before validation
func TrimContent(s string) string {
	return strings.TrimSpace(s)
}
