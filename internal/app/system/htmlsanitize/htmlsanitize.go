// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe HTML from rich-text fields before they
// are stored. Winery descriptions and wine tasting notes come from a rich
// text editor, so basic formatting is allowed but scripts and event
// handlers are not.
package htmlsanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// The editor emits these beyond what UGC allows.
	p.AllowElements("u", "s", "sub", "sup", "mark")
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
	return p
}()

// Sanitize returns s with unsafe HTML removed. Safe formatting tags
// (p, strong, em, lists, links with http/https hrefs) survive.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeHTML is a convenience wrapper returning template.HTML for the few
// places that re-render stored rich text.
func SanitizeHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}
