package pipeline

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// sanitizePolicy extends the user-generated-content policy with the markup
// the renderers emit: language and highlight classes, task-list checkboxes
// and footnote roles.
var sanitizePolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()

	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).
		OnElements("code", "pre", "span", "div", "a", "sup", "li", "ol", "section", "hr")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").Matching(regexp.MustCompile(`^(|checked|disabled)$`)).OnElements("input")
	p.AllowAttrs("role").Matching(regexp.MustCompile(`^doc-[a-z]+$`)).OnElements("a", "div", "section", "sup")

	return p
})

// Sanitize strips elements and attributes outside the sanitize policy from a
// rendered fragment. Safe for concurrent use.
func Sanitize(fragment string) string {
	return sanitizePolicy().Sanitize(fragment)
}
