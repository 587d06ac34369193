package pipeline

import "regexp"

// disallowedTagRe matches the openers and closers of the GFM disallowed raw
// HTML elements.
var disallowedTagRe = regexp.MustCompile(`(?i)<(/?)(title|textarea|style|xmp|iframe|noembed|noframes|script|plaintext)([\s/>])`)

// FilterTags applies the GFM tag filter: the leading "<" of every disallowed
// tag becomes "&lt;" so the browser shows it as text. Escaped text and code
// are unaffected because they no longer contain a literal "<".
func FilterTags(fragment string) string {
	return disallowedTagRe.ReplaceAllString(fragment, "&lt;$1$2$3")
}
