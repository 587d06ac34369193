package pipeline

import "strings"

// Markers searched for in rendered fragments.
const (
	CodeMarker = "</code></pre>"
	MathMarker = "#{{"
)

// Sniff reports whether a rendered fragment needs the highlighting and math
// bundles.
//
// The test is a plain substring search over the serialized HTML: a fenced
// code block always ends in CodeMarker, and MathMarker opens inline math.
// Marker text that appears elsewhere, for example "#{{" inside a code span,
// still counts.
func Sniff(fragment string, noHighlight, noMath bool) (hasCode, hasMath bool) {
	hasCode = !noHighlight && strings.Contains(fragment, CodeMarker)
	hasMath = !noMath && strings.Contains(fragment, MathMarker)
	return hasCode, hasMath
}
