package pipeline

import "strings"

// lineEndings converts \r\n and \r to \n.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Preprocess normalizes Markdown source before rendering: a leading UTF-8
// byte order mark is dropped and line endings become \n.
func Preprocess(source string) string {
	source = strings.TrimPrefix(source, "\uFEFF")
	return lineEndings.Replace(source)
}
