package assets

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// hljsRules maps highlight.js class selectors to the chroma token whose
// style they take.
var hljsRules = []struct {
	selector string
	token    chroma.TokenType
}{
	{".hljs-keyword,.hljs-selector-tag", chroma.Keyword},
	{".hljs-literal", chroma.KeywordConstant},
	{".hljs-type", chroma.KeywordType},
	{".hljs-string", chroma.LiteralString},
	{".hljs-regexp", chroma.LiteralStringRegex},
	{".hljs-number", chroma.LiteralNumber},
	{".hljs-comment,.hljs-quote", chroma.Comment},
	{".hljs-meta", chroma.CommentPreproc},
	{".hljs-title,.hljs-section", chroma.NameFunction},
	{".hljs-title.class_,.hljs-class", chroma.NameClass},
	{".hljs-built_in", chroma.NameBuiltin},
	{".hljs-attr,.hljs-attribute", chroma.NameAttribute},
	{".hljs-variable,.hljs-template-variable", chroma.NameVariable},
	{".hljs-symbol", chroma.LiteralStringSymbol},
	{".hljs-name,.hljs-tag", chroma.NameTag},
	{".hljs-operator", chroma.Operator},
}

// themeCache holds derived stylesheets keyed by theme and mode.
var themeCache sync.Map

// ThemeCSS returns the highlight stylesheet derived from the named chroma
// style. With server false the rules target highlight.js class names; with
// server true they target chroma's own class names. Results are computed once
// per theme and mode.
func ThemeCSS(name string, server bool) (string, error) {
	style, err := lookupTheme(name)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%t", style.Name, server)
	if css, ok := themeCache.Load(key); ok {
		return css.(string), nil
	}

	var css string
	if server {
		var b strings.Builder
		if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&b, style); err != nil {
			return "", fmt.Errorf("writing %s theme: %w", style.Name, err)
		}
		css = b.String()
	} else {
		css = hljsCSS(style)
	}

	actual, _ := themeCache.LoadOrStore(key, css)
	return actual.(string), nil
}

// Themes returns the names of every available highlight theme, sorted.
func Themes() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateTheme checks that name is a known chroma style. Empty selects the
// default theme and is valid.
func ValidateTheme(name string) error {
	_, err := lookupTheme(name)
	return err
}

func lookupTheme(name string) (*chroma.Style, error) {
	if name == "" {
		name = DefaultTheme
	}
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return style, nil
}

func hljsCSS(style *chroma.Style) string {
	var b strings.Builder

	bg := style.Get(chroma.Background)
	b.WriteString(".hljs{display:block;overflow-x:auto")
	if bg.Colour.IsSet() {
		b.WriteString(";color:" + bg.Colour.String())
	}
	if bg.Background.IsSet() {
		b.WriteString(";background:" + bg.Background.String())
	}
	b.WriteString("}\n")

	for _, rule := range hljsRules {
		writeRule(&b, rule.selector, style.Get(rule.token))
	}

	b.WriteString(".hljs-emphasis{font-style:italic}\n")
	b.WriteString(".hljs-strong{font-weight:bold}\n")
	return b.String()
}

func writeRule(b *strings.Builder, selector string, e chroma.StyleEntry) {
	var decls []string
	if e.Colour.IsSet() {
		decls = append(decls, "color:"+e.Colour.String())
	}
	if e.Bold == chroma.Yes {
		decls = append(decls, "font-weight:bold")
	}
	if e.Italic == chroma.Yes {
		decls = append(decls, "font-style:italic")
	}
	if e.Underline == chroma.Yes {
		decls = append(decls, "text-decoration:underline")
	}
	if len(decls) == 0 {
		return
	}
	b.WriteString(selector + "{" + strings.Join(decls, ";") + "}\n")
}
