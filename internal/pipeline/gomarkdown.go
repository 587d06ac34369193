package pipeline

import (
	"context"
	"fmt"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// gomarkdownExtensions enables the fixed extension set. MathJax parsing is
// removed so math delimiters reach the page untouched.
const gomarkdownExtensions = (parser.CommonExtensions &^ parser.MathJax) |
	parser.AutoHeadingIDs |
	parser.Autolink |
	parser.DefinitionLists |
	parser.Footnotes |
	parser.HardLineBreak |
	parser.Strikethrough |
	parser.SuperSubscript |
	parser.Tables

// GomarkdownRenderer renders Markdown with gomarkdown. It has no task-list
// extension and no server-side highlighting.
type GomarkdownRenderer struct{}

// NewGomarkdownRenderer creates a GomarkdownRenderer.
func NewGomarkdownRenderer() *GomarkdownRenderer {
	return &GomarkdownRenderer{}
}

// Render converts Markdown source to an HTML fragment.
func (g *GomarkdownRenderer) Render(ctx context.Context, source string, opts RenderOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if opts.ServerHighlight {
		return "", fmt.Errorf("%w: %s has no server-side highlighting", ErrUnsupportedEngine, EngineGomarkdown)
	}

	flags := mdhtml.FlagsNone
	if !opts.Unsafe {
		flags |= mdhtml.SkipHTML | mdhtml.Safelink
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrRender, r)}
			}
		}()

		// Parsers keep state and are not reusable across documents.
		p := parser.NewWithExtensions(gomarkdownExtensions)
		r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: flags})
		out := markdown.ToHTML([]byte(source), p, r)
		done <- result{html: FilterTags(string(out))}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Compile-time interface check.
var _ Renderer = (*GomarkdownRenderer)(nil)
