package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// GoldmarkRenderer renders Markdown with goldmark (pure Go).
// Safe for concurrent use.
type GoldmarkRenderer struct {
	// cache holds one configured goldmark.Markdown per RenderOptions.
	cache sync.Map
}

// NewGoldmarkRenderer creates a GoldmarkRenderer.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	return &GoldmarkRenderer{}
}

// SupportsServerHighlight reports that code blocks can be highlighted at
// render time.
func (g *GoldmarkRenderer) SupportsServerHighlight() bool { return true }

func (g *GoldmarkRenderer) markdown(opts RenderOptions) goldmark.Markdown {
	if md, ok := g.cache.Load(opts); ok {
		return md.(goldmark.Markdown)
	}

	extensions := []goldmark.Extender{
		extension.GFM,            // Tables, strikethrough, autolinks, task lists
		extension.DefinitionList, // Term\n: definition
		extension.Footnote,       // [^1] footnotes
		Superscript,              // ^text^
	}
	if opts.ServerHighlight {
		hl := []highlighting.Option{
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // Classes match the bundled highlight stylesheet
			),
		}
		if opts.Theme != "" {
			hl = append(hl, highlighting.WithStyle(opts.Theme))
		}
		extensions = append(extensions, highlighting.NewHighlighting(hl...))
	}

	rendererOpts := []renderer.Option{
		html.WithHardWraps(), // Treat newlines as <br>
	}
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Anchor links to headings
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)

	actual, _ := g.cache.LoadOrStore(opts, md)
	return actual.(goldmark.Markdown)
}

// Render converts Markdown source to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (g *GoldmarkRenderer) Render(ctx context.Context, source string, opts RenderOptions) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	md := g.markdown(opts)

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := md.Convert([]byte(source), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		done <- result{html: FilterTags(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Compile-time interface check.
var _ Renderer = (*GoldmarkRenderer)(nil)
