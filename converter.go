package md2html

import (
	"context"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/alnah/go-md2html/internal/assemble"
	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/export"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Renderer = (*pipeline.GoldmarkRenderer)(nil)
	_ pipeline.Renderer = (*pipeline.GomarkdownRenderer)(nil)
)

// Converter turns Markdown into self-contained HTML documents.
// Create with NewConverter(), use Convert() or ConvertFile(), and Close()
// when done if PDF export was used.
//
// Convert and ConvertFile are safe for concurrent use. WritePDF is not.
type Converter struct {
	cfg      converterConfig
	renderer pipeline.Renderer
	exporter *export.Exporter
	logger   zerolog.Logger
}

// NewConverter creates a Converter with default configuration.
// Returns an error if the engine or the highlight theme is unknown.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			engine:    pipeline.EngineGoldmark,
			theme:     assets.DefaultTheme,
			generator: defaultGenerator,
			timeout:   defaultTimeout,
		},
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.renderer == nil {
		engine, err := pipeline.ParseEngine(string(c.cfg.engine))
		if err != nil {
			return nil, convertError(err)
		}
		c.cfg.engine = engine
		if c.renderer, err = pipeline.NewRenderer(engine); err != nil {
			return nil, convertError(err)
		}
	}

	if err := assets.ValidateTheme(c.cfg.theme); err != nil {
		return nil, convertError(err)
	}

	c.exporter = export.New(c.cfg.timeout, export.WithLogger(c.logger))

	return c, nil
}

// Convert renders input and assembles the complete document in memory.
// Nothing is written to disk. Recovers from internal panics to prevent
// crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()

	fragment, err := c.render(ctx, input)
	if err != nil {
		return nil, err
	}

	hasCode, hasMath := pipeline.Sniff(fragment, input.NoHighlight, input.NoMath)
	c.logger.Debug().
		Bool("code", hasCode).
		Bool("math", hasMath).
		Int("fragment_bytes", len(fragment)).
		Msg("fragment sniffed")

	server := c.serverHighlight(input)
	bindings, err := c.resolveAssets(input, server)
	if err != nil {
		return nil, err
	}
	if hasMath && bindings.Get(assets.SlotMathJaxJS).Source == assets.SourceEmbedded {
		c.logger.Warn().Msg("math typesetting loads MathJax from its CDN at view time; " +
			"set a local MathJax build as the MathJax asset for offline documents")
	}

	doc := Document{
		Title:           input.Title,
		HasCode:         hasCode,
		HasMath:         hasMath,
		IncludeFonts:    !input.NoFonts,
		ServerHighlight: server,
	}
	plan := buildPlan(&doc, bindings, fragment, c.cfg.generator)

	a := assemble.New(assemble.WithCapacity(estimateSize(fragment, &doc, bindings)))
	out, err := a.Assemble(plan)
	if err != nil {
		return nil, err
	}

	for _, emitted := range doc.Assets {
		c.logger.Debug().
			Str("asset", emitted.Name).
			Str("source", emitted.Source).
			Str("path", emitted.Path).
			Msg("asset bundled")
	}
	c.logger.Debug().
		Int("bytes", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("document assembled")

	return &Result{HTML: out, Document: doc}, nil
}

// render produces the HTML fragment with the post-processing input asks for.
func (c *Converter) render(ctx context.Context, input Input) (string, error) {
	source := pipeline.Preprocess(input.Markdown)

	fragment, err := c.renderer.Render(ctx, source, pipeline.RenderOptions{
		Unsafe:          input.Unsafe,
		ServerHighlight: c.serverHighlight(input),
		Theme:           c.cfg.theme,
	})
	if err != nil {
		return "", convertError(err)
	}

	if input.EmbedImages && input.SourceDir != "" {
		if fragment, err = pipeline.EmbedImages(fragment, input.SourceDir); err != nil {
			return "", fmt.Errorf("%w: embedding images: %v", ErrIO, err)
		}
	}

	if input.Sanitize {
		fragment = pipeline.Sanitize(fragment)
	}

	return fragment, nil
}

// serverHighlight decides whether code is highlighted at render time.
// An explicit ServerHighlight is passed through so engines without support
// report it.
func (c *Converter) serverHighlight(input Input) bool {
	switch {
	case input.NoHighlight:
		return false
	case input.ServerHighlight:
		return true
	case input.ClientHighlight, input.Assets.HighlightJS != "":
		return false
	}
	return pipeline.SupportsServerHighlight(c.renderer)
}

// resolveAssets binds every slot once for this conversion.
func (c *Converter) resolveAssets(input Input, server bool) (*assets.Bindings, error) {
	overrides := map[assets.Slot]string{
		assets.SlotMarkdownCSS:  input.Assets.CSS,
		assets.SlotHighlightJS:  input.Assets.HighlightJS,
		assets.SlotHighlightCSS: input.Assets.HighlightCSS,
		assets.SlotMathJaxJS:    input.Assets.MathJaxJS,
	}

	resolver, err := assets.NewResolver(overrides,
		assets.WithTheme(c.cfg.theme),
		assets.WithServerHighlight(server),
	)
	if err != nil {
		return nil, convertError(err)
	}

	bindings, err := resolver.Resolve()
	if err != nil {
		return nil, convertError(err)
	}
	return bindings, nil
}

// estimateSize sizes the output buffer: the fragment plus every bundled
// asset, with slack for tags.
func estimateSize(fragment string, doc *Document, bindings *assets.Bindings) int {
	n := len(fragment) + len(doc.Title) + 512
	for _, slot := range assets.Slots() {
		n += len(bindings.Get(slot).Content)
	}
	return n
}

// FileInput names the files for ConvertFile. Render switches come from Input;
// its Markdown, Title and SourceDir fields are filled from the files.
type FileInput struct {
	PathRequest
	Input
}

// FileResult is the output of ConvertFile.
type FileResult struct {
	Paths    *Paths
	Document Document
	Size     int
}

// ConvertFile resolves paths, reads the Markdown file, assembles the
// document, and writes it. The output is written once, after assembly
// completes, through a temporary file and a rename; on any error, or if ctx
// is done before the write, the destination is left untouched.
func (c *Converter) ConvertFile(ctx context.Context, in FileInput) (*FileResult, error) {
	paths, err := ResolvePaths(in.PathRequest)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(paths.Markdown) // #nosec G304 -- user-provided input
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrIO, paths.Markdown, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrEncoding, paths.Markdown)
	}

	input := in.Input
	input.Markdown = string(data)
	input.Title = paths.Title
	input.SourceDir = paths.SourceDir

	result, err := c.Convert(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", paths.Markdown, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := fileutil.WriteAtomic(paths.HTML, result.HTML, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, paths.HTML, err)
	}
	c.logger.Debug().Str("path", paths.HTML).Int("bytes", len(result.HTML)).Msg("html written")

	return &FileResult{Paths: paths, Document: result.Document, Size: len(result.HTML)}, nil
}

// WritePDF prints the HTML file at htmlPath to pdfPath with headless Chrome.
// The browser starts on first use and stays up until Close.
func (c *Converter) WritePDF(ctx context.Context, htmlPath, pdfPath string) error {
	if err := c.exporter.WriteFile(ctx, htmlPath, pdfPath); err != nil {
		err = convertError(err)
		return fmt.Errorf("exporting %s: %w", pdfPath, err)
	}
	c.logger.Debug().Str("path", pdfPath).Msg("pdf written")
	return nil
}

// PDF prints an assembled document to PDF bytes without touching the caller's
// files. The page is loaded from a temporary file, so relative image paths do
// not resolve; convert with EmbedImages when the document has local images.
func (c *Converter) PDF(ctx context.Context, html []byte) ([]byte, error) {
	pdf, err := c.exporter.ToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("exporting pdf: %w", convertError(err))
	}
	return pdf, nil
}

// Close releases the browser started by WritePDF or PDF, if any.
func (c *Converter) Close() error {
	if c.exporter != nil {
		return c.exporter.Close()
	}
	return nil
}
