package md2html

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	engine    pipeline.Engine
	theme     string
	generator string
	timeout   time.Duration
}

// Defaults used when no option overrides them.
const (
	defaultTimeout   = 30 * time.Second
	defaultGenerator = "go-md2html"
)

// WithEngine selects the Markdown engine: "goldmark" (default) or
// "gomarkdown". Unknown names make NewConverter fail with ErrUnknownEngine.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = pipeline.Engine(name)
	}
}

// WithHighlightTheme sets the chroma style used for the default highlight
// stylesheet and for server-side highlighting.
func WithHighlightTheme(name string) Option {
	return func(c *Converter) {
		c.cfg.theme = name
	}
}

// WithGenerator sets the content of the generator meta element,
// e.g. "md2html v1.2.0".
func WithGenerator(s string) Option {
	return func(c *Converter) {
		c.cfg.generator = s
	}
}

// WithLogger sets the logger for debug events. The default discards them.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// WithTimeout sets the page load timeout for PDF export.
// Panics if d is not positive.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// Renderer turns Markdown source into an HTML fragment. Implement it to plug
// in another Markdown library.
type Renderer = pipeline.Renderer

// RenderOptions controls a single render.
type RenderOptions = pipeline.RenderOptions

// WithRenderer replaces the Markdown engine with r. WithEngine is ignored.
func WithRenderer(r Renderer) Option {
	return func(c *Converter) {
		c.renderer = r
	}
}

// DefaultTheme is the highlight theme used when none is configured.
const DefaultTheme = assets.DefaultTheme

// Themes lists the available highlight theme names.
func Themes() []string {
	return assets.Themes()
}

// Engines lists the supported engine names; the first is the default.
func Engines() []string {
	names := make([]string, len(pipeline.Engines))
	for i, e := range pipeline.Engines {
		names[i] = string(e)
	}
	return names
}
