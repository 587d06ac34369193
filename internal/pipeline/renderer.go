package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for rendering.
var (
	// ErrRender indicates the Markdown engine failed.
	ErrRender = errors.New("markdown rendering failed")

	// ErrUnknownEngine indicates the engine name is not recognized.
	ErrUnknownEngine = errors.New("unknown markdown engine")

	// ErrUnsupportedEngine indicates the engine cannot honour an option.
	ErrUnsupportedEngine = errors.New("option not supported by engine")
)

// Engine names a Markdown library.
type Engine string

const (
	EngineGoldmark   Engine = "goldmark"
	EngineGomarkdown Engine = "gomarkdown"
)

// Engines lists the supported engines; the first is the default.
var Engines = []Engine{EngineGoldmark, EngineGomarkdown}

// ParseEngine returns the engine for name. Empty selects goldmark.
func ParseEngine(name string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(name))) {
	case "", EngineGoldmark:
		return EngineGoldmark, nil
	case EngineGomarkdown:
		return EngineGomarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q (want goldmark or gomarkdown)", ErrUnknownEngine, name)
	}
}

// RenderOptions controls a single render.
type RenderOptions struct {
	// Unsafe passes raw HTML through instead of omitting it.
	Unsafe bool
	// ServerHighlight renders code blocks with chroma classes.
	ServerHighlight bool
	// Theme is the chroma style for server highlighting.
	Theme string
}

// Renderer turns Markdown source into an HTML fragment.
//
// Every engine enables autolinks, description lists, footnotes,
// strikethrough, superscript, tables, task lists where supported, and hard
// line breaks. The GFM tag filter is applied to the result.
type Renderer interface {
	Render(ctx context.Context, source string, opts RenderOptions) (string, error)
}

// ServerHighlighter is implemented by renderers that honour
// RenderOptions.ServerHighlight. Renderers without it get the bundled
// in-browser highlighter.
type ServerHighlighter interface {
	SupportsServerHighlight() bool
}

// SupportsServerHighlight reports whether r can highlight code at render time.
func SupportsServerHighlight(r Renderer) bool {
	h, ok := r.(ServerHighlighter)
	return ok && h.SupportsServerHighlight()
}

// NewRenderer returns the renderer for engine.
func NewRenderer(engine Engine) (Renderer, error) {
	switch engine {
	case "", EngineGoldmark:
		return NewGoldmarkRenderer(), nil
	case EngineGomarkdown:
		return NewGomarkdownRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}
