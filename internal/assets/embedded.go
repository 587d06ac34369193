package assets

import (
	"embed"
	"fmt"
	"sync"
)

//go:embed resources/*
var resources embed.FS

// embedded holds every file-backed slot, read once and shared read-only.
var embedded = sync.OnceValue(func() map[Slot]string {
	m := make(map[Slot]string, slotCount)
	for i, info := range slotTable {
		if info.file == "" {
			continue
		}
		if b, err := resources.ReadFile("resources/" + info.file); err == nil {
			m[Slot(i)] = string(b)
		}
	}
	return m
})

// DefaultTheme is the chroma style used for the embedded highlight stylesheet.
const DefaultTheme = "github"

// EmbeddedLoader loads slot content compiled into the binary.
// Implements Loader interface.
type EmbeddedLoader struct {
	theme  string
	server bool
}

// EmbeddedOption configures an EmbeddedLoader.
type EmbeddedOption func(*EmbeddedLoader)

// WithTheme selects the chroma style the highlight stylesheet is derived from.
func WithTheme(name string) EmbeddedOption {
	return func(e *EmbeddedLoader) {
		if name != "" {
			e.theme = name
		}
	}
}

// WithServerHighlight derives the highlight stylesheet for chroma's own
// class names instead of highlight.js class names.
func WithServerHighlight(enabled bool) EmbeddedOption {
	return func(e *EmbeddedLoader) {
		e.server = enabled
	}
}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader(opts ...EmbeddedOption) *EmbeddedLoader {
	e := &EmbeddedLoader{theme: DefaultTheme}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load returns the embedded content of slot.
func (e *EmbeddedLoader) Load(slot Slot) (string, error) {
	if !slot.Valid() {
		return "", fmt.Errorf("%w: %v", ErrUnknownSlot, slot)
	}

	if slot == SlotHighlightCSS {
		return ThemeCSS(e.theme, e.server)
	}

	content, ok := embedded()[slot]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, slot)
	}

	return content, nil
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
