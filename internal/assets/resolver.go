package assets

import (
	"errors"
	"fmt"
)

// Source records where a slot's content came from.
type Source int

const (
	// SourceEmbedded is compiled-in content, written without escaping.
	SourceEmbedded Source = iota
	// SourceOverride is a user file, escaped for the slot's kind.
	SourceOverride
)

func (s Source) String() string {
	if s == SourceOverride {
		return "override"
	}
	return "embedded"
}

// Binding is the content bound to one slot for one run.
type Binding struct {
	Slot    Slot
	Source  Source
	Path    string // absolute override path; empty for embedded content
	Content string
}

// Bindings holds one Binding per slot. It is read-only once resolved.
type Bindings struct {
	slots [slotCount]Binding
}

// Get returns the binding for slot. Unknown slots return the zero Binding.
func (b *Bindings) Get(slot Slot) Binding {
	if !slot.Valid() {
		return Binding{}
	}
	return b.slots[slot]
}

// Resolver binds every slot to either its override file or its embedded
// content. When an override is bound it always wins; read and encoding
// errors are not masked by the embedded fallback.
type Resolver struct {
	custom   *OverrideLoader
	embedded Loader
}

// NewResolver creates a Resolver for the given override paths.
// Returns an error if an override is bound to an unknown or fixed slot, or
// if the highlight theme is unknown.
func NewResolver(overrides map[Slot]string, opts ...EmbeddedOption) (*Resolver, error) {
	custom, err := NewOverrideLoader(overrides)
	if err != nil {
		return nil, err
	}

	embedded := NewEmbeddedLoader(opts...)
	if err := ValidateTheme(embedded.theme); err != nil {
		return nil, err
	}

	return &Resolver{custom: custom, embedded: embedded}, nil
}

// Load returns the content for slot, trying the override first.
func (r *Resolver) Load(slot Slot) (string, error) {
	content, _, err := r.loadWithFallback(slot)
	return content, err
}

// Resolve reads every slot once and returns the bindings.
func (r *Resolver) Resolve() (*Bindings, error) {
	b := &Bindings{}
	for _, slot := range Slots() {
		content, source, err := r.loadWithFallback(slot)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", slot, err)
		}
		binding := Binding{Slot: slot, Source: source, Content: content}
		if source == SourceOverride {
			binding.Path = r.custom.Path(slot)
		}
		b.slots[slot] = binding
	}
	return b, nil
}

// HasOverride returns true if a file is bound to slot.
func (r *Resolver) HasOverride(slot Slot) bool {
	return r.custom.Path(slot) != ""
}

// loadWithFallback implements the override-first, fallback-to-embedded logic.
func (r *Resolver) loadWithFallback(slot Slot) (string, Source, error) {
	content, err := r.custom.Load(slot)
	if err == nil {
		return content, SourceOverride, nil
	}

	// Only fall back when nothing is bound, not on read or encoding errors
	if !errors.Is(err, ErrNoOverride) {
		return "", SourceOverride, err
	}

	content, err = r.embedded.Load(slot)
	if err != nil {
		return "", SourceEmbedded, err
	}
	return content, SourceEmbedded, nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
