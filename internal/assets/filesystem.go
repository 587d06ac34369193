package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// OverrideLoader loads slot content from user-supplied files.
// Implements Loader interface.
type OverrideLoader struct {
	paths map[Slot]string
}

// NewOverrideLoader binds files to slots. Empty paths are ignored.
// Returns ErrUnknownSlot or ErrSlotNotOverridable for invalid bindings.
func NewOverrideLoader(paths map[Slot]string) (*OverrideLoader, error) {
	bound := make(map[Slot]string, len(paths))
	for slot, path := range paths {
		if path == "" {
			continue
		}
		if !slot.Valid() {
			return nil, fmt.Errorf("%w: %v", ErrUnknownSlot, slot)
		}
		if !slot.Overridable() {
			return nil, fmt.Errorf("%w: %s", ErrSlotNotOverridable, slot)
		}
		bound[slot] = path
	}
	return &OverrideLoader{paths: bound}, nil
}

// Path returns the absolute path bound to slot, or "" if none.
func (o *OverrideLoader) Path(slot Slot) string {
	p, ok := o.paths[slot]
	if !ok {
		return ""
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// Load reads the file bound to slot as UTF-8 text.
// Returns ErrNoOverride when no file is bound.
func (o *OverrideLoader) Load(slot Slot) (string, error) {
	if !slot.Valid() {
		return "", fmt.Errorf("%w: %v", ErrUnknownSlot, slot)
	}
	if _, ok := o.paths[slot]; !ok {
		return "", fmt.Errorf("%w: %s", ErrNoOverride, slot)
	}

	path := o.Path(slot)

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s: is a directory", ErrAssetRead, path)
	}

	content, err := os.ReadFile(path) // #nosec G304 -- override path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, path, err)
	}

	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: %s", ErrAssetEncoding, path)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ Loader = (*OverrideLoader)(nil)
