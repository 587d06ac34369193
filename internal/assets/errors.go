package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrUnknownSlot indicates a slot value outside the closed set.
	ErrUnknownSlot = errors.New("unknown asset slot")

	// ErrSlotNotOverridable indicates an override was bound to a slot that
	// only has embedded content.
	ErrSlotNotOverridable = errors.New("asset slot cannot be overridden")

	// ErrNoOverride indicates no override file is bound to the slot.
	// Resolver falls back to embedded content on this error.
	ErrNoOverride = errors.New("no override bound")

	// ErrAssetNotFound indicates an embedded resource is missing.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrAssetRead indicates an I/O error occurred while reading an override file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrAssetEncoding indicates an override file is not valid UTF-8.
	ErrAssetEncoding = errors.New("asset is not valid UTF-8")

	// ErrUnknownTheme indicates the highlight theme is not a known chroma style.
	ErrUnknownTheme = errors.New("unknown highlight theme")
)
