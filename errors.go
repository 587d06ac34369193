package md2html

import (
	"context"
	"errors"

	"github.com/alnah/go-md2html/internal/assemble"
	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/export"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Input and output paths.
	ErrInput        = errors.New("invalid markdown input")
	ErrOutputExists = errors.New("output file already exists")

	// Reading and writing files.
	ErrIO       = errors.New("I/O error")
	ErrEncoding = errors.New("file is not valid UTF-8")

	// Document assembly.
	ErrStructural           = assemble.ErrStructural
	ErrUnterminatedDocument = assemble.ErrUnterminatedDocument

	// Rendering.
	ErrRender            = errors.New("markdown rendering failed")
	ErrUnknownEngine     = errors.New("unknown markdown engine")
	ErrUnsupportedEngine = errors.New("option not supported by engine")
	ErrUnknownTheme      = errors.New("unknown highlight theme")

	// PDF export.
	ErrBrowser = errors.New("browser error")
)

// convertError maps internal package errors to public sentinels.
// Errors that already match a public sentinel are returned unchanged.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrAssetRead):
		return wrapError(ErrIO, err)
	case errors.Is(err, assets.ErrAssetEncoding):
		return wrapError(ErrEncoding, err)
	case errors.Is(err, assets.ErrUnknownTheme):
		return wrapError(ErrUnknownTheme, err)
	case errors.Is(err, pipeline.ErrRender):
		return wrapError(ErrRender, err)
	case errors.Is(err, pipeline.ErrUnknownEngine):
		return wrapError(ErrUnknownEngine, err)
	case errors.Is(err, pipeline.ErrUnsupportedEngine):
		return wrapError(ErrUnsupportedEngine, err)
	case errors.Is(err, export.ErrBrowserConnect),
		errors.Is(err, export.ErrPageCreate),
		errors.Is(err, export.ErrPageLoad),
		errors.Is(err, export.ErrPDFGeneration):
		return wrapError(ErrBrowser, err)
	default:
		return err
	}
}

// wrapError creates an error that matches sentinel via errors.Is while
// keeping the original message.
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}

// Is keeps a deadline in the original error visible, so callers can tell a
// timeout from other failures.
func (e *wrappedError) Is(target error) bool {
	return target == context.DeadlineExceeded && errors.Is(e.original, target)
}
