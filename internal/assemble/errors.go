package assemble

import "errors"

// Sentinel errors for document assembly.
var (
	// ErrStructural indicates an invalid emission plan: a close that does not
	// match the open element, a tag opened inside raw text, or an escape
	// context that does not match the open element.
	ErrStructural = errors.New("structural error")

	// ErrUnterminatedDocument indicates elements were still open when the
	// buffer was extracted.
	ErrUnterminatedDocument = errors.New("unterminated document")
)
