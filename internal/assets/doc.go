// Package assets provides the stylesheets and scripts bundled into converted
// documents.
//
// # Slots
//
// Every bundled resource occupies a Slot. The set is closed: the base
// stylesheet, two CJK font stylesheets, the highlight script and stylesheet,
// the highlight bootstrap, the MathJax config and script, and the webfont
// loader. A slot knows whether it holds a stylesheet or a script, which
// decides the escape context of user-supplied content.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader  - compiled-in resources (go:embed) and the
//	    │                     highlight theme derived from chroma
//	    ├── OverrideLoader  - user files bound to individual slots
//	    └── Resolver        - binds each slot once, override first
//
// Resolver reads every override eagerly, so a bad path is reported even when
// the slot is never emitted. Override content must be valid UTF-8.
//
// # Sources
//
// A Binding records where a slot's content came from. Embedded content is
// trusted and written as-is; Override content is escaped for the slot's
// context by the caller.
package assets
