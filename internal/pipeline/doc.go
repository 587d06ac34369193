// Package pipeline implements the Markdown-to-fragment stages of a
// conversion.
//
// This package handles everything between reading the source and assembling
// the final document:
//   - source normalization (byte order mark, line endings)
//   - Markdown to HTML rendering via goldmark or gomarkdown
//   - the GFM tag filter
//   - optional sanitizing with bluemonday
//   - optional inlining of local images as data: URIs
//   - content sniffing that decides which asset bundles a document needs
//
// Document assembly is handled separately by internal/assemble. This keeps
// the pipeline focused on fragment content, while the assembler owns
// structure, escaping and minification.
package pipeline
