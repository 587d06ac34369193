// Package md2html converts Markdown documents into single, self-contained,
// minified HTML files.
//
// # Quick Start
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown: "# Hello\n\nWorld",
//	    Title:    "Hello",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello.html", result.HTML, 0644)
//
// ConvertFile does the same from a file on disk, deriving the title and the
// output path and refusing to overwrite existing files unless forced.
//
// # Conversion Pipeline
//
//  1. Markdown rendering (goldmark or gomarkdown, GFM extensions, tag filter)
//  2. Optional image inlining and sanitizing of the HTML fragment
//  3. Content sniffing: fenced code selects the highlighter, "#{{" selects MathJax
//  4. Asset resolution: embedded defaults or user override files
//  5. Assembly: the emission plan is fed to a validating, minifying builder
//  6. One atomic write of the finished document
//
// # Trust
//
// Embedded assets and the rendered fragment are written as-is. Override
// files and the title are escaped for the element they land in: a CSS
// override cannot close its <style>, a script override cannot close its
// <script>, and the title is plain text.
//
// # Configuration
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithEngine("gomarkdown"),
//	    md2html.WithHighlightTheme("monokai"),
//	    md2html.WithLogger(logger),
//	)
//
// Per-conversion switches are fields of Input:
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown:    content,
//	    NoMath:      true,
//	    EmbedImages: true,
//	    SourceDir:   "/path/to/markdown",
//	    Assets:      md2html.AssetPaths{CSS: "custom.css"},
//	})
//
// # PDF Export
//
// WritePDF prints a written HTML file to PDF with headless Chrome (go-rod).
// Call Close to shut the browser down.
//
// # Errors
//
// Errors match the package sentinels with errors.Is: ErrInput,
// ErrOutputExists, ErrIO, ErrEncoding, ErrStructural,
// ErrUnterminatedDocument, ErrRender, ErrUnknownEngine,
// ErrUnsupportedEngine, ErrUnknownTheme and ErrBrowser.
package md2html
