package md2html

// Input is one Markdown document and the switches for its conversion.
// The zero value converts in safe mode with every optional bundle allowed.
// Code is highlighted at render time when the engine supports it, unless
// ClientHighlight is set or Assets.HighlightJS names a script.
type Input struct {
	Markdown string // Markdown source
	Title    string // Document title, escaped into <title>

	// SourceDir is the directory relative image paths resolve against.
	// Only used with EmbedImages.
	SourceDir string

	Unsafe          bool // Pass raw HTML through (still tag-filtered)
	NoHighlight     bool // Never bundle the highlighter
	NoMath          bool // Never bundle MathJax
	NoFonts         bool // Never bundle the CJK font stylesheets and loader
	ServerHighlight bool // Require render-time highlighting; fails on engines without it
	ClientHighlight bool // Bundle the in-browser highlighter instead of highlighting at render time
	Sanitize        bool // Run the fragment through the HTML sanitizer
	EmbedImages     bool // Inline relative images as data: URIs

	Assets AssetPaths // Override files; empty fields keep the embedded defaults
}

// AssetPaths names override files for the overridable assets.
type AssetPaths struct {
	CSS          string // Base stylesheet
	HighlightJS  string // Highlighter script
	HighlightCSS string // Highlighter stylesheet
	MathJaxJS    string // MathJax script
}

// Document describes what was assembled.
type Document struct {
	Title           string
	HasCode         bool // Fragment contains a fenced code block
	HasMath         bool // Fragment contains a math opener
	IncludeFonts    bool
	ServerHighlight bool
	Assets          []EmittedAsset // In emission order
}

// EmittedAsset records one bundled asset and where its content came from.
type EmittedAsset struct {
	Name   string // Slot name, e.g. "css", "highlight-js"
	Source string // "embedded" or "override"
	Path   string // Override file; empty for embedded content
}

// Result is the output of one conversion.
type Result struct {
	HTML     []byte // Complete minified document
	Document Document
}
