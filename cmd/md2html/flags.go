package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds output path flags.
type outputFlags struct {
	html  string
	pdf   string
	title string
	force bool
}

// renderFlags holds Markdown rendering flags.
type renderFlags struct {
	engine          string
	noSafe          bool
	sanitize        bool
	embedImages     bool
	noHighlight     bool
	serverHighlight bool
	clientHighlight bool
	theme           string
	noMath          bool
	noFonts         bool
}

// assetFlags holds override file flags.
type assetFlags struct {
	css          string
	highlightJS  string
	highlightCSS string
	mathJaxJS    string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  outputFlags
	render  renderFlags
	assets  assetFlags
	timeout string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug events")
}

// addOutputFlags adds output path flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.html, "html-path", "o", "", "output HTML file (default: input with .html)")
	fs.StringVar(&f.pdf, "pdf", "", "also print the HTML to this PDF file")
	fs.StringVarP(&f.title, "title", "t", "", "document title (default: input file name)")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite existing output files")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.engine, "engine", "", "markdown engine: goldmark, gomarkdown")
	fs.BoolVar(&f.noSafe, "no-safe", false, "pass raw HTML through (tag-filtered)")
	fs.BoolVar(&f.sanitize, "sanitize", false, "sanitize the rendered HTML")
	fs.BoolVar(&f.embedImages, "embed-images", false, "inline relative images as data: URIs")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "never bundle syntax highlighting")
	fs.BoolVar(&f.serverHighlight, "server-highlight", false, "require highlighting at render time (goldmark only)")
	fs.BoolVar(&f.clientHighlight, "client-highlight", false, "bundle the in-browser highlighter instead of chroma")
	fs.StringVar(&f.theme, "highlight-theme", "", "chroma style for highlighting")
	fs.BoolVar(&f.noMath, "no-mathjax", false, "never bundle MathJax")
	fs.BoolVar(&f.noFonts, "no-cjk-fonts", false, "never bundle the CJK web fonts")
}

// addAssetFlags adds override file flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.css, "css-path", "", "stylesheet replacing the default")
	fs.StringVar(&f.highlightJS, "highlight-js-path", "", "highlighter script replacing the default")
	fs.StringVar(&f.highlightCSS, "highlight-css-path", "", "highlighter stylesheet replacing the default")
	fs.StringVar(&f.mathJaxJS, "mathjax-js-path", "", "MathJax script replacing the default")
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage goes to w on error or --help.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &convertFlags{}

	fs.StringVar(&f.timeout, "timeout", "", "PDF export timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addRenderFlags(fs, &f.render)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
