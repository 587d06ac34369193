package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a markdown file to a self-contained HTML file")
	fmt.Fprintln(w, "  doctor     Check the system for PDF export")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html convert <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a markdown file to one HTML file with its styles and scripts inlined.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --html-path <path>       Output HTML file (default: input with .html)")
	fmt.Fprintln(w, "  -t, --title <s>              Document title (default: input file name)")
	fmt.Fprintln(w, "  -f, --force                  Overwrite existing output files")
	fmt.Fprintln(w, "      --pdf <path>             Also print the HTML to PDF (requires Chrome)")
	fmt.Fprintln(w, "      --timeout <d>            PDF export timeout (default: 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --engine <s>             Markdown engine: goldmark, gomarkdown")
	fmt.Fprintln(w, "      --no-safe                Pass raw HTML through (dangerous tags filtered)")
	fmt.Fprintln(w, "      --sanitize               Sanitize the rendered HTML")
	fmt.Fprintln(w, "      --embed-images           Inline relative images as data: URIs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bundles:")
	fmt.Fprintln(w, "      --no-highlight           Never bundle syntax highlighting")
	fmt.Fprintln(w, "      --server-highlight       Require highlighting at render time (goldmark only)")
	fmt.Fprintln(w, "      --client-highlight       Bundle the in-browser highlighter instead of chroma")
	fmt.Fprintln(w, "      --highlight-theme <s>    Chroma style (default: github)")
	fmt.Fprintln(w, "      --no-mathjax             Never bundle MathJax")
	fmt.Fprintln(w, "      --no-cjk-fonts           Never bundle the CJK web fonts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Overrides:")
	fmt.Fprintln(w, "      --css-path <path>            Stylesheet replacing the default")
	fmt.Fprintln(w, "      --highlight-js-path <path>   Highlighter script")
	fmt.Fprintln(w, "      --highlight-css-path <path>  Highlighter stylesheet")
	fmt.Fprintln(w, "      --mathjax-js-path <path>     MathJax script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path (env: MD2HTML_CONFIG)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show debug events")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that Chrome is available for --pdf.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
