package md2html_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html"
)

// Example converts Markdown in memory.
func Example() {
	conv, err := md2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), md2html.Input{
		Markdown: "# Hello World\n\nThis is a test.",
		Title:    "Hello",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	html := string(result.HTML)
	fmt.Println(strings.HasPrefix(html, "<!DOCTYPE html><html><head>"))
	fmt.Println(strings.Contains(html, `<h1 id="hello-world">Hello World</h1>`))
	// Output:
	// true
	// true
}

// Example_document shows which assets a document pulls in.
func Example_document() {
	conv, err := md2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), md2html.Input{
		Markdown: "```go\nfmt.Println(1)\n```\n",
		NoFonts:  true,
		NoMath:   true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, a := range result.Document.Assets {
		fmt.Println(a.Name, a.Source)
	}
	// Output:
	// css embedded
	// highlight-css embedded
}

// Example_clientHighlight ships the in-browser highlighter instead of
// highlighting at render time.
func Example_clientHighlight() {
	conv, err := md2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), md2html.Input{
		Markdown:        "```go\nfmt.Println(1)\n```\n",
		ClientHighlight: true,
		NoFonts:         true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, a := range result.Document.Assets {
		fmt.Println(a.Name)
	}
	// Output:
	// css
	// highlight-js
	// highlight-css
	// highlight-init
}

// Example_serverHighlight requires render-time highlighting with a chosen
// chroma theme.
func Example_serverHighlight() {
	conv, err := md2html.NewConverter(md2html.WithHighlightTheme("monokai"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), md2html.Input{
		Markdown:        "```go\nfunc main() {}\n```\n",
		ServerHighlight: true,
		NoFonts:         true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(strings.Contains(string(result.HTML), `class="chroma"`))
	fmt.Println(len(result.Document.Assets))
	// Output:
	// true
	// 2
}

// ExampleConverter_ConvertFile writes notes.html next to notes.md.
func ExampleConverter_ConvertFile() {
	dir, err := os.MkdirTemp("", "md2html-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	mdPath := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(mdPath, []byte("# Notes\n"), 0o644); err != nil {
		fmt.Println("error:", err)
		return
	}

	conv, err := md2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	res, err := conv.ConvertFile(context.Background(), md2html.FileInput{
		PathRequest: md2html.PathRequest{MarkdownPath: mdPath},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(filepath.Base(res.Paths.HTML), res.Paths.Title)

	// A second run refuses to overwrite without Force.
	_, err = conv.ConvertFile(context.Background(), md2html.FileInput{
		PathRequest: md2html.PathRequest{MarkdownPath: mdPath},
	})
	fmt.Println(errors.Is(err, md2html.ErrOutputExists))
	// Output:
	// notes.html notes
	// true
}
