package md2html

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// markdownExts are the accepted input extensions, compared case-insensitively.
var markdownExts = []string{".md", ".markdown"}

// PathRequest holds the user's path choices. Empty fields take defaults.
type PathRequest struct {
	MarkdownPath string // Required
	HTMLPath     string // Default: input with .html extension
	PDFPath      string // Empty: no PDF
	Title        string // Default: input file name without extension
	Force        bool   // Allow replacing existing output files
}

// Paths is the resolved, absolute form of a PathRequest.
type Paths struct {
	Markdown  string
	HTML      string
	PDF       string
	SourceDir string
	Title     string
}

// ResolvePaths validates the input and derives the output path and title.
// It never touches the filesystem beyond stat calls.
//
// Fails with ErrInput if the input is missing, a directory, or lacks a
// Markdown extension; with ErrOutputExists if an output path is taken and
// force is not set, or is taken by something other than a regular file.
func ResolvePaths(req PathRequest) (*Paths, error) {
	if req.MarkdownPath == "" {
		return nil, fmt.Errorf("%w: no markdown file given", ErrInput)
	}

	mdPath, err := filepath.Abs(req.MarkdownPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInput, req.MarkdownPath, err)
	}

	info, err := os.Stat(mdPath)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInput, mdPath)
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, mdPath, err)
	case info.IsDir():
		return nil, fmt.Errorf("%w: %s is a directory", ErrInput, mdPath)
	}

	if !hasMarkdownExt(mdPath) {
		return nil, fmt.Errorf("%w: %s is not a .md or .markdown file", ErrInput, mdPath)
	}

	htmlPath := req.HTMLPath
	if htmlPath == "" {
		htmlPath = fileutil.ReplaceExt(mdPath, ".html")
	}
	if htmlPath, err = filepath.Abs(htmlPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInput, req.HTMLPath, err)
	}
	if err := checkOutput(htmlPath, mdPath, req.Force); err != nil {
		return nil, err
	}

	var pdfPath string
	if req.PDFPath != "" {
		if pdfPath, err = filepath.Abs(req.PDFPath); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInput, req.PDFPath, err)
		}
		if pdfPath == htmlPath {
			return nil, fmt.Errorf("%w: %s is both the HTML and the PDF output", ErrInput, pdfPath)
		}
		if err := checkOutput(pdfPath, mdPath, req.Force); err != nil {
			return nil, err
		}
	}

	title := req.Title
	if title == "" {
		title = fileutil.Stem(mdPath)
	}

	return &Paths{
		Markdown:  mdPath,
		HTML:      htmlPath,
		PDF:       pdfPath,
		SourceDir: filepath.Dir(mdPath),
		Title:     title,
	}, nil
}

// checkOutput enforces the overwrite rules for one output path.
func checkOutput(path, input string, force bool) error {
	if path == input {
		return fmt.Errorf("%w: %s would overwrite the input", ErrOutputExists, path)
	}

	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrOutputExists, path)
	}
	if !force {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	}
	return nil
}

func hasMarkdownExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range markdownExts {
		if ext == want {
			return true
		}
	}
	return false
}
