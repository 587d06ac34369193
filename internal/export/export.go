// Package export prints assembled HTML documents to PDF with headless Chrome.
//
// The Exporter writes the HTML to a temporary file and hands its path to a
// Renderer. The production Renderer drives Chrome through go-rod and is
// started lazily on first use; tests substitute a fake.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// Sentinel errors for PDF export.
var (
	ErrBrowserConnect = errors.New("browser connection failed")
	ErrPageCreate     = errors.New("page creation failed")
	ErrPageLoad       = errors.New("page load failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)

// PageOptions sets the paper size and margins, in inches.
type PageOptions struct {
	Width  float64
	Height float64
	Margin float64
}

// Letter is US Letter with 0.5 inch margins.
var Letter = PageOptions{Width: 8.5, Height: 11, Margin: 0.5}

// Renderer prints a local HTML file to PDF bytes.
type Renderer interface {
	RenderFromFile(ctx context.Context, filePath string, page PageOptions) ([]byte, error)
	Close() error
}

// Exporter converts HTML documents to PDF.
type Exporter struct {
	renderer Renderer
	page     PageOptions
	logger   zerolog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithRenderer replaces the Chrome renderer.
func WithRenderer(r Renderer) Option {
	return func(e *Exporter) {
		e.renderer = r
	}
}

// WithPage sets the paper size and margins.
func WithPage(p PageOptions) Option {
	return func(e *Exporter) {
		e.page = p
	}
}

// WithLogger sets the logger for browser lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// New creates an Exporter. The browser is not started until the first export.
func New(timeout time.Duration, opts ...Option) *Exporter {
	e := &Exporter{page: Letter, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.renderer == nil {
		e.renderer = newRodRenderer(timeout, e.logger)
	}
	return e
}

// ToPDF prints an HTML document to PDF bytes.
func (e *Exporter) ToPDF(ctx context.Context, html []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return e.ExportFile(ctx, tmpPath)
}

// ExportFile prints the HTML file at path to PDF bytes.
func (e *Exporter) ExportFile(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	pdf, err := e.renderer.RenderFromFile(ctx, path, e.page)
	if err != nil {
		return nil, err
	}
	e.logger.Debug().
		Str("source", path).
		Int("bytes", len(pdf)).
		Dur("elapsed", time.Since(start)).
		Msg("pdf rendered")
	return pdf, nil
}

// WriteFile prints the HTML file at htmlPath and writes the PDF to pdfPath.
func (e *Exporter) WriteFile(ctx context.Context, htmlPath, pdfPath string) error {
	pdf, err := e.ExportFile(ctx, htmlPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fileutil.WriteAtomic(pdfPath, pdf, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", pdfPath, err)
	}
	return nil
}

// Close releases browser resources.
func (e *Exporter) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}
