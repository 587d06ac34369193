package export

// Notes:
// - The rod renderer is replaced by fakeRenderer; real Chrome runs only in
//   export_integration_test.go.
// - fileURL's Windows volume branch is not covered on Unix runners.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

type fakeRenderer struct {
	gotPath string
	gotHTML string
	gotPage PageOptions
	pdf     []byte
	err     error
	closed  bool
}

func (f *fakeRenderer) RenderFromFile(_ context.Context, filePath string, page PageOptions) ([]byte, error) {
	f.gotPath = filePath
	f.gotPage = page
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	f.gotHTML = string(data)
	return f.pdf, f.err
}

func (f *fakeRenderer) Close() error {
	f.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// TestExporter_ToPDF
// ---------------------------------------------------------------------------

func TestExporter_ToPDF(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{pdf: []byte("%PDF-1.7")}
	e := New(time.Second, WithRenderer(fake))

	got, err := e.ToPDF(context.Background(), []byte("<!doctype html><p>hi"))
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if string(got) != "%PDF-1.7" {
		t.Errorf("ToPDF() = %q", got)
	}
	if fake.gotHTML != "<!doctype html><p>hi" {
		t.Errorf("renderer saw %q", fake.gotHTML)
	}
	if fake.gotPage != Letter {
		t.Errorf("page = %+v, want Letter", fake.gotPage)
	}
	if _, err := os.Stat(fake.gotPath); !os.IsNotExist(err) {
		t.Errorf("temp file %s not removed", fake.gotPath)
	}
}

func TestExporter_ToPDF_CanceledContext(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{}
	e := New(time.Second, WithRenderer(fake))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.ToPDF(ctx, []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("ToPDF() error = %v, want context.Canceled", err)
	}
	if fake.gotPath != "" {
		t.Error("renderer should not run on a canceled context")
	}
}

func TestExporter_RendererError(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{err: ErrPageLoad}
	e := New(time.Second, WithRenderer(fake))

	if _, err := e.ToPDF(context.Background(), []byte("x")); !errors.Is(err, ErrPageLoad) {
		t.Errorf("ToPDF() error = %v, want ErrPageLoad", err)
	}
}

func TestExporter_WriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "doc.html")
	pdfPath := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(htmlPath, []byte("<p>doc"), 0o644); err != nil {
		t.Fatal(err)
	}

	a4 := PageOptions{Width: 8.27, Height: 11.69, Margin: 0.4}
	fake := &fakeRenderer{pdf: []byte("%PDF")}
	e := New(time.Second, WithRenderer(fake), WithPage(a4))

	if err := e.WriteFile(context.Background(), htmlPath, pdfPath); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if fake.gotPath != htmlPath {
		t.Errorf("renderer path = %q, want %q", fake.gotPath, htmlPath)
	}
	if fake.gotPage != a4 {
		t.Errorf("page = %+v, want %+v", fake.gotPage, a4)
	}
	data, err := os.ReadFile(pdfPath)
	if err != nil || string(data) != "%PDF" {
		t.Errorf("pdf file = %q, %v", data, err)
	}
}

func TestExporter_Close(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{}
	if err := New(time.Second, WithRenderer(fake)).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !fake.closed {
		t.Error("Close() did not close the renderer")
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func TestPrintOptions(t *testing.T) {
	t.Parallel()

	opts := printOptions(Letter)
	if *opts.PaperWidth != 8.5 || *opts.PaperHeight != 11 {
		t.Errorf("paper = %vx%v, want 8.5x11", *opts.PaperWidth, *opts.PaperHeight)
	}
	for _, m := range []*float64{opts.MarginTop, opts.MarginBottom, opts.MarginLeft, opts.MarginRight} {
		if *m != 0.5 {
			t.Errorf("margin = %v, want 0.5", *m)
		}
	}
	if !opts.PrintBackground {
		t.Error("PrintBackground = false, want true")
	}
}

func TestFileURL(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	got, err := fileURL("/tmp/my doc#1.html")
	if err != nil {
		t.Fatal(err)
	}
	if got != "file:///tmp/my%20doc%231.html" {
		t.Errorf("fileURL() = %q", got)
	}

	rel, err := fileURL("doc.html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(rel, "file:///") || !strings.HasSuffix(rel, "/doc.html") {
		t.Errorf("fileURL(relative) = %q", rel)
	}
}
