//go:build integration

package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExporter_Chrome(t *testing.T) {
	e := New(30 * time.Second)
	defer e.Close()

	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "doc with space.html")
	pdfPath := filepath.Join(dir, "doc.pdf")
	html := "<!doctype html><html><head><meta charset=UTF-8><title>t</title></head><body><h1>Hello</h1></body></html>"
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := e.WriteFile(ctx, htmlPath, pdfPath); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with %%PDF-: %q", data[:min(len(data), 16)])
	}
}
