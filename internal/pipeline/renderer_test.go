package pipeline

// Notes:
// - Both engines are driven through the Renderer interface with the same
//   table shape; gomarkdown has no task lists, so that row is goldmark only.
// - Assertions use substrings: exact engine output changes between minor
//   versions and is not part of the contract.

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseEngine
// ---------------------------------------------------------------------------

func TestParseEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Engine
		wantErr error
	}{
		{"", EngineGoldmark, nil},
		{"goldmark", EngineGoldmark, nil},
		{"  GoldMark ", EngineGoldmark, nil},
		{"gomarkdown", EngineGomarkdown, nil},
		{"pandoc", "", ErrUnknownEngine},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseEngine(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseEngine(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEngine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewRenderer(t *testing.T) {
	t.Parallel()

	for _, engine := range Engines {
		r, err := NewRenderer(engine)
		if err != nil || r == nil {
			t.Errorf("NewRenderer(%q) = %v, %v", engine, r, err)
		}
	}

	if _, err := NewRenderer("textile"); !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("NewRenderer(textile) error = %v, want ErrUnknownEngine", err)
	}
}

func TestSupportsServerHighlight(t *testing.T) {
	t.Parallel()

	if !SupportsServerHighlight(NewGoldmarkRenderer()) {
		t.Error("goldmark should support server highlighting")
	}
	if SupportsServerHighlight(NewGomarkdownRenderer()) {
		t.Error("gomarkdown should not support server highlighting")
	}
}

// ---------------------------------------------------------------------------
// TestRender - Extension coverage per engine
// ---------------------------------------------------------------------------

type renderCase struct {
	name         string
	input        string
	opts         RenderOptions
	wantContains []string
	wantExcludes []string
}

var commonRenderCases = []renderCase{
	{
		name:         "heading with id",
		input:        "# Hello World",
		wantContains: []string{`<h1 id="hello-world">Hello World</h1>`},
	},
	{
		name:         "fenced code",
		input:        "```go\nx := 1\n```",
		wantContains: []string{`<code class="language-go">`, CodeMarker},
	},
	{
		name:         "table",
		input:        "| a | b |\n|---|---|\n| 1 | 2 |",
		wantContains: []string{"<table>", "<th", "<td"},
	},
	{
		name:         "superscript",
		input:        "2^10^",
		wantContains: []string{"2<sup>10</sup>"},
	},
	{
		name:         "definition list",
		input:        "Term\n: Definition",
		wantContains: []string{"<dl>", "<dt>Term</dt>", "<dd>Definition</dd>"},
	},
	{
		name:         "footnote",
		input:        "Text[^1]\n\n[^1]: Note",
		wantContains: []string{"<sup", "footnote", "Note"},
	},
	{
		name:         "autolink",
		input:        "see https://example.com now",
		wantContains: []string{`<a href="https://example.com">`},
	},
	{
		name:         "hard line break",
		input:        "one\ntwo",
		wantContains: []string{"one<br", "two"},
	},
	{
		name:         "safe mode omits raw html",
		input:        "<div class=\"x\">raw</div>\n\ntext",
		wantContains: []string{"text"},
		wantExcludes: []string{`<div class="x">`},
	},
	{
		name:         "unsafe keeps raw html",
		input:        "<div class=\"x\">raw</div>\n\ntext",
		opts:         RenderOptions{Unsafe: true},
		wantContains: []string{`<div class="x">raw</div>`},
	},
	{
		name:         "tag filter applies in unsafe mode",
		input:        "<script>alert(1)</script>\n\ntext",
		opts:         RenderOptions{Unsafe: true},
		wantContains: []string{"&lt;script>", "&lt;/script>"},
		wantExcludes: []string{"<script>"},
	},
	{
		name:         "math delimiters untouched",
		input:        "inline #{{ a^2 }}# here",
		wantContains: []string{MathMarker, "}}#"},
	},
}

func runRenderCases(t *testing.T, r Renderer, cases []renderCase) {
	t.Helper()

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Render(context.Background(), tt.input, tt.opts)
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Render() = %q, missing %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("Render() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestGoldmarkRenderer_Render(t *testing.T) {
	t.Parallel()

	cases := append([]renderCase{
		{
			name:         "strikethrough",
			input:        "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
		{
			name:         "task list",
			input:        "- [x] done\n- [ ] todo",
			wantContains: []string{`type="checkbox"`, "checked"},
		},
		{
			name:         "server highlight",
			input:        "```go\nfunc main() {}\n```",
			opts:         RenderOptions{ServerHighlight: true, Theme: "github"},
			wantContains: []string{`class="chroma"`, CodeMarker},
			wantExcludes: []string{"language-go"},
		},
	}, commonRenderCases...)

	runRenderCases(t, NewGoldmarkRenderer(), cases)
}

func TestGomarkdownRenderer_Render(t *testing.T) {
	t.Parallel()

	runRenderCases(t, NewGomarkdownRenderer(), commonRenderCases)
}

// ---------------------------------------------------------------------------
// TestRender - Errors
// ---------------------------------------------------------------------------

func TestGomarkdownRenderer_ServerHighlightUnsupported(t *testing.T) {
	t.Parallel()

	_, err := NewGomarkdownRenderer().Render(context.Background(), "x", RenderOptions{ServerHighlight: true})
	if !errors.Is(err, ErrUnsupportedEngine) {
		t.Errorf("Render() error = %v, want ErrUnsupportedEngine", err)
	}
}

func TestRender_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, engine := range Engines {
		r, err := NewRenderer(engine)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := r.Render(ctx, "# Hi", RenderOptions{}); !errors.Is(err, context.Canceled) {
			t.Errorf("%s: Render() error = %v, want context.Canceled", engine, err)
		}
	}
}

func TestGoldmarkRenderer_CachesPerOptions(t *testing.T) {
	t.Parallel()

	g := NewGoldmarkRenderer()
	a := g.markdown(RenderOptions{})
	b := g.markdown(RenderOptions{})
	c := g.markdown(RenderOptions{Unsafe: true})

	if a != b {
		t.Error("same options should reuse the configured instance")
	}
	if a == c {
		t.Error("different options should build a new instance")
	}
}
