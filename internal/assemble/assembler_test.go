package assemble

// Notes:
// - Tests drive the Assembler through its three channels and through
//   Assemble; internal whitespace state is checked only via output bytes.
// - Tokenizer error branches in writeMarkup are not exercised: x/net/html
//   only fails on reader errors, and the reader here is a strings.Reader.

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mustAssemble(t *testing.T, plan []Instruction) string {
	t.Helper()
	out, err := New().Assemble(plan)
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}
	return string(out)
}

func wrap(inner ...Instruction) []Instruction {
	plan := []Instruction{Tag("<html>"), Tag("<body>")}
	plan = append(plan, inner...)
	return append(plan, Tag("</body>"), Tag("</html>"))
}

// ---------------------------------------------------------------------------
// TestAssemble - Full documents
// ---------------------------------------------------------------------------

func TestAssemble(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		plan []Instruction
		want string
	}{
		{
			name: "minimal document with escaped title",
			plan: []Instruction{
				Tag("<!DOCTYPE html>"),
				Tag("<html>"),
				Tag("<head>"),
				Tag("<meta charset=UTF-8>"),
				Tag("<title>"),
				Untrusted("A & B <x>", ContextText),
				Tag("</title>"),
				Tag("</head>"),
				Tag("<body>"),
				Trusted("<p>hi</p>\n"),
				Tag("</body>"),
				Tag("</html>"),
			},
			want: `<!DOCTYPE html><html><head><meta charset=UTF-8><title>A &amp; B &lt;x&gt;</title></head><body><p>hi</p></body></html>`,
		},
		{
			name: "self-closing meta is not pushed",
			plan: []Instruction{
				Tag("<head>"),
				Tag(`<meta name="generator" content="x"/>`),
				Tag("</head>"),
			},
			want: `<head><meta name="generator" content="x"/></head>`,
		},
		{
			name: "surrounding whitespace in structural literal",
			plan: []Instruction{Tag("  <html>\n"), Tag("\t</html> ")},
			want: `<html></html>`,
		},
		{
			name: "style override escaped in style context",
			plan: []Instruction{
				Tag("<style>"),
				Untrusted("body{color:red}</style><script>", ContextStyle),
				Tag("</style>"),
			},
			want: `<style>body{color:red}\3c /style>\3c script></style>`,
		},
		{
			name: "script override escaped in script context",
			plan: []Instruction{
				Tag("<script>"),
				Untrusted(`var s = "</SCRIPT>";`, ContextScript),
				Tag("</script>"),
			},
			want: `<script>var s = "<\/SCRIPT>";</script>`,
		},
		{
			name: "embedded script passes through verbatim",
			plan: []Instruction{
				Tag("<script>"),
				Trusted("if (a  <  b) {\n  go();\n}\n<!-- keep -->"),
				Tag("</script>"),
			},
			want: "<script>if (a  <  b) {\n  go();\n}\n<!-- keep --></script>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mustAssemble(t, tt.plan)
			if got != tt.want {
				t.Errorf("Assemble() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestAssemble_Minify - Whitespace and comments outside raw text
// ---------------------------------------------------------------------------

func TestAssemble_Minify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{
			name:     "block boundaries drop whitespace",
			fragment: "<h1>Hi</h1>\n\n<p>text</p>\n",
			want:     "<h1>Hi</h1><p>text</p>",
		},
		{
			name:     "runs collapse to one space",
			fragment: "<p>a   \n\t b</p>",
			want:     "<p>a b</p>",
		},
		{
			name:     "space kept around inline elements",
			fragment: "<p>foo <em>bar</em>   baz <a href=\"x\">link</a></p>",
			want:     `<p>foo <em>bar</em> baz <a href="x">link</a></p>`,
		},
		{
			name:     "comments stripped",
			fragment: "<p>a</p>\n<!-- raw HTML omitted -->\n<p>b</p>",
			want:     "<p>a</p><p>b</p>",
		},
		{
			name:     "pre and code pass through",
			fragment: "<pre><code class=\"language-go\">x  \n   y\n<!-- not stripped -->\n</code></pre>\n<p>c</p>",
			want:     "<pre><code class=\"language-go\">x  \n   y\n<!-- not stripped -->\n</code></pre><p>c</p>",
		},
		{
			name:     "inline code keeps content and surrounding space",
			fragment: "<p>run <code>a  b</code> now</p>",
			want:     "<p>run <code>a  b</code> now</p>",
		},
		{
			name:     "highlighted spans inside pre are untouched",
			fragment: "<pre class=\"chroma\"><code><span class=\"line\"><span class=\"cl\">  x\n</span></span></code></pre>",
			want:     "<pre class=\"chroma\"><code><span class=\"line\"><span class=\"cl\">  x\n</span></span></code></pre>",
		},
		{
			name:     "task list checkbox keeps label spacing",
			fragment: "<ul>\n<li><input disabled=\"\" type=\"checkbox\"> todo</li>\n</ul>",
			want:     `<ul><li><input disabled="" type="checkbox"> todo</li></ul>`,
		},
		{
			name:     "trailing space before block close dropped",
			fragment: "<p>a  </p>",
			want:     "<p>a</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mustAssemble(t, wrap(Trusted(tt.fragment)))
			want := "<html><body>" + tt.want + "</body></html>"
			if got != want {
				t.Errorf("got\n%q\nwant\n%q", got, want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestAssemble_WhitespaceInsensitive - Perturbations yield identical bytes
// ---------------------------------------------------------------------------

func TestAssemble_WhitespaceInsensitive(t *testing.T) {
	t.Parallel()

	variants := []string{
		"<h1>Title</h1><p>one two</p><ul><li>x</li><li>y <strong>z</strong></li></ul>",
		"<h1>Title</h1>\n<p>one two</p>\n<ul>\n<li>x</li>\n<li>y <strong>z</strong></li>\n</ul>\n",
		"\n\n<h1>Title</h1>\n\n\n<p>one   \n two</p>  <ul>\t<li>x</li>  \n  <li>y\n\n<strong>z</strong></li></ul>",
		"  <h1> Title </h1><p>\none\ttwo\n</p><ul><li> x </li><li>y     <strong>z</strong> </li></ul>  ",
	}

	var first string
	for i, v := range variants {
		got := mustAssemble(t, []Instruction{
			Tag("<html>"), Tag("\n<body>\n"),
			Trusted(v),
			Tag("</body>"), Tag("</html>"),
		})
		if i == 0 {
			first = got
			continue
		}
		if got != first {
			t.Errorf("variant %d =\n%q\nwant\n%q", i, got, first)
		}
	}
}

// ---------------------------------------------------------------------------
// TestAssemble_RawPassthrough - Raw-text elements ignore whitespace rules
// ---------------------------------------------------------------------------

func TestAssemble_RawPassthrough(t *testing.T) {
	t.Parallel()

	contents := []string{
		"a    b",
		"\n\n\t  leading and trailing  \n",
		"<!-- comment -->  <b>  bold  </b>",
		"",
	}

	for _, el := range []string{"script", "style", "pre", "code"} {
		for _, c := range contents {
			got := mustAssemble(t, wrap(Tag("<"+el+">"), Trusted(c), Tag("</"+el+">")))
			want := "<html><body><" + el + ">" + c + "</" + el + "></body></html>"
			if got != want {
				t.Errorf("<%s> %q:\n got %q\nwant %q", el, c, got, want)
			}
		}
	}
}

func TestWriteTrusted_VerbatimElements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		chunk string
		want  string
	}{
		{"textarea", "<p>a</p>\n<textarea>x   y\n z</textarea>", "<p>a</p><textarea>x   y\n z</textarea>"},
		{"title", "<title>  A   B </title>", "<title>  A   B </title>"},
		{"xmp", "<xmp>a  <b>  c</xmp>", "<xmp>a  <b>  c</xmp>"},
		{"noscript", "<noscript>  keep  </noscript>", "<noscript>  keep  </noscript>"},
		{"collapsing resumes after", "<textarea> a </textarea>\n\n<p>b   c</p>", "<textarea> a </textarea><p>b c</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mustAssemble(t, wrap(Trusted(tt.chunk)))
			want := "<html><body>" + tt.want + "</body></html>"
			if got != want {
				t.Errorf("WriteTrusted(%q):\n got %q\nwant %q", tt.chunk, got, want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestAssembler_Errors - Invalid plans
// ---------------------------------------------------------------------------

func TestAssembler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		plan    []Instruction
		wantErr error
	}{
		{
			name:    "mismatched close",
			plan:    []Instruction{Tag("<html>"), Tag("<head>"), Tag("</body>")},
			wantErr: ErrStructural,
		},
		{
			name:    "close with nothing open",
			plan:    []Instruction{Tag("</html>")},
			wantErr: ErrStructural,
		},
		{
			name:    "unclosed element",
			plan:    []Instruction{Tag("<html>"), Tag("<body>"), Tag("</body>")},
			wantErr: ErrUnterminatedDocument,
		},
		{
			name:    "open inside raw text",
			plan:    []Instruction{Tag("<script>"), Tag("<div>")},
			wantErr: ErrStructural,
		},
		{
			name:    "style context outside style",
			plan:    []Instruction{Tag("<script>"), Untrusted("x", ContextStyle)},
			wantErr: ErrStructural,
		},
		{
			name:    "script context with nothing open",
			plan:    []Instruction{Untrusted("x", ContextScript)},
			wantErr: ErrStructural,
		},
		{
			name:    "text context inside raw text",
			plan:    []Instruction{Tag("<style>"), Untrusted("x", ContextText)},
			wantErr: ErrStructural,
		},
		{
			name:    "two tags in one literal",
			plan:    []Instruction{Tag("<html><head>")},
			wantErr: ErrStructural,
		},
		{
			name:    "text is not a tag",
			plan:    []Instruction{Tag("hello")},
			wantErr: ErrStructural,
		},
		{
			name:    "comment is not a tag",
			plan:    []Instruction{Tag("<!-- c -->")},
			wantErr: ErrStructural,
		},
		{
			name:    "empty literal",
			plan:    []Instruction{Tag("")},
			wantErr: ErrStructural,
		},
		{
			name:    "start tag with content",
			plan:    []Instruction{Tag("<script>alert(1)")},
			wantErr: ErrStructural,
		},
		{
			name:    "unknown kind",
			plan:    []Instruction{{Kind: Kind(42)}},
			wantErr: ErrStructural,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New().Assemble(tt.plan)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Assemble() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssembler_StickyError(t *testing.T) {
	t.Parallel()

	a := New()
	if err := a.Token("</p>"); !errors.Is(err, ErrStructural) {
		t.Fatalf("Token() error = %v, want ErrStructural", err)
	}
	if err := a.Token("<html>"); !errors.Is(err, ErrStructural) {
		t.Errorf("Token() after failure = %v, want sticky ErrStructural", err)
	}
	if err := a.WriteTrusted("<p>x</p>"); !errors.Is(err, ErrStructural) {
		t.Errorf("WriteTrusted() after failure = %v, want sticky ErrStructural", err)
	}
	if _, err := a.Bytes(); !errors.Is(err, ErrStructural) {
		t.Errorf("Bytes() after failure = %v, want sticky ErrStructural", err)
	}
}

// ---------------------------------------------------------------------------
// TestAssembler_Depth - Stack balance
// ---------------------------------------------------------------------------

func TestAssembler_Depth(t *testing.T) {
	t.Parallel()

	a := New(WithCapacity(256))
	steps := []struct {
		literal string
		depth   int
	}{
		{"<!DOCTYPE html>", 0},
		{"<html>", 1},
		{"<head>", 2},
		{"<meta charset=UTF-8>", 2},
		{"<style>", 3},
		{"</style>", 2},
		{"</head>", 1},
		{"<body>", 2},
		{`<article class="markdown-body">`, 3},
		{"</article>", 2},
		{"</body>", 1},
		{"</html>", 0},
	}

	for _, s := range steps {
		if err := a.Token(s.literal); err != nil {
			t.Fatalf("Token(%q) unexpected error: %v", s.literal, err)
		}
		if a.Depth() != s.depth {
			t.Errorf("after %q Depth() = %d, want %d", s.literal, a.Depth(), s.depth)
		}
	}

	if _, err := a.Bytes(); err != nil {
		t.Errorf("Bytes() unexpected error: %v", err)
	}
}

func TestAssembler_OpenIsCopy(t *testing.T) {
	t.Parallel()

	a := New()
	_ = a.Token("<html>")
	_ = a.Token("<body>")

	open := a.Open()
	if strings.Join(open, ",") != "html,body" {
		t.Fatalf("Open() = %v, want [html body]", open)
	}
	open[0] = "mutated"
	if a.Open()[0] != "html" {
		t.Error("Open() returned the internal stack")
	}
}

func TestAssembler_TrustedFragmentDoesNotTouchStack(t *testing.T) {
	t.Parallel()

	a := New()
	_ = a.Token("<body>")
	if err := a.WriteTrusted("<pre><code>unclosed"); err != nil {
		t.Fatalf("WriteTrusted() unexpected error: %v", err)
	}
	if a.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", a.Depth())
	}
	if err := a.Token("</body>"); err != nil {
		t.Errorf("Token(</body>) unexpected error: %v", err)
	}
}
