package assemble

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// htmlSpace is the set of ASCII whitespace characters defined by HTML.
const htmlSpace = " \t\n\f\r"

// rawTextElements switch the assembler into byte-for-byte passthrough.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
	"pre":    true,
	"code":   true,
}

// verbatimElements extend rawTextElements inside trusted chunks with the
// elements whose text a browser keeps as written (RCDATA and raw text). They
// are not structural: the title, for instance, is written as escaped text.
var verbatimElements = map[string]bool{
	"script": true, "style": true, "pre": true, "code": true,
	"textarea": true, "title": true, "xmp": true, "iframe": true,
	"noembed": true, "noframes": true, "noscript": true,
}

// voidElements never receive a closing tag and are not pushed on the stack.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// inlineElements keep a single separating space around them. Every other tag
// is a block boundary where whitespace is dropped.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "cite": true, "code": true,
	"del": true, "em": true, "i": true, "img": true, "input": true,
	"kbd": true, "label": true, "mark": true, "q": true, "s": true,
	"small": true, "span": true, "strong": true, "sub": true, "sup": true,
	"u": true,
}

// Assembler accumulates a minified HTML document. It is not safe for
// concurrent use; create one per document.
type Assembler struct {
	buf   bytes.Buffer
	stack []string

	// pending records collapsed whitespace that becomes one space if more
	// inline content follows.
	pending bool
	// inline is true when the last output was text or an inline tag.
	inline bool

	err error
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithCapacity preallocates the output buffer.
func WithCapacity(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.buf.Grow(n)
		}
	}
}

// New creates an empty Assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Token writes a single structural tag, doctype included, and updates the
// open-element stack.
func (a *Assembler) Token(literal string) error {
	if a.err != nil {
		return a.err
	}

	tt, name, raw, err := parseTag(literal)
	if err != nil {
		return a.fail(err)
	}

	switch tt {
	case html.DoctypeToken:
		if a.inRaw() {
			return a.fail(fmt.Errorf("%w: doctype inside <%s>", ErrStructural, a.top()))
		}
		a.writeTag(raw, "")

	case html.StartTagToken, html.SelfClosingTagToken:
		if a.inRaw() {
			return a.fail(fmt.Errorf("%w: <%s> opened inside <%s>", ErrStructural, name, a.top()))
		}
		a.writeTag(raw, name)
		if tt == html.StartTagToken && !voidElements[name] {
			a.stack = append(a.stack, name)
		}

	case html.EndTagToken:
		top := a.top()
		if top != name {
			if top == "" {
				top = "nothing"
			} else {
				top = "<" + top + ">"
			}
			return a.fail(fmt.Errorf("%w: </%s> closes %s", ErrStructural, name, top))
		}
		a.stack = a.stack[:len(a.stack)-1]
		a.writeTag(raw, name)
	}

	return nil
}

// WriteTrusted writes chunk without escaping. Outside raw-text mode the chunk
// is minified; raw-text elements inside it are passed through verbatim
// without affecting the open-element stack.
func (a *Assembler) WriteTrusted(chunk string) error {
	if a.err != nil {
		return a.err
	}
	if a.inRaw() {
		a.buf.WriteString(chunk)
		return nil
	}
	if err := a.writeMarkup(chunk); err != nil {
		return a.fail(err)
	}
	return nil
}

// WriteUntrusted escapes text for ctx and writes it. The innermost open
// element must match ctx: <style> for ContextStyle, <script> for
// ContextScript, and any non-raw element for ContextText.
func (a *Assembler) WriteUntrusted(text string, ctx Context) error {
	if a.err != nil {
		return a.err
	}

	want := ctx.element()
	switch {
	case want != "" && a.top() != want:
		return a.fail(fmt.Errorf("%w: %s content outside <%s>", ErrStructural, ctx, want))
	case want == "" && a.inRaw():
		return a.fail(fmt.Errorf("%w: %s content inside <%s>", ErrStructural, ctx, a.top()))
	}

	escaped := Escape(text, ctx)
	if a.inRaw() {
		a.buf.WriteString(escaped)
		return nil
	}
	a.writeText(escaped)
	return nil
}

// Depth returns the number of open elements.
func (a *Assembler) Depth() int {
	return len(a.stack)
}

// Open returns the names of the open elements, outermost first.
func (a *Assembler) Open() []string {
	return append([]string(nil), a.stack...)
}

// Len returns the number of bytes written so far.
func (a *Assembler) Len() int {
	return a.buf.Len()
}

// Bytes returns a copy of the assembled document. It fails if any call
// failed earlier or if elements remain open.
func (a *Assembler) Bytes() ([]byte, error) {
	if a.err != nil {
		return nil, a.err
	}
	if len(a.stack) > 0 {
		return nil, fmt.Errorf("%w: open elements %s", ErrUnterminatedDocument, strings.Join(a.stack, " > "))
	}
	return bytes.Clone(a.buf.Bytes()), nil
}

func (a *Assembler) fail(err error) error {
	a.err = err
	return err
}

func (a *Assembler) top() string {
	if len(a.stack) == 0 {
		return ""
	}
	return a.stack[len(a.stack)-1]
}

func (a *Assembler) inRaw() bool {
	return rawTextElements[a.top()]
}

// writeTag applies the whitespace rules for a tag boundary and writes raw.
func (a *Assembler) writeTag(raw, name string) {
	if inlineElements[name] {
		if a.pending {
			a.buf.WriteByte(' ')
			a.pending = false
		}
		a.buf.WriteString(raw)
		a.inline = true
		return
	}
	a.pending = false
	a.inline = false
	a.buf.WriteString(raw)
}

// writeText collapses whitespace runs in s.
func (a *Assembler) writeText(s string) {
	for s != "" {
		if n := len(s) - len(strings.TrimLeft(s, htmlSpace)); n > 0 {
			if a.inline {
				a.pending = true
			}
			s = s[n:]
			continue
		}

		end := strings.IndexAny(s, htmlSpace)
		if end < 0 {
			end = len(s)
		}
		if a.pending {
			a.buf.WriteByte(' ')
			a.pending = false
		}
		a.buf.WriteString(s[:end])
		a.inline = true
		s = s[end:]
	}
}

// writeMarkup tokenizes chunk and minifies everything outside verbatim
// elements. Tokens are written from their raw bytes, never re-serialized.
func (a *Assembler) writeMarkup(chunk string) error {
	z := html.NewTokenizer(strings.NewReader(chunk))
	raw := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return fmt.Errorf("tokenizing markup: %w", err)
			}
			return nil
		}

		// Raw must be copied before TagName, which lowercases in place.
		text := string(z.Raw())

		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			nameBytes, _ := z.TagName()
			name := string(nameBytes)

			if raw > 0 {
				a.buf.WriteString(text)
				if verbatimElements[name] {
					if tt == html.StartTagToken {
						raw++
					} else if tt == html.EndTagToken {
						raw--
					}
					if raw == 0 {
						a.inline = inlineElements[name]
					}
				}
				continue
			}

			a.writeTag(text, name)
			if tt == html.StartTagToken && verbatimElements[name] {
				raw++
			}

		case html.TextToken:
			if raw > 0 {
				a.buf.WriteString(text)
				continue
			}
			a.writeText(text)

		case html.CommentToken:
			if raw > 0 {
				a.buf.WriteString(text)
			}

		case html.DoctypeToken:
			a.writeTag(text, "")
		}
	}
}

// parseTag extracts exactly one tag from literal. Surrounding whitespace is
// allowed; anything else is a structural error.
func parseTag(literal string) (html.TokenType, string, string, error) {
	z := html.NewTokenizer(strings.NewReader(literal))

	var (
		found   bool
		tagType html.TokenType
		name    string
		raw     string
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}

		text := string(z.Raw())
		if tt == html.TextToken && strings.Trim(text, htmlSpace) == "" {
			continue
		}

		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken, html.DoctypeToken:
			if found {
				return 0, "", "", fmt.Errorf("%w: %q holds more than one tag", ErrStructural, literal)
			}
			found = true
			tagType = tt
			raw = text
			if tt != html.DoctypeToken {
				n, _ := z.TagName()
				name = string(n)
			}
		default:
			return 0, "", "", fmt.Errorf("%w: %q is not a structural tag", ErrStructural, literal)
		}

		// The tokenizer switches to raw text after <script>, <style> and
		// friends; a structural literal never carries content.
		if tt == html.StartTagToken {
			if rest := z.Next(); rest != html.ErrorToken {
				if t := string(z.Raw()); strings.Trim(t, htmlSpace) != "" {
					return 0, "", "", fmt.Errorf("%w: %q holds more than one tag", ErrStructural, literal)
				}
			}
		}
	}

	if !found {
		return 0, "", "", fmt.Errorf("%w: %q is not a structural tag", ErrStructural, literal)
	}
	return tagType, name, raw, nil
}
