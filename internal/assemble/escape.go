package assemble

import (
	"fmt"
	"regexp"
	"strings"
)

// Context selects the escaping applied to an untrusted chunk.
type Context int

const (
	// ContextText escapes &, < and > for element content.
	ContextText Context = iota
	// ContextStyle neutralizes tag openers inside a <style> element.
	ContextStyle
	// ContextScript neutralizes </script and <!-- inside a <script> element.
	ContextScript
)

func (c Context) String() string {
	switch c {
	case ContextText:
		return "text"
	case ContextStyle:
		return "style"
	case ContextScript:
		return "script"
	default:
		return fmt.Sprintf("Context(%d)", int(c))
	}
}

// element returns the innermost element the context must be written into.
// Empty means any non-raw position.
func (c Context) element() string {
	switch c {
	case ContextStyle:
		return "style"
	case ContextScript:
		return "script"
	default:
		return ""
	}
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// scriptBreakRe matches the sequences that change how a browser tokenizes
// script data: </script ends the element early, and <!-- followed by
// <script makes the real closing tag stop ending it.
var scriptBreakRe = regexp.MustCompile(`(?i)</script|<!--`)

// Escape returns s escaped for ctx.
//
// Style: every "<" becomes the CSS escape "\3c " so neither </style nor any
// tag opener survives; inside CSS strings and identifiers the escape decodes
// back to "<". Script: every case-insensitive "</script" becomes "<\/script"
// and every "<!--" becomes "<\!--", which JavaScript string and regexp
// literals read identically. The element content therefore stays in the
// plain script data state and only the assembler's closing tag ends it.
func Escape(s string, ctx Context) string {
	switch ctx {
	case ContextStyle:
		return strings.ReplaceAll(s, "<", `\3c `)
	case ContextScript:
		return scriptBreakRe.ReplaceAllStringFunc(s, escapeScriptBreak)
	default:
		return textEscaper.Replace(s)
	}
}

func escapeScriptBreak(m string) string {
	if m[1] == '/' {
		return `<\/` + m[2:]
	}
	return `<\!--`
}
