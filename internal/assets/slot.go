package assets

import "fmt"

// Slot identifies one bundled resource.
type Slot int

// Slots, in declaration order.
const (
	SlotMarkdownCSS Slot = iota
	SlotFontCJK
	SlotFontCJKMono
	SlotHighlightJS
	SlotHighlightCSS
	SlotMathJaxConfig
	SlotMathJaxJS
	SlotWebFont
	SlotHighlightInit

	slotCount
)

// Kind is the element a slot's content is written into.
type Kind int

const (
	KindStylesheet Kind = iota
	KindScript
)

func (k Kind) String() string {
	if k == KindScript {
		return "script"
	}
	return "stylesheet"
}

type slotInfo struct {
	name        string
	file        string // empty when the content is derived
	kind        Kind
	overridable bool
}

var slotTable = [slotCount]slotInfo{
	SlotMarkdownCSS:   {"css", "markdown.css", KindStylesheet, true},
	SlotFontCJK:       {"font-cjk", "font-cjk.css", KindStylesheet, false},
	SlotFontCJKMono:   {"font-cjk-mono", "font-cjk-mono.css", KindStylesheet, false},
	SlotHighlightJS:   {"highlight-js", "highlight.js", KindScript, true},
	SlotHighlightCSS:  {"highlight-css", "", KindStylesheet, true},
	SlotMathJaxConfig: {"mathjax-config", "mathjax-config.js", KindScript, false},
	SlotMathJaxJS:     {"mathjax-js", "mathjax.js", KindScript, true},
	SlotWebFont:       {"webfont", "webfont.js", KindScript, false},
	SlotHighlightInit: {"highlight-init", "highlight-init.js", KindScript, false},
}

// Slots returns every slot in declaration order.
func Slots() []Slot {
	out := make([]Slot, 0, slotCount)
	for s := Slot(0); s < slotCount; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is in the closed set.
func (s Slot) Valid() bool {
	return s >= 0 && s < slotCount
}

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotTable[s].name
}

// Kind returns the element the slot is written into.
func (s Slot) Kind() Kind {
	if !s.Valid() {
		return KindStylesheet
	}
	return slotTable[s].kind
}

// Overridable reports whether a user file may replace the embedded content.
func (s Slot) Overridable() bool {
	return s.Valid() && slotTable[s].overridable
}
