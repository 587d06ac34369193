package md2html

import (
	"html"

	"github.com/alnah/go-md2html/internal/assemble"
	"github.com/alnah/go-md2html/internal/assets"
)

type stepKind int

const (
	stepTag       stepKind = iota // fixed structural token
	stepGenerator                 // generator meta element
	stepTitle                     // <title> with escaped text
	stepAsset                     // asset slot wrapped in <style> or <script>
	stepFragment                  // rendered Markdown, trusted
)

// planStep is one entry of the emission plan. when == nil means always.
type planStep struct {
	kind stepKind
	when func(d *Document) bool
	tag  string
	slot assets.Slot
}

func tag(literal string) planStep {
	return planStep{kind: stepTag, tag: literal}
}

func asset(when func(d *Document) bool, slot assets.Slot) planStep {
	return planStep{kind: stepAsset, when: when, slot: slot}
}

// Conditions.
var (
	includeFonts    = func(d *Document) bool { return d.IncludeFonts }
	hasCode         = func(d *Document) bool { return d.HasCode }
	clientHighlight = func(d *Document) bool { return d.HasCode && !d.ServerHighlight }
	hasMath         = func(d *Document) bool { return d.HasMath }
)

// emissionPlan is the document skeleton. Stylesheets come before scripts
// within each group; fonts before highlighting; highlighting before math.
var emissionPlan = []planStep{
	tag("<!DOCTYPE html>"),
	tag("<html>"),
	tag("<head>"),
	tag("<meta charset=UTF-8>"),
	tag(`<meta name=viewport content="width=device-width, initial-scale=1, shrink-to-fit=no">`),
	{kind: stepGenerator},
	{kind: stepTitle},
	asset(nil, assets.SlotMarkdownCSS),
	asset(includeFonts, assets.SlotFontCJK),
	asset(includeFonts, assets.SlotFontCJKMono),
	asset(clientHighlight, assets.SlotHighlightJS),
	asset(hasCode, assets.SlotHighlightCSS),
	asset(hasMath, assets.SlotMathJaxConfig),
	asset(hasMath, assets.SlotMathJaxJS),
	tag("</head>"),
	tag("<body>"),
	tag(`<article class="markdown-body">`),
	{kind: stepFragment},
	tag("</article>"),
	asset(includeFonts, assets.SlotWebFont),
	asset(clientHighlight, assets.SlotHighlightInit),
	tag("</body>"),
	tag("</html>"),
}

// buildPlan evaluates the emission plan against doc and returns the
// assembler instructions. Emitted assets are recorded in doc.Assets.
func buildPlan(doc *Document, bindings *assets.Bindings, fragment, generator string) []assemble.Instruction {
	out := make([]assemble.Instruction, 0, len(emissionPlan)*3)

	for _, step := range emissionPlan {
		if step.when != nil && !step.when(doc) {
			continue
		}

		switch step.kind {
		case stepTag:
			out = append(out, assemble.Tag(step.tag))

		case stepGenerator:
			if generator == "" {
				continue
			}
			out = append(out, assemble.Tag(`<meta name=generator content="`+html.EscapeString(generator)+`">`))

		case stepTitle:
			out = append(out,
				assemble.Tag("<title>"),
				assemble.Untrusted(doc.Title, assemble.ContextText),
				assemble.Tag("</title>"),
			)

		case stepFragment:
			out = append(out, assemble.Trusted(fragment))

		case stepAsset:
			b := bindings.Get(step.slot)
			out = append(out, assetInstructions(b)...)
			doc.Assets = append(doc.Assets, EmittedAsset{
				Name:   step.slot.String(),
				Source: b.Source.String(),
				Path:   b.Path,
			})
		}
	}

	return out
}

// assetInstructions wraps a binding in its element. Embedded content goes
// through the trusted channel; override content is escaped for the element.
func assetInstructions(b assets.Binding) []assemble.Instruction {
	element, ctx := "style", assemble.ContextStyle
	if b.Slot.Kind() == assets.KindScript {
		element, ctx = "script", assemble.ContextScript
	}

	body := assemble.Trusted(b.Content)
	if b.Source == assets.SourceOverride {
		body = assemble.Untrusted(b.Content, ctx)
	}

	return []assemble.Instruction{
		assemble.Tag("<" + element + ">"),
		body,
		assemble.Tag("</" + element + ">"),
	}
}
