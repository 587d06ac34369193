package assemble

import "fmt"

// Kind identifies the channel an Instruction is written through.
type Kind int

const (
	// KindToken is a structural tag.
	KindToken Kind = iota
	// KindTrusted is a raw block inserted without escaping.
	KindTrusted
	// KindUntrusted is a block escaped for its Context.
	KindUntrusted
)

func (k Kind) String() string {
	switch k {
	case KindToken:
		return "token"
	case KindTrusted:
		return "trusted"
	case KindUntrusted:
		return "untrusted"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Instruction is one step of an emission plan.
type Instruction struct {
	Kind    Kind
	Text    string
	Context Context // KindUntrusted only
}

// Tag returns a structural instruction.
func Tag(literal string) Instruction {
	return Instruction{Kind: KindToken, Text: literal}
}

// Trusted returns an instruction that writes chunk unescaped.
func Trusted(chunk string) Instruction {
	return Instruction{Kind: KindTrusted, Text: chunk}
}

// Untrusted returns an instruction that escapes text for ctx.
func Untrusted(text string, ctx Context) Instruction {
	return Instruction{Kind: KindUntrusted, Text: text, Context: ctx}
}

// Apply executes a single instruction.
func (a *Assembler) Apply(in Instruction) error {
	switch in.Kind {
	case KindToken:
		return a.Token(in.Text)
	case KindTrusted:
		return a.WriteTrusted(in.Text)
	case KindUntrusted:
		return a.WriteUntrusted(in.Text, in.Context)
	default:
		if a.err != nil {
			return a.err
		}
		return a.fail(fmt.Errorf("%w: unknown instruction kind %s", ErrStructural, in.Kind))
	}
}

// Assemble executes plan in order and returns the finished document.
func (a *Assembler) Assemble(plan []Instruction) ([]byte, error) {
	for i, in := range plan {
		if err := a.Apply(in); err != nil {
			return nil, fmt.Errorf("instruction %d (%s): %w", i, in.Kind, err)
		}
	}
	return a.Bytes()
}
