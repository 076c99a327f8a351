// Package resolver classifies assembly source lines against an instruction
// set: which operand shape a line uses, the addressing modes and byte length
// that follow from it, and its cost in machine cycles.
//
// A Resolver holds no mutable state. All methods are safe for concurrent use
// and always give the same answer for the same line.
package resolver

import (
	"github.com/asm2table/asm2table/asmparser"
	"github.com/asm2table/asm2table/isa"
)

// opcodeBytes is the size of the opcode every instruction starts with.
const opcodeBytes = 1

// Kind tells instructions apart from lines that cost nothing.
type Kind int

const (
	KindInstruction Kind = iota
	KindBlank            // empty, label only or comment only
	KindDirective        // matched a skip pattern
)

func (k Kind) String() string {
	switch k {
	case KindInstruction:
		return "instruction"
	case KindBlank:
		return "blank"
	case KindDirective:
		return "directive"
	}
	return "unknown"
}

// Resolution is the outcome of resolving one line.
type Resolution struct {
	Line     *asmparser.Line
	Kind     Kind
	Mnemonic string
	Variant  int // index of the matched variant, -1 if there is none
	Tags     []isa.OperandTag
	Modes    []isa.AddressingMode
	Length   int // bytes, opcode included
}

// Options tune how lines are read.
type Options struct {
	FoldCase bool // upper-case the instruction text before matching
}

// Resolver resolves lines against one instruction set.
type Resolver struct {
	set  *isa.InstructionSet
	opts Options
}

// New returns a resolver for set.
func New(set *isa.InstructionSet, opts Options) *Resolver {
	return &Resolver{set: set, opts: opts}
}

// InstructionSet returns the instruction set lines are resolved against.
func (r *Resolver) InstructionSet() *isa.InstructionSet {
	return r.set
}

func (r *Resolver) parse(raw string) *asmparser.Line {
	line := asmparser.ParseLine(raw)
	if r.opts.FoldCase {
		line = line.Upper()
	}
	return line
}

// Resolve strips and tokenizes raw, then picks the first variant of its
// mnemonic whose tags all accept the operands in the same position.
// Blank lines and directives resolve to an empty, zero length result.
func (r *Resolver) Resolve(raw string) (*Resolution, error) {
	line := r.parse(raw)
	res := &Resolution{Line: line, Variant: -1}
	if line.IsBlank() {
		res.Kind = KindBlank
		return res, nil
	}
	if r.set.IsSkip(line.Text) {
		res.Kind = KindDirective
		return res, nil
	}

	res.Mnemonic = line.Mnemonic
	variants, ok := r.set.VariantsOf(line.Mnemonic)
	if !ok {
		return nil, &ParseError{Line: raw, Mnemonic: line.Mnemonic, Err: ErrUnknownInstruction}
	}
	if len(variants) == 0 {
		if line.RawOperands != "" {
			return nil, &ParseError{Line: raw, Mnemonic: line.Mnemonic, Err: ErrUnexpectedOperands}
		}
		res.Length = opcodeBytes
		return res, nil
	}

	for i, variant := range variants {
		if !r.matches(variant, line.Operands) {
			continue
		}
		res.Variant = i
		res.Tags = variant
		res.Length = r.Length(variant)
		res.Modes = make([]isa.AddressingMode, len(variant))
		for j, tag := range variant {
			res.Modes[j], _ = r.set.AddressingModeOf(tag)
		}
		return res, nil
	}
	return nil, &ParseError{Line: raw, Mnemonic: line.Mnemonic, Err: ErrNoMatchingVariant}
}

// Length returns the encoded size of an instruction taking the operand
// shape variant: the opcode byte plus the bytes of every operand.
func (r *Resolver) Length(variant isa.Variant) int {
	length := opcodeBytes
	for _, tag := range variant {
		length += r.set.ByteWidthOf(tag)
	}
	return length
}

// matches pairs tags and operands by position. Missing operands fail the
// variant; operands beyond the last tag are not looked at.
func (r *Resolver) matches(variant isa.Variant, operands []string) bool {
	if len(operands) < len(variant) {
		return false
	}
	for i, tag := range variant {
		if !r.set.Classify(tag, operands[i]) {
			return false
		}
	}
	return true
}

// ResolveAddressingModes returns the addressing mode of every operand.
func (r *Resolver) ResolveAddressingModes(raw string) ([]isa.AddressingMode, error) {
	res, err := r.Resolve(raw)
	if err != nil {
		return nil, err
	}
	return res.Modes, nil
}

// ResolveByteLength returns the size of the encoded instruction.
func (r *Resolver) ResolveByteLength(raw string) (int, error) {
	res, err := r.Resolve(raw)
	if err != nil {
		return 0, err
	}
	return res.Length, nil
}

// ResolveCycleCost returns the machine cycles of the instruction on raw.
// Blank lines and directives cost nothing. Lines that do not resolve yield a
// *MatchError wrapping the *ParseError.
func (r *Resolver) ResolveCycleCost(raw string) (int, error) {
	res, err := r.Resolve(raw)
	if err != nil {
		return 0, &MatchError{Line: raw, Err: err}
	}
	cycles, _ := r.CycleCost(res)
	return cycles, nil
}

// CycleCost returns the cycles of a resolution and the rule that decided
// them; the rule is nil when nothing but the baseline applied.
func (r *Resolver) CycleCost(res *Resolution) (int, *isa.CycleRule) {
	if res.Kind != KindInstruction {
		return 0, nil
	}
	return r.set.Cycles().Cost(res.Mnemonic, res.Tags)
}

// IsSkippable reports whether raw is blank, a label, a comment or a directive.
func (r *Resolver) IsSkippable(raw string) bool {
	line := r.parse(raw)
	return line.IsBlank() || r.set.IsSkip(line.Text)
}

// IsStructurallyValid checks that raw resolves without computing anything
// from the result.
func (r *Resolver) IsStructurallyValid(raw string) error {
	if r.IsSkippable(raw) {
		return nil
	}
	_, err := r.Resolve(raw)
	return err
}
