// Package isa holds the static description of an instruction set: operand
// classes, operand shapes per mnemonic, cycle rules and the directives that
// are not instructions at all.
package isa

import (
	"fmt"
	"regexp"
	"slices"
)

// Definition is the raw material of an InstructionSet.
type Definition struct {
	Name         string
	Operands     []OperandClass
	Instructions []Instruction
	Cycles       *CycleChain
	Skip         []*regexp.Regexp
}

// InstructionSet is immutable once built and safe for concurrent use.
type InstructionSet struct {
	name      string
	operands  map[OperandTag]*OperandClass
	tags      []OperandTag
	variants  map[string][]Variant
	mnemonics []string
	cycles    *CycleChain
	skip      []*regexp.Regexp
}

// New validates def and builds the instruction set. Every tag used by a
// variant or a cycle rule must be defined exactly once.
func New(def Definition) (*InstructionSet, error) {
	set := &InstructionSet{
		name:     def.Name,
		operands: make(map[OperandTag]*OperandClass, len(def.Operands)),
		variants: make(map[string][]Variant, len(def.Instructions)),
		skip:     slices.Clone(def.Skip),
	}
	if def.Cycles == nil {
		set.cycles = NewCycleChain(1)
	} else {
		set.cycles = def.Cycles.clone()
	}

	for i := range def.Operands {
		class := def.Operands[i]
		if _, exist := set.operands[class.Tag]; exist {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, class.Tag)
		}
		if class.Pattern == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingPattern, class.Tag)
		}
		if err := class.Mode.validate(); err != nil {
			return nil, fmt.Errorf("operand %q: %w", class.Tag, err)
		}
		set.operands[class.Tag] = &class
		set.tags = append(set.tags, class.Tag)
	}

	for _, ins := range def.Instructions {
		if _, exist := set.variants[ins.Mnemonic]; exist {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMnemonic, ins.Mnemonic)
		}
		variants := make([]Variant, 0, len(ins.Variants))
		for _, variant := range ins.Variants {
			for _, tag := range variant {
				if _, ok := set.operands[tag]; !ok {
					return nil, fmt.Errorf("%w: %q in %s %s", ErrUnknownTag, tag, ins.Mnemonic, variant)
				}
			}
			variants = append(variants, slices.Clone(variant))
		}
		set.variants[ins.Mnemonic] = variants
		set.mnemonics = append(set.mnemonics, ins.Mnemonic)
	}

	for _, pattern := range set.skip {
		if pattern == nil {
			return nil, fmt.Errorf("%w: skip list entry", ErrMissingPattern)
		}
	}

	if err := set.cycles.validate(set); err != nil {
		return nil, err
	}
	return set, nil
}

// Name returns the instruction set's name.
func (s *InstructionSet) Name() string {
	return s.name
}

// Mnemonics returns the mnemonics in declaration order.
func (s *InstructionSet) Mnemonics() []string {
	return slices.Clone(s.mnemonics)
}

// Tags returns the operand tags in declaration order.
func (s *InstructionSet) Tags() []OperandTag {
	return slices.Clone(s.tags)
}

// VariantsOf returns the operand shapes of mnemonic in match order. An empty
// list with ok set means the instruction takes no operands.
func (s *InstructionSet) VariantsOf(mnemonic string) (variants []Variant, ok bool) {
	variants, ok = s.variants[mnemonic]
	return variants, ok
}

// Classify reports whether token is written in the syntax of tag. Undefined
// tags never match.
func (s *InstructionSet) Classify(tag OperandTag, token string) bool {
	class, ok := s.operands[tag]
	return ok && class.Match(token)
}

// AddressingModeOf returns the addressing mode a tag stands for.
func (s *InstructionSet) AddressingModeOf(tag OperandTag) (AddressingMode, bool) {
	class, ok := s.operands[tag]
	if !ok {
		return AddressingMode{}, false
	}
	return class.Mode, true
}

// ByteWidthOf returns the bytes an operand of tag adds to an instruction.
func (s *InstructionSet) ByteWidthOf(tag OperandTag) int {
	mode, _ := s.AddressingModeOf(tag)
	return mode.ByteWidth()
}

// Cycles returns the cycle rules of the set. The chain given to New is
// copied, so registering on it afterwards has no effect here.
func (s *InstructionSet) Cycles() CycleTable {
	return CycleTable{chain: s.cycles}
}

// IsSkip reports whether a stripped line is a directive rather than an
// instruction.
func (s *InstructionSet) IsSkip(line string) bool {
	return slices.ContainsFunc(s.skip, func(pattern *regexp.Regexp) bool {
		return pattern.MatchString(line)
	})
}
