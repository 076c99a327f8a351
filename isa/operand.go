package isa

import (
	"regexp"
	"strings"
)

// OperandTag names a syntactic operand category, e.g. "Rn" or "imm1B".
type OperandTag string

// OperandClass holds everything known about one operand tag: the surface
// syntax it accepts and the addressing mode it stands for.
type OperandClass struct {
	Tag     OperandTag
	Pattern *regexp.Regexp
	Mode    AddressingMode
}

// Match reports whether token is written in this class's syntax.
func (c *OperandClass) Match(token string) bool {
	return c.Pattern.MatchString(token)
}

// Variant is one legal operand shape of a mnemonic.
type Variant []OperandTag

func (v Variant) String() string {
	tags := make([]string, len(v))
	for i, tag := range v {
		tags[i] = string(tag)
	}
	return strings.Join(tags, ", ")
}

// Instruction lists the operand shapes of a mnemonic in match order.
type Instruction struct {
	Mnemonic string
	Variants []Variant
}
