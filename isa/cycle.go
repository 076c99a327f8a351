package isa

import (
	"fmt"
	"iter"
	"slices"

	"github.com/asm2table/asm2table/common/lifo"
)

// CycleRule assigns a cycle count to a mnemonic, optionally restricted to one
// exact operand tag sequence.
type CycleRule struct {
	Mnemonic string
	Operands []OperandTag // empty matches every operand shape
	Cycles   int
}

// Specific reports whether the rule is restricted to an operand shape.
func (r CycleRule) Specific() bool {
	return len(r.Operands) > 0
}

// Matches reports whether the rule applies to an instruction resolved to the
// given tags.
func (r CycleRule) Matches(mnemonic string, tags []OperandTag) bool {
	if r.Mnemonic != mnemonic {
		return false
	}
	return !r.Specific() || slices.Equal(r.Operands, tags)
}

func (r CycleRule) String() string {
	if !r.Specific() {
		return fmt.Sprintf("%s => %d", r.Mnemonic, r.Cycles)
	}
	return fmt.Sprintf("%s %s => %d", r.Mnemonic, Variant(r.Operands), r.Cycles)
}

// CycleChain is an ordered list of cycle rules. The most recently registered
// rule is consulted first; when nothing matches the baseline applies.
type CycleChain struct {
	baseline int
	rules    lifo.Stack[CycleRule]
}

// NewCycleChain returns an empty chain falling back to baseline.
func NewCycleChain(baseline int) *CycleChain {
	return &CycleChain{baseline: baseline}
}

// Register adds a rule with higher precedence than every rule before it.
func (c *CycleChain) Register(rule CycleRule) *CycleChain {
	c.rules.Push(rule)
	return c
}

// Baseline returns the cost used when no rule matches.
func (c *CycleChain) Baseline() int {
	return c.baseline
}

// Len returns the number of registered rules.
func (c *CycleChain) Len() int {
	return c.rules.Len()
}

// Rules yields the rules in evaluation order, highest precedence first.
func (c *CycleChain) Rules() iter.Seq2[int, CycleRule] {
	return c.rules.All()
}

// Cost returns the cycles of the first matching rule, and that rule. A nil
// rule means the baseline was used.
func (c *CycleChain) Cost(mnemonic string, tags []OperandTag) (int, *CycleRule) {
	for _, rule := range c.rules.All() {
		if rule.Matches(mnemonic, tags) {
			return rule.Cycles, &rule
		}
	}
	return c.baseline, nil
}

// clone copies the chain so later registrations on either copy stay apart.
func (c *CycleChain) clone() *CycleChain {
	rules := make([]CycleRule, 0, c.rules.Len())
	for _, rule := range c.rules.All() {
		rule.Operands = slices.Clone(rule.Operands)
		rules = append(rules, rule)
	}
	out := NewCycleChain(c.baseline)
	for _, rule := range slices.Backward(rules) {
		out.Register(rule)
	}
	return out
}

func (c *CycleChain) validate(set *InstructionSet) error {
	if c.baseline < 0 {
		return fmt.Errorf("%w: baseline %d", ErrInvalidCycles, c.baseline)
	}
	for _, rule := range c.rules.All() {
		if rule.Cycles < 0 {
			return fmt.Errorf("%w: rule %s", ErrInvalidCycles, rule)
		}
		if _, ok := set.variants[rule.Mnemonic]; !ok {
			return fmt.Errorf("%w: cycle rule %s", ErrUnknownMnemonic, rule)
		}
		for _, tag := range rule.Operands {
			if _, ok := set.operands[tag]; !ok {
				return fmt.Errorf("%w: %q in cycle rule %s", ErrUnknownTag, tag, rule)
			}
		}
	}
	return nil
}

// CycleTable is a read-only view of the cycle rules owned by an
// InstructionSet.
type CycleTable struct {
	chain *CycleChain
}

// Baseline returns the cost used when no rule matches.
func (t CycleTable) Baseline() int {
	return t.chain.Baseline()
}

// Len returns the number of rules.
func (t CycleTable) Len() int {
	return t.chain.Len()
}

// Rules yields the rules in evaluation order, highest precedence first.
func (t CycleTable) Rules() iter.Seq2[int, CycleRule] {
	return t.chain.Rules()
}

// Cost returns the cycles of the first matching rule, and that rule. A nil
// rule means the baseline was used.
func (t CycleTable) Cost(mnemonic string, tags []OperandTag) (int, *CycleRule) {
	return t.chain.Cost(mnemonic, tags)
}
