// Package profile loads instruction set profiles. The MCS-51 profile is
// compiled into the binary; other profiles can be loaded from YAML files.
package profile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"

	"github.com/asm2table/asm2table/isa"
	"gopkg.in/yaml.v3"
)

//go:embed mcs51.yaml
var mcs51 []byte

const defaultBaselineCycles = 1

// Profile is the YAML form of an instruction set.
type Profile struct {
	Name           string            `yaml:"name"`
	BaselineCycles *int              `yaml:"baseline_cycles"`
	Operands       []OperandSpec     `yaml:"operands"`
	Instructions   []InstructionSpec `yaml:"instructions"`
	CycleRules     []CycleRuleSpec   `yaml:"cycle_rules"` // lowest precedence first
	Skip           []string          `yaml:"skip"`
}

// OperandSpec describes one operand tag.
type OperandSpec struct {
	Tag     string `yaml:"tag"`
	Pattern string `yaml:"pattern"`
	Mode    string `yaml:"mode"`
	Width   int    `yaml:"width"`
}

// InstructionSpec lists the operand shapes of a mnemonic.
type InstructionSpec struct {
	Mnemonic string     `yaml:"mnemonic"`
	Variants [][]string `yaml:"variants"`
}

// CycleRuleSpec assigns cycles to a mnemonic, or to a mnemonic with one exact
// operand tag sequence when Operands is set.
type CycleRuleSpec struct {
	Mnemonic string   `yaml:"mnemonic"`
	Operands []string `yaml:"operands"`
	Cycles   int      `yaml:"cycles"`
}

// LoadProfile loads a profile from a YAML file.
func LoadProfile(filename string) (*Profile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return Decode(file)
}

// Decode reads a YAML profile. Unknown keys are rejected.
func Decode(r io.Reader) (*Profile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var prof Profile
	if err := dec.Decode(&prof); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("failed to parse profile: empty document")
		}
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &prof, nil
}

// Default returns the built-in MCS-51 profile.
func Default() (*Profile, error) {
	return Decode(bytes.NewReader(mcs51))
}

var defaultSet = sync.OnceValues(func() (*isa.InstructionSet, error) {
	prof, err := Default()
	if err != nil {
		return nil, err
	}
	return prof.Build()
})

// DefaultInstructionSet returns the built-in instruction set. It is built on
// first use and shared afterwards.
func DefaultInstructionSet() (*isa.InstructionSet, error) {
	return defaultSet()
}

// Build compiles the profile into an instruction set.
func (p *Profile) Build() (*isa.InstructionSet, error) {
	def := isa.Definition{Name: p.Name}

	for _, op := range p.Operands {
		class, err := op.class()
		if err != nil {
			return nil, err
		}
		def.Operands = append(def.Operands, class)
	}

	for _, ins := range p.Instructions {
		if ins.Mnemonic == "" {
			return nil, errors.New("instruction without mnemonic")
		}
		entry := isa.Instruction{Mnemonic: ins.Mnemonic}
		for _, variant := range ins.Variants {
			entry.Variants = append(entry.Variants, toTags(variant))
		}
		def.Instructions = append(def.Instructions, entry)
	}

	baseline := defaultBaselineCycles
	if p.BaselineCycles != nil {
		baseline = *p.BaselineCycles
	}
	def.Cycles = isa.NewCycleChain(baseline)
	for _, rule := range p.CycleRules {
		def.Cycles.Register(isa.CycleRule{
			Mnemonic: rule.Mnemonic,
			Operands: toTags(rule.Operands),
			Cycles:   rule.Cycles,
		})
	}

	for _, expr := range p.Skip {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid skip pattern %q: %w", expr, err)
		}
		def.Skip = append(def.Skip, pattern)
	}

	set, err := isa.New(def)
	if err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", p.Name, err)
	}
	return set, nil
}

func (op OperandSpec) class() (isa.OperandClass, error) {
	if op.Tag == "" {
		return isa.OperandClass{}, errors.New("operand without tag")
	}
	kind, err := isa.ParseModeKind(op.Mode)
	if err != nil {
		return isa.OperandClass{}, fmt.Errorf("operand %q: %w", op.Tag, err)
	}
	mode, err := isa.NewAddressingMode(kind, op.Width)
	if err != nil {
		return isa.OperandClass{}, fmt.Errorf("operand %q: %w", op.Tag, err)
	}
	if op.Pattern == "" {
		return isa.OperandClass{}, fmt.Errorf("%w: %q", isa.ErrMissingPattern, op.Tag)
	}
	pattern, err := regexp.Compile(op.Pattern)
	if err != nil {
		return isa.OperandClass{}, fmt.Errorf("operand %q: invalid pattern: %w", op.Tag, err)
	}
	return isa.OperandClass{
		Tag:     isa.OperandTag(op.Tag),
		Pattern: pattern,
		Mode:    mode,
	}, nil
}

func toTags(names []string) []isa.OperandTag {
	if len(names) == 0 {
		return nil
	}
	tags := make([]isa.OperandTag, len(names))
	for i, name := range names {
		tags[i] = isa.OperandTag(name)
	}
	return tags
}
