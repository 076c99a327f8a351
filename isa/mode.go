package isa

import (
	"fmt"
	"strings"
)

// ModeKind enumerates the addressing modes of the instruction set.
type ModeKind int

const (
	ModeImplied ModeKind = iota
	ModeImmediate
	ModeDirect
	ModeRegisterDirect
	ModeRegisterIndirect
	ModeIndexed
)

var modeNames = map[ModeKind]string{
	ModeImplied:          "Implied",
	ModeImmediate:        "Immediate",
	ModeDirect:           "Direct",
	ModeRegisterDirect:   "Register",
	ModeRegisterIndirect: "Indirect",
	ModeIndexed:          "Indexed",
}

func (k ModeKind) String() string {
	if name, ok := modeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ModeKind(%d)", int(k))
}

// ParseModeKind maps a configuration name to a ModeKind. Matching is case
// insensitive and accepts the long register forms as aliases.
func ParseModeKind(name string) (ModeKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "implied":
		return ModeImplied, nil
	case "immediate":
		return ModeImmediate, nil
	case "direct":
		return ModeDirect, nil
	case "register", "register-direct":
		return ModeRegisterDirect, nil
	case "indirect", "register-indirect":
		return ModeRegisterIndirect, nil
	case "indexed":
		return ModeIndexed, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, name)
}

// AddressingMode is the access pattern implied by an operand tag together
// with the number of bytes the operand adds to the instruction.
type AddressingMode struct {
	Kind  ModeKind
	Width int
}

var (
	RegisterDirect   = AddressingMode{Kind: ModeRegisterDirect}
	RegisterIndirect = AddressingMode{Kind: ModeRegisterIndirect}
	Indexed          = AddressingMode{Kind: ModeIndexed}
	Implied          = AddressingMode{Kind: ModeImplied}
)

// Immediate returns an immediate mode carrying a width-byte literal.
func Immediate(width int) AddressingMode {
	return AddressingMode{Kind: ModeImmediate, Width: width}
}

// Direct returns a direct mode carrying a width-byte address.
func Direct(width int) AddressingMode {
	return AddressingMode{Kind: ModeDirect, Width: width}
}

// NewAddressingMode builds and validates a mode.
func NewAddressingMode(kind ModeKind, width int) (AddressingMode, error) {
	m := AddressingMode{Kind: kind, Width: width}
	return m, m.validate()
}

// ByteWidth returns the number of bytes the operand contributes.
func (m AddressingMode) ByteWidth() int {
	return m.Width
}

func (m AddressingMode) String() string {
	return m.Kind.String()
}

// MarshalText renders the mode by its display name.
func (m AddressingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m AddressingMode) validate() error {
	switch m.Kind {
	case ModeImmediate, ModeDirect:
		if m.Width != 1 && m.Width != 2 {
			return fmt.Errorf("%w: %s needs width 1 or 2, got %d", ErrInvalidMode, m.Kind, m.Width)
		}
	case ModeImplied, ModeRegisterDirect, ModeRegisterIndirect, ModeIndexed:
		if m.Width != 0 {
			return fmt.Errorf("%w: %s carries no bytes, got width %d", ErrInvalidMode, m.Kind, m.Width)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidMode, int(m.Kind))
	}
	return nil
}
