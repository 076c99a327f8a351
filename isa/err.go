package isa

import "errors"

// Configuration errors, reported when an instruction set is built.
var (
	ErrInvalidMode       = errors.New("invalid addressing mode")
	ErrDuplicateTag      = errors.New("operand tag defined twice")
	ErrUnknownTag        = errors.New("operand tag not defined")
	ErrMissingPattern    = errors.New("operand tag has no pattern")
	ErrDuplicateMnemonic = errors.New("mnemonic defined twice")
	ErrUnknownMnemonic   = errors.New("mnemonic not defined")
	ErrInvalidCycles     = errors.New("invalid cycle count")
)
