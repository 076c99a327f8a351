package resolver

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrUnexpectedOperands = errors.New("unexpected operands")
	ErrNoMatchingVariant  = errors.New("no matching operand variant")
)

// ParseError reports a line that could not be resolved. Err is one of the
// sentinel errors above.
type ParseError struct {
	Line     string // raw line
	Mnemonic string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Mnemonic, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MatchError reports a line whose cycle cost could not be determined because
// the line itself did not resolve.
type MatchError struct {
	Line string
	Err  error
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("no cycle cost: %v", e.Err)
}

func (e *MatchError) Unwrap() error {
	return e.Err
}
