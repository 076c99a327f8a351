package resolver

import (
	"sync"

	"github.com/asm2table/asm2table/isa"
	"github.com/asm2table/asm2table/profile"
)

var defaultResolver = sync.OnceValues(func() (*Resolver, error) {
	set, err := profile.DefaultInstructionSet()
	if err != nil {
		return nil, err
	}
	return New(set, Options{}), nil
})

// Default returns a resolver for the built-in MCS-51 instruction set.
func Default() (*Resolver, error) {
	return defaultResolver()
}

// ResolveAddressingModes resolves raw against the built-in instruction set.
func ResolveAddressingModes(raw string) ([]isa.AddressingMode, error) {
	r, err := Default()
	if err != nil {
		return nil, err
	}
	return r.ResolveAddressingModes(raw)
}

// ResolveByteLength resolves raw against the built-in instruction set.
func ResolveByteLength(raw string) (int, error) {
	r, err := Default()
	if err != nil {
		return 0, err
	}
	return r.ResolveByteLength(raw)
}

// ResolveCycleCost resolves raw against the built-in instruction set.
func ResolveCycleCost(raw string) (int, error) {
	r, err := Default()
	if err != nil {
		return 0, err
	}
	return r.ResolveCycleCost(raw)
}
