package csr

import "github.com/nwf/sail-riscv/bitfield"

// Mcause is the trap cause register layout, used for both mcause and
// scause: the top bit distinguishes interrupts from exceptions and
// the remaining bits hold the cause code.
type Mcause uint64

// IsInterrupt reports whether the cause records an interrupt.
func (c Mcause) IsInterrupt(x XLen) bool {
	return bitfield.Bit(uint8(x) - 1).IsSet(uint64(c))
}

// Cause returns the cause code.
func (c Mcause) Cause(x XLen) uint64 {
	return bitfield.Field{Hi: uint8(x) - 2, Lo: 0}.Get(uint64(c))
}

// WithIsInterrupt returns c with the interrupt bit replaced.
func (c Mcause) WithIsInterrupt(x XLen, v bool) Mcause {
	return Mcause(bitfield.Bit(uint8(x) - 1).Set(uint64(c), boolBit(v)))
}

// WithCause returns c with the cause code replaced.
func (c Mcause) WithCause(x XLen, v uint64) Mcause {
	return Mcause(bitfield.Field{Hi: uint8(x) - 2, Lo: 0}.Set(uint64(c), v))
}
