package csr

import "github.com/nwf/sail-riscv/bitfield"

// mtvecMode is the 2-bit trap-vector mode field; the rest of the
// register is the base address shifted right by two.
var mtvecMode = bitfield.Field{Hi: 1, Lo: 0}

// TrapVectorMode is a decoded mtvec/stvec mode field.
type TrapVectorMode uint64

// Trap vector modes. Encodings 2 and 3 are reserved.
const (
	TVDirect   TrapVectorMode = 0
	TVVectored TrapVectorMode = 1
)

// TrapVectorModeFromBits decodes a mode field, reporting false for the
// reserved encodings.
func TrapVectorModeFromBits(bits uint64) (TrapVectorMode, bool) {
	switch bits {
	case 0:
		return TVDirect, true
	case 1:
		return TVVectored, true
	}
	return 0, false
}

// Mtvec is the trap-vector base register layout, used for both mtvec
// and stvec.
type Mtvec uint64

// Mode returns the raw mode field.
func (t Mtvec) Mode() uint64 { return mtvecMode.Get(uint64(t)) }

// WithMode returns t with the mode field replaced.
func (t Mtvec) WithMode(v uint64) Mtvec { return Mtvec(mtvecMode.Set(uint64(t), v)) }

// Base returns the raw base field; the vector base address is this
// value shifted left by two.
func (t Mtvec) Base(x XLen) uint64 {
	return bitfield.Field{Hi: uint8(x) - 1, Lo: 2}.Get(uint64(t))
}

// WithBase returns t with the base field replaced.
func (t Mtvec) WithBase(x XLen, v uint64) Mtvec {
	return Mtvec(bitfield.Field{Hi: uint8(x) - 1, Lo: 2}.Set(uint64(t), v))
}

// LegalizeTvec filters a requested trap-vector value. The base field
// is always accepted; the mode field is accepted only when it decodes
// to a supported mode and otherwise keeps its prior value.
func LegalizeTvec(x XLen, old Mtvec, v uint64) Mtvec {
	t := Mtvec(v & x.Mask())
	if _, ok := TrapVectorModeFromBits(t.Mode()); ok {
		return t
	}
	return t.WithMode(old.Mode())
}
