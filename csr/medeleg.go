package csr

import "github.com/nwf/sail-riscv/bitfield"

// medelegMEnvCall is the delegation bit for environment calls from
// machine mode.
var medelegMEnvCall = bitfield.Bit(11)

// sedelegField windows the exception causes a supervisor may in turn
// delegate: the low nine cause bits (misaligned fetch through
// environment call from user mode).
var sedelegField = bitfield.Field{Hi: 8, Lo: 0}

// Medeleg is the machine exception delegation register, one bit per
// synchronous exception cause.
type Medeleg uint64

// MEnvCall returns the delegation bit for machine-mode environment
// calls.
func (m Medeleg) MEnvCall() uint64 { return medelegMEnvCall.Get(uint64(m)) }

// LegalizeMedeleg filters a requested medeleg value. Environment calls
// from machine mode are always handled at machine level, so that
// delegation bit is forced to zero.
func LegalizeMedeleg(old Medeleg, v uint64) Medeleg {
	return Medeleg(medelegMEnvCall.Set(v, 0))
}
