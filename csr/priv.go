package csr

import "fmt"

// Privilege is a hart privilege level, encoded as in mstatus.MPP.
type Privilege uint8

// Privilege levels.
const (
	PrivUser       Privilege = 0b00
	PrivSupervisor Privilege = 0b01
	PrivMachine    Privilege = 0b11
)

// PrivilegeFromBits decodes a 2-bit privilege encoding. The encoding
// 0b10 is reserved and reports false.
func PrivilegeFromBits(bits uint64) (Privilege, bool) {
	switch bits {
	case 0b00:
		return PrivUser, true
	case 0b01:
		return PrivSupervisor, true
	case 0b11:
		return PrivMachine, true
	}
	return 0, false
}

func (p Privilege) String() string {
	switch p {
	case PrivUser:
		return "U"
	case PrivSupervisor:
		return "S"
	case PrivMachine:
		return "M"
	}
	return fmt.Sprintf("Privilege(%d)", uint8(p))
}

// AccessType classifies a memory access for privilege resolution.
type AccessType uint8

// Access types.
const (
	AccessRead AccessType = iota
	AccessWrite
	AccessReadWrite
	AccessExecute
)

// EffectivePrivilege resolves the privilege level a memory access runs
// at. Instruction fetches always use the current privilege; data
// accesses use the privilege encoded in mstatus.MPP when mstatus.MPRV
// is set.
//
// An unrecognized MPP encoding panics: legalization keeps MPP to valid
// encodings, so reaching one here means an invariant was violated
// elsewhere.
func EffectivePrivilege(t AccessType, m Mstatus, priv Privilege) Privilege {
	if t != AccessExecute && m.MPRV() == 1 {
		p, ok := PrivilegeFromBits(m.MPP())
		if !ok {
			panic(fmt.Sprintf("invalid privilege encoding %#b in MPP", m.MPP()))
		}
		return p
	}
	return priv
}

// Architecture is a register-width encoding as stored in misa.MXL and
// the mstatus SXL/UXL fields.
type Architecture uint8

// Architecture encodings.
const (
	RV32  Architecture = 1
	RV64  Architecture = 2
	RV128 Architecture = 3
)

// ArchitectureFromBits decodes a 2-bit width encoding. The encoding 0
// is reserved and reports false.
func ArchitectureFromBits(bits uint64) (Architecture, bool) {
	switch bits {
	case 1:
		return RV32, true
	case 2:
		return RV64, true
	case 3:
		return RV128, true
	}
	return 0, false
}

// Bits returns the 2-bit encoding of the architecture.
func (a Architecture) Bits() uint64 { return uint64(a) }

func (a Architecture) String() string {
	switch a {
	case RV32:
		return "RV32"
	case RV64:
		return "RV64"
	case RV128:
		return "RV128"
	}
	return fmt.Sprintf("Architecture(%d)", uint8(a))
}

// CurrentArchitecture returns the effective register width for the
// hart's current privilege level: misa.MXL at machine level, the SXL
// view at supervisor level, and the UXL view at user level.
//
// Decoding an unrecognized width encoding panics; legalization keeps
// these fields to valid encodings.
func (h *Hart) CurrentArchitecture() Architecture {
	var bits uint64
	switch h.priv {
	case PrivMachine:
		bits = h.misa.MXL(h.xlen)
	case PrivSupervisor:
		bits = h.mstatus.SXL(h.xlen)
	default:
		bits = h.mstatus.UXL(h.xlen)
	}
	a, ok := ArchitectureFromBits(bits)
	if !ok {
		panic(fmt.Sprintf("invalid architecture encoding %#b at privilege %v", bits, h.priv))
	}
	return a
}
