package csr

import "github.com/nwf/sail-riscv/bitfield"

// misa extension bits. One bit per extension letter, A=0 through Z=25.
var (
	misaA = bitfield.Bit(0)
	misaC = bitfield.Bit(2)
	misaD = bitfield.Bit(3)
	misaF = bitfield.Bit(5)
	misaI = bitfield.Bit(8)
	misaM = bitfield.Bit(12)
	misaN = bitfield.Bit(13)
	misaS = bitfield.Bit(18)
	misaU = bitfield.Bit(20)
)

// Misa is the ISA-and-extensions register.
type Misa uint64

// Extension bit getters.
func (m Misa) A() uint64 { return misaA.Get(uint64(m)) }
func (m Misa) C() uint64 { return misaC.Get(uint64(m)) }
func (m Misa) D() uint64 { return misaD.Get(uint64(m)) }
func (m Misa) F() uint64 { return misaF.Get(uint64(m)) }
func (m Misa) I() uint64 { return misaI.Get(uint64(m)) }
func (m Misa) M() uint64 { return misaM.Get(uint64(m)) }
func (m Misa) N() uint64 { return misaN.Get(uint64(m)) }
func (m Misa) S() uint64 { return misaS.Get(uint64(m)) }
func (m Misa) U() uint64 { return misaU.Get(uint64(m)) }

// Extension bit setters, returning the modified value.
func (m Misa) WithA(v uint64) Misa { return Misa(misaA.Set(uint64(m), v)) }
func (m Misa) WithC(v uint64) Misa { return Misa(misaC.Set(uint64(m), v)) }
func (m Misa) WithD(v uint64) Misa { return Misa(misaD.Set(uint64(m), v)) }
func (m Misa) WithF(v uint64) Misa { return Misa(misaF.Set(uint64(m), v)) }
func (m Misa) WithI(v uint64) Misa { return Misa(misaI.Set(uint64(m), v)) }
func (m Misa) WithM(v uint64) Misa { return Misa(misaM.Set(uint64(m), v)) }
func (m Misa) WithN(v uint64) Misa { return Misa(misaN.Set(uint64(m), v)) }
func (m Misa) WithS(v uint64) Misa { return Misa(misaS.Set(uint64(m), v)) }
func (m Misa) WithU(v uint64) Misa { return Misa(misaU.Set(uint64(m), v)) }

// mxlField is the MXL field, which occupies the top two bits of the
// register and therefore moves with the register width.
func mxlField(x XLen) bitfield.Field {
	return bitfield.Field{Hi: uint8(x) - 1, Lo: uint8(x) - 2}
}

// MXL returns the machine-level width encoding.
func (m Misa) MXL(x XLen) uint64 {
	return mxlField(x).Get(uint64(m))
}

// WithMXL returns m with the machine-level width encoding replaced.
func (m Misa) WithMXL(x XLen, v uint64) Misa {
	return Misa(mxlField(x).Set(uint64(m), v))
}

// LegalizeMisa filters a requested misa value against the old value.
//
// The whole write is a no-op unless the platform makes misa writable.
// When it is, only the C, F and D bits can change:
//   - clearing C is honored only when compressed was enabled at boot
//     and no external veto applies; setting C is honored only when
//     compressed was enabled at boot
//   - F and D update together, only when float/double were enabled at
//     boot and the request is consistent (D set requires F set)
//
// Every other bit, MXL included, keeps its prior value.
func LegalizeMisa(caps Capabilities, old Misa, v uint64) Misa {
	if !caps.MisaWritable() {
		return old
	}

	req := Misa(v)
	m := old

	if req.C() == 0 {
		if caps.BootRVC() && !caps.VetoDisableC() {
			m = m.WithC(0)
		}
	} else if caps.BootRVC() {
		m = m.WithC(1)
	}

	if caps.BootFD() && !(req.D() == 1 && req.F() == 0) {
		m = m.WithF(req.F())
		m = m.WithD(req.D())
	}

	return m
}
