package csr

import "github.com/nwf/sail-riscv/bitfield"

// mstatus fields at their width-independent positions. SD sits at the
// top bit and SXL/UXL only exist on 64-bit harts; those three are
// handled by the width-aware accessors below.
var (
	mstatusSXL  = bitfield.Field{Hi: 35, Lo: 34}
	mstatusUXL  = bitfield.Field{Hi: 33, Lo: 32}
	mstatusTSR  = bitfield.Bit(22)
	mstatusTW   = bitfield.Bit(21)
	mstatusTVM  = bitfield.Bit(20)
	mstatusMXR  = bitfield.Bit(19)
	mstatusSUM  = bitfield.Bit(18)
	mstatusMPRV = bitfield.Bit(17)
	mstatusXS   = bitfield.Field{Hi: 16, Lo: 15}
	mstatusFS   = bitfield.Field{Hi: 14, Lo: 13}
	mstatusMPP  = bitfield.Field{Hi: 12, Lo: 11}
	mstatusSPP  = bitfield.Bit(8)
	mstatusMPIE = bitfield.Bit(7)
	mstatusSPIE = bitfield.Bit(5)
	mstatusUPIE = bitfield.Bit(4)
	mstatusMIE  = bitfield.Bit(3)
	mstatusSIE  = bitfield.Bit(1)
	mstatusUIE  = bitfield.Bit(0)
)

// ExtStatus is the state of an extension context as encoded in the
// mstatus FS and XS fields.
type ExtStatus uint64

// Extension context states.
const (
	ExtOff     ExtStatus = 0
	ExtInitial ExtStatus = 1
	ExtClean   ExtStatus = 2
	ExtDirty   ExtStatus = 3
)

// Mstatus is the machine status register.
type Mstatus uint64

func (m Mstatus) TSR() uint64  { return mstatusTSR.Get(uint64(m)) }
func (m Mstatus) TW() uint64   { return mstatusTW.Get(uint64(m)) }
func (m Mstatus) TVM() uint64  { return mstatusTVM.Get(uint64(m)) }
func (m Mstatus) MXR() uint64  { return mstatusMXR.Get(uint64(m)) }
func (m Mstatus) SUM() uint64  { return mstatusSUM.Get(uint64(m)) }
func (m Mstatus) MPRV() uint64 { return mstatusMPRV.Get(uint64(m)) }
func (m Mstatus) XS() uint64   { return mstatusXS.Get(uint64(m)) }
func (m Mstatus) FS() uint64   { return mstatusFS.Get(uint64(m)) }
func (m Mstatus) MPP() uint64  { return mstatusMPP.Get(uint64(m)) }
func (m Mstatus) SPP() uint64  { return mstatusSPP.Get(uint64(m)) }
func (m Mstatus) MPIE() uint64 { return mstatusMPIE.Get(uint64(m)) }
func (m Mstatus) SPIE() uint64 { return mstatusSPIE.Get(uint64(m)) }
func (m Mstatus) UPIE() uint64 { return mstatusUPIE.Get(uint64(m)) }
func (m Mstatus) MIE() uint64  { return mstatusMIE.Get(uint64(m)) }
func (m Mstatus) SIE() uint64  { return mstatusSIE.Get(uint64(m)) }
func (m Mstatus) UIE() uint64  { return mstatusUIE.Get(uint64(m)) }

func (m Mstatus) WithTSR(v uint64) Mstatus  { return Mstatus(mstatusTSR.Set(uint64(m), v)) }
func (m Mstatus) WithTW(v uint64) Mstatus   { return Mstatus(mstatusTW.Set(uint64(m), v)) }
func (m Mstatus) WithTVM(v uint64) Mstatus  { return Mstatus(mstatusTVM.Set(uint64(m), v)) }
func (m Mstatus) WithMXR(v uint64) Mstatus  { return Mstatus(mstatusMXR.Set(uint64(m), v)) }
func (m Mstatus) WithSUM(v uint64) Mstatus  { return Mstatus(mstatusSUM.Set(uint64(m), v)) }
func (m Mstatus) WithMPRV(v uint64) Mstatus { return Mstatus(mstatusMPRV.Set(uint64(m), v)) }
func (m Mstatus) WithXS(v uint64) Mstatus   { return Mstatus(mstatusXS.Set(uint64(m), v)) }
func (m Mstatus) WithFS(v uint64) Mstatus   { return Mstatus(mstatusFS.Set(uint64(m), v)) }
func (m Mstatus) WithMPP(v uint64) Mstatus  { return Mstatus(mstatusMPP.Set(uint64(m), v)) }
func (m Mstatus) WithSPP(v uint64) Mstatus  { return Mstatus(mstatusSPP.Set(uint64(m), v)) }
func (m Mstatus) WithMPIE(v uint64) Mstatus { return Mstatus(mstatusMPIE.Set(uint64(m), v)) }
func (m Mstatus) WithSPIE(v uint64) Mstatus { return Mstatus(mstatusSPIE.Set(uint64(m), v)) }
func (m Mstatus) WithUPIE(v uint64) Mstatus { return Mstatus(mstatusUPIE.Set(uint64(m), v)) }
func (m Mstatus) WithMIE(v uint64) Mstatus  { return Mstatus(mstatusMIE.Set(uint64(m), v)) }
func (m Mstatus) WithSIE(v uint64) Mstatus  { return Mstatus(mstatusSIE.Set(uint64(m), v)) }
func (m Mstatus) WithUIE(v uint64) Mstatus  { return Mstatus(mstatusUIE.Set(uint64(m), v)) }

// SD returns the state-dirty summary bit, which sits at the top bit of
// the register.
func (m Mstatus) SD(x XLen) uint64 {
	return bitfield.Bit(uint8(x) - 1).Get(uint64(m))
}

// WithSD returns m with the state-dirty summary bit replaced.
func (m Mstatus) WithSD(x XLen, v uint64) Mstatus {
	return Mstatus(bitfield.Bit(uint8(x) - 1).Set(uint64(m), v))
}

// SXL returns the supervisor-level width encoding. A 32-bit hart has
// no SXL field; it reads as the RV32 encoding.
func (m Mstatus) SXL(x XLen) uint64 {
	if x == XLen32 {
		return RV32.Bits()
	}
	return mstatusSXL.Get(uint64(m))
}

// WithSXL returns m with the supervisor-level width encoding replaced.
// On a 32-bit hart the field does not exist and m is returned as is.
func (m Mstatus) WithSXL(x XLen, v uint64) Mstatus {
	if x == XLen32 {
		return m
	}
	return Mstatus(mstatusSXL.Set(uint64(m), v))
}

// UXL returns the user-level width encoding, RV32 on a 32-bit hart.
func (m Mstatus) UXL(x XLen) uint64 {
	if x == XLen32 {
		return RV32.Bits()
	}
	return mstatusUXL.Get(uint64(m))
}

// WithUXL returns m with the user-level width encoding replaced, a
// no-op on a 32-bit hart.
func (m Mstatus) WithUXL(x XLen, v uint64) Mstatus {
	if x == XLen32 {
		return m
	}
	return Mstatus(mstatusUXL.Set(uint64(m), v))
}

// LegalizeMstatus filters a requested mstatus value against the old
// value:
//   - XS is forced Off (no extension context is modeled)
//   - SD is recomputed from the new FS and XS, never taken from the
//     request
//   - SXL and UXL keep their prior values; they are not writable
//   - UPIE and UIE are hardwired to zero without the N extension
//   - MPRV is hardwired to zero without user mode
func LegalizeMstatus(x XLen, misa Misa, old Mstatus, v uint64) Mstatus {
	m := Mstatus(v & x.Mask())

	m = m.WithXS(uint64(ExtOff))
	dirty := ExtStatus(m.FS()) == ExtDirty || ExtStatus(m.XS()) == ExtDirty
	m = m.WithSD(x, boolBit(dirty))

	m = m.WithSXL(x, old.SXL(x))
	m = m.WithUXL(x, old.UXL(x))

	if misa.N() == 0 {
		m = m.WithUPIE(0)
		m = m.WithUIE(0)
	}
	if misa.U() == 0 {
		m = m.WithMPRV(0)
	}

	return m
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
