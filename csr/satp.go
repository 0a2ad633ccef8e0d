package csr

import "github.com/nwf/sail-riscv/bitfield"

// 64-bit satp layout.
var (
	satp64Mode = bitfield.Field{Hi: 63, Lo: 60}
	satp64Asid = bitfield.Field{Hi: 59, Lo: 44}
	satp64PPN  = bitfield.Field{Hi: 43, Lo: 0}
)

// 32-bit satp layout.
var (
	satp32Mode = bitfield.Bit(31)
	satp32Asid = bitfield.Field{Hi: 30, Lo: 22}
	satp32PPN  = bitfield.Field{Hi: 21, Lo: 0}
)

// SatpMode is a decoded address-translation mode.
type SatpMode uint8

// Address translation modes.
const (
	Sbare SatpMode = 0
	Sv32  SatpMode = 1
	Sv39  SatpMode = 8
	Sv48  SatpMode = 9
)

// SatpModeFromBits decodes a satp mode field for the given register
// width, reporting false for encodings the width does not define.
func SatpModeFromBits(a Architecture, bits uint64) (SatpMode, bool) {
	switch a {
	case RV32:
		switch bits {
		case 0:
			return Sbare, true
		case 1:
			return Sv32, true
		}
	case RV64:
		switch bits {
		case 0:
			return Sbare, true
		case 8:
			return Sv39, true
		case 9:
			return Sv48, true
		}
	}
	return 0, false
}

// Satp64 is the 64-bit address-translation-and-protection register.
type Satp64 uint64

func (s Satp64) Mode() uint64 { return satp64Mode.Get(uint64(s)) }
func (s Satp64) Asid() uint64 { return satp64Asid.Get(uint64(s)) }
func (s Satp64) PPN() uint64  { return satp64PPN.Get(uint64(s)) }

func (s Satp64) WithMode(v uint64) Satp64 { return Satp64(satp64Mode.Set(uint64(s), v)) }
func (s Satp64) WithAsid(v uint64) Satp64 { return Satp64(satp64Asid.Set(uint64(s), v)) }
func (s Satp64) WithPPN(v uint64) Satp64  { return Satp64(satp64PPN.Set(uint64(s), v)) }

// Satp32 is the 32-bit address-translation-and-protection register.
type Satp32 uint64

func (s Satp32) Mode() uint64 { return satp32Mode.Get(uint64(s)) }
func (s Satp32) Asid() uint64 { return satp32Asid.Get(uint64(s)) }
func (s Satp32) PPN() uint64  { return satp32PPN.Get(uint64(s)) }

func (s Satp32) WithMode(v uint64) Satp32 { return Satp32(satp32Mode.Set(uint64(s), v)) }
func (s Satp32) WithAsid(v uint64) Satp32 { return Satp32(satp32Asid.Set(uint64(s), v)) }
func (s Satp32) WithPPN(v uint64) Satp32  { return Satp32(satp32PPN.Set(uint64(s), v)) }

// LegalizeSatp64 filters a requested 64-bit satp value. A mode the
// architecture does not define, or Sv32 (unsupported on the 64-bit
// layout), discards the whole write and keeps the old value; any
// supported mode accepts the full request including ASID and PPN.
func LegalizeSatp64(a Architecture, old Satp64, v uint64) Satp64 {
	s := Satp64(v)
	mode, ok := SatpModeFromBits(a, s.Mode())
	if !ok || mode == Sv32 {
		return old
	}
	return s
}

// LegalizeSatp32 filters a requested 32-bit satp value. All encodings
// are currently accepted as written.
func LegalizeSatp32(a Architecture, old Satp32, v uint64) Satp32 {
	return Satp32(v)
}
