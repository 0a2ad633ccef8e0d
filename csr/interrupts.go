package csr

import "github.com/nwf/sail-riscv/bitfield"

// Interrupt bit positions, shared by mip, mie, mideleg and their
// supervisor views. One bit per (external, timer, software) x
// (machine, supervisor, user) pair.
var (
	intrMEI = bitfield.Bit(11)
	intrSEI = bitfield.Bit(9)
	intrUEI = bitfield.Bit(8)
	intrMTI = bitfield.Bit(7)
	intrSTI = bitfield.Bit(5)
	intrUTI = bitfield.Bit(4)
	intrMSI = bitfield.Bit(3)
	intrSSI = bitfield.Bit(1)
	intrUSI = bitfield.Bit(0)
)

// Minterrupts is the machine-level interrupt bit layout, used for
// mip, mie and mideleg.
type Minterrupts uint64

func (m Minterrupts) MEI() uint64 { return intrMEI.Get(uint64(m)) }
func (m Minterrupts) SEI() uint64 { return intrSEI.Get(uint64(m)) }
func (m Minterrupts) UEI() uint64 { return intrUEI.Get(uint64(m)) }
func (m Minterrupts) MTI() uint64 { return intrMTI.Get(uint64(m)) }
func (m Minterrupts) STI() uint64 { return intrSTI.Get(uint64(m)) }
func (m Minterrupts) UTI() uint64 { return intrUTI.Get(uint64(m)) }
func (m Minterrupts) MSI() uint64 { return intrMSI.Get(uint64(m)) }
func (m Minterrupts) SSI() uint64 { return intrSSI.Get(uint64(m)) }
func (m Minterrupts) USI() uint64 { return intrUSI.Get(uint64(m)) }

func (m Minterrupts) WithMEI(v uint64) Minterrupts { return Minterrupts(intrMEI.Set(uint64(m), v)) }
func (m Minterrupts) WithSEI(v uint64) Minterrupts { return Minterrupts(intrSEI.Set(uint64(m), v)) }
func (m Minterrupts) WithUEI(v uint64) Minterrupts { return Minterrupts(intrUEI.Set(uint64(m), v)) }
func (m Minterrupts) WithMTI(v uint64) Minterrupts { return Minterrupts(intrMTI.Set(uint64(m), v)) }
func (m Minterrupts) WithSTI(v uint64) Minterrupts { return Minterrupts(intrSTI.Set(uint64(m), v)) }
func (m Minterrupts) WithUTI(v uint64) Minterrupts { return Minterrupts(intrUTI.Set(uint64(m), v)) }
func (m Minterrupts) WithMSI(v uint64) Minterrupts { return Minterrupts(intrMSI.Set(uint64(m), v)) }
func (m Minterrupts) WithSSI(v uint64) Minterrupts { return Minterrupts(intrSSI.Set(uint64(m), v)) }
func (m Minterrupts) WithUSI(v uint64) Minterrupts { return Minterrupts(intrUSI.Set(uint64(m), v)) }

// Sinterrupts is the supervisor-level interrupt view, used for sip,
// sie and sideleg. Bit positions match Minterrupts.
type Sinterrupts uint64

func (s Sinterrupts) SEI() uint64 { return intrSEI.Get(uint64(s)) }
func (s Sinterrupts) UEI() uint64 { return intrUEI.Get(uint64(s)) }
func (s Sinterrupts) STI() uint64 { return intrSTI.Get(uint64(s)) }
func (s Sinterrupts) UTI() uint64 { return intrUTI.Get(uint64(s)) }
func (s Sinterrupts) SSI() uint64 { return intrSSI.Get(uint64(s)) }
func (s Sinterrupts) USI() uint64 { return intrUSI.Get(uint64(s)) }

func (s Sinterrupts) WithSEI(v uint64) Sinterrupts { return Sinterrupts(intrSEI.Set(uint64(s), v)) }
func (s Sinterrupts) WithUEI(v uint64) Sinterrupts { return Sinterrupts(intrUEI.Set(uint64(s), v)) }
func (s Sinterrupts) WithSTI(v uint64) Sinterrupts { return Sinterrupts(intrSTI.Set(uint64(s), v)) }
func (s Sinterrupts) WithUTI(v uint64) Sinterrupts { return Sinterrupts(intrUTI.Set(uint64(s), v)) }
func (s Sinterrupts) WithSSI(v uint64) Sinterrupts { return Sinterrupts(intrSSI.Set(uint64(s), v)) }
func (s Sinterrupts) WithUSI(v uint64) Sinterrupts { return Sinterrupts(intrUSI.Set(uint64(s), v)) }

// LegalizeMip filters a requested mip value against the old value.
// The machine-level pending bits are owned by the platform and keep
// their prior values; only the supervisor pending bits are writable,
// plus the user pending bits when user mode and the N extension are
// both present.
func LegalizeMip(misa Misa, old Minterrupts, v uint64) Minterrupts {
	req := Minterrupts(v)
	m := old
	m = m.WithSEI(req.SEI())
	m = m.WithSTI(req.STI())
	m = m.WithSSI(req.SSI())
	if misa.U() == 1 && misa.N() == 1 {
		m = m.WithUEI(req.UEI())
		m = m.WithUTI(req.UTI())
		m = m.WithUSI(req.USI())
	}
	return m
}

// LegalizeMie filters a requested mie value against the old value.
// Machine- and supervisor-level enable bits are writable; the user
// enable bits additionally require user mode and the N extension.
func LegalizeMie(misa Misa, old Minterrupts, v uint64) Minterrupts {
	req := Minterrupts(v)
	m := old
	m = m.WithMEI(req.MEI())
	m = m.WithMTI(req.MTI())
	m = m.WithMSI(req.MSI())
	m = m.WithSEI(req.SEI())
	m = m.WithSTI(req.STI())
	m = m.WithSSI(req.SSI())
	if misa.U() == 1 && misa.N() == 1 {
		m = m.WithUEI(req.UEI())
		m = m.WithUTI(req.UTI())
		m = m.WithUSI(req.USI())
	}
	return m
}

// LegalizeMideleg filters a requested mideleg value. A hart may not
// delegate its own machine-level interrupts, so MEI, MTI and MSI are
// always forced to zero.
func LegalizeMideleg(old Minterrupts, v uint64) Minterrupts {
	m := Minterrupts(v)
	m = m.WithMEI(0)
	m = m.WithMTI(0)
	m = m.WithMSI(0)
	return m
}

// LowerInterrupts projects machine-level interrupt bits into the
// supervisor view: each visible bit is the AND of the machine bit and
// its delegation bit, so undelegated interrupts are invisible below
// machine level.
func LowerInterrupts(m, deleg Minterrupts) Sinterrupts {
	var s Sinterrupts
	s = s.WithSEI(m.SEI() & deleg.SEI())
	s = s.WithSTI(m.STI() & deleg.STI())
	s = s.WithSSI(m.SSI() & deleg.SSI())
	s = s.WithUEI(m.UEI() & deleg.UEI())
	s = s.WithUTI(m.UTI() & deleg.UTI())
	s = s.WithUSI(m.USI() & deleg.USI())
	return s
}

// LiftSip folds a sip write back into mip. A bit position changes only
// when its delegation bit is currently set; of the delegated bits,
// only the software-pending bit is supervisor-writable, plus the user
// external/software pending bits with the N extension.
func LiftSip(misa Misa, old, deleg Minterrupts, s Sinterrupts) Minterrupts {
	m := old
	if deleg.SSI() == 1 {
		m = m.WithSSI(s.SSI())
	}
	if misa.N() == 1 {
		if deleg.UEI() == 1 {
			m = m.WithUEI(s.UEI())
		}
		if deleg.USI() == 1 {
			m = m.WithUSI(s.USI())
		}
	}
	return m
}

// LiftSie folds a sie write back into mie. Supervisor enable bits
// update wherever delegated; user enable bits additionally require
// the N extension.
func LiftSie(misa Misa, old, deleg Minterrupts, s Sinterrupts) Minterrupts {
	m := old
	if deleg.SEI() == 1 {
		m = m.WithSEI(s.SEI())
	}
	if deleg.STI() == 1 {
		m = m.WithSTI(s.STI())
	}
	if deleg.SSI() == 1 {
		m = m.WithSSI(s.SSI())
	}
	if misa.N() == 1 {
		if deleg.UEI() == 1 {
			m = m.WithUEI(s.UEI())
		}
		if deleg.UTI() == 1 {
			m = m.WithUTI(s.UTI())
		}
		if deleg.USI() == 1 {
			m = m.WithUSI(s.USI())
		}
	}
	return m
}
