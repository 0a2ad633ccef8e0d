// Package csr models the privileged control-and-status-register state
// of a single RISC-V hart.
//
// The Hart type is the system of record for every machine- and
// supervisor-level register. All architectural writes go through a
// legalize-then-commit protocol: the per-register Legalize functions
// are pure and map any requested bit pattern to a legal one, and the
// Write methods commit the result. Supervisor registers that are
// defined as windows into machine registers (sstatus, sip, sie,
// sideleg, sedeleg) are never stored; reads synthesize them with the
// Lower projections and writes fold them back with the Lift
// projections.
//
// One Hart instance models one hardware thread. Nothing is shared
// between instances and no locking is performed; a multi-hart host
// instantiates one Hart per thread and serializes access within each.
package csr

import "fmt"

// XLen is the register width of a hart, fixed at construction.
type XLen uint8

// Supported register widths.
const (
	XLen32 XLen = 32
	XLen64 XLen = 64
)

// Mask returns the all-ones value of the width.
func (x XLen) Mask() uint64 {
	if x == XLen32 {
		return 0xFFFFFFFF
	}
	return ^uint64(0)
}

// Arch returns the architecture encoding of the width.
func (x XLen) Arch() Architecture {
	if x == XLen32 {
		return RV32
	}
	return RV64
}

// Hart owns the privileged register state of one hardware thread.
type Hart struct {
	xlen XLen
	caps Capabilities

	priv Privilege

	misa          Misa
	mstatus       Mstatus
	mip           Minterrupts
	mie           Minterrupts
	mideleg       Minterrupts
	medeleg       Medeleg
	mtvec         Mtvec
	stvec         Mtvec
	mcause        Mcause
	scause        Mcause
	mepc          uint64
	sepc          uint64
	mtval         uint64
	stval         uint64
	mscratch      uint64
	sscratch      uint64
	mcounteren    Counteren
	scounteren    Counteren
	mcountinhibit Counteren
	satp          uint64

	mcycle          uint64
	mtime           uint64
	minstret        uint64
	minstretWritten bool

	mvendorid uint64
	mimpid    uint64
	marchid   uint64
	mhartid   uint64
	tselect   uint64
	curInst   uint64

	// Boot-time extension presence folded into misa at reset.
	bootS bool
	bootU bool
	bootN bool
}

// HartOption configures a Hart at construction.
type HartOption func(*Hart)

// WithHartID sets the value mhartid reads as.
func WithHartID(id uint64) HartOption {
	return func(h *Hart) { h.mhartid = id }
}

// WithVendorID sets the value mvendorid reads as.
func WithVendorID(id uint64) HartOption {
	return func(h *Hart) { h.mvendorid = id }
}

// WithArchID sets the value marchid reads as.
func WithArchID(id uint64) HartOption {
	return func(h *Hart) { h.marchid = id }
}

// WithImpID sets the value mimpid reads as.
func WithImpID(id uint64) HartOption {
	return func(h *Hart) { h.mimpid = id }
}

// WithoutSupervisor builds a hart without supervisor mode.
func WithoutSupervisor() HartOption {
	return func(h *Hart) { h.bootS = false }
}

// WithoutUserMode builds a hart without user mode.
func WithoutUserMode() HartOption {
	return func(h *Hart) { h.bootU = false }
}

// WithUserInterrupts builds a hart with the user-level interrupt (N)
// extension.
func WithUserInterrupts() HartOption {
	return func(h *Hart) { h.bootN = true }
}

// NewHart creates a hart of the given width with its registers at
// their power-on values. The capability queries gate legalization and
// are re-evaluated on every write; they are injected here so hosts and
// tests can vary configuration per instance.
func NewHart(x XLen, caps Capabilities, opts ...HartOption) *Hart {
	h := &Hart{
		xlen:  x,
		caps:  caps,
		bootS: true,
		bootU: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.Reset()
	return h
}

// Reset returns every register to its power-on value: machine
// privilege, misa seeded from the boot configuration with the hart's
// width in MXL, mstatus with the width views pinned, and all other
// writable state zero.
func (h *Hart) Reset() {
	h.priv = PrivMachine

	m := Misa(0).WithI(1).WithM(1).WithA(1)
	m = m.WithMXL(h.xlen, h.xlen.Arch().Bits())
	if h.bootS {
		m = m.WithS(1)
	}
	if h.bootU {
		m = m.WithU(1)
	}
	if h.bootN {
		m = m.WithN(1)
	}
	if h.caps.BootRVC() {
		m = m.WithC(1)
	}
	if h.caps.BootFD() {
		m = m.WithF(1).WithD(1)
	}
	h.misa = m

	h.mstatus = Mstatus(0).
		WithSXL(h.xlen, h.xlen.Arch().Bits()).
		WithUXL(h.xlen, h.xlen.Arch().Bits())

	h.mip = 0
	h.mie = 0
	h.mideleg = 0
	h.medeleg = 0
	h.mtvec = 0
	h.stvec = 0
	h.mcause = 0
	h.scause = 0
	h.mepc = 0
	h.sepc = 0
	h.mtval = 0
	h.stval = 0
	h.mscratch = 0
	h.sscratch = 0
	h.mcounteren = 0
	h.scounteren = 0
	h.mcountinhibit = 0
	h.satp = 0
	h.mcycle = 0
	h.mtime = 0
	h.minstret = 0
	h.minstretWritten = false
	h.tselect = 0
	h.curInst = 0
}

// XLen returns the hart's register width.
func (h *Hart) XLen() XLen { return h.xlen }

// Privilege returns the hart's current privilege level.
func (h *Hart) Privilege() Privilege { return h.priv }

// SetPrivilege sets the current privilege level. Privilege changes are
// driven by the host's trap and return handling, which is outside this
// model.
func (h *Hart) SetPrivilege(p Privilege) { h.priv = p }

// CurrentInstruction returns the instruction word the host last
// latched.
func (h *Hart) CurrentInstruction() uint64 { return h.curInst }

// SetCurrentInstruction latches the instruction word under execution.
func (h *Hart) SetCurrentInstruction(inst uint64) { h.curInst = inst & h.xlen.Mask() }

// Register reads.

func (h *Hart) Misa() Misa                { return h.misa }
func (h *Hart) Mstatus() Mstatus          { return h.mstatus }
func (h *Hart) Mip() Minterrupts          { return h.mip }
func (h *Hart) Mie() Minterrupts          { return h.mie }
func (h *Hart) Mideleg() Minterrupts      { return h.mideleg }
func (h *Hart) Medeleg() Medeleg          { return h.medeleg }
func (h *Hart) Mtvec() Mtvec              { return h.mtvec }
func (h *Hart) Stvec() Mtvec              { return h.stvec }
func (h *Hart) Mcause() Mcause            { return h.mcause }
func (h *Hart) Scause() Mcause            { return h.scause }
func (h *Hart) Mepc() uint64              { return h.mepc }
func (h *Hart) Sepc() uint64              { return h.sepc }
func (h *Hart) Mtval() uint64             { return h.mtval }
func (h *Hart) Stval() uint64             { return h.stval }
func (h *Hart) Mscratch() uint64          { return h.mscratch }
func (h *Hart) Sscratch() uint64          { return h.sscratch }
func (h *Hart) Mcounteren() Counteren     { return h.mcounteren }
func (h *Hart) Scounteren() Counteren     { return h.scounteren }
func (h *Hart) Mcountinhibit() Counteren  { return h.mcountinhibit }
func (h *Hart) Mvendorid() uint64         { return h.mvendorid }
func (h *Hart) Mimpid() uint64            { return h.mimpid }
func (h *Hart) Marchid() uint64           { return h.marchid }
func (h *Hart) Mhartid() uint64           { return h.mhartid }
func (h *Hart) Tselect() uint64           { return h.tselect }

// Satp returns the raw address-translation register; use Satp64 or
// Satp32 to view it through the width's layout.
func (h *Hart) Satp() uint64 { return h.satp }

// Legalize-then-commit write entry points. Each one calls the
// register's pure legalizer with the current hart context and commits
// the result; raw requested bits are never stored.

func (h *Hart) WriteMisa(v uint64) {
	h.misa = LegalizeMisa(h.caps, h.misa, v&h.xlen.Mask())
}

func (h *Hart) WriteMstatus(v uint64) {
	h.mstatus = LegalizeMstatus(h.xlen, h.misa, h.mstatus, v)
}

func (h *Hart) WriteMip(v uint64) {
	h.mip = LegalizeMip(h.misa, h.mip, v&h.xlen.Mask())
}

func (h *Hart) WriteMie(v uint64) {
	h.mie = LegalizeMie(h.misa, h.mie, v&h.xlen.Mask())
}

func (h *Hart) WriteMideleg(v uint64) {
	h.mideleg = LegalizeMideleg(h.mideleg, v&h.xlen.Mask())
}

func (h *Hart) WriteMedeleg(v uint64) {
	h.medeleg = LegalizeMedeleg(h.medeleg, v&h.xlen.Mask())
}

func (h *Hart) WriteMtvec(v uint64) {
	h.mtvec = LegalizeTvec(h.xlen, h.mtvec, v)
}

func (h *Hart) WriteStvec(v uint64) {
	h.stvec = LegalizeTvec(h.xlen, h.stvec, v)
}

func (h *Hart) WriteMepc(v uint64) {
	h.mepc = LegalizeEpc(h.caps, h.misa, h.xlen, v)
}

func (h *Hart) WriteSepc(v uint64) {
	h.sepc = LegalizeEpc(h.caps, h.misa, h.xlen, v)
}

func (h *Hart) WriteMcounteren(v uint64) {
	h.mcounteren = LegalizeCounteren(v)
}

func (h *Hart) WriteScounteren(v uint64) {
	h.scounteren = LegalizeCounteren(v)
}

func (h *Hart) WriteMcountinhibit(v uint64) {
	h.mcountinhibit = LegalizeMcountinhibit(v)
}

func (h *Hart) WriteSatp(v uint64) {
	a := h.CurrentArchitecture()
	if h.xlen == XLen32 {
		h.satp = uint64(LegalizeSatp32(a, Satp32(h.satp), v&h.xlen.Mask()))
	} else {
		h.satp = uint64(LegalizeSatp64(a, Satp64(h.satp), v))
	}
}

// Registers with no bit-pattern constraints commit as requested,
// truncated to the register width.

func (h *Hart) WriteMcause(v uint64) { h.mcause = Mcause(v & h.xlen.Mask()) }
func (h *Hart) WriteScause(v uint64) { h.scause = Mcause(v & h.xlen.Mask()) }
func (h *Hart) WriteMtval(v uint64)  { h.mtval = v & h.xlen.Mask() }
func (h *Hart) WriteStval(v uint64)  { h.stval = v & h.xlen.Mask() }

func (h *Hart) WriteMscratch(v uint64) { h.mscratch = v & h.xlen.Mask() }
func (h *Hart) WriteSscratch(v uint64) { h.sscratch = v & h.xlen.Mask() }
func (h *Hart) WriteTselect(v uint64)  { h.tselect = v & h.xlen.Mask() }

// SetMip overrides the machine interrupt-pending register directly,
// bypassing legalization. Interrupt controllers and timers own the
// machine-level pending bits and use this to assert them.
func (h *Hart) SetMip(v Minterrupts) { h.mip = v }

// View accessors. The supervisor windows are synthesized on read and
// lifted into the canonical machine registers on write.

// Sstatus returns the supervisor view of mstatus.
func (h *Hart) Sstatus() Sstatus {
	return LowerMstatus(h.xlen, h.mstatus)
}

// WriteSstatus lifts a supervisor status write into mstatus. The
// lifted value passes through mstatus legalization so every mstatus
// invariant holds afterwards.
func (h *Hart) WriteSstatus(v uint64) {
	lifted := LiftSstatus(h.xlen, h.mstatus, Sstatus(v&h.xlen.Mask()))
	h.mstatus = LegalizeMstatus(h.xlen, h.misa, h.mstatus, uint64(lifted))
}

// Sip returns the supervisor view of mip: pending bits masked by
// delegation.
func (h *Hart) Sip() Sinterrupts {
	return LowerInterrupts(h.mip, h.mideleg)
}

// WriteSip lifts a supervisor interrupt-pending write into mip.
func (h *Hart) WriteSip(v uint64) {
	h.mip = LiftSip(h.misa, h.mip, h.mideleg, Sinterrupts(v&h.xlen.Mask()))
}

// Sie returns the supervisor view of mie: enable bits masked by
// delegation.
func (h *Hart) Sie() Sinterrupts {
	return LowerInterrupts(h.mie, h.mideleg)
}

// WriteSie lifts a supervisor interrupt-enable write into mie.
func (h *Hart) WriteSie(v uint64) {
	h.mie = LiftSie(h.misa, h.mie, h.mideleg, Sinterrupts(v&h.xlen.Mask()))
}

// Sideleg returns the supervisor interrupt-delegation view: the user
// interrupt bits of mideleg. Without the N extension the register does
// not exist and reads as zero.
func (h *Hart) Sideleg() Sinterrupts {
	if h.misa.N() == 0 {
		return 0
	}
	var s Sinterrupts
	s = s.WithUEI(h.mideleg.UEI())
	s = s.WithUTI(h.mideleg.UTI())
	s = s.WithUSI(h.mideleg.USI())
	return s
}

// WriteSideleg folds the user interrupt-delegation bits back into
// mideleg; a no-op without the N extension.
func (h *Hart) WriteSideleg(v uint64) {
	if h.misa.N() == 0 {
		return
	}
	s := Sinterrupts(v & h.xlen.Mask())
	h.mideleg = h.mideleg.WithUEI(s.UEI()).WithUTI(s.UTI()).WithUSI(s.USI())
}

// Sedeleg returns the supervisor exception-delegation view: the low
// nine cause bits of medeleg. Without the N extension it reads zero.
func (h *Hart) Sedeleg() uint64 {
	if h.misa.N() == 0 {
		return 0
	}
	return sedelegField.Get(uint64(h.medeleg))
}

// WriteSedeleg folds the user-delegable cause bits back into medeleg;
// a no-op without the N extension.
func (h *Hart) WriteSedeleg(v uint64) {
	if h.misa.N() == 0 {
		return
	}
	h.medeleg = Medeleg(sedelegField.Set(uint64(h.medeleg), sedelegField.Get(v)))
}

// ReadCSR reads a register or view by its architectural name.
func (h *Hart) ReadCSR(name string) (uint64, error) {
	switch name {
	case "misa":
		return uint64(h.misa), nil
	case "mstatus":
		return uint64(h.mstatus), nil
	case "mip":
		return uint64(h.mip), nil
	case "mie":
		return uint64(h.mie), nil
	case "mideleg":
		return uint64(h.mideleg), nil
	case "medeleg":
		return uint64(h.medeleg), nil
	case "mtvec":
		return uint64(h.mtvec), nil
	case "stvec":
		return uint64(h.stvec), nil
	case "mcause":
		return uint64(h.mcause), nil
	case "scause":
		return uint64(h.scause), nil
	case "mepc":
		return h.mepc, nil
	case "sepc":
		return h.sepc, nil
	case "mtval":
		return h.mtval, nil
	case "stval":
		return h.stval, nil
	case "mscratch":
		return h.mscratch, nil
	case "sscratch":
		return h.sscratch, nil
	case "mcounteren":
		return uint64(h.mcounteren), nil
	case "scounteren":
		return uint64(h.scounteren), nil
	case "mcountinhibit":
		return uint64(h.mcountinhibit), nil
	case "satp":
		return h.satp, nil
	case "mcycle":
		return h.mcycle, nil
	case "mtime":
		return h.mtime, nil
	case "minstret":
		return h.minstret, nil
	case "mvendorid":
		return h.mvendorid, nil
	case "mimpid":
		return h.mimpid, nil
	case "marchid":
		return h.marchid, nil
	case "mhartid":
		return h.mhartid, nil
	case "tselect":
		return h.tselect, nil
	case "sstatus":
		return uint64(h.Sstatus()), nil
	case "sip":
		return uint64(h.Sip()), nil
	case "sie":
		return uint64(h.Sie()), nil
	case "sideleg":
		return uint64(h.Sideleg()), nil
	case "sedeleg":
		return h.Sedeleg(), nil
	}
	return 0, fmt.Errorf("unknown CSR %q", name)
}

// WriteCSR writes a register or view by its architectural name through
// the legalize-then-commit path.
func (h *Hart) WriteCSR(name string, v uint64) error {
	switch name {
	case "misa":
		h.WriteMisa(v)
	case "mstatus":
		h.WriteMstatus(v)
	case "mip":
		h.WriteMip(v)
	case "mie":
		h.WriteMie(v)
	case "mideleg":
		h.WriteMideleg(v)
	case "medeleg":
		h.WriteMedeleg(v)
	case "mtvec":
		h.WriteMtvec(v)
	case "stvec":
		h.WriteStvec(v)
	case "mcause":
		h.WriteMcause(v)
	case "scause":
		h.WriteScause(v)
	case "mepc":
		h.WriteMepc(v)
	case "sepc":
		h.WriteSepc(v)
	case "mtval":
		h.WriteMtval(v)
	case "stval":
		h.WriteStval(v)
	case "mscratch":
		h.WriteMscratch(v)
	case "sscratch":
		h.WriteSscratch(v)
	case "mcounteren":
		h.WriteMcounteren(v)
	case "scounteren":
		h.WriteScounteren(v)
	case "mcountinhibit":
		h.WriteMcountinhibit(v)
	case "satp":
		h.WriteSatp(v)
	case "mcycle":
		h.WriteMcycle(v)
	case "minstret":
		h.WriteMinstret(v)
	case "tselect":
		h.WriteTselect(v)
	case "sstatus":
		h.WriteSstatus(v)
	case "sip":
		h.WriteSip(v)
	case "sie":
		h.WriteSie(v)
	case "sideleg":
		h.WriteSideleg(v)
	case "sedeleg":
		h.WriteSedeleg(v)
	case "mvendorid", "mimpid", "marchid", "mhartid", "mtime":
		return fmt.Errorf("CSR %q is read-only", name)
	default:
		return fmt.Errorf("unknown CSR %q", name)
	}
	return nil
}
