package csr

import "github.com/nwf/sail-riscv/bitfield"

// Counter control bits, shared by mcounteren, scounteren and
// mcountinhibit. No high-performance-counter bits are modeled yet.
var (
	counterCY = bitfield.Bit(0)
	counterTM = bitfield.Bit(1)
	counterIR = bitfield.Bit(2)
)

// Counteren is the counter-enable (and counter-inhibit) bit layout.
type Counteren uint64

// Cycle returns the cycle counter bit.
func (c Counteren) Cycle() uint64 { return counterCY.Get(uint64(c)) }

// Time returns the time counter bit.
func (c Counteren) Time() uint64 { return counterTM.Get(uint64(c)) }

// InstRet returns the instructions-retired counter bit.
func (c Counteren) InstRet() uint64 { return counterIR.Get(uint64(c)) }

func (c Counteren) WithCycle(v uint64) Counteren   { return Counteren(counterCY.Set(uint64(c), v)) }
func (c Counteren) WithTime(v uint64) Counteren    { return Counteren(counterTM.Set(uint64(c), v)) }
func (c Counteren) WithInstRet(v uint64) Counteren { return Counteren(counterIR.Set(uint64(c), v)) }

// LegalizeCounteren keeps the cycle, time and instructions-retired
// bits of a counter-enable request and forces everything else to zero.
func LegalizeCounteren(v uint64) Counteren {
	return Counteren(v & (counterCY.Mask() | counterTM.Mask() | counterIR.Mask()))
}

// LegalizeMcountinhibit keeps the cycle and instructions-retired bits
// of a counter-inhibit request; the time counter cannot be inhibited.
func LegalizeMcountinhibit(v uint64) Counteren {
	return Counteren(v & (counterCY.Mask() | counterIR.Mask()))
}

// Mcycle returns the cycle counter. Counters are 64 bits wide on both
// register widths.
func (h *Hart) Mcycle() uint64 { return h.mcycle }

// Mtime returns the timer value.
func (h *Hart) Mtime() uint64 { return h.mtime }

// Minstret returns the instructions-retired counter.
func (h *Hart) Minstret() uint64 { return h.minstret }

// WriteMcycle commits a cycle counter value.
func (h *Hart) WriteMcycle(v uint64) { h.mcycle = v }

// SetMtime sets the timer. The timer is platform-owned; this is the
// hook the platform's clock uses.
func (h *Hart) SetMtime(v uint64) { h.mtime = v }

// WriteMinstret commits an instructions-retired value and marks the
// current retirement step so the implicit increment is suppressed.
func (h *Hart) WriteMinstret(v uint64) {
	h.minstret = v
	h.minstretWritten = true
}

// RetireInstruction accounts for one retired instruction. It must be
// called exactly once per retired instruction. An explicit minstret
// write during the same step wins over the implicit increment; the
// written flag is consumed here and cleared regardless of ordering
// within the step.
func (h *Hart) RetireInstruction() {
	if h.minstretWritten {
		h.minstretWritten = false
		return
	}
	if h.mcountinhibit.InstRet() == 0 {
		h.minstret++
	}
}

// TickCycle advances the cycle counter and the timer by one. The cycle
// counter respects mcountinhibit; the timer always runs.
func (h *Hart) TickCycle() {
	if h.mcountinhibit.Cycle() == 0 {
		h.mcycle++
	}
	h.mtime++
}
