package csr

// TrapVectorAddress computes the target address for a trap dispatched
// through the given trap-vector register. Direct mode always targets
// the base address. Vectored mode targets the base for exceptions and
// base + 4*cause for interrupts. A reserved mode reports false;
// legalization keeps the mode field to supported encodings, so callers
// may treat that as unreachable.
func TrapVectorAddress(x XLen, tvec Mtvec, cause Mcause) (uint64, bool) {
	base := tvec.Base(x) << 2
	mode, ok := TrapVectorModeFromBits(tvec.Mode())
	if !ok {
		return 0, false
	}
	if mode == TVVectored && cause.IsInterrupt(x) {
		return (base + 4*cause.Cause(x)) & x.Mask(), true
	}
	return base, true
}

// PCAlignmentMask returns the mask applied when reading a
// program-counter-like value. With compressed instructions active only
// bit 0 is cleared; without them instructions are 4-byte aligned and
// bit 1 is cleared as well.
func (h *Hart) PCAlignmentMask() uint64 {
	if h.misa.C() == 1 {
		return h.xlen.Mask() &^ 1
	}
	return h.xlen.Mask() &^ 3
}
