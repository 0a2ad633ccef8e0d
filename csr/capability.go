package csr

// Capabilities answers the platform-level questions legalization
// depends on. The answers may change between calls (VetoDisableC in
// particular depends on the host's current program counter), so the
// legalizers re-query on every write and never cache.
type Capabilities interface {
	// MisaWritable reports whether misa accepts run-time writes at all.
	MisaWritable() bool

	// BootRVC reports whether the compressed-instruction extension was
	// enabled when the hart was configured.
	BootRVC() bool

	// BootFD reports whether the single/double float extensions were
	// enabled when the hart was configured.
	BootFD() bool

	// VetoDisableC is an external hook that can block clearing misa.C
	// right now, typically because the next program counter would
	// become misaligned for 4-byte instructions.
	VetoDisableC() bool
}

// Extension-presence predicates derived from the current misa value.
// Float and double additionally require the mstatus FS field to be on.

// HasAtomics reports whether the A extension is active.
func (h *Hart) HasAtomics() bool { return h.misa.A() == 1 }

// HasCompressed reports whether the C extension is active.
func (h *Hart) HasCompressed() bool { return h.misa.C() == 1 }

// HasMulDiv reports whether the M extension is active.
func (h *Hart) HasMulDiv() bool { return h.misa.M() == 1 }

// HasSupervisor reports whether supervisor mode is implemented.
func (h *Hart) HasSupervisor() bool { return h.misa.S() == 1 }

// HasUserMode reports whether user mode is implemented.
func (h *Hart) HasUserMode() bool { return h.misa.U() == 1 }

// HasNExt reports whether the user-level interrupt (N) extension is
// implemented.
func (h *Hart) HasNExt() bool { return h.misa.N() == 1 }

// HasFloat reports whether single-precision float state is usable:
// the F bit must be set and mstatus.FS must not be Off.
func (h *Hart) HasFloat() bool {
	return h.misa.F() == 1 && ExtStatus(h.mstatus.FS()) != ExtOff
}

// HasDouble reports whether double-precision float state is usable.
func (h *Hart) HasDouble() bool {
	return h.misa.D() == 1 && ExtStatus(h.mstatus.FS()) != ExtOff
}
