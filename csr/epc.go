package csr

// LegalizeEpc filters a value written to a program-counter-valued
// exception register (mepc or sepc). Bit 0 is always cleared. Bit 1 is
// cleared too unless compressed instructions are enabled, or could
// become enabled through a writable misa on a boot-enabled platform.
//
// TODO: the bit-1 masking architecturally belongs at read time;
// moving it there changes what a read returns after misa.C is toggled
// between the write and the read.
func LegalizeEpc(caps Capabilities, misa Misa, x XLen, v uint64) uint64 {
	v &= x.Mask()
	if (caps.MisaWritable() && caps.BootRVC()) || misa.C() == 1 {
		return v &^ 1
	}
	return v &^ 3
}
