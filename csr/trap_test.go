package csr_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nwf/sail-riscv/csr"
)

var _ = Describe("Trap vectoring", func() {
	var (
		caps *testCaps
		h    *csr.Hart
	)

	BeforeEach(func() {
		caps = &testCaps{bootRVC: true, bootFD: true}
		h = csr.NewHart(csr.XLen64, caps)
	})

	Describe("LegalizeTvec", func() {
		It("should accept Direct and Vectored modes", func() {
			h.WriteMtvec(0x8000_0000 | uint64(csr.TVVectored))

			Expect(h.Mtvec().Mode()).To(Equal(uint64(csr.TVVectored)))
			Expect(h.Mtvec().Base(csr.XLen64) << 2).To(Equal(uint64(0x8000_0000)))
		})

		It("should keep the old mode on a reserved encoding", func() {
			h.WriteMtvec(0x8000_0000 | uint64(csr.TVVectored))

			h.WriteMtvec(0x9000_0000 | 0b10)

			Expect(h.Mtvec().Mode()).To(Equal(uint64(csr.TVVectored)))
			Expect(h.Mtvec().Base(csr.XLen64) << 2).To(Equal(uint64(0x9000_0000)))
		})

		It("should legalize stvec the same way", func() {
			h.WriteStvec(0x4000 | 0b11)

			Expect(h.Stvec().Mode()).To(Equal(uint64(csr.TVDirect)))
			Expect(h.Stvec().Base(csr.XLen64) << 2).To(Equal(uint64(0x4000)))
		})
	})

	Describe("TrapVectorAddress", func() {
		It("should target the base in Direct mode for any cause", func() {
			tvec := csr.Mtvec(0x8000_0000)
			intr := csr.Mcause(0).WithIsInterrupt(csr.XLen64, true).WithCause(csr.XLen64, 7)

			addr, ok := csr.TrapVectorAddress(csr.XLen64, tvec, intr)

			Expect(ok).To(BeTrue())
			Expect(addr).To(Equal(uint64(0x8000_0000)))
		})

		It("should index interrupts in Vectored mode", func() {
			tvec := csr.Mtvec(0x8000_0000 | uint64(csr.TVVectored))
			intr := csr.Mcause(0).WithIsInterrupt(csr.XLen64, true).WithCause(csr.XLen64, 7)

			addr, ok := csr.TrapVectorAddress(csr.XLen64, tvec, intr)

			Expect(ok).To(BeTrue())
			Expect(addr).To(Equal(uint64(0x8000_0000 + 4*7)))
		})

		It("should target the base for exceptions in Vectored mode", func() {
			tvec := csr.Mtvec(0x8000_0000 | uint64(csr.TVVectored))
			exc := csr.Mcause(0).WithCause(csr.XLen64, 2)

			addr, ok := csr.TrapVectorAddress(csr.XLen64, tvec, exc)

			Expect(ok).To(BeTrue())
			Expect(addr).To(Equal(uint64(0x8000_0000)))
		})

		It("should report no target for a reserved mode", func() {
			tvec := csr.Mtvec(0x8000_0000 | 0b10)

			_, ok := csr.TrapVectorAddress(csr.XLen64, tvec, 0)

			Expect(ok).To(BeFalse())
		})
	})

	Describe("LegalizeEpc", func() {
		It("should always clear bit 0", func() {
			h.WriteMepc(0x1003)

			Expect(h.Mepc()).To(Equal(uint64(0x1002)))
		})

		It("should clear bit 1 when compressed is off and locked off", func() {
			caps.bootRVC = false
			hNoC := csr.NewHart(csr.XLen64, caps)

			hNoC.WriteMepc(0x1003)

			Expect(hNoC.Mepc()).To(Equal(uint64(0x1000)))
		})

		It("should keep bit 1 when compressed could become enabled", func() {
			// Compressed is currently off, but misa is writable and the
			// extension was boot-enabled, so 2-byte alignment must stay
			// representable.
			caps.writableMisa = true
			hC := csr.NewHart(csr.XLen64, caps)
			hC.WriteMisa(uint64(hC.Misa().WithC(0)))

			hC.WriteSepc(0x1002)

			Expect(hC.Sepc()).To(Equal(uint64(0x1002)))
		})
	})

	Describe("PCAlignmentMask", func() {
		It("should clear only bit 0 with compressed active", func() {
			Expect(h.PCAlignmentMask()).To(Equal(^uint64(1)))
		})

		It("should clear bits 1..0 with compressed inactive", func() {
			caps.bootRVC = false
			hNoC := csr.NewHart(csr.XLen64, caps)

			Expect(hNoC.PCAlignmentMask()).To(Equal(^uint64(3)))
		})

		It("should truncate to the register width", func() {
			h32 := csr.NewHart(csr.XLen32, caps)

			Expect(h32.PCAlignmentMask()).To(Equal(uint64(0xFFFF_FFFE)))
		})
	})
})
