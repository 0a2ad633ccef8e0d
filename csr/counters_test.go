package csr_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nwf/sail-riscv/csr"
)

var _ = Describe("Counters", func() {
	var (
		caps *testCaps
		h    *csr.Hart
	)

	BeforeEach(func() {
		caps = &testCaps{bootRVC: true, bootFD: true}
		h = csr.NewHart(csr.XLen64, caps)
	})

	Describe("RetireInstruction", func() {
		It("should increment minstret once per call", func() {
			h.RetireInstruction()
			h.RetireInstruction()

			Expect(h.Minstret()).To(Equal(uint64(2)))
		})

		It("should let an explicit write win over the implicit increment", func() {
			h.WriteMinstret(42)

			h.RetireInstruction()

			Expect(h.Minstret()).To(Equal(uint64(42)))
		})

		It("should consume the written flag after one step", func() {
			h.WriteMinstret(42)
			h.RetireInstruction()

			h.RetireInstruction()

			Expect(h.Minstret()).To(Equal(uint64(43)))
		})

		It("should not increment while inhibited", func() {
			h.WriteMcountinhibit(uint64(csr.Counteren(0).WithInstRet(1)))

			h.RetireInstruction()

			Expect(h.Minstret()).To(Equal(uint64(0)))
		})
	})

	Describe("TickCycle", func() {
		It("should advance mcycle and mtime together", func() {
			h.TickCycle()
			h.TickCycle()
			h.TickCycle()

			Expect(h.Mcycle()).To(Equal(uint64(3)))
			Expect(h.Mtime()).To(Equal(uint64(3)))
		})

		It("should keep the timer running while mcycle is inhibited", func() {
			h.WriteMcountinhibit(uint64(csr.Counteren(0).WithCycle(1)))

			h.TickCycle()

			Expect(h.Mcycle()).To(Equal(uint64(0)))
			Expect(h.Mtime()).To(Equal(uint64(1)))
		})
	})

	Describe("LegalizeCounteren", func() {
		It("should keep only the cycle, time and instret bits", func() {
			h.WriteMcounteren(^uint64(0))

			Expect(uint64(h.Mcounteren())).To(Equal(uint64(0b111)))

			h.WriteScounteren(0xF0F0_FF05)

			Expect(uint64(h.Scounteren())).To(Equal(uint64(0b101)))
		})
	})

	Describe("LegalizeMcountinhibit", func() {
		It("should never allow inhibiting the timer", func() {
			h.WriteMcountinhibit(^uint64(0))

			c := h.Mcountinhibit()
			Expect(c.Cycle()).To(Equal(uint64(1)))
			Expect(c.Time()).To(Equal(uint64(0)))
			Expect(c.InstRet()).To(Equal(uint64(1)))
			Expect(uint64(c)).To(Equal(uint64(0b101)))
		})
	})
})
