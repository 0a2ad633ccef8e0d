package csr_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nwf/sail-riscv/csr"
)

var _ = Describe("Interrupt registers", func() {
	var (
		caps *testCaps
		h    *csr.Hart
	)

	BeforeEach(func() {
		caps = &testCaps{bootRVC: true, bootFD: true}
		h = csr.NewHart(csr.XLen64, caps)
	})

	Describe("LegalizeMip", func() {
		It("should preserve the machine-level pending bits", func() {
			h.SetMip(csr.Minterrupts(0).WithMEI(1).WithMTI(1).WithMSI(1))

			h.WriteMip(0)

			m := h.Mip()
			Expect(m.MEI()).To(Equal(uint64(1)))
			Expect(m.MTI()).To(Equal(uint64(1)))
			Expect(m.MSI()).To(Equal(uint64(1)))
		})

		It("should accept the supervisor pending bits", func() {
			req := csr.Minterrupts(0).WithSEI(1).WithSTI(1).WithSSI(1)

			h.WriteMip(uint64(req))

			m := h.Mip()
			Expect(m.SEI()).To(Equal(uint64(1)))
			Expect(m.STI()).To(Equal(uint64(1)))
			Expect(m.SSI()).To(Equal(uint64(1)))
		})

		It("should reject user pending bits without the N extension", func() {
			req := csr.Minterrupts(0).WithUEI(1).WithUTI(1).WithUSI(1)

			h.WriteMip(uint64(req))

			Expect(h.Mip()).To(Equal(csr.Minterrupts(0)))
		})

		It("should accept user pending bits with user mode and N", func() {
			hn := csr.NewHart(csr.XLen64, caps, csr.WithUserInterrupts())
			req := csr.Minterrupts(0).WithUEI(1).WithUTI(1).WithUSI(1)

			hn.WriteMip(uint64(req))

			m := hn.Mip()
			Expect(m.UEI()).To(Equal(uint64(1)))
			Expect(m.UTI()).To(Equal(uint64(1)))
			Expect(m.USI()).To(Equal(uint64(1)))
		})
	})

	Describe("LegalizeMie", func() {
		It("should accept machine and supervisor enable bits", func() {
			req := csr.Minterrupts(0).
				WithMEI(1).WithMTI(1).WithMSI(1).
				WithSEI(1).WithSTI(1).WithSSI(1)

			h.WriteMie(uint64(req))

			Expect(h.Mie()).To(Equal(req))
		})

		It("should reject user enable bits without the N extension", func() {
			req := csr.Minterrupts(0).WithUEI(1).WithUTI(1).WithUSI(1)

			h.WriteMie(uint64(req))

			Expect(h.Mie()).To(Equal(csr.Minterrupts(0)))
		})
	})

	Describe("LegalizeMideleg", func() {
		It("should force the machine delegation bits to zero", func() {
			h.WriteMideleg(^uint64(0))

			m := h.Mideleg()
			Expect(m.MEI()).To(Equal(uint64(0)))
			Expect(m.MTI()).To(Equal(uint64(0)))
			Expect(m.MSI()).To(Equal(uint64(0)))
			Expect(m.SEI()).To(Equal(uint64(1)))
			Expect(m.STI()).To(Equal(uint64(1)))
			Expect(m.SSI()).To(Equal(uint64(1)))
			Expect(m.UEI()).To(Equal(uint64(1)))
			Expect(m.UTI()).To(Equal(uint64(1)))
			Expect(m.USI()).To(Equal(uint64(1)))
		})
	})

	Describe("LegalizeMedeleg", func() {
		It("should force the machine environment-call bit to zero", func() {
			h.WriteMedeleg(^uint64(0))

			Expect(h.Medeleg().MEnvCall()).To(Equal(uint64(0)))
			// Neighboring cause bits survive.
			Expect(uint64(h.Medeleg()) & (1 << 9)).NotTo(BeZero())
			Expect(uint64(h.Medeleg()) & (1 << 12)).NotTo(BeZero())
		})
	})

	Describe("sip/sie views", func() {
		It("should hide undelegated pending bits", func() {
			h.SetMip(csr.Minterrupts(0).WithSEI(1).WithSTI(1).WithSSI(1))
			h.WriteMideleg(uint64(csr.Minterrupts(0).WithSSI(1)))

			s := h.Sip()
			Expect(s.SSI()).To(Equal(uint64(1)))
			Expect(s.SEI()).To(Equal(uint64(0)))
			Expect(s.STI()).To(Equal(uint64(0)))
		})

		It("should hide undelegated enable bits", func() {
			h.WriteMie(uint64(csr.Minterrupts(0).WithSEI(1).WithSTI(1).WithSSI(1)))
			h.WriteMideleg(uint64(csr.Minterrupts(0).WithSEI(1)))

			s := h.Sie()
			Expect(s.SEI()).To(Equal(uint64(1)))
			Expect(s.STI()).To(Equal(uint64(0)))
			Expect(s.SSI()).To(Equal(uint64(0)))
		})

		It("should lift sip writes only through delegated bits", func() {
			h.WriteMideleg(uint64(csr.Minterrupts(0).WithSSI(1)))

			h.WriteSip(uint64(csr.Sinterrupts(0).WithSSI(1)))
			Expect(h.Mip().SSI()).To(Equal(uint64(1)))

			// SSI undelegated: the write must not land.
			h.WriteMideleg(0)
			h.WriteSip(0)
			Expect(h.Mip().SSI()).To(Equal(uint64(1)))
		})

		It("should lift sie writes for all delegated supervisor bits", func() {
			h.WriteMideleg(uint64(csr.Minterrupts(0).WithSEI(1).WithSTI(1).WithSSI(1)))

			h.WriteSie(uint64(csr.Sinterrupts(0).WithSEI(1).WithSTI(1).WithSSI(1)))

			m := h.Mie()
			Expect(m.SEI()).To(Equal(uint64(1)))
			Expect(m.STI()).To(Equal(uint64(1)))
			Expect(m.SSI()).To(Equal(uint64(1)))
		})

		It("should never change undelegated machine-level bits", func() {
			delegs := []csr.Minterrupts{
				0,
				csr.Minterrupts(0).WithSSI(1),
				csr.Minterrupts(0).WithSEI(1).WithSTI(1),
				csr.Minterrupts(0).WithSEI(1).WithSTI(1).WithSSI(1),
			}
			writes := []uint64{0, ^uint64(0), 0x2AA, 0x155}

			for _, d := range delegs {
				for _, w := range writes {
					h.Reset()
					h.SetMip(csr.Minterrupts(0).WithSEI(1).WithSSI(1).WithMTI(1))
					h.WriteMideleg(uint64(d))
					old := h.Mip()

					h.WriteSip(w)

					undelegated := ^uint64(h.Mideleg())
					Expect(uint64(h.Mip()) & undelegated).
						To(Equal(uint64(old) & undelegated))
				}
			}
		})
	})

	Describe("sideleg/sedeleg views", func() {
		It("should read zero without the N extension", func() {
			h.WriteMideleg(^uint64(0))
			h.WriteMedeleg(^uint64(0))

			Expect(h.Sideleg()).To(Equal(csr.Sinterrupts(0)))
			Expect(h.Sedeleg()).To(Equal(uint64(0)))
		})

		It("should ignore writes without the N extension", func() {
			before := h.Mideleg()

			h.WriteSideleg(^uint64(0))
			h.WriteSedeleg(^uint64(0))

			Expect(h.Mideleg()).To(Equal(before))
			Expect(h.Medeleg()).To(Equal(csr.Medeleg(0)))
		})

		It("should window the user bits of mideleg with N", func() {
			hn := csr.NewHart(csr.XLen64, caps, csr.WithUserInterrupts())
			hn.WriteMideleg(^uint64(0))

			s := hn.Sideleg()
			Expect(s.UEI()).To(Equal(uint64(1)))
			Expect(s.UTI()).To(Equal(uint64(1)))
			Expect(s.USI()).To(Equal(uint64(1)))

			hn.WriteSideleg(0)
			m := hn.Mideleg()
			Expect(m.UEI()).To(Equal(uint64(0)))
			Expect(m.UTI()).To(Equal(uint64(0)))
			Expect(m.USI()).To(Equal(uint64(0)))
			// Supervisor delegation bits are outside the window.
			Expect(m.SSI()).To(Equal(uint64(1)))
		})

		It("should window the low cause bits of medeleg with N", func() {
			hn := csr.NewHart(csr.XLen64, caps, csr.WithUserInterrupts())
			hn.WriteMedeleg(0xFFFF)

			Expect(hn.Sedeleg()).To(Equal(uint64(0x1FF)))

			hn.WriteSedeleg(0)
			Expect(hn.Sedeleg()).To(Equal(uint64(0)))
			// Bits above the window survive.
			Expect(uint64(hn.Medeleg()) & (1 << 12)).NotTo(BeZero())
		})
	})
})
