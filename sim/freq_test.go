package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Freq", func() {
	It("should calculate the period", func() {
		f := 1 * GHz
		Expect(f.Period()).To(BeNumerically("~", 1e-9, 1e-15))
	})

	It("should convert time to cycles", func() {
		f := 1 * GHz
		Expect(f.Cycle(1e-9)).To(Equal(uint64(1)))
		Expect(f.Cycle(10.5e-9)).To(BeNumerically("~", 10, 1))
	})

	It("should get this tick", func() {
		f := 1 * GHz
		Expect(f.ThisTick(10.1e-9)).To(BeNumerically("~", 11e-9, 1e-12))
	})

	It("should get this tick if currently is on a tick", func() {
		f := 1 * GHz
		Expect(f.ThisTick(10e-9)).To(BeNumerically("~", 10e-9, 1e-12))
	})

	It("should get next tick", func() {
		f := 1 * GHz
		Expect(f.NextTick(10.1e-9)).To(BeNumerically("~", 11e-9, 1e-12))
	})

	It("should get next tick if currently is on a tick", func() {
		f := 1 * GHz
		Expect(f.NextTick(10e-9)).To(BeNumerically("~", 11e-9, 1e-12))
	})

	It("should get the time n cycles later", func() {
		f := 1 * GHz
		Expect(f.NCyclesLater(12, 10e-9)).
			To(BeNumerically("~", 22e-9, 1e-12))
	})

	It("should panic on zero frequency period", func() {
		f := 0 * Hz
		Expect(func() { f.Period() }).To(Panic())
	})
})
