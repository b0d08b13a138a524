package upsizer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	It("should accept a 32 to 128 bit configuration", func() {
		cfg := Config{InputWidthBits: 32, OutputWidthBits: 128}

		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Ratio()).To(Equal(4))
		Expect(cfg.InputBytes()).To(Equal(4))
		Expect(cfg.OutputBytes()).To(Equal(16))
	})

	It("should reject non-positive widths", func() {
		Expect(Config{InputWidthBits: 0, OutputWidthBits: 128}.
			Validate()).NotTo(Succeed())
		Expect(Config{InputWidthBits: 32, OutputWidthBits: -1}.
			Validate()).NotTo(Succeed())
	})

	It("should reject an input width that is not a whole byte count",
		func() {
			cfg := Config{InputWidthBits: 12, OutputWidthBits: 48}

			Expect(cfg.Validate()).NotTo(Succeed())
		})

	It("should reject an output width no wider than the input width",
		func() {
			Expect(Config{InputWidthBits: 32, OutputWidthBits: 32}.
				Validate()).NotTo(Succeed())
			Expect(Config{InputWidthBits: 64, OutputWidthBits: 32}.
				Validate()).NotTo(Succeed())
		})

	It("should reject an output width that is not a multiple of the input "+
		"width", func() {
		cfg := Config{InputWidthBits: 32, OutputWidthBits: 96 + 8}

		Expect(cfg.Validate()).NotTo(Succeed())
	})
})

var _ = Describe("Machine", func() {
	var m *Machine

	// word returns a 4-byte input word with a recognizable pattern.
	word := func(v byte) []byte {
		return []byte{v, v + 1, v + 2, v + 3}
	}

	BeforeEach(func() {
		var err error
		m, err = NewMachine(Config{
			InputWidthBits:  32,
			OutputWidthBits: 128,
		})

		Expect(err).To(BeNil())
	})

	// comeOutOfReset runs the one tick the machine spends in the resetting
	// state.
	comeOutOfReset := func() {
		out := m.Step(Inputs{})

		Expect(out.InReady).To(BeFalse())
		Expect(out.OutValid).To(BeFalse())
		Expect(m.State()).To(Equal(StateEmpty))
	}

	// fill accepts words until the buffer is full.
	fill := func(vs ...byte) {
		for _, v := range vs {
			out := m.Step(Inputs{InValid: true, InData: word(v)})

			Expect(out.InReady).To(BeTrue())
		}
	}

	It("should report an error for invalid widths", func() {
		_, err := NewMachine(Config{
			InputWidthBits:  32,
			OutputWidthBits: 32,
		})

		Expect(err).NotTo(BeNil())
	})

	It("should start in the resetting state", func() {
		Expect(m.State()).To(Equal(StateResetting))
	})

	It("should deassert all outputs while resetting", func() {
		out := m.Step(Inputs{InValid: true, InData: word(1), OutReady: true})

		Expect(out.InReady).To(BeFalse())
		Expect(out.OutValid).To(BeFalse())
		Expect(m.State()).To(Equal(StateEmpty))
		Expect(m.FillCount()).To(Equal(0))
	})

	It("should accept the first word and start filling", func() {
		comeOutOfReset()

		out := m.Step(Inputs{InValid: true, InData: word(1)})

		Expect(out.InReady).To(BeTrue())
		Expect(out.OutValid).To(BeFalse())
		Expect(m.State()).To(Equal(StateFilling))
		Expect(m.FillCount()).To(Equal(1))
	})

	It("should stay ready while the producer offers nothing", func() {
		comeOutOfReset()

		for i := 0; i < 3; i++ {
			out := m.Step(Inputs{})

			Expect(out.InReady).To(BeTrue())
			Expect(out.OutValid).To(BeFalse())
		}

		Expect(m.State()).To(Equal(StateEmpty))
	})

	It("should assemble four words low slot first", func() {
		comeOutOfReset()
		fill(0x10, 0x20, 0x30, 0x40)

		Expect(m.State()).To(Equal(StateFull))

		out := m.Step(Inputs{OutReady: true})

		Expect(out.OutValid).To(BeTrue())
		Expect(out.OutData).To(Equal([]byte{
			0x10, 0x11, 0x12, 0x13,
			0x20, 0x21, 0x22, 0x23,
			0x30, 0x31, 0x32, 0x33,
			0x40, 0x41, 0x42, 0x43,
		}))
		Expect(out.OutLast).To(BeFalse())
	})

	It("should not offer a wide word before the buffer is full", func() {
		comeOutOfReset()
		fill(0x10, 0x20, 0x30)

		out := m.Step(Inputs{OutReady: true})

		Expect(out.OutValid).To(BeFalse())
	})

	It("should hold the wide word while the consumer stalls", func() {
		comeOutOfReset()
		fill(0x10, 0x20, 0x30, 0x40)

		for i := 0; i < 3; i++ {
			out := m.Step(Inputs{})

			Expect(out.OutValid).To(BeTrue())
			Expect(out.OutData[0]).To(Equal(byte(0x10)))
			Expect(m.State()).To(Equal(StateFull))
		}
	})

	It("should not accept a word while full and stalled", func() {
		comeOutOfReset()
		fill(0x10, 0x20, 0x30, 0x40)

		out := m.Step(Inputs{InValid: true, InData: word(0x50)})

		Expect(out.InReady).To(BeFalse())
		Expect(m.State()).To(Equal(StateFull))
		Expect(m.FillCount()).To(Equal(4))
	})

	It("should become empty when drained with nothing offered", func() {
		comeOutOfReset()
		fill(0x10, 0x20, 0x30, 0x40)

		out := m.Step(Inputs{OutReady: true})

		Expect(out.OutValid).To(BeTrue())
		Expect(m.State()).To(Equal(StateEmpty))
		Expect(m.FillCount()).To(Equal(0))
	})

	It("should refill slot 0 on the draining tick", func() {
		comeOutOfReset()
		fill(0x10, 0x20, 0x30, 0x40)

		out := m.Step(Inputs{
			InValid:  true,
			InData:   word(0x50),
			OutReady: true,
		})

		Expect(out.InReady).To(BeTrue())
		Expect(out.OutValid).To(BeTrue())
		Expect(out.OutData[0]).To(Equal(byte(0x10)))
		Expect(m.State()).To(Equal(StateFilling))
		Expect(m.FillCount()).To(Equal(1))

		fill(0x60, 0x70, 0x80)

		out = m.Step(Inputs{OutReady: true})

		Expect(out.OutValid).To(BeTrue())
		Expect(out.OutData).To(Equal([]byte{
			0x50, 0x51, 0x52, 0x53,
			0x60, 0x61, 0x62, 0x63,
			0x70, 0x71, 0x72, 0x73,
			0x80, 0x81, 0x82, 0x83,
		}))
	})

	It("should drop a partial word on reset", func() {
		comeOutOfReset()
		fill(0x10, 0x20)

		m.Step(Inputs{Reset: true})

		Expect(m.State()).To(Equal(StateResetting))
		Expect(m.FillCount()).To(Equal(0))

		comeOutOfReset()
		fill(0x50, 0x60, 0x70, 0x80)

		out := m.Step(Inputs{OutReady: true})

		Expect(out.OutData).To(Equal([]byte{
			0x50, 0x51, 0x52, 0x53,
			0x60, 0x61, 0x62, 0x63,
			0x70, 0x71, 0x72, 0x73,
			0x80, 0x81, 0x82, 0x83,
		}))
	})

	It("should reset from the full state without emitting the word", func() {
		comeOutOfReset()
		fill(0x10, 0x20, 0x30, 0x40)

		out := m.Step(Inputs{Reset: true, OutReady: true})

		// The outputs of the reset tick still reflect the state entering
		// the tick.
		Expect(out.OutValid).To(BeTrue())
		Expect(m.State()).To(Equal(StateResetting))
		Expect(m.FillCount()).To(Equal(0))
	})

	It("should accept a byte-valid mask without using it", func() {
		comeOutOfReset()

		out := m.Step(Inputs{
			InValid: true,
			InData:  word(0x10),
			InKeep:  []byte{0x01},
		})

		Expect(out.InReady).To(BeTrue())
		Expect(m.FillCount()).To(Equal(1))
	})

	It("should panic on a wrong-length input word", func() {
		comeOutOfReset()

		Expect(func() {
			m.Step(Inputs{InValid: true, InData: []byte{1, 2}})
		}).To(Panic())
	})

	It("should snapshot the output so later fills do not alter it", func() {
		comeOutOfReset()
		fill(0x10, 0x20, 0x30, 0x40)

		out := m.Step(Inputs{
			InValid:  true,
			InData:   word(0x50),
			OutReady: true,
		})
		taken := out.OutData

		fill(0x60, 0x70, 0x80)

		Expect(taken[0]).To(Equal(byte(0x10)))
	})
})

var _ = Describe("Machine with a 2:1 ratio", func() {
	It("should alternate between filling and full", func() {
		m, err := NewMachine(Config{
			InputWidthBits:  8,
			OutputWidthBits: 16,
		})
		Expect(err).To(BeNil())

		m.Step(Inputs{})

		out := m.Step(Inputs{InValid: true, InData: []byte{0xAA}})
		Expect(out.InReady).To(BeTrue())
		Expect(m.State()).To(Equal(StateFilling))

		out = m.Step(Inputs{InValid: true, InData: []byte{0xBB}})
		Expect(out.InReady).To(BeTrue())
		Expect(m.State()).To(Equal(StateFull))

		out = m.Step(Inputs{OutReady: true})
		Expect(out.OutValid).To(BeTrue())
		Expect(out.OutData).To(Equal([]byte{0xAA, 0xBB}))
	})
})
