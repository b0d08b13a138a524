package upsizer

import (
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// Builder can build upsizer components.
type Builder struct {
	engine          sim.Engine
	freq            sim.Freq
	inputWidthBits  int
	outputWidthBits int
	dst             sim.RemotePort
	portBufCap      int
}

// MakeBuilder creates a builder with default parameters. The default
// widths model the 32-bit to 128-bit instance.
func MakeBuilder() Builder {
	return Builder{
		freq:            1 * sim.GHz,
		inputWidthBits:  32,
		outputWidthBits: 128,
		portBufCap:      1,
	}
}

// WithEngine sets the engine that drives the component.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency of the component.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithInputWidthBits sets the width of the upstream words.
func (b Builder) WithInputWidthBits(w int) Builder {
	b.inputWidthBits = w
	return b
}

// WithOutputWidthBits sets the width of the assembled downstream words.
func (b Builder) WithOutputWidthBits(w int) Builder {
	b.outputWidthBits = w
	return b
}

// WithDestination sets the remote port that the assembled words are sent
// to.
func (b Builder) WithDestination(dst sim.RemotePort) Builder {
	b.dst = dst
	return b
}

// WithPortBufCap sets the capacity of the port buffers.
func (b Builder) WithPortBufCap(n int) Builder {
	b.portBufCap = n
	return b
}

// Build creates the upsizer component. It panics if the width constraints
// do not hold.
func (b Builder) Build(name string) *Comp {
	sim.NameMustBeValid(name)

	machine, err := NewMachine(Config{
		InputWidthBits:  b.inputWidthBits,
		OutputWidthBits: b.outputWidthBits,
	})
	if err != nil {
		panic(err)
	}

	c := &Comp{
		machine: machine,
		dst:     b.dst,
	}

	c.TickingComponent = sim.NewTickingComponent(
		name, b.engine, b.freq, c)
	c.AddMiddleware(&middleware{Comp: c})

	c.In = sim.NewPort(c, b.portBufCap, b.portBufCap, name+".In")
	c.Out = sim.NewPort(c, b.portBufCap, b.portBufCap, name+".Out")
	c.AddPort("In", c.In)
	c.AddPort("Out", c.Out)

	return c
}
