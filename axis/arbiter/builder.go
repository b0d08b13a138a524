package arbiter

import (
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// Builder can build stream arbiter components.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	numInputs int
	mode      Mode
	dst       sim.RemotePort
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:      1 * sim.GHz,
		numInputs: 2,
		mode:      RoundRobin,
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

// WithNumInputs sets the number of input streams.
func (b Builder) WithNumInputs(n int) Builder {
	b.numInputs = n
	return b
}

// WithMode sets the source-selection mode.
func (b Builder) WithMode(mode Mode) Builder {
	b.mode = mode
	return b
}

// WithDestination sets the remote port that the merged stream is sent to.
func (b Builder) WithDestination(dst sim.RemotePort) Builder {
	b.dst = dst
	return b
}

// Build creates the stream arbiter component.
func (b Builder) Build(name string) *Comp {
	sim.NameMustBeValid(name)

	if b.numInputs < 1 {
		panic("arbiter requires at least 1 input")
	}

	c := &Comp{
		mode: b.mode,
		dst:  b.dst,
	}

	c.TickingComponent = sim.NewTickingComponent(
		name, b.engine, b.freq, c)
	c.AddMiddleware(&middleware{Comp: c})

	for i := 0; i < b.numInputs; i++ {
		in := sim.NewPort(c, 1, 1, sim.BuildNameWithIndex(name, "In", i))
		c.Ins = append(c.Ins, in)
		c.AddPort(sim.BuildNameWithIndex("", "In", i), in)
	}

	c.Out = sim.NewPort(c, 1, 1, name+".Out")
	c.AddPort("Out", c.Out)

	return c
}
