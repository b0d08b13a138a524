package fifo

import (
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// Builder can build stream FIFO components.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	depth  int
	dst    sim.RemotePort
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:  1 * sim.GHz,
		depth: 16,
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

// WithDepth sets how many beats the FIFO can hold.
func (b Builder) WithDepth(n int) Builder {
	b.depth = n
	return b
}

// WithDestination sets the remote port that the beats are forwarded to.
func (b Builder) WithDestination(dst sim.RemotePort) Builder {
	b.dst = dst
	return b
}

// Build creates the stream FIFO component.
func (b Builder) Build(name string) *Comp {
	sim.NameMustBeValid(name)

	if b.depth < 1 {
		panic("fifo depth must be at least 1")
	}

	c := &Comp{dst: b.dst}

	c.TickingComponent = sim.NewTickingComponent(
		name, b.engine, b.freq, c)
	c.AddMiddleware(&middleware{Comp: c})

	c.buf = sim.NewBuffer(name+".Buf", b.depth)

	c.In = sim.NewPort(c, 1, 1, name+".In")
	c.Out = sim.NewPort(c, 1, 1, name+".Out")
	c.AddPort("In", c.In)
	c.AddPort("Out", c.Out)

	return c
}
