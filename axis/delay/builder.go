package delay

import (
	"github.com/OpenResearchInstitute/fpga-cores/pipelining"
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// Builder can build delay-line components.
type Builder struct {
	engine      sim.Engine
	freq        sim.Freq
	delayCycles int
	dst         sim.RemotePort
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:        1 * sim.GHz,
		delayCycles: 1,
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

// WithDelayCycles sets how many cycles each beat is delayed by.
func (b Builder) WithDelayCycles(n int) Builder {
	b.delayCycles = n
	return b
}

// WithDestination sets the remote port that the delayed beats are sent to.
func (b Builder) WithDestination(dst sim.RemotePort) Builder {
	b.dst = dst
	return b
}

// Build creates the delay-line component.
func (b Builder) Build(name string) *Comp {
	sim.NameMustBeValid(name)

	if b.delayCycles < 1 {
		panic("delay must be at least 1 cycle")
	}

	c := &Comp{dst: b.dst}

	c.TickingComponent = sim.NewTickingComponent(
		name, b.engine, b.freq, c)
	c.AddMiddleware(&middleware{Comp: c})

	c.postBuf = sim.NewBuffer(name+".PostBuf", 1)
	c.pipeline = pipelining.MakeBuilder().
		WithNumStage(b.delayCycles).
		WithCyclePerStage(1).
		WithPostPipelineBuffer(c.postBuf).
		Build(name + ".Pipeline")

	c.In = sim.NewPort(c, 1, 1, name+".In")
	c.Out = sim.NewPort(c, 1, 1, name+".Out")
	c.AddPort("In", c.In)
	c.AddPort("Out", c.Out)

	return c
}
