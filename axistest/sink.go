package axistest

import (
	"fmt"

	"github.com/OpenResearchInstitute/fpga-cores/axis"
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// A Sink consumes a stream, optionally stalling a number of cycles before
// taking each beat, and records everything it receives.
type Sink struct {
	*sim.TickingComponent

	In sim.Port

	stallCycles int
	stallLeft   int
	received    []*axis.Beat
}

// Received returns the beats taken from the stream, in arrival order.
func (s *Sink) Received() []*axis.Beat {
	return s.received
}

// ReceivedData returns the payloads taken from the stream, in arrival
// order.
func (s *Sink) ReceivedData() [][]byte {
	data := make([][]byte, len(s.received))
	for i, b := range s.received {
		data[i] = b.Data
	}

	return data
}

// MustHaveReceived panics unless the sink received exactly the given
// payload sequence.
func (s *Sink) MustHaveReceived(want [][]byte) {
	if len(s.received) != len(want) {
		panic(fmt.Sprintf("sink %s received %d beats, want %d",
			s.Name(), len(s.received), len(want)))
	}

	for i, w := range want {
		got := s.received[i].Data
		if len(got) != len(w) {
			panic(fmt.Sprintf("sink %s beat %d is %d bytes, want %d",
				s.Name(), i, len(got), len(w)))
		}

		for j := range w {
			if got[j] != w[j] {
				panic(fmt.Sprintf(
					"sink %s beat %d byte %d is %#02x, want %#02x",
					s.Name(), i, j, got[j], w[j]))
			}
		}
	}
}

// Tick takes one beat from the stream if the stall pattern allows it.
func (s *Sink) Tick() bool {
	if s.In.PeekIncoming() == nil {
		return false
	}

	if s.stallLeft > 0 {
		s.stallLeft--
		return true
	}

	beat := s.In.RetrieveIncoming().(*axis.Beat)
	s.received = append(s.received, beat)
	s.stallLeft = s.stallCycles

	return true
}

// SinkBuilder can build sinks.
type SinkBuilder struct {
	engine      sim.Engine
	freq        sim.Freq
	stallCycles int
}

// MakeSinkBuilder creates a builder with default parameters.
func MakeSinkBuilder() SinkBuilder {
	return SinkBuilder{
		freq: 1 * sim.GHz,
	}
}

// WithEngine sets the engine that drives the sink.
func (b SinkBuilder) WithEngine(engine sim.Engine) SinkBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency of the sink.
func (b SinkBuilder) WithFreq(freq sim.Freq) SinkBuilder {
	b.freq = freq
	return b
}

// WithStallCycles makes the sink wait the given number of cycles before
// taking each beat, applying backpressure upstream.
func (b SinkBuilder) WithStallCycles(n int) SinkBuilder {
	b.stallCycles = n
	return b
}

// Build creates the sink.
func (b SinkBuilder) Build(name string) *Sink {
	sim.NameMustBeValid(name)

	s := &Sink{
		stallCycles: b.stallCycles,
	}

	s.TickingComponent = sim.NewTickingComponent(
		name, b.engine, b.freq, s)

	s.In = sim.NewPort(s, 1, 1, name+".In")
	s.AddPort("In", s.In)

	return s
}
