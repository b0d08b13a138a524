// Package axistest provides producer and consumer agents for exercising
// stream cores in simulations and tests.
package axistest

import (
	"github.com/OpenResearchInstitute/fpga-cores/axis"
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// A Source feeds a programmed sequence of words into a stream, optionally
// leaving idle cycles between beats.
type Source struct {
	*sim.TickingComponent

	Out sim.Port

	dst       sim.RemotePort
	words     [][]byte
	lastFrame bool
	gapCycles int
	gapLeft   int
	nextWord  int
	beatsSent int
}

// NumSent returns the number of beats delivered into the stream so far.
func (s *Source) NumSent() int {
	return s.beatsSent
}

// Done tells whether all the programmed words have been sent.
func (s *Source) Done() bool {
	return s.nextWord >= len(s.words)
}

// Tick sends the next word when the pacing pattern and the port allow it.
func (s *Source) Tick() bool {
	if s.Done() {
		return false
	}

	if s.gapLeft > 0 {
		s.gapLeft--
		return true
	}

	word := s.words[s.nextWord]
	last := s.lastFrame && s.nextWord == len(s.words)-1

	beat := axis.BeatBuilder{}.
		WithSrc(s.Out.AsRemote()).
		WithDst(s.dst).
		WithData(word).
		WithLast(last).
		Build()

	err := s.Out.Send(beat)
	if err != nil {
		return false
	}

	s.nextWord++
	s.beatsSent++
	s.gapLeft = s.gapCycles

	return true
}

// SourceBuilder can build sources.
type SourceBuilder struct {
	engine    sim.Engine
	freq      sim.Freq
	dst       sim.RemotePort
	words     [][]byte
	lastFrame bool
	gapCycles int
}

// MakeSourceBuilder creates a builder with default parameters.
func MakeSourceBuilder() SourceBuilder {
	return SourceBuilder{
		freq: 1 * sim.GHz,
	}
}

// WithEngine sets the engine that drives the source.
func (b SourceBuilder) WithEngine(engine sim.Engine) SourceBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency of the source.
func (b SourceBuilder) WithFreq(freq sim.Freq) SourceBuilder {
	b.freq = freq
	return b
}

// WithDestination sets the remote port that the words are sent to.
func (b SourceBuilder) WithDestination(dst sim.RemotePort) SourceBuilder {
	b.dst = dst
	return b
}

// WithWords sets the sequence of words to send.
func (b SourceBuilder) WithWords(words [][]byte) SourceBuilder {
	b.words = words
	return b
}

// WithLastMarker marks the final word as the end of a frame.
func (b SourceBuilder) WithLastMarker() SourceBuilder {
	b.lastFrame = true
	return b
}

// WithGapCycles sets the number of idle cycles between beats.
func (b SourceBuilder) WithGapCycles(n int) SourceBuilder {
	b.gapCycles = n
	return b
}

// Build creates the source.
func (b SourceBuilder) Build(name string) *Source {
	sim.NameMustBeValid(name)

	s := &Source{
		dst:       b.dst,
		words:     b.words,
		lastFrame: b.lastFrame,
		gapCycles: b.gapCycles,
	}

	s.TickingComponent = sim.NewTickingComponent(
		name, b.engine, b.freq, s)

	s.Out = sim.NewPort(s, 1, 1, name+".Out")
	s.AddPort("Out", s.Out)

	return s
}
