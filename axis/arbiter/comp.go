// Package arbiter models a stream arbiter that merges several input
// streams onto one output stream. A source keeps the output until it
// finishes its frame, so frames from different sources never interleave.
package arbiter

import (
	"github.com/OpenResearchInstitute/fpga-cores/axis"
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// Mode selects how the next source is chosen between frames.
type Mode int

const (
	// RoundRobin rotates priority so every source is eventually served.
	RoundRobin Mode = iota

	// Absolute always serves the lowest-numbered source with a pending
	// beat.
	Absolute
)

// Comp is the stream arbiter component.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	Ins []sim.Port
	Out sim.Port

	mode     Mode
	dst      sim.RemotePort
	selected int
	locked   bool
}

// Tick updates the component state by one cycle.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

type middleware struct {
	*Comp
}

// Tick forwards at most one beat per cycle from the selected source.
func (m *middleware) Tick() bool {
	if !m.locked {
		if !m.selectSource() {
			return false
		}
	}

	port := m.Ins[m.selected]

	msg := port.PeekIncoming()
	if msg == nil {
		return false
	}

	beat := msg.(*axis.Beat)
	fwd := axis.Forward(beat, m.Out.AsRemote(), m.dst)

	err := m.Out.Send(fwd)
	if err != nil {
		return false
	}

	port.RetrieveIncoming()

	if beat.Last {
		m.releaseSource()
	} else {
		m.locked = true
	}

	return true
}

// selectSource picks the source to serve next and locks onto it. It
// returns false if no source has a pending beat.
func (m *middleware) selectSource() bool {
	start := 0
	if m.mode == RoundRobin {
		start = m.selected
	}

	for i := 0; i < len(m.Ins); i++ {
		candidate := (start + i) % len(m.Ins)

		if m.Ins[candidate].PeekIncoming() != nil {
			m.selected = candidate
			m.locked = true

			return true
		}
	}

	return false
}

// releaseSource ends the grant at a frame boundary.
func (m *middleware) releaseSource() {
	m.locked = false

	if m.mode == RoundRobin {
		m.selected = (m.selected + 1) % len(m.Ins)
	} else {
		m.selected = 0
	}
}
