// Package fifo models a stream FIFO that decouples the pacing of a
// producer and a consumer through an internal buffer of configurable
// depth.
package fifo

import (
	"github.com/OpenResearchInstitute/fpga-cores/axis"
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// Comp is the stream FIFO component.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	In  sim.Port
	Out sim.Port

	buf sim.Buffer
	dst sim.RemotePort
}

// Occupancy returns the number of beats currently held.
func (c *Comp) Occupancy() int {
	return c.buf.Size()
}

// Tick updates the component state by one cycle.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

type middleware struct {
	*Comp
}

func (m *middleware) Tick() bool {
	madeProgress := false

	madeProgress = m.send() || madeProgress
	madeProgress = m.accept() || madeProgress

	return madeProgress
}

func (m *middleware) send() bool {
	item := m.buf.Peek()
	if item == nil {
		return false
	}

	beat := item.(*axis.Beat)
	fwd := axis.Forward(beat, m.Out.AsRemote(), m.dst)

	err := m.Out.Send(fwd)
	if err != nil {
		return false
	}

	m.buf.Pop()

	return true
}

func (m *middleware) accept() bool {
	if !m.buf.CanPush() {
		return false
	}

	msg := m.In.PeekIncoming()
	if msg == nil {
		return false
	}

	m.buf.Push(msg)
	m.In.RetrieveIncoming()

	return true
}
