// Package delay models a fixed-latency stream delay line. Beats leave the
// core a configurable number of cycles after they are accepted, in order,
// and backpressure from the consumer stalls the line without loss.
package delay

import (
	"github.com/OpenResearchInstitute/fpga-cores/axis"
	"github.com/OpenResearchInstitute/fpga-cores/pipelining"
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// Comp is the delay-line component.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	In  sim.Port
	Out sim.Port

	pipeline pipelining.Pipeline
	postBuf  sim.Buffer
	dst      sim.RemotePort
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
	madeProgress = m.pipeline.Tick() || madeProgress
	madeProgress = m.accept() || madeProgress

	return madeProgress
}

func (m *middleware) send() bool {
	item := m.postBuf.Peek()
	if item == nil {
		return false
	}

	beat := item.(*axis.Beat)
	fwd := axis.Forward(beat, m.Out.AsRemote(), m.dst)

	err := m.Out.Send(fwd)
	if err != nil {
		return false
	}

	m.postBuf.Pop()

	return true
}

func (m *middleware) accept() bool {
	msg := m.In.PeekIncoming()
	if msg == nil {
		return false
	}

	if !m.pipeline.CanAccept() {
		return false
	}

	m.pipeline.Accept(msg)
	m.In.RetrieveIncoming()

	return true
}
