package upsizer

import (
	"github.com/OpenResearchInstitute/fpga-cores/axis"
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// Comp wraps the upsizer machine as a ticking component. Narrow beats
// arriving at the In port are assembled into wide beats sent from the Out
// port to the configured destination.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	In  sim.Port
	Out sim.Port

	machine *Machine
	dst     sim.RemotePort
}

// Machine exposes the state machine of the component, mainly for
// inspection.
func (c *Comp) Machine() *Machine {
	return c.machine
}

// Tick updates the component state by one cycle.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

type middleware struct {
	*Comp
}

// Tick maps the port conditions onto the machine's handshake signals, runs
// one machine step, and carries out the transfers the machine committed to.
// A pending incoming beat is the upstream valid signal; room in the
// outgoing buffer is the downstream ready signal.
func (m *middleware) Tick() bool {
	in := Inputs{
		OutReady: m.Out.CanSend(),
	}

	var pending *axis.Beat
	if msg := m.In.PeekIncoming(); msg != nil {
		pending = msg.(*axis.Beat)
		in.InValid = true
		in.InData = pending.Data
		in.InKeep = pending.Keep
	}

	prevState := m.machine.State()
	out := m.machine.Step(in)

	madeProgress := m.machine.State() != prevState

	if out.InReady && in.InValid {
		m.In.RetrieveIncoming()
		madeProgress = true
	}

	if out.OutValid && in.OutReady {
		wide := axis.BeatBuilder{}.
			WithSrc(m.Out.AsRemote()).
			WithDst(m.dst).
			WithData(out.OutData).
			WithLast(out.OutLast).
			Build()

		err := m.Out.Send(wide)
		if err != nil {
			panic("outgoing buffer rejected a send it promised room for")
		}

		madeProgress = true
	}

	return madeProgress
}
