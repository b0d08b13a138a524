// Package directconnection provides a latency-free connection between ports.
package directconnection

import (
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// Comp is a connection that delivers messages to their destination in the
// cycle after they are sent.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	ports      []sim.Port
	portByName map[sim.RemotePort]sim.Port
	nextPortID int
}

// PlugIn connects a port to this connection.
func (c *Comp) PlugIn(port sim.Port) {
	c.Lock()
	defer c.Unlock()

	c.ports = append(c.ports, port)
	c.portByName[port.AsRemote()] = port

	port.SetConnection(c)
}

// Unplug detaches a port from this connection.
func (c *Comp) Unplug(_ sim.Port) {
	panic("not implemented")
}

// NotifyAvailable is called by a port to notify that the port can receive
// messages again.
func (c *Comp) NotifyAvailable(p sim.Port) {
	for _, port := range c.ports {
		if port == p {
			continue
		}

		port.NotifyAvailable()
	}

	c.TickNow()
}

// NotifySend is called by a port to notify that a message is waiting to be
// delivered.
func (c *Comp) NotifySend() {
	c.TickNow()
}

// Tick delivers pending messages.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

type middleware struct {
	*Comp
}

// Tick drains the outgoing buffers of the plugged-in ports in a round-robin
// order.
func (m *middleware) Tick() bool {
	madeProgress := false

	for i := 0; i < len(m.ports); i++ {
		portID := (i + m.nextPortID) % len(m.ports)
		port := m.ports[portID]
		madeProgress = m.forwardMany(port) || madeProgress
	}

	m.nextPortID = (m.nextPortID + 1) % len(m.ports)

	return madeProgress
}

func (m *middleware) forwardMany(port sim.Port) bool {
	madeProgress := false

	for {
		head := port.PeekOutgoing()
		if head == nil {
			break
		}

		dst, found := m.portByName[head.Meta().Dst]
		if !found {
			panic("destination " + string(head.Meta().Dst) +
				" is not connected to " + m.Name())
		}

		err := dst.Deliver(head)
		if err != nil {
			break
		}

		port.RetrieveOutgoing()
		madeProgress = true
	}

	return madeProgress
}
