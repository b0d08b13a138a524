// Package upsizer models a stream width upsizer. The core accepts narrow
// words from an upstream producer and re-emits them as wider composite
// words, using a ready/valid handshake on both sides. Narrow words are
// accumulated into the slots of a wide buffer, low slot first, and the
// assembled word is held for the consumer until it is taken.
package upsizer

import (
	"fmt"
	"log"
)

// Config holds the construction-time parameters of the upsizer.
type Config struct {
	// InputWidthBits is the width of the upstream words.
	InputWidthBits int

	// OutputWidthBits is the width of the assembled downstream words.
	OutputWidthBits int
}

// Validate checks the width constraints. The output width must be a whole
// multiple of the input width, the ratio must be at least 2, and the input
// width must be a whole number of bytes.
func (c Config) Validate() error {
	if c.InputWidthBits <= 0 || c.OutputWidthBits <= 0 {
		return fmt.Errorf("widths must be positive, got %d -> %d",
			c.InputWidthBits, c.OutputWidthBits)
	}

	if c.InputWidthBits%8 != 0 {
		return fmt.Errorf("input width %d is not a multiple of 8 bits",
			c.InputWidthBits)
	}

	if c.OutputWidthBits <= c.InputWidthBits {
		return fmt.Errorf(
			"output width %d must be wider than input width %d",
			c.OutputWidthBits, c.InputWidthBits)
	}

	if c.OutputWidthBits%c.InputWidthBits != 0 {
		return fmt.Errorf(
			"output width %d is not a multiple of input width %d",
			c.OutputWidthBits, c.InputWidthBits)
	}

	return nil
}

// Ratio returns the number of narrow words that compose one wide word.
func (c Config) Ratio() int {
	return c.OutputWidthBits / c.InputWidthBits
}

// InputBytes returns the upstream word size in bytes.
func (c Config) InputBytes() int {
	return c.InputWidthBits / 8
}

// OutputBytes returns the downstream word size in bytes.
func (c Config) OutputBytes() int {
	return c.OutputWidthBits / 8
}

// State enumerates the fill states of the accumulation buffer.
type State int

// The fill states. In StateFilling, the fill count tells how many slots
// hold an accepted word.
const (
	StateResetting State = iota
	StateEmpty
	StateFilling
	StateFull
)

func (s State) String() string {
	switch s {
	case StateResetting:
		return "Resetting"
	case StateEmpty:
		return "Empty"
	case StateFilling:
		return "Filling"
	case StateFull:
		return "Full"
	}

	return "Unknown"
}

// Inputs are the signals sampled by the machine at a tick.
type Inputs struct {
	// Reset forces the machine into the resetting state, overriding any
	// other transition.
	Reset bool

	// InValid tells that the producer holds a word on InData.
	InValid bool

	// InData is the narrow word offered by the producer. It must be one
	// input word long when InValid is set.
	InData []byte

	// InKeep is the producer's byte-valid mask. It is sampled but not used:
	// every accepted word is treated as fully valid.
	InKeep []byte

	// OutReady tells that the consumer takes the wide word this tick if it
	// is offered.
	OutReady bool
}

// Outputs are the signals driven by the machine for a tick.
type Outputs struct {
	// InReady tells the producer that a word offered this tick is accepted.
	InReady bool

	// OutValid tells the consumer that OutData holds an assembled word.
	OutValid bool

	// OutData is the assembled wide word. It is only defined when OutValid
	// is set.
	OutData []byte

	// OutLast is the end-of-frame marker. The upsizer never asserts it.
	OutLast bool
}

// A Machine is the synchronous state machine of the upsizer. One call to
// Step corresponds to one clock tick: the outputs are a function of the
// state entering the tick and the inputs sampled at the tick, and the next
// state is committed before Step returns.
type Machine struct {
	cfg     Config
	ratio   int
	inBytes int

	state State
	count int
	slots []byte
}

// NewMachine creates a machine for the given widths. It returns an error
// if the width constraints do not hold.
func NewMachine(cfg Config) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		cfg:     cfg,
		ratio:   cfg.Ratio(),
		inBytes: cfg.InputBytes(),
		state:   StateResetting,
		slots:   make([]byte, cfg.OutputBytes()),
	}

	return m, nil
}

// Config returns the configuration of the machine.
func (m *Machine) Config() Config {
	return m.cfg
}

// State returns the current fill state.
func (m *Machine) State() State {
	return m.state
}

// FillCount returns the number of slots holding an accepted word, counting
// from the last time the buffer was empty.
func (m *Machine) FillCount() int {
	return m.count
}

// Step runs one clock tick. It computes the outputs for the tick and then
// commits the state and buffer update in one atomic step.
func (m *Machine) Step(in Inputs) Outputs {
	out := m.outputs(in)
	m.commit(in, out)

	return out
}

// outputs drives the tick's output signals from the current state. Both
// handshakes are decoupled except in the full state, where the producer is
// only told ready if the consumer takes the wide word on the same tick.
func (m *Machine) outputs(in Inputs) Outputs {
	out := Outputs{}

	switch m.state {
	case StateResetting:
		// All outputs deasserted.
	case StateEmpty, StateFilling:
		out.InReady = true
	case StateFull:
		out.InReady = in.OutReady
		out.OutValid = true
		out.OutData = m.snapshot()
	}

	return out
}

func (m *Machine) commit(in Inputs, out Outputs) {
	if in.Reset {
		m.state = StateResetting
		m.count = 0

		return
	}

	switch m.state {
	case StateResetting:
		m.state = StateEmpty
		m.count = 0
	case StateEmpty, StateFilling:
		m.acceptIfOffered(in, out)
	case StateFull:
		if !in.OutReady {
			return
		}

		// The wide word is consumed this tick. A word offered by the
		// producer on the same tick starts the next accumulation in slot 0
		// without an idle cycle in between.
		m.state = StateEmpty
		m.count = 0
		m.acceptIfOffered(in, out)
	}
}

func (m *Machine) acceptIfOffered(in Inputs, out Outputs) {
	if !in.InValid || !out.InReady {
		return
	}

	if len(in.InData) != m.inBytes {
		log.Panicf("input word must be %d bytes, got %d",
			m.inBytes, len(in.InData))
	}

	copy(m.slots[m.count*m.inBytes:], in.InData)
	m.count++

	if m.count == m.ratio {
		m.state = StateFull
	} else {
		m.state = StateFilling
	}
}

// snapshot returns a read-only copy of the assembled word, slot 0 in the
// lowest bytes.
func (m *Machine) snapshot() []byte {
	data := make([]byte, len(m.slots))
	copy(data, m.slots)

	return data
}
