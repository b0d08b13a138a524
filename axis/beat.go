// Package axis models AXI-Stream style interfaces. A stream is a sequence
// of beats, and a beat transfers on a cycle iff the sender holds valid and
// the receiver holds ready on that cycle.
package axis

import (
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// A Beat is a single stream transfer.
type Beat struct {
	sim.MsgMeta

	// Data is the TDATA payload. Its length is the stream width in bytes.
	Data []byte

	// Keep marks the valid bytes of Data. A nil Keep means all the bytes
	// are valid.
	Keep []byte

	// Last marks the final beat of a frame.
	Last bool
}

// Meta returns the metadata of the beat.
func (b *Beat) Meta() *sim.MsgMeta {
	return &b.MsgMeta
}

// Clone returns a copy of the beat with a different ID.
func (b *Beat) Clone() sim.Msg {
	cloneMsg := *b
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// BeatBuilder can build beats.
type BeatBuilder struct {
	src, dst sim.RemotePort
	data     []byte
	keep     []byte
	last     bool
}

// WithSrc sets the source of the beat.
func (b BeatBuilder) WithSrc(src sim.RemotePort) BeatBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the beat.
func (b BeatBuilder) WithDst(dst sim.RemotePort) BeatBuilder {
	b.dst = dst
	return b
}

// WithData sets the TDATA payload of the beat.
func (b BeatBuilder) WithData(data []byte) BeatBuilder {
	b.data = data
	return b
}

// WithKeep sets the TKEEP byte-valid mask of the beat.
func (b BeatBuilder) WithKeep(keep []byte) BeatBuilder {
	b.keep = keep
	return b
}

// WithLast marks the beat as the final beat of a frame.
func (b BeatBuilder) WithLast(last bool) BeatBuilder {
	b.last = last
	return b
}

// Build creates a new beat.
func (b BeatBuilder) Build() *Beat {
	beat := &Beat{
		MsgMeta: sim.MsgMeta{
			ID:           sim.GetIDGenerator().Generate(),
			Src:          b.src,
			Dst:          b.dst,
			TrafficBytes: len(b.data),
		},
		Data: b.data,
		Keep: b.keep,
		Last: b.last,
	}

	return beat
}

// Forward clones a beat so that it can be re-sent from src to dst with its
// payload untouched.
func Forward(b *Beat, src, dst sim.RemotePort) *Beat {
	fwd := b.Clone().(*Beat)
	fwd.Src = src
	fwd.Dst = dst

	return fwd
}
