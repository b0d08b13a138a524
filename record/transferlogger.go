package record

import (
	"github.com/OpenResearchInstitute/fpga-cores/axis"
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// Transfer is one recorded port transfer.
type Transfer struct {
	Time  float64
	Port  string
	MsgID string
	Bytes int
	Last  bool
}

// A TransferLogger is a hook that records every beat arriving at the ports
// it is attached to.
type TransferLogger struct {
	timeTeller sim.TimeTeller
	recorder   Recorder
	tableName  string
}

// NewTransferLogger creates a transfer logger that writes into the given
// table of the recorder.
func NewTransferLogger(
	timeTeller sim.TimeTeller,
	recorder Recorder,
	tableName string,
) *TransferLogger {
	l := &TransferLogger{
		timeTeller: timeTeller,
		recorder:   recorder,
		tableName:  tableName,
	}

	recorder.CreateTable(tableName, Transfer{})

	return l
}

// Func records a transfer when a message arrives at a hooked port.
func (l *TransferLogger) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosPortMsgRecvd {
		return
	}

	port := ctx.Domain.(sim.Port)
	msg := ctx.Item.(sim.Msg)

	entry := Transfer{
		Time:  float64(l.timeTeller.CurrentTime()),
		Port:  port.Name(),
		MsgID: msg.Meta().ID,
		Bytes: msg.Meta().TrafficBytes,
	}

	if beat, ok := msg.(*axis.Beat); ok {
		entry.Last = beat.Last
	}

	l.recorder.InsertData(l.tableName, entry)
}
