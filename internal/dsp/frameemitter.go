package dsp

import (
	"bufio"
	"fmt"
	"io"
)

// TraceSink is the capability interface for the secondary textual
// trace output: a "Present(handle)" variant backed by a real serial
// port, or an "Absent" no-op variant. FrameEmitter always holds a
// TraceSink and never branches on nilness, per the capability pattern
// noted for optional hardware in spec.md §9.
type TraceSink interface {
	WriteLine(line string) error
}

// absentTraceSink is the Absent variant: every write is a silent,
// always-successful no-op.
type absentTraceSink struct{}

func (absentTraceSink) WriteLine(string) error { return nil }

// AbsentTraceSink is the shared Absent TraceSink value.
var AbsentTraceSink TraceSink = absentTraceSink{}

// FrameEmitter serializes the five typed frames for a block to the
// primary binary stream, flushing after each, and writes a duplicate
// textual trace of yt to a secondary TraceSink. primary is a
// bufio.Writer wrapping the primary stream, so the emitter can follow
// each frame with an explicit flush.
type FrameEmitter struct {
	primary *bufio.Writer
	trace   TraceSink
}

// NewFrameEmitter wraps primary (the binary output stream, e.g.
// os.Stdout or a TCP connection) and trace (Absent if no serial trace
// port is configured).
func NewFrameEmitter(primary io.Writer, trace TraceSink) *FrameEmitter {
	if trace == nil {
		trace = AbsentTraceSink
	}
	return &FrameEmitter{primary: bufio.NewWriter(primary), trace: trace}
}

// EmitBlock writes, in order, Stage3 (8-ch decimated), Stage5 (Ravg),
// Stage7 (y2), Stage8 (y3), and Stage9 (yt) — flushing the primary
// stream after each — then the yt textual trace lines, only when
// nOut > 0. Frames for different blocks are never interleaved since
// EmitBlock is only ever called from the single-threaded main loop.
func (fe *FrameEmitter) EmitBlock(nOut int, decimOut, ravg, y2, y3, yt []float32) error {
	if nOut <= 0 {
		return nil
	}

	type typedFrame struct {
		t       FrameType
		nCh     int
		payload []float32
	}

	frames := []typedFrame{
		{FrameStage3_8Ch, ChannelsOut, decimOut},
		{FrameStage5_4Ch, Quads, ravg},
		{FrameStage7_Y24Ch, Quads, y2},
		{FrameStage8_Y34Ch, Quads, y3},
		{FrameStage9_Yt4Ch, Quads, yt},
	}

	for _, f := range frames {
		if err := WriteFrame(fe.primary, f.t, nOut, f.nCh, f.payload); err != nil {
			return fmt.Errorf("dsp: writing frame type %d: %w", f.t, err)
		}
		if err := fe.primary.Flush(); err != nil {
			return fmt.Errorf("dsp: flushing primary stream after frame type %d: %w", f.t, err)
		}
	}

	for t := 0; t < nOut; t++ {
		line := fmt.Sprintf("YT[%d] = %v, %v, %v, %v\r\n", t,
			yt[t*Quads+0], yt[t*Quads+1], yt[t*Quads+2], yt[t*Quads+3])
		// Serial I/O errors are non-fatal and silently suppressed for
		// this block per spec.md §7.
		_ = fe.trace.WriteLine(line)
	}

	return nil
}
