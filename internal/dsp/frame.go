package dsp

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// FrameType tags the five binary frame kinds the worker emits.
type FrameType byte

const (
	FrameStage3_8Ch   FrameType = 1 // post-decimation 8-channel
	FrameStage5_4Ch   FrameType = 2 // Ravg
	FrameStage9_Yt4Ch FrameType = 3 // final yt
	FrameStage7_Y24Ch FrameType = 4
	FrameStage8_Y34Ch FrameType = 5
)

// channelsFor returns the documented channel count for a frame type;
// parsers must know this up front since the wire format carries no
// type-to-width table.
func channelsFor(t FrameType) (int, bool) {
	switch t {
	case FrameStage3_8Ch:
		return ChannelsOut, true
	case FrameStage5_4Ch, FrameStage9_Yt4Ch, FrameStage7_Y24Ch, FrameStage8_Y34Ch:
		return Quads, true
	default:
		return 0, false
	}
}

// Frame is a decoded binary frame: one type byte, an (n_samp, n_ch)
// header, and a row-major payload matrix.
type Frame struct {
	Type    FrameType
	NSamp   uint32
	NCh     uint32
	Payload [][]float32 // NSamp rows of NCh columns
}

// WriteFrame serializes t with the given row-major, nCh-wide payload
// of nSamp rows to w: one type byte, an 8-byte little-endian
// (n_samp, n_ch) header, then nSamp*nCh little-endian float32 values.
// It does not flush w; FrameEmitter flushes after each frame.
func WriteFrame(w io.Writer, t FrameType, nSamp, nCh int, payload []float32) error {
	wantCh, ok := channelsFor(t)
	if !ok {
		return fmt.Errorf("dsp: unknown frame type %d", t)
	}
	if nCh != wantCh {
		return fmt.Errorf("dsp: frame type %d requires n_ch=%d, got %d", t, wantCh, nCh)
	}
	if len(payload) < nSamp*nCh {
		return fmt.Errorf("dsp: payload too short: have %d, need %d", len(payload), nSamp*nCh)
	}

	header := make([]byte, 1+8)
	header[0] = byte(t)
	binary.LittleEndian.PutUint32(header[1:5], uint32(nSamp))
	binary.LittleEndian.PutUint32(header[5:9], uint32(nCh))
	if _, err := w.Write(header); err != nil {
		return err
	}

	buf := make([]byte, 4*nSamp*nCh)
	for i := 0; i < nSamp*nCh; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(payload[i]))
	}
	_, err := w.Write(buf)
	return err
}

// DecodeFrame reads one frame from r: the inverse of WriteFrame, used
// for the round-trip property (spec.md §8) and available to any
// downstream consumer of the primary stream.
func DecodeFrame(r io.Reader) (*Frame, error) {
	header := make([]byte, 1+8)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	t := FrameType(header[0])
	nSamp := binary.LittleEndian.Uint32(header[1:5])
	nCh := binary.LittleEndian.Uint32(header[5:9])

	wantCh, ok := channelsFor(t)
	if !ok {
		return nil, fmt.Errorf("dsp: unknown frame type %d", t)
	}
	if int(nCh) != wantCh {
		return nil, fmt.Errorf("dsp: frame type %d header claims n_ch=%d, expected %d", t, nCh, wantCh)
	}

	buf := make([]byte, 4*int(nSamp)*int(nCh))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}

	payload := make([][]float32, nSamp)
	for row := uint32(0); row < nSamp; row++ {
		rowVals := make([]float32, nCh)
		for col := uint32(0); col < nCh; col++ {
			i := (row*nCh + col) * 4
			rowVals[col] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i : i+4]))
		}
		payload[row] = rowVals
	}

	return &Frame{Type: t, NSamp: nSamp, NCh: nCh, Payload: payload}, nil
}
