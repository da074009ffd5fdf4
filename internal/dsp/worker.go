package dsp

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Worker is the single-threaded cooperative DSP pipeline: one main
// loop iterates poll-command -> refill -> convert -> filter -> smooth
// -> decimate -> emit, with no internal concurrency beyond
// CommandReader's background line scanner (spec.md §5).
type Worker struct {
	params *Params
	source AdcSource

	converter *SampleConverter
	iir       *IirFilterBank
	smoother  *ChannelSmoother
	decimator *TimeAverager
	ratio     *RatioLogger
	ychain    *YChain
	emitter   *FrameEmitter
	commands  *CommandReader

	heartbeat HeartbeatSink
	logger    *log.Logger

	blk *Block
	wb  *WorkBuffers

	blocksProcessed uint64
}

// WorkerOption configures optional collaborators on a Worker;
// everything defaults to the Absent capability variant.
type WorkerOption func(*Worker)

// WithHeartbeat installs a HeartbeatSink toggled once per emitted
// block. Pass AbsentHeartbeatSink (the default) to disable it.
func WithHeartbeat(h HeartbeatSink) WorkerOption {
	return func(w *Worker) { w.heartbeat = h }
}

// WithLogger installs the worker's logger. If never set, the logger
// is nil and the worker logs nothing.
func WithLogger(l *log.Logger) WorkerOption {
	return func(w *Worker) { w.logger = l }
}

// NewWorker wires every pipeline stage for the given parameters,
// source, and output streams. channelsIn is the number of raw input
// channels AdcSource delivers per row (>= ChannelsOut); blockSamples
// is the fixed block size established at startup (spec.md §6).
func NewWorker(p *Params, blockSamples int, source AdcSource, channelsIn int, primary io.Writer, trace TraceSink, cmdInput io.Reader, opts ...WorkerOption) (*Worker, error) {
	blk, err := NewBlock(blockSamples, channelsIn)
	if err != nil {
		return nil, err
	}

	converter, err := NewSampleConverter(source.Scale())
	if err != nil {
		return nil, err
	}

	decim := p.Decim()
	wb := NewWorkBuffers(blk.BlockSamples, decim)

	w := &Worker{
		params:    p,
		source:    source,
		converter: converter,
		iir:       NewIirFilterBank(),
		smoother:  NewChannelSmoother(p.MovAvgCh, blk.BlockSamples),
		decimator: NewTimeAverager(decim, blk.BlockSamples),
		ratio:     NewRatioLogger(len(wb.DecimOut) / ChannelsOut),
		ychain:    NewYChain(),
		emitter:   NewFrameEmitter(primary, trace),
		commands:  NewCommandReader(cmdInput),
		heartbeat: AbsentHeartbeatSink,
		blk:       blk,
		wb:        wb,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// ProcessOneBlock performs one full iteration: poll the command
// channel, refill from AdcSource, and run the block through every
// stage, emitting frames when n_out > 0. It returns the number of
// decimated output rows produced (0 is valid and not an error).
func (w *Worker) ProcessOneBlock() (int, error) {
	w.commands.PollAndApply(w.params)

	if err := w.source.Refill(w.blk); err != nil {
		return 0, fmt.Errorf("dsp: ADC refill failed: %w", err)
	}

	w.converter.Process(w.blk, w.wb.RawPlanar)
	w.iir.Process(w.wb.RawPlanar, w.wb.LpfPlanar, w.blk.BlockSamples)
	w.smoother.Process(w.wb.LpfPlanar, w.wb.SmoothedPlanar, w.blk.BlockSamples)

	nOut := w.decimator.Process(w.wb.SmoothedPlanar, w.blk.BlockSamples, w.wb.DecimOut)
	if nOut == 0 {
		w.blocksProcessed++
		return 0, nil
	}

	w.ratio.Process(w.params, w.wb.DecimOut, nOut, w.wb.RBuf, w.wb.RavgBuf)
	w.ychain.Process(w.params, w.wb.RavgBuf, nOut, w.wb.Y2Out, w.wb.Y3Out, w.wb.YtOut)

	if err := w.emitter.EmitBlock(nOut, w.wb.DecimOut, w.wb.RavgBuf, w.wb.Y2Out, w.wb.Y3Out, w.wb.YtOut); err != nil {
		return nOut, err
	}

	if err := w.heartbeat.Toggle(); err != nil && w.logger != nil {
		w.logger.Debug("heartbeat toggle failed, suppressing", "err", err)
	}

	w.blocksProcessed++

	if w.logger != nil && w.blocksProcessed%100 == 0 {
		w.logger.Debug("heartbeat", "blocks", w.blocksProcessed, "carry_len", w.decimator.CarryLen())
	}

	return nOut, nil
}

// Run processes blocks forever until Refill or EmitBlock returns an
// error, matching the fatal-on-ADC-failure policy in spec.md §7.
func (w *Worker) Run() error {
	for {
		if _, err := w.ProcessOneBlock(); err != nil {
			return err
		}
	}
}

// Close releases the AdcSource and, if present, the heartbeat sink.
func (w *Worker) Close() error {
	err := w.source.Close()
	if closer, ok := w.heartbeat.(interface{ Close() error }); ok {
		if cErr := closer.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}
	return err
}

// Params returns the worker's live Params, for tests that want to
// assert on CommandReader effects between ProcessOneBlock calls.
func (w *Worker) Params() *Params {
	return w.params
}

// ResetFilterState zeroes the IIR filter state and decimation carry
// tail, used by the determinism property test in spec.md §8.
func (w *Worker) ResetFilterState() {
	w.iir.Reset()
	w.decimator.Reset()
}
