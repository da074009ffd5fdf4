package dsp

// WorkBuffers holds every scratch buffer the pipeline needs, sized
// once at startup from block_samples, decim, and the fixed channel
// counts. None of these buffers is allocated or reallocated after
// startup. Frame serialization (WriteFrame) does allocate its byte
// buffers on every frame.
type WorkBuffers struct {
	RawPlanar      []float32 // rows x ChannelsOut
	LpfPlanar      []float32
	SmoothedPlanar []float32
	DecimOut       []float32 // maxDecimRows x ChannelsOut

	RBuf    []float32 // maxDecimRows x Quads
	RavgBuf []float32
	Y2Out   []float32
	Y3Out   []float32
	YtOut   []float32
}

// NewWorkBuffers sizes every scratch buffer for a worker processing
// blockSamples-row blocks with the given decimation factor. The
// decimated-row buffers are sized for the worst case of one full
// block's samples plus a previous carry-over tail all landing in a
// single output row count.
func NewWorkBuffers(blockSamples, decim int) *WorkBuffers {
	maxDecimRows := blockSamples/decim + 1

	return &WorkBuffers{
		RawPlanar:      make([]float32, blockSamples*ChannelsOut),
		LpfPlanar:      make([]float32, blockSamples*ChannelsOut),
		SmoothedPlanar: make([]float32, blockSamples*ChannelsOut),
		DecimOut:       make([]float32, maxDecimRows*ChannelsOut),
		RBuf:           make([]float32, maxDecimRows*Quads),
		RavgBuf:        make([]float32, maxDecimRows*Quads),
		Y2Out:          make([]float32, maxDecimRows*Quads),
		Y3Out:          make([]float32, maxDecimRows*Quads),
		YtOut:          make([]float32, maxDecimRows*Quads),
	}
}
