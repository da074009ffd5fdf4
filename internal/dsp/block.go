// Package dsp implements the real-time DSP worker pipeline: sample
// conversion, IIR filtering, smoothing, decimation, log-ratio
// derivation, the rational/polynomial correction chain, and binary
// frame emission, as described for a networked multi-channel ADC
// front end.
package dsp

import "fmt"

// ChannelsOut is the fixed number of voltage channels the pipeline
// operates on downstream of SampleConverter. The first eight
// voltage-capable input channels are selected; anything past that
// (e.g. a trailing timestamp channel) is ignored.
const ChannelsOut = 8

// Quads is the number of (sensor, standard) channel pairs RatioLogger
// and YChain operate on.
const Quads = 4

// SensorChannels and StandardChannels give the ChannelsOut index for
// the sensor and standard member of each quad, in quad order.
var (
	SensorChannels   = [Quads]int{0, 2, 4, 6}
	StandardChannels = [Quads]int{1, 3, 5, 7}
)

// Block is a fixed-size window of raw interleaved integer samples
// refilled in place by an AdcSource. Raw holds BlockSamples rows of
// ChannelsIn columns, row-major.
type Block struct {
	BlockSamples int
	ChannelsIn   int
	Raw          []int32
}

// NewBlock allocates a Block sized for blockSamples rows of
// channelsIn columns. Allocation happens once; Refill reuses Raw.
func NewBlock(blockSamples, channelsIn int) (*Block, error) {
	if blockSamples <= 0 {
		return nil, fmt.Errorf("dsp: block_samples must be positive, got %d", blockSamples)
	}
	if channelsIn < ChannelsOut {
		return nil, fmt.Errorf("dsp: channels_in must be >= %d, got %d", ChannelsOut, channelsIn)
	}

	return &Block{
		BlockSamples: blockSamples,
		ChannelsIn:   channelsIn,
		Raw:          make([]int32, blockSamples*channelsIn),
	}, nil
}

// Row returns the slice of raw samples for row i across all input
// channels.
func (b *Block) Row(i int) []int32 {
	return b.Raw[i*b.ChannelsIn : (i+1)*b.ChannelsIn]
}
