package dsp

import (
	"fmt"
	"math"
	"math/rand"
)

// sineTableSize mirrors this codebase's own gen_tone.go direct
// digital synthesis table, sized to a power of two so the phase
// accumulator's top bits index it directly.
const sineTableSize = 256

var sineTable [sineTableSize]float64

func init() {
	for i := range sineTable {
		sineTable[i] = math.Sin(2 * math.Pi * float64(i) / float64(sineTableSize))
	}
}

// ToneSpec describes one synthesized input channel: a tone at freqHz
// with the given full-scale amplitude in raw ADC counts, plus
// zero-mean noise of the given amplitude in counts.
type ToneSpec struct {
	FreqHz      float64
	AmplitudeLSB int32
	NoiseLSB     int32
}

// SyntheticSource generates deterministic multi-tone blocks using a
// phase-accumulator direct digital synthesizer per channel, the same
// technique this codebase's gen_tone.go uses to generate AFSK tones,
// adapted here to synthesize ChannelsOut simultaneous analog channels
// instead of one bitstream-modulated carrier.
type SyntheticSource struct {
	fs         float64
	scale      [ChannelsOut]float64
	tones      [ChannelsOut]ToneSpec
	phaseAccum [ChannelsOut]uint32
	phaseStep  [ChannelsOut]uint32
	rng        *rand.Rand
}

// NewSyntheticSource builds a source sampling at fs Hz, with one
// ToneSpec and volts-per-count scale per channel. seed makes noise
// generation reproducible; pass a fixed seed for deterministic test
// fixtures.
func NewSyntheticSource(fs float64, tones [ChannelsOut]ToneSpec, scale [ChannelsOut]float64, seed int64) (*SyntheticSource, error) {
	if fs <= 0 {
		return nil, fmt.Errorf("dsp: synthetic source sampling frequency must be positive, got %v", fs)
	}

	s := &SyntheticSource{
		fs:    fs,
		scale: scale,
		tones: tones,
		rng:   rand.New(rand.NewSource(seed)), //nolint:gosec
	}

	for c := 0; c < ChannelsOut; c++ {
		s.phaseStep[c] = uint32((tones[c].FreqHz / fs) * float64(1<<32))
	}

	return s, nil
}

// Refill synthesizes the next blk.BlockSamples rows.
func (s *SyntheticSource) Refill(blk *Block) error {
	for r := 0; r < blk.BlockSamples; r++ {
		row := blk.Row(r)
		for c := 0; c < ChannelsOut; c++ {
			s.phaseAccum[c] += s.phaseStep[c]
			idx := (s.phaseAccum[c] >> 24) & (sineTableSize - 1)

			sample := float64(s.tones[c].AmplitudeLSB) * sineTable[idx]
			if s.tones[c].NoiseLSB != 0 {
				sample += (s.rng.Float64()*2 - 1) * float64(s.tones[c].NoiseLSB)
			}
			row[c] = int32(sample)
		}
		for c := ChannelsOut; c < blk.ChannelsIn; c++ {
			row[c] = 0
		}
	}
	return nil
}

// Scale returns the fixed per-channel volts-per-count factors.
func (s *SyntheticSource) Scale() []float64 {
	return s.scale[:]
}

// Close releases no resources; present to satisfy AdcSource.
func (s *SyntheticSource) Close() error { return nil }

// ConstantSource is a trivial AdcSource yielding the same voltage on
// every channel forever, used for the identity-chain scenario in
// spec.md §8.
type ConstantSource struct {
	raw   int32
	scale [ChannelsOut]float64
}

// NewConstantSource builds a source where every sample on every
// channel equals raw counts, converted to volts by scale.
func NewConstantSource(raw int32, scale [ChannelsOut]float64) *ConstantSource {
	return &ConstantSource{raw: raw, scale: scale}
}

func (c *ConstantSource) Refill(blk *Block) error {
	for i := range blk.Raw {
		blk.Raw[i] = 0
	}
	for r := 0; r < blk.BlockSamples; r++ {
		row := blk.Row(r)
		for ch := 0; ch < ChannelsOut && ch < blk.ChannelsIn; ch++ {
			row[ch] = c.raw
		}
	}
	return nil
}

func (c *ConstantSource) Scale() []float64 { return c.scale[:] }
func (c *ConstantSource) Close() error     { return nil }
