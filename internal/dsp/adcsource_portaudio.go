//go:build portaudio

package dsp

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// fullScaleVolts is the assumed full-scale input range used to turn
// PortAudio's full-scale int32 samples into a volts-per-count scale compatible with SampleConverter's raw-int-times-scale model;
// real hardware front ends report their own per-channel scale
// instead. This backend exists to bench-test the pipeline against a
// physical line-in signal before a real ADC front end is wired up.
const fullScaleVolts = 10.0

// PortAudioSource captures ChannelsOut channels of line input via
// PortAudio, standing in for a physical ADC front end the way this
// codebase's own audio.go treats a sound card as the analog front end
// for its demodulators.
type PortAudioSource struct {
	stream *portaudio.Stream
	buf    []int32
	scale  [ChannelsOut]float64
}

// NewPortAudioSource opens the default input device at fs Hz with the
// given frames-per-buffer, requesting ChannelsOut input channels.
func NewPortAudioSource(fs float64, framesPerBuffer int) (*PortAudioSource, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("dsp: portaudio initialize: %w", err)
	}

	s := &PortAudioSource{
		buf: make([]int32, framesPerBuffer*ChannelsOut),
	}
	for c := range s.scale {
		s.scale[c] = fullScaleVolts / float64(1<<31)
	}

	stream, err := portaudio.OpenDefaultStream(ChannelsOut, 0, fs, framesPerBuffer, s.buf)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("dsp: portaudio open stream: %w", err)
	}
	s.stream = stream

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("dsp: portaudio start stream: %w", err)
	}

	return s, nil
}

// Refill reads the next blk.BlockSamples rows from the stream.
// blk.BlockSamples must equal the framesPerBuffer given at
// construction.
func (s *PortAudioSource) Refill(blk *Block) error {
	if err := s.stream.Read(); err != nil {
		return fmt.Errorf("dsp: portaudio stream read: %w", err)
	}

	for i, v := range s.buf {
		if i >= len(blk.Raw) {
			break
		}
		blk.Raw[i] = v
	}
	return nil
}

// Scale returns the fixed per-channel volts-per-count factors derived
// from fullScaleVolts.
func (s *PortAudioSource) Scale() []float64 { return s.scale[:] }

// Close stops the stream and terminates the PortAudio session.
func (s *PortAudioSource) Close() error {
	err := s.stream.Close()
	if tErr := portaudio.Terminate(); tErr != nil && err == nil {
		err = tErr
	}
	return err
}
