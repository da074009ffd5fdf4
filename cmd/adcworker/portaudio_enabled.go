//go:build portaudio

package main

import "github.com/domado/adc-dsp/internal/dsp"

const portAudioFramesPerBuffer = 1024

func openPortAudioSource(fs float64) (dsp.AdcSource, error) {
	return dsp.NewPortAudioSource(fs, portAudioFramesPerBuffer)
}
