//go:build !portaudio

package main

import (
	"fmt"

	"github.com/domado/adc-dsp/internal/dsp"
)

func openPortAudioSource(fs float64) (dsp.AdcSource, error) {
	return nil, fmt.Errorf("adcworker: built without the portaudio build tag; rebuild with -tags portaudio")
}
