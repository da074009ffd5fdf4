package main

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/domado/adc-dsp/internal/dsp"
)

// openAdcSource interprets adc_endpoint per SPEC_FULL.md §4.16:
// "synthetic" for a deterministic built-in generator, "portaudio" for
// the sound-card-backed source (only available when built with the
// portaudio build tag), or anything else as a host:port to dial with
// NetAdcSource.
func openAdcSource(endpoint string, fs float64, channelsIn int) (dsp.AdcSource, error) {
	switch {
	case endpoint == "synthetic":
		return defaultSyntheticSource(fs)
	case endpoint == "portaudio":
		return openPortAudioSource(fs)
	default:
		return dsp.DialNetAdcSource(endpoint, channelsIn)
	}
}

// defaultSyntheticSource generates eight distinct tones of 1/16 V
// amplitude (2^20 counts at 2^24 counts per volt), spaced an octave
// apart starting at 10 Hz, a reasonable bench-test default.
func defaultSyntheticSource(fs float64) (dsp.AdcSource, error) {
	var tones [dsp.ChannelsOut]dsp.ToneSpec
	var scale [dsp.ChannelsOut]float64
	freq := 10.0
	for c := range tones {
		tones[c] = dsp.ToneSpec{FreqHz: freq, AmplitudeLSB: 1 << 20, NoiseLSB: 1 << 8}
		scale[c] = 1.0 / float64(1<<24)
		freq *= 2
	}
	return dsp.NewSyntheticSource(fs, tones, scale, 1)
}

func resolveTraceSink(cfg *dsp.Config, logger *log.Logger) dsp.TraceSink {
	portName := cfg.TracePort
	if portName == "" && cfg.TraceAutodetect {
		detected, err := dsp.DiscoverTracePort()
		if err != nil {
			logger.Debug("trace port autodetect failed", "err", err)
		}
		portName = detected
	}
	if portName == "" {
		return dsp.AbsentTraceSink
	}

	sink, err := dsp.OpenTraceSink(portName, logger)
	if err != nil {
		logger.Warn("failed to open trace serial port, continuing without trace", "port", portName, "err", err)
		return dsp.AbsentTraceSink
	}
	return sink
}

func resolvePrimaryOutput(cfg *dsp.Config, logger *log.Logger) io.Writer {
	if cfg.NetOutput == "" {
		return os.Stdout
	}

	w, _, err := dsp.NewNetOutput(cfg.NetOutput, os.Stdout, logger)
	if err != nil {
		logger.Warn("failed to open --net-output listener, writing to stdout only", "addr", cfg.NetOutput, "err", err)
		return os.Stdout
	}
	return w
}

func resolveHeartbeat(cfg *dsp.Config, logger *log.Logger) dsp.HeartbeatSink {
	if cfg.HeartbeatChip == "" || cfg.HeartbeatLine < 0 {
		return dsp.AbsentHeartbeatSink
	}

	sink, err := dsp.OpenHeartbeatSink(cfg.HeartbeatChip, cfg.HeartbeatLine)
	if err != nil {
		logger.Warn("failed to acquire heartbeat GPIO line, continuing without it", "chip", cfg.HeartbeatChip, "line", cfg.HeartbeatLine, "err", err)
		return dsp.AbsentHeartbeatSink
	}
	return sink
}

func announceIfPossible(cfg *dsp.Config, name string, logger *log.Logger) (func(), error) {
	_, portStr, found := strings.Cut(cfg.NetOutput, ":")
	if !found {
		return nil, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}
	return dsp.AnnounceService(context.Background(), name, port, logger)
}
