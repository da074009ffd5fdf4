// Command adcworker is the real-time DSP worker for a networked
// multi-channel ADC front end: it ingests interleaved 8-channel
// sample blocks, filters and decimates them, derives log-ratio pairs,
// runs the cascaded correction chain, and emits five typed binary
// frame streams plus a textual trace over a serial port.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/domado/adc-dsp/internal/dsp"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := dsp.ParseArgs(args)
	if err != nil {
		return err
	}

	logger := dsp.NewLogger(os.Stderr, cfg.LogFormat, cfg.TimestampFormat)

	var paramsOverride []byte
	if cfg.ParamsFile != "" {
		paramsOverride, err = os.ReadFile(cfg.ParamsFile)
		if err != nil {
			return fmt.Errorf("adcworker: reading --params file: %w", err)
		}
	}

	params, err := dsp.NewParams(cfg.SamplingFrequencyHz, cfg.TargetRateHz, cfg.LpfCutoffHz, cfg.MovAvgR, cfg.MovAvgCh, paramsOverride)
	if err != nil {
		return err
	}

	const channelsIn = dsp.ChannelsOut

	source, err := openAdcSource(cfg.AdcEndpoint, cfg.SamplingFrequencyHz, channelsIn)
	if err != nil {
		return fmt.Errorf("adcworker: opening ADC source: %w", err)
	}
	defer source.Close()

	trace := resolveTraceSink(cfg, logger)

	primary := resolvePrimaryOutput(cfg, logger)

	heartbeat := resolveHeartbeat(cfg, logger)

	worker, err := dsp.NewWorker(params, cfg.BlockSamples, source, channelsIn, primary, trace, os.Stdin,
		dsp.WithLogger(logger), dsp.WithHeartbeat(heartbeat))
	if err != nil {
		return fmt.Errorf("adcworker: building worker: %w", err)
	}
	defer worker.Close()

	if cfg.Announce && cfg.NetOutput != "" {
		name := cfg.AnnounceName
		if name == "" {
			hostname, _ := os.Hostname()
			name = "adcworker@" + hostname
		}

		if stop, err := announceIfPossible(cfg, name, logger); err != nil {
			logger.Warn("DNS-SD announce failed, continuing without discovery", "err", err)
		} else if stop != nil {
			defer stop()
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- worker.Run() }()

	select {
	case <-ctx.Done():
		logger.Info("shutting down on signal")
		return nil
	case err := <-errCh:
		return err
	}
}
