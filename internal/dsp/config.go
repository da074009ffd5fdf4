package dsp

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

// Config is the fully resolved startup configuration: the seven
// positional arguments from spec.md §6, plus the optional flags
// layered on top in this codebase's own mixed positional+flag CLI
// style (cmd/direwolf, kissutil.go).
type Config struct {
	AdcEndpoint         string
	BlockSamples        int
	SamplingFrequencyHz float64
	TargetRateHz        float64
	LpfCutoffHz         float64
	MovAvgR             int
	MovAvgCh            int

	TracePort        string
	TraceAutodetect  bool
	ParamsFile       string
	NetOutput        string
	Announce         bool
	AnnounceName     string
	HeartbeatChip    string
	HeartbeatLine    int
	TimestampFormat  string
	LogFormat        string
}

// ParseArgs parses the worker's command line: seven positional
// arguments followed by any of the optional flags documented in
// SPEC_FULL.md §6. Any invalid argument is fatal at startup per
// spec.md §6, so ParseArgs returns an error rather than exiting
// itself, leaving exit-code policy to the caller.
func ParseArgs(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("adcworker", pflag.ContinueOnError)

	cfg := &Config{}
	fs.StringVar(&cfg.TracePort, "trace-port", "", "serial device path for the secondary YT trace")
	fs.BoolVar(&cfg.TraceAutodetect, "trace-autodetect", false, "auto-detect a USB-serial trace port when --trace-port is empty")
	fs.StringVar(&cfg.ParamsFile, "params", "", "YAML file overriding compiled Params defaults")
	fs.StringVar(&cfg.NetOutput, "net-output", "", "host:port to additionally serve the primary frame stream over TCP")
	fs.BoolVar(&cfg.Announce, "announce", false, "announce --net-output via mDNS/DNS-SD")
	fs.StringVar(&cfg.AnnounceName, "announce-name", "", "DNS-SD service instance name")
	fs.StringVar(&cfg.HeartbeatChip, "heartbeat-chip", "", "GPIO chip device for the per-block heartbeat line")
	fs.IntVar(&cfg.HeartbeatLine, "heartbeat-line", -1, "GPIO line offset on --heartbeat-chip")
	fs.StringVar(&cfg.TimestampFormat, "timestamp-format", "%Y-%m-%d %H:%M:%S", "strftime pattern for log timestamps")
	fs.StringVar(&cfg.LogFormat, "log-format", "text", "text or json")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("dsp: parsing flags: %w", err)
	}

	positional := fs.Args()
	if len(positional) != 7 {
		return nil, fmt.Errorf("dsp: expected 7 positional arguments (adc_endpoint block_samples sampling_frequency_hz target_rate_hz lpf_cutoff_hz movavg_r movavg_ch), got %d", len(positional))
	}

	cfg.AdcEndpoint = positional[0]

	var err error
	if cfg.BlockSamples, err = strconv.Atoi(positional[1]); err != nil || cfg.BlockSamples <= 0 {
		return nil, fmt.Errorf("dsp: invalid block_samples %q", positional[1])
	}
	if cfg.SamplingFrequencyHz, err = strconv.ParseFloat(positional[2], 64); err != nil || cfg.SamplingFrequencyHz <= 0 {
		return nil, fmt.Errorf("dsp: invalid sampling_frequency_hz %q", positional[2])
	}
	if cfg.TargetRateHz, err = strconv.ParseFloat(positional[3], 64); err != nil || cfg.TargetRateHz <= 0 {
		return nil, fmt.Errorf("dsp: invalid target_rate_hz %q", positional[3])
	}
	if cfg.LpfCutoffHz, err = strconv.ParseFloat(positional[4], 64); err != nil || cfg.LpfCutoffHz <= 0 {
		return nil, fmt.Errorf("dsp: invalid lpf_cutoff_hz %q", positional[4])
	}
	if cfg.MovAvgR, err = strconv.Atoi(positional[5]); err != nil || cfg.MovAvgR <= 0 {
		return nil, fmt.Errorf("dsp: invalid movavg_r %q", positional[5])
	}
	if cfg.MovAvgCh, err = strconv.Atoi(positional[6]); err != nil || cfg.MovAvgCh <= 0 {
		return nil, fmt.Errorf("dsp: invalid movavg_ch %q", positional[6])
	}

	return cfg, nil
}
