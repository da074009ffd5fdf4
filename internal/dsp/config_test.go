package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsPositionalHappyPath(t *testing.T) {
	cfg, err := ParseArgs([]string{"synthetic", "256", "1000", "100", "50", "4", "4"})
	require.NoError(t, err)

	assert.Equal(t, "synthetic", cfg.AdcEndpoint)
	assert.Equal(t, 256, cfg.BlockSamples)
	assert.Equal(t, 1000.0, cfg.SamplingFrequencyHz)
	assert.Equal(t, 100.0, cfg.TargetRateHz)
	assert.Equal(t, 50.0, cfg.LpfCutoffHz)
	assert.Equal(t, 4, cfg.MovAvgR)
	assert.Equal(t, 4, cfg.MovAvgCh)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParseArgsRejectsWrongPositionalCount(t *testing.T) {
	_, err := ParseArgs([]string{"synthetic", "256"})
	assert.Error(t, err)
}

func TestParseArgsRejectsNonNumericPositional(t *testing.T) {
	_, err := ParseArgs([]string{"synthetic", "notanumber", "1000", "100", "50", "4", "4"})
	assert.Error(t, err)
}

func TestParseArgsFlagsMixWithPositionals(t *testing.T) {
	cfg, err := ParseArgs([]string{
		"--net-output", "0.0.0.0:9000",
		"--announce",
		"--log-format", "json",
		"synthetic", "256", "1000", "100", "50", "4", "4",
	})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.NetOutput)
	assert.True(t, cfg.Announce)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "synthetic", cfg.AdcEndpoint)
}
