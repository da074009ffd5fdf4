package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(t *testing.T, override []byte) *Params {
	t.Helper()
	p, err := NewParams(1000, 100, 50, 1, 1, override)
	require.NoError(t, err)
	return p
}

// TestRatioLoggerFloorClamp is spec.md §8 scenario 4: one of sensor or
// standard is zero (or below ratioFloor), the ratio must use the
// clamped floor rather than blowing up to +/-Inf or NaN.
func TestRatioLoggerFloorClamp(t *testing.T) {
	p := testParams(t, nil)
	rl := NewRatioLogger(1)

	decimOut := make([]float32, ChannelsOut)
	decimOut[SensorChannels[0]] = 0
	decimOut[StandardChannels[0]] = 5

	rBuf := make([]float32, Quads)
	ravgBuf := make([]float32, Quads)
	rl.Process(p, decimOut, 1, rBuf, ravgBuf)

	assert.False(t, math.IsNaN(float64(rBuf[0])))
	assert.False(t, math.IsInf(float64(rBuf[0]), 0))

	expected := p.Alpha * p.Beta * p.Gamma * (math.Log(ratioFloor/5) / p.LnK()) + p.B
	assert.InDelta(t, expected, rBuf[0], 1e-5)
}

func TestRatioLoggerRAbsTakesAbsoluteValue(t *testing.T) {
	override := []byte("r_abs: true\nk: 10.0\ny1_num: [1,0]\ny1_den: [1,0]\ny2_coeffs: [1,0]\ny3_coeffs: [1,0]\ne: 1.0\nf: 0.0\n")
	p := testParams(t, override)
	rl := NewRatioLogger(1)

	decimOut := make([]float32, ChannelsOut)
	decimOut[SensorChannels[0]] = -4
	decimOut[StandardChannels[0]] = 2

	rBuf := make([]float32, Quads)
	ravgBuf := make([]float32, Quads)
	rl.Process(p, decimOut, 1, rBuf, ravgBuf)

	expected := p.Alpha * p.Beta * p.Gamma * (math.Log(4.0/2.0) / p.LnK()) + p.B
	assert.InDelta(t, expected, rBuf[0], 1e-5)
}

func TestRatioLoggerSmoothsAcrossRows(t *testing.T) {
	p := testParams(t, nil)
	p.MovAvgR = 3
	rl := NewRatioLogger(4)

	decimOut := make([]float32, 4*ChannelsOut)
	for row := 0; row < 4; row++ {
		decimOut[row*ChannelsOut+SensorChannels[0]] = 10
		decimOut[row*ChannelsOut+StandardChannels[0]] = 10
	}

	rBuf := make([]float32, 4*Quads)
	ravgBuf := make([]float32, 4*Quads)
	rl.Process(p, decimOut, 4, rBuf, ravgBuf)

	// Equal sensor/standard values everywhere -> constant ratio, so the
	// moving average should reproduce the same constant.
	for row := 0; row < 4; row++ {
		assert.InDelta(t, rBuf[0], ravgBuf[row*Quads], 1e-5)
	}
}
