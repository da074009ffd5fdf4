package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSampleConverterRejectsFewChannels(t *testing.T) {
	_, err := NewSampleConverter([]float64{1, 2, 3})
	require.Error(t, err)
}

func TestNewSampleConverterRejectsBadScale(t *testing.T) {
	scale := make([]float64, ChannelsOut)
	for i := range scale {
		scale[i] = 1.0
	}
	scale[3] = -1.0

	_, err := NewSampleConverter(scale)
	require.Error(t, err)
}

func TestNewSampleConverterRejectsInfiniteScale(t *testing.T) {
	scale := make([]float64, ChannelsOut)
	for i := range scale {
		scale[i] = 1.0
	}
	scale[5] = math.Inf(1)

	_, err := NewSampleConverter(scale)
	require.Error(t, err)
}

func TestSampleConverterProcess(t *testing.T) {
	scale := make([]float64, ChannelsOut)
	for i := range scale {
		scale[i] = 0.5
	}
	sc, err := NewSampleConverter(scale)
	require.NoError(t, err)

	blk, err := NewBlock(2, ChannelsOut)
	require.NoError(t, err)
	for i := range blk.Raw {
		blk.Raw[i] = int32(i)
	}

	out := make([]float32, 2*ChannelsOut)
	sc.Process(blk, out)

	for i := range out {
		assert.Equal(t, float32(float64(i)*0.5), out[i])
	}
}

func TestSampleConverterIgnoresTrailingChannels(t *testing.T) {
	scale := make([]float64, ChannelsOut)
	for i := range scale {
		scale[i] = 1.0
	}
	sc, err := NewSampleConverter(scale)
	require.NoError(t, err)

	// 9 input channels: the 9th (index 8) is a trailing timestamp
	// channel and must be ignored.
	blk, err := NewBlock(1, ChannelsOut+1)
	require.NoError(t, err)
	blk.Raw[ChannelsOut] = 999999

	out := make([]float32, ChannelsOut)
	sc.Process(blk, out)

	for _, v := range out {
		assert.Equal(t, float32(0), v)
	}
}
