package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIirFilterBankZeroInputStaysZero(t *testing.T) {
	f := NewIirFilterBank()
	in := make([]float32, 16*ChannelsOut)
	out := make([]float32, 16*ChannelsOut)

	f.Process(in, out, 16)

	for _, v := range out {
		assert.Equal(t, float32(0), v)
	}
}

func TestIirFilterBankStatePersistsAcrossBlocks(t *testing.T) {
	f := NewIirFilterBank()

	in := make([]float32, ChannelsOut)
	for c := range in {
		in[c] = 1.0
	}
	out1 := make([]float32, ChannelsOut)
	out2 := make([]float32, ChannelsOut)

	f.Process(in, out1, 1)
	f.Process(in, out2, 1)

	// With persistent state, feeding the same constant input twice
	// should not reproduce identical output on the first two samples
	// of a step response (the filter is still settling).
	assert.NotEqual(t, out1[0], out2[0])
}

func TestIirFilterBankResetReproducesOutput(t *testing.T) {
	f := NewIirFilterBank()

	in := make([]float32, 8*ChannelsOut)
	for i := range in {
		in[i] = float32(i % 5)
	}

	out1 := make([]float32, 8*ChannelsOut)
	f.Process(in, out1, 8)

	f.Reset()

	out2 := make([]float32, 8*ChannelsOut)
	f.Process(in, out2, 8)

	assert.Equal(t, out1, out2)
}
