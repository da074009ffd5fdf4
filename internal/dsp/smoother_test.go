package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestChannelSmootherEdgeWindow is spec.md §8 scenario 3: movavg_ch=5,
// input [0, 10, 0, 0, 0, 0, 0, 0].
func TestChannelSmootherEdgeWindow(t *testing.T) {
	in := []float64{0, 10, 0, 0, 0, 0, 0, 0}
	prefix := make([]float64, len(in)+1)
	out := make([]float64, len(in))

	movingAverage(in, len(in), 5, prefix, out)

	assert.InDelta(t, 10.0/3.0, out[0], 1e-12)
	assert.InDelta(t, 10.0/4.0, out[1], 1e-12)
	assert.InDelta(t, 10.0/5.0, out[2], 1e-12)
	// Index 3 is interior and uses the full window of 5 (indices 1..5),
	// which still contains the 10: 10/5.
	assert.InDelta(t, 10.0/5.0, out[3], 1e-12)
}

func TestChannelSmootherIdentityWhenWindowLessThanOrEqualOne(t *testing.T) {
	for _, w := range []int{0, 1} {
		s := NewChannelSmoother(w, 4)
		in := make([]float32, 4*ChannelsOut)
		for i := range in {
			in[i] = float32(i)
		}
		out := make([]float32, 4*ChannelsOut)
		s.Process(in, out, 4)
		assert.Equal(t, in, out)
	}
}

func TestChannelSmootherInteriorFullWindow(t *testing.T) {
	s := NewChannelSmoother(3, 5)
	in := make([]float32, 5*ChannelsOut)
	for r := 0; r < 5; r++ {
		for c := 0; c < ChannelsOut; c++ {
			in[r*ChannelsOut+c] = float32(r)
		}
	}
	out := make([]float32, 5*ChannelsOut)
	s.Process(in, out, 5)

	// Row 2 (interior) averages rows 1,2,3 = (1+2+3)/3 = 2.
	assert.Equal(t, float32(2), out[2*ChannelsOut])
}
