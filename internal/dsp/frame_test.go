package dsp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFrameRoundTrip is spec.md §8 scenario 6: encode then decode must
// reproduce the original payload exactly for every frame type.
func TestFrameRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		typ  FrameType
		nCh  int
	}{
		{"stage3", FrameStage3_8Ch, ChannelsOut},
		{"stage5", FrameStage5_4Ch, Quads},
		{"stage7", FrameStage7_Y24Ch, Quads},
		{"stage8", FrameStage8_Y34Ch, Quads},
		{"stage9", FrameStage9_Yt4Ch, Quads},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nSamp := 3
			payload := make([]float32, nSamp*tc.nCh)
			for i := range payload {
				payload[i] = float32(i) * 1.5
			}

			var buf bytes.Buffer
			require.NoError(t, WriteFrame(&buf, tc.typ, nSamp, tc.nCh, payload))

			f, err := DecodeFrame(&buf)
			require.NoError(t, err)

			assert.Equal(t, tc.typ, f.Type)
			assert.Equal(t, uint32(nSamp), f.NSamp)
			assert.Equal(t, uint32(tc.nCh), f.NCh)

			got := 0
			for r := 0; r < nSamp; r++ {
				for c := 0; c < tc.nCh; c++ {
					assert.Equal(t, payload[got], f.Payload[r][c])
					got++
				}
			}
		})
	}
}

func TestWriteFrameRejectsWrongChannelWidth(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFrame(&buf, FrameStage3_8Ch, 1, Quads, make([]float32, Quads))
	assert.Error(t, err)
}

func TestWriteFrameRejectsShortPayload(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFrame(&buf, FrameStage3_8Ch, 2, ChannelsOut, make([]float32, ChannelsOut))
	assert.Error(t, err)
}

func TestDecodeFrameRejectsUnknownType(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(99)
	buf.Write(make([]byte, 8))

	_, err := DecodeFrame(&buf)
	assert.Error(t, err)
}
