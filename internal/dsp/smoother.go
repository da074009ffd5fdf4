package dsp

// movingAverage applies a centered moving average of window length w
// to a single channel's series of length n, writing into out (which
// must have capacity n). For window half h = w/2 and index i, the
// summed range is clamped to [max(0, i-h), min(n-1, i+w-1-h)]; the
// divisor is the actual count in that clamped range, so edges use a
// shorter window rather than zero-padding. When w <= 1 the input is
// copied through unchanged.
//
// Implemented with a prefix-sum scratchpad so each output is O(1)
// after the O(n) prefix pass.
func movingAverage(in []float64, n, w int, prefix []float64, out []float64) {
	if w <= 1 {
		copy(out[:n], in[:n])
		return
	}

	// prefix[i] = sum of in[0:i]; prefix has capacity n+1.
	prefix[0] = 0
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + in[i]
	}

	h := w / 2
	for i := 0; i < n; i++ {
		lo := i - h
		if lo < 0 {
			lo = 0
		}
		hi := i + w - 1 - h
		if hi > n-1 {
			hi = n - 1
		}

		count := hi - lo + 1
		sum := prefix[hi+1] - prefix[lo]
		out[i] = sum / float64(count)
	}
}

// ChannelSmoother applies movingAverage independently to each of
// ChannelsOut channels of a planar (rows, ChannelsOut) buffer, using a
// single shared prefix-sum scratchpad sized for the largest block the
// worker will ever see.
type ChannelSmoother struct {
	window int
	prefix []float64
	colIn  []float64
	colOut []float64
}

// NewChannelSmoother builds a smoother for the given window length,
// with scratch buffers sized for up to maxRows samples per channel.
func NewChannelSmoother(window, maxRows int) *ChannelSmoother {
	return &ChannelSmoother{
		window: window,
		prefix: make([]float64, maxRows+1),
		colIn:  make([]float64, maxRows),
		colOut: make([]float64, maxRows),
	}
}

// Process smooths rows of ChannelsOut-wide planar float32 data from in
// into out (row-major). out may be the same buffer as in, since each
// channel column is copied into scratch before it is written back;
// callers in this package pass distinct scratch buffers.
func (s *ChannelSmoother) Process(in, out []float32, rows int) {
	if s.window <= 1 {
		copy(out[:rows*ChannelsOut], in[:rows*ChannelsOut])
		return
	}

	for ch := 0; ch < ChannelsOut; ch++ {
		for r := 0; r < rows; r++ {
			s.colIn[r] = float64(in[r*ChannelsOut+ch])
		}

		movingAverage(s.colIn, rows, s.window, s.prefix, s.colOut)

		for r := 0; r < rows; r++ {
			out[r*ChannelsOut+ch] = float32(s.colOut[r])
		}
	}
}
