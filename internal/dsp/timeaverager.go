package dsp

// TimeAverager decimates a planar (rows, ChannelsOut) stream by an
// integer factor, maintaining a carry-over tail of up to decim-1
// rows across block boundaries so decimation stays contiguous.
type TimeAverager struct {
	decim     int
	carry     []float32 // up to (decim-1)*ChannelsOut samples
	carryLen  int        // rows currently held in carry
	combined  []float32  // scratch: carry + current block
}

// NewTimeAverager builds a decimator for the given factor, with
// scratch sized for up to maxRows incoming samples per block plus the
// carry tail.
func NewTimeAverager(decim, maxRows int) *TimeAverager {
	return &TimeAverager{
		decim:    decim,
		carry:    make([]float32, (decim)*ChannelsOut),
		combined: make([]float32, (maxRows+decim)*ChannelsOut),
	}
}

// Reset clears the carry-over tail, used for the determinism property
// test (zeroed state reproduces identical output for the same input).
func (t *TimeAverager) Reset() {
	t.carryLen = 0
}

// CarryLen reports the number of carried-over rows; the invariant
// 0 <= CarryLen < decim must hold after every call to Process.
func (t *TimeAverager) CarryLen() int {
	return t.carryLen
}

// Process decimates rows of in (row-major, ChannelsOut-wide) into out,
// which must have capacity for at least ((carryLen+rows)/decim) rows.
// Returns the number of output rows written.
func (t *TimeAverager) Process(in []float32, rows int, out []float32) int {
	copy(t.combined, t.carry[:t.carryLen*ChannelsOut])
	copy(t.combined[t.carryLen*ChannelsOut:], in[:rows*ChannelsOut])

	total := t.carryLen + rows
	nOut := total / t.decim
	remainder := total % t.decim

	for o := 0; o < nOut; o++ {
		base := o * t.decim * ChannelsOut
		for ch := 0; ch < ChannelsOut; ch++ {
			var sum float64
			for k := 0; k < t.decim; k++ {
				sum += float64(t.combined[base+k*ChannelsOut+ch])
			}
			out[o*ChannelsOut+ch] = float32(sum / float64(t.decim))
		}
	}

	tailStart := nOut * t.decim * ChannelsOut
	copy(t.carry[:remainder*ChannelsOut], t.combined[tailStart:tailStart+remainder*ChannelsOut])
	t.carryLen = remainder

	return nOut
}
