package dsp

import "math"

const y1DenFloor = 1e-12

// YChain evaluates, for each decimated row and each quad, the
// cascaded rational/polynomial correction: y1 = P(r)/Q(r), y2 and y3
// are Horner polynomials of the previous stage, and yt is an affine
// transform of y3.
//
// Divide-by-near-zero protection applies only at the y1 denominator:
// when |den| < 1e-12 the denominator's magnitude is replaced with
// 1e-12 while its sign is preserved. Whether this sign-preserving
// policy, rather than always substituting +1e-12, is the intended
// behavior is the open question recorded in spec.md §9; this
// implementation preserves sign, per spec.md §4.6 and §8 scenario 4.
type YChain struct{}

// NewYChain returns a ready-to-use YChain; it carries no state of its
// own, since Params is supplied per call and nothing persists across
// blocks.
func NewYChain() *YChain {
	return &YChain{}
}

// Process evaluates the chain for nOut decimated rows of ravg
// (row-major, Quads-wide). y2Out, y3Out, ytOut are row-major,
// Quads-wide outputs with capacity for at least nOut rows.
func (yc *YChain) Process(p *Params, ravg []float32, nOut int, y2Out, y3Out, ytOut []float32) {
	for t := 0; t < nOut; t++ {
		for q := 0; q < Quads; q++ {
			r := float64(ravg[t*Quads+q])

			num := p.Y1Num.Horner(r)
			den := p.Y1Den.Horner(r)
			if math.Abs(den) < y1DenFloor {
				if den < 0 {
					den = -y1DenFloor
				} else {
					den = y1DenFloor
				}
			}
			y1 := num / den

			y2 := p.Y2Coeffs.Horner(y1)
			y3 := p.Y3Coeffs.Horner(y2)
			yt := p.E*y3 + p.F

			y2Out[t*Quads+q] = float32(y2)
			y3Out[t*Quads+q] = float32(y3)
			ytOut[t*Quads+q] = float32(yt)
		}
	}
}
