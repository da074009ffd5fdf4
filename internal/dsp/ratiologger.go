package dsp

import "math"

const ratioFloor = 1e-12

// RatioLogger pairs the eight decimated channels into four
// (sensor, standard) quads, computes a scaled, biased log-ratio R per
// quad per decimated row, then smooths it into Ravg with a centered
// moving average at the decimated rate.
type RatioLogger struct {
	prefix []float64
	colIn  []float64
	colOut []float64
}

// NewRatioLogger builds a RatioLogger with scratch sized for up to
// maxRows decimated rows per block. The Ravg moving-average window is
// read from Params.MovAvgR on every Process call rather than cached,
// since Params is the single source of truth the worker owns.
func NewRatioLogger(maxRows int) *RatioLogger {
	return &RatioLogger{
		prefix: make([]float64, maxRows+1),
		colIn:  make([]float64, maxRows),
		colOut: make([]float64, maxRows),
	}
}

// Process computes R and Ravg for nOut decimated rows of decimOut
// (row-major, ChannelsOut-wide) using p's scaling/bias parameters.
// rBuf and ravgBuf are row-major, Quads-wide, and must have capacity
// for at least nOut rows.
func (rl *RatioLogger) Process(p *Params, decimOut []float32, nOut int, rBuf, ravgBuf []float32) {
	scale := p.Alpha * p.Beta * p.Gamma

	for q := 0; q < Quads; q++ {
		sensor := SensorChannels[q]
		standard := StandardChannels[q]

		for t := 0; t < nOut; t++ {
			top := float64(decimOut[t*ChannelsOut+sensor])
			bot := float64(decimOut[t*ChannelsOut+standard])

			if p.RAbs {
				top = math.Abs(top)
				bot = math.Abs(bot)
			}
			if top < ratioFloor {
				top = ratioFloor
			}
			if bot < ratioFloor {
				bot = ratioFloor
			}

			r := scale*(math.Log(top/bot)/p.LnK()) + p.B
			rBuf[t*Quads+q] = float32(r)
			rl.colIn[t] = r
		}

		movingAverage(rl.colIn, nOut, p.MovAvgR, rl.prefix, rl.colOut)

		for t := 0; t < nOut; t++ {
			ravgBuf[t*Quads+q] = float32(rl.colOut[t])
		}
	}
}
