package dsp

import (
	_ "embed"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// MaxCoeffs is the documented cap on any Horner coefficient sequence
// (y1_num, y1_den, y2_coeffs, y3_coeffs). The cap is a policy choice
// carried over from the fixed-capacity arrays of the original design,
// not a hard algorithmic limit.
const MaxCoeffs = 10

//go:embed defaults.yaml
var defaultsYAML []byte

// Coeffs is an owned, resizable coefficient sequence capped at
// MaxCoeffs entries, evaluated highest-order-first by Horner's method.
type Coeffs []float64

// Horner evaluates the sequence at x, processing coefficients
// highest-order first: r = 0; for each c in sequence, r = r*x + c.
func (c Coeffs) Horner(x float64) float64 {
	var r float64
	for _, coeff := range c {
		r = r*x + coeff
	}
	return r
}

func cloneCoeffs(c Coeffs) Coeffs {
	out := make(Coeffs, len(c))
	copy(out, c)
	return out
}

func setCoeffs(dst *Coeffs, values []float64) error {
	if len(values) > MaxCoeffs {
		return fmt.Errorf("dsp: coefficient sequence has %d entries, max is %d", len(values), MaxCoeffs)
	}
	*dst = append(Coeffs(nil), values...)
	return nil
}

// Params is the mutable configuration record consumed by every
// pipeline stage. It is owned by the worker; CommandReader is the
// sole mutator, and mutation happens only between blocks.
type Params struct {
	SamplingFrequencyHz float64
	TargetRateHz        float64
	LpfCutoffHz         float64
	MovAvgR             int
	MovAvgCh            int

	Alpha, Beta, Gamma float64
	K                  float64
	B                  float64
	RAbs               bool

	Y1Num, Y1Den     Coeffs
	Y2Coeffs, Y3Coeffs Coeffs

	E, F float64

	// lnK caches ln(K), computed once per Params value since K only
	// changes via full Params replacement, never CommandReader.
	lnK float64
}

// paramDefaultsFile mirrors the shape of defaults.yaml and any
// --params override file.
type paramDefaultsFile struct {
	Alpha     float64   `yaml:"alpha"`
	Beta      float64   `yaml:"beta"`
	Gamma     float64   `yaml:"gamma"`
	K         float64   `yaml:"k"`
	B         float64   `yaml:"b"`
	RAbs      bool      `yaml:"r_abs"`
	Y1Num     []float64 `yaml:"y1_num"`
	Y1Den     []float64 `yaml:"y1_den"`
	Y2Coeffs  []float64 `yaml:"y2_coeffs"`
	Y3Coeffs  []float64 `yaml:"y3_coeffs"`
	E         float64   `yaml:"e"`
	F         float64   `yaml:"f"`
}

// Decim returns floor(fs / target_rate), the integer decimation
// factor. Callers must check it is >= 1.
func (p *Params) Decim() int {
	return int(math.Floor(p.SamplingFrequencyHz / p.TargetRateHz))
}

// LnK returns the cached natural log of K used by RatioLogger's
// log_k(x) = ln(x) / ln(K).
func (p *Params) LnK() float64 {
	return p.lnK
}

// NewParams builds a Params from the five Params-valued positional CLI
// values and the embedded compiled defaults, optionally overridden by
// an override YAML document of the same shape as defaults.yaml.
func NewParams(samplingFrequencyHz, targetRateHz, lpfCutoffHz float64, movAvgR, movAvgCh int, overrideYAML []byte) (*Params, error) {
	var base paramDefaultsFile
	if err := yaml.Unmarshal(defaultsYAML, &base); err != nil {
		return nil, fmt.Errorf("dsp: parsing embedded defaults: %w", err)
	}

	if overrideYAML != nil {
		if err := yaml.Unmarshal(overrideYAML, &base); err != nil {
			return nil, fmt.Errorf("dsp: parsing --params override: %w", err)
		}
	}

	if samplingFrequencyHz <= 0 {
		return nil, fmt.Errorf("dsp: sampling_frequency must be positive, got %v", samplingFrequencyHz)
	}
	if targetRateHz <= 0 {
		return nil, fmt.Errorf("dsp: target_rate_hz must be positive, got %v", targetRateHz)
	}
	if lpfCutoffHz <= 0 {
		return nil, fmt.Errorf("dsp: lpf_cutoff_hz must be positive, got %v", lpfCutoffHz)
	}
	if movAvgR <= 0 {
		return nil, fmt.Errorf("dsp: movavg_r must be positive, got %d", movAvgR)
	}
	if movAvgCh <= 0 {
		return nil, fmt.Errorf("dsp: movavg_ch must be positive, got %d", movAvgCh)
	}
	if base.K <= 1 {
		return nil, fmt.Errorf("dsp: k must be > 1, got %v", base.K)
	}
	if len(base.Y1Num) > MaxCoeffs || len(base.Y1Den) > MaxCoeffs || len(base.Y2Coeffs) > MaxCoeffs || len(base.Y3Coeffs) > MaxCoeffs {
		return nil, fmt.Errorf("dsp: a coefficient sequence in defaults exceeds %d entries", MaxCoeffs)
	}

	p := &Params{
		SamplingFrequencyHz: samplingFrequencyHz,
		TargetRateHz:        targetRateHz,
		LpfCutoffHz:         lpfCutoffHz,
		MovAvgR:             movAvgR,
		MovAvgCh:            movAvgCh,
		Alpha:               base.Alpha,
		Beta:                base.Beta,
		Gamma:               base.Gamma,
		K:                   base.K,
		B:                   base.B,
		RAbs:                base.RAbs,
		Y1Num:               Coeffs(base.Y1Num),
		Y1Den:               Coeffs(base.Y1Den),
		Y2Coeffs:            Coeffs(base.Y2Coeffs),
		Y3Coeffs:            Coeffs(base.Y3Coeffs),
		E:                   base.E,
		F:                   base.F,
	}
	p.lnK = math.Log(p.K)

	if decim := p.Decim(); decim < 1 {
		return nil, fmt.Errorf("dsp: decim = floor(fs/target_rate) must be >= 1, got %d", decim)
	}

	return p, nil
}

// Clone returns an independent deep copy, used by tests that need to
// compare a Params value before and after a command application.
func (p *Params) Clone() *Params {
	c := *p
	c.Y1Num = cloneCoeffs(p.Y1Num)
	c.Y1Den = cloneCoeffs(p.Y1Den)
	c.Y2Coeffs = cloneCoeffs(p.Y2Coeffs)
	c.Y3Coeffs = cloneCoeffs(p.Y3Coeffs)
	return &c
}

// Equal reports whether two Params have identical field values,
// used by CommandReader idempotence tests.
func (p *Params) Equal(o *Params) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.SamplingFrequencyHz != o.SamplingFrequencyHz ||
		p.TargetRateHz != o.TargetRateHz ||
		p.LpfCutoffHz != o.LpfCutoffHz ||
		p.MovAvgR != o.MovAvgR ||
		p.MovAvgCh != o.MovAvgCh ||
		p.Alpha != o.Alpha || p.Beta != o.Beta || p.Gamma != o.Gamma ||
		p.K != o.K || p.B != o.B || p.RAbs != o.RAbs ||
		p.E != o.E || p.F != o.F {
		return false
	}
	return coeffsEqual(p.Y1Num, o.Y1Num) &&
		coeffsEqual(p.Y1Den, o.Y1Den) &&
		coeffsEqual(p.Y2Coeffs, o.Y2Coeffs) &&
		coeffsEqual(p.Y3Coeffs, o.Y3Coeffs)
}

func coeffsEqual(a, b Coeffs) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
