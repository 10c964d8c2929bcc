package audio

import "math"

type filterKind int

const (
	lowpass filterKind = iota
	bandpass
)

const filterQ = 1.0

// biquad is a direct form I second order filter with cookbook coefficients.
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

func newBiquad(kind filterKind, freq, sampleRate float64) *biquad {
	w0 := 2 * math.Pi * freq / sampleRate
	cos, sin := math.Cos(w0), math.Sin(w0)
	alpha := sin / (2 * filterQ)
	a0 := 1 + alpha
	f := &biquad{
		a1: -2 * cos / a0,
		a2: (1 - alpha) / a0,
	}
	switch kind {
	case bandpass:
		f.b0 = alpha / a0
		f.b1 = 0
		f.b2 = -alpha / a0
	default:
		f.b0 = (1 - cos) / 2 / a0
		f.b1 = (1 - cos) / a0
		f.b2 = (1 - cos) / 2 / a0
	}
	return f
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}
