package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the first half of the spectrum of
// data with its mean removed, so bin 0 carries no offset.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := Mean(data)
	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// Peak is the strongest non-zero frequency bin.
type Peak struct {
	Bin          int
	Power        float64
	FrequencyHz  float64
	PeriodFrames float64
}

// Dominant finds the strongest bin of ps, computed from n samples taken at
// fps frames per second. A flat spectrum yields the zero Peak.
func Dominant(ps []float64, n, fps int) Peak {
	var p Peak
	for i := 1; i < len(ps); i++ {
		if ps[i] > p.Power {
			p.Power = ps[i]
			p.Bin = i
		}
	}
	if p.Bin == 0 || n == 0 {
		return Peak{}
	}
	p.PeriodFrames = float64(n) / float64(p.Bin)
	if fps > 0 {
		p.FrequencyHz = float64(p.Bin) * float64(fps) / float64(n)
	}
	return p
}

func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	mean := Mean(data)
	ss := 0.0
	for _, v := range data {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(len(data)-1))
}

// Autocorrelation returns the normalised correlation of data with itself
// shifted by lag. Constant data yields 0.
func Autocorrelation(data []float64, lag int) float64 {
	if lag < 0 || lag >= len(data) {
		return 0
	}
	mean := Mean(data)
	num, den := 0.0, 0.0
	for i, v := range data {
		d := v - mean
		den += d * d
		if i+lag < len(data) {
			num += d * (data[i+lag] - mean)
		}
	}
	if den == 0 {
		return 0
	}
	return num / den
}
