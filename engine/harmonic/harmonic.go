// Package harmonic transforms sampled converter waveforms into frequency-
// domain spectra and derives distortion and power-factor metrics from them.
package harmonic

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// maxHarmonic is the highest harmonic order included in THD, per the usual
// 2..50 convention.
const maxHarmonic = 50

// Spectrum is the single-sided spectrum of one sampled period.
type Spectrum struct {
	Frequencies []float64 `json:"frequencies"`
	Magnitudes  []float64 `json:"magnitudes"`
	Phases      []float64 `json:"phases"`

	THD             float64 `json:"thd"`
	THDPercent      float64 `json:"thd_percent"`
	FundamentalFreq float64 `json:"fundamental_freq"`
	FundamentalMag  float64 `json:"fundamental_mag"`

	// Harmonics maps harmonic order (2..50) to magnitude.
	Harmonics map[int]float64 `json:"harmonics"`

	fundamentalIdx int
}

// Analyze computes the real FFT of signal, locates the bin nearest the
// expected fundamental, and sums harmonics 2..50 into a THD ratio. THD is
// reported as zero when the fundamental magnitude is zero.
func Analyze(signal []float64, sampleRate, fundamental float64) Spectrum {
	n := len(signal)
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, signal)

	bins := len(coeffs)
	freqs := make([]float64, bins)
	mags := make([]float64, bins)
	phases := make([]float64, bins)
	for i, c := range coeffs {
		freqs[i] = float64(i) * sampleRate / float64(n)
		mags[i] = cmplx.Abs(c) * 2 / float64(n)
		phases[i] = cmplx.Phase(c)
	}

	fundIdx := nearestBin(freqs, fundamental)
	fundMag := mags[fundIdx]

	harmonics := make(map[int]float64, maxHarmonic-1)
	var harmonicPower float64
	for h := 2; h <= maxHarmonic; h++ {
		idx := nearestBin(freqs, float64(h)*fundamental)
		mag := mags[idx]
		harmonics[h] = mag
		harmonicPower += mag * mag
	}

	var thd float64
	if fundMag > 0 {
		thd = math.Sqrt(harmonicPower) / fundMag
	}

	return Spectrum{
		Frequencies:     freqs,
		Magnitudes:      mags,
		Phases:          phases,
		THD:             thd,
		THDPercent:      thd * 100,
		FundamentalFreq: fundamental,
		FundamentalMag:  fundMag,
		Harmonics:       harmonics,
		fundamentalIdx:  fundIdx,
	}
}

// Distortion summarizes THD for a current/voltage waveform pair.
type Distortion struct {
	CurrentTHD         float64         `json:"current_thd"`
	VoltageTHD         float64         `json:"voltage_thd"`
	CurrentFundamental float64         `json:"current_fundamental"`
	VoltageFundamental float64         `json:"voltage_fundamental"`
	CurrentHarmonics   map[int]float64 `json:"current_harmonics"`
	VoltageHarmonics   map[int]float64 `json:"voltage_harmonics"`
}

// THDPair analyzes a current/voltage pair sampled over one period of the
// given fundamental frequency. The sample rate is implied by the slice
// length spanning exactly one fundamental period.
func THDPair(current, voltage []float64, fundamental float64) Distortion {
	sampleRate := fundamental * float64(len(current))

	iSpec := Analyze(current, sampleRate, fundamental)
	vSpec := Analyze(voltage, fundamental*float64(len(voltage)), fundamental)

	return Distortion{
		CurrentTHD:         iSpec.THDPercent,
		VoltageTHD:         vSpec.THDPercent,
		CurrentFundamental: iSpec.FundamentalMag,
		VoltageFundamental: vSpec.FundamentalMag,
		CurrentHarmonics:   iSpec.Harmonics,
		VoltageHarmonics:   vSpec.Harmonics,
	}
}

// nearestBin returns the index of the frequency bin closest to target.
func nearestBin(freqs []float64, target float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, f := range freqs {
		if d := math.Abs(f - target); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
