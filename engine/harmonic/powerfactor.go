package harmonic

import "math"

// PowerFactorResult carries the power-factor decomposition of a
// voltage/current waveform pair.
type PowerFactorResult struct {
	PowerFactor      float64 `json:"power_factor"`
	DisplacementPF   float64 `json:"displacement_pf"`
	DistortionFactor float64 `json:"distortion_factor"`
	RealPower        float64 `json:"real_power"`
	ApparentPower    float64 `json:"apparent_power"`
	ReactivePower    float64 `json:"reactive_power"`
}

// PowerFactor computes true power factor (mean instantaneous power over
// apparent power), displacement power factor (cosine of the phase difference
// between the fundamental voltage and current components), and the
// distortion factor relating the two. Zero apparent power and zero
// displacement factor degrade to zero rather than dividing by zero.
func PowerFactor(voltage, current []float64, fundamental float64) PowerFactorResult {
	n := len(voltage)

	var pReal float64
	for i := range voltage {
		pReal += voltage[i] * current[i]
	}
	pReal /= float64(n)

	vRMS := rmsOf(voltage)
	iRMS := rmsOf(current)
	pApparent := vRMS * iRMS

	var pf float64
	if pApparent > 0 {
		pf = pReal / pApparent
	}

	sampleRate := fundamental * float64(n)
	vSpec := Analyze(voltage, sampleRate, fundamental)
	iSpec := Analyze(current, sampleRate, fundamental)

	phaseDiff := vSpec.Phases[vSpec.fundamentalIdx] - iSpec.Phases[iSpec.fundamentalIdx]
	dpf := math.Cos(phaseDiff)

	var distortion float64
	if dpf != 0 {
		distortion = pf / dpf
	}

	var reactive float64
	if pApparent > math.Abs(pReal) {
		reactive = math.Sqrt(pApparent*pApparent - pReal*pReal)
	}

	return PowerFactorResult{
		PowerFactor:      pf,
		DisplacementPF:   dpf,
		DistortionFactor: distortion,
		RealPower:        pReal,
		ApparentPower:    pApparent,
		ReactivePower:    reactive,
	}
}

func rmsOf(samples []float64) float64 {
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}
