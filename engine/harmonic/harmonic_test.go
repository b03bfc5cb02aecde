package harmonic

import (
	"math"
	"testing"
)

// sineWave samples amplitude·sin(2π·freq·t + phase) at n points over one
// second, so frequency f lands exactly on bin f.
func sineWave(n int, freq, amplitude, phase float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(n)
		out[i] = amplitude * math.Sin(2*math.Pi*freq*t+phase)
	}
	return out
}

func TestAnalyzePureSine(t *testing.T) {
	const n = 1000
	signal := sineWave(n, 1, 1, 0)

	spec := Analyze(signal, n, 1)

	if math.Abs(spec.FundamentalMag-1) > 1e-9 {
		t.Errorf("fundamental magnitude = %g, want 1", spec.FundamentalMag)
	}
	if spec.THD > 1e-6 {
		t.Errorf("THD of a pure sine = %g, want ~0", spec.THD)
	}
	if spec.THDPercent != spec.THD*100 {
		t.Errorf("THDPercent = %g, want %g", spec.THDPercent, spec.THD*100)
	}
}

func TestAnalyzeWithThirdHarmonic(t *testing.T) {
	const n = 1000
	signal := sineWave(n, 1, 1, 0)
	third := sineWave(n, 3, 0.2, 0)
	for i := range signal {
		signal[i] += third[i]
	}

	spec := Analyze(signal, n, 1)

	if math.Abs(spec.THD-0.2) > 1e-6 {
		t.Errorf("THD = %g, want 0.2", spec.THD)
	}
	if mag := spec.Harmonics[3]; math.Abs(mag-0.2) > 1e-6 {
		t.Errorf("harmonic 3 magnitude = %g, want 0.2", mag)
	}
	if mag := spec.Harmonics[5]; mag > 1e-6 {
		t.Errorf("harmonic 5 magnitude = %g, want ~0", mag)
	}
}

func TestAnalyzeZeroSignal(t *testing.T) {
	spec := Analyze(make([]float64, 256), 256, 1)
	if spec.THD != 0 {
		t.Errorf("THD of zero signal = %g, want 0", spec.THD)
	}
	if spec.FundamentalMag != 0 {
		t.Errorf("fundamental of zero signal = %g, want 0", spec.FundamentalMag)
	}
}

func TestAnalyzeHarmonicRange(t *testing.T) {
	spec := Analyze(sineWave(2048, 1, 1, 0), 2048, 1)

	if _, ok := spec.Harmonics[2]; !ok {
		t.Error("missing harmonic 2")
	}
	if _, ok := spec.Harmonics[50]; !ok {
		t.Error("missing harmonic 50")
	}
	if _, ok := spec.Harmonics[51]; ok {
		t.Error("harmonic 51 should not be present")
	}
}

func TestTHDPair(t *testing.T) {
	const n = 1000
	current := sineWave(n, 1, 2, 0)
	voltage := sineWave(n, 1, 100, 0)

	d := THDPair(current, voltage, 1)

	if d.CurrentTHD > 1e-4 {
		t.Errorf("current THD = %g%%, want ~0", d.CurrentTHD)
	}
	if d.VoltageTHD > 1e-4 {
		t.Errorf("voltage THD = %g%%, want ~0", d.VoltageTHD)
	}
	if math.Abs(d.CurrentFundamental-2) > 1e-9 {
		t.Errorf("current fundamental = %g, want 2", d.CurrentFundamental)
	}
	if math.Abs(d.VoltageFundamental-100) > 1e-6 {
		t.Errorf("voltage fundamental = %g, want 100", d.VoltageFundamental)
	}
}

func TestPowerFactorResistive(t *testing.T) {
	const n = 1000
	voltage := sineWave(n, 1, 100, 0)
	current := sineWave(n, 1, 10, 0)

	pf := PowerFactor(voltage, current, 1)

	if math.Abs(pf.PowerFactor-1) > 1e-6 {
		t.Errorf("PF = %g, want 1", pf.PowerFactor)
	}
	if math.Abs(pf.DisplacementPF-1) > 1e-6 {
		t.Errorf("DPF = %g, want 1", pf.DisplacementPF)
	}
	if want := 500.0; math.Abs(pf.RealPower-want) > 1e-6 {
		t.Errorf("real power = %g, want %g", pf.RealPower, want)
	}
	if pf.ReactivePower > 1e-3 {
		t.Errorf("reactive power = %g, want ~0", pf.ReactivePower)
	}
}

func TestPowerFactorPhaseShift(t *testing.T) {
	const n = 1000
	shift := math.Pi / 3 // 60 degrees
	voltage := sineWave(n, 1, 100, 0)
	current := sineWave(n, 1, 10, -shift)

	pf := PowerFactor(voltage, current, 1)

	if math.Abs(pf.DisplacementPF-0.5) > 1e-3 {
		t.Errorf("DPF at 60 degrees = %g, want 0.5", pf.DisplacementPF)
	}
	if math.Abs(pf.PowerFactor-0.5) > 1e-3 {
		t.Errorf("PF at 60 degrees = %g, want 0.5", pf.PowerFactor)
	}
	if pf.ReactivePower <= 0 {
		t.Errorf("reactive power = %g, want > 0", pf.ReactivePower)
	}
}

func TestPowerFactorZeroSignals(t *testing.T) {
	pf := PowerFactor(make([]float64, 100), make([]float64, 100), 1)
	if pf.PowerFactor != 0 || pf.ApparentPower != 0 {
		t.Errorf("zero signals: PF = %g, S = %g, want 0", pf.PowerFactor, pf.ApparentPower)
	}
}
