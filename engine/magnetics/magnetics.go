// Package magnetics sizes and evaluates transformer and inductor magnetics:
// Steinmetz core loss, Faraday-law flux density, copper loss with a fixed
// AC-resistance factor, and a simplified leakage-inductance geometry model.
package magnetics

import "math"

// Steinmetz defaults for a typical power ferrite.
const (
	DefaultK     = 1e-4
	DefaultAlpha = 1.6
	DefaultBeta  = 2.6
)

// Copper-winding constants.
const (
	CopperResistivity = 1.68e-8 // Ω·m at 20 °C
	CopperTempCoeff   = 0.00393 // per °C
	// acResistanceFactor approximates skin and proximity effects at
	// switching frequency as a fixed multiplier on DC resistance.
	acResistanceFactor = 1.5
)

const mu0 = 4 * math.Pi * 1e-7

// SteinmetzCoreLoss evaluates P = k·f^α·B^β·Volume. Zero coefficients fall
// back to the ferrite defaults.
func SteinmetzCoreLoss(freq, bmax, volume, k, alpha, beta float64) float64 {
	if k == 0 {
		k = DefaultK
	}
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	if beta == 0 {
		beta = DefaultBeta
	}
	return k * math.Pow(freq, alpha) * math.Pow(bmax, beta) * volume
}

// FluxDensity returns peak core flux density from Faraday's law,
// B = V_peak / (4.44·f·N·A), for an RMS voltage. Degenerate inputs yield 0.
func FluxDensity(vrms float64, turns int, area, freq float64) float64 {
	if freq == 0 || turns == 0 || area == 0 {
		return 0
	}
	vPeak := vrms * math.Sqrt2
	return math.Abs(vPeak / (4.44 * freq * float64(turns) * area))
}

// CopperLossResult breaks down winding resistance and loss.
type CopperLossResult struct {
	RDC        float64 `json:"r_dc"`
	RAC        float64 `json:"r_ac"`
	ACFactor   float64 `json:"ac_factor"`
	CopperLoss float64 `json:"copper_loss"`
}

// CopperLoss computes winding I²R loss: DC resistance from resistivity and
// geometry, corrected to the operating temperature, then scaled by the fixed
// AC-resistance factor.
func CopperLoss(iRMS float64, turns int, lengthPerTurn, wireArea, temp float64) CopperLossResult {
	length := float64(turns) * lengthPerTurn
	rDC20 := CopperResistivity * length / wireArea
	rDC := rDC20 * (1 + CopperTempCoeff*(temp-20))
	rAC := rDC * acResistanceFactor

	return CopperLossResult{
		RDC:        rDC,
		RAC:        rAC,
		ACFactor:   acResistanceFactor,
		CopperLoss: iRMS * iRMS * rAC,
	}
}

// LeakageInductance estimates transformer leakage inductance referred to the
// primary from a simplified winding-geometry model using the mean turn
// length and the separation between windings.
func LeakageInductance(turnsPri, turnsSec int, windowHeight, separation float64) float64 {
	const meanTurnLength = 0.1 // m, assumed

	nEff := float64(turnsPri+turnsSec) / 2
	return mu0 * nEff * nEff * meanTurnLength * separation / windowHeight
}
