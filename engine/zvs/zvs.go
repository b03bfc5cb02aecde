// Package zvs evaluates zero-voltage-switching feasibility for dual-active-
// bridge operating points: a per-point energy-balance check, a 2-D boundary
// sweep over phase shift and load, and an optimal-point search.
package zvs

import "math"

// Condition is the energy-balance result at a single operating point.
// Achieved flags satisfy achieved == (EnergyAvailable > energy required) per
// side by construction.
type Condition struct {
	Achieved  bool `json:"zvs_achieved"`
	Primary   bool `json:"zvs_primary"`
	Secondary bool `json:"zvs_secondary"`

	EnergyAvailable float64 `json:"energy_available"` // ½·Llk·I² (J)
	EnergyRequired  float64 `json:"energy_required"`  // worst side ½·Coss·V² (J)
	Margin          float64 `json:"margin"`           // min side margin (%)

	OperatingPoint map[string]float64 `json:"operating_point"`
}

// Check tests whether the energy stored in the leakage inductance at the
// switching instant is enough to discharge the switch output capacitance on
// both the primary side and the turns-ratio-reflected secondary side.
func Check(vin, vout, n, llk, iLlk, coss, deadtime float64) Condition {
	eAvail := 0.5 * llk * iLlk * iLlk

	eReqPri := 0.5 * coss * vin * vin
	voutRefl := vout * n
	eReqSec := 0.5 * coss * voutRefl * voutRefl

	pri := eAvail > eReqPri
	sec := eAvail > eReqSec

	return Condition{
		Achieved:        pri && sec,
		Primary:         pri,
		Secondary:       sec,
		EnergyAvailable: eAvail,
		EnergyRequired:  math.Max(eReqPri, eReqSec),
		Margin:          math.Min(sideMargin(eAvail, eReqPri), sideMargin(eAvail, eReqSec)),
		OperatingPoint: map[string]float64{
			"vin":      vin,
			"vout":     vout,
			"i_llk":    iLlk,
			"coss":     coss,
			"deadtime": deadtime,
		},
	}
}

// sideMargin is the percentage headroom of available over required energy.
// A zero requirement is trivially satisfied and reported as 100 %.
func sideMargin(avail, req float64) float64 {
	if req <= 0 {
		return 100
	}
	return (avail - req) / req * 100
}

// switchingCurrent derives the leakage-path current at the switching instant
// from the voltage difference implied by the phase angle, scaled by the load
// fraction.
func switchingCurrent(vin, vout, n, llk, omega, phi, loadFraction float64) float64 {
	vDiff := vin - vout*n*math.Cos(phi)
	return math.Abs(vDiff/(omega*llk)) * loadFraction
}
