package waveform

import "math"

// rippleCurrentFraction approximates DC-link ripple current as a fixed share
// of the DC current, per the triangular ripple assumption.
const rippleCurrentFraction = 0.1

// Ripple is the DC-link capacitor voltage/current ripple estimate.
type Ripple struct {
	VRipple        float64 `json:"v_ripple"`
	VRipplePercent float64 `json:"v_ripple_percent"`
	IRipple        float64 `json:"i_ripple"`
	IRippleRMS     float64 `json:"i_ripple_rms"`
}

// CapacitorRipple estimates DC-link capacitor ripple from a triangular
// approximation of the ripple current charging the capacitor for half a
// switching period.
func CapacitorRipple(power, vdc, fsw, capacitance float64) Ripple {
	idc := power / vdc
	tHalf := 1 / (2 * fsw)

	iRipple := idc * rippleCurrentFraction
	vRipple := iRipple * tHalf / capacitance

	return Ripple{
		VRipple:        vRipple,
		VRipplePercent: vRipple / vdc * 100,
		IRipple:        iRipple,
		IRippleRMS:     iRipple / math.Sqrt(3),
	}
}
