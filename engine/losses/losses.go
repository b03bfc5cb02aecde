// Package losses computes semiconductor conduction, switching, and diode
// losses from device parameters and operating conditions.
package losses

import "math"

// Reference test conditions for the datasheet switching energies. The linear
// voltage/current rescaling below is only trusted near these conditions.
const (
	RefVoltage = 600.0 // V
	RefCurrent = 10.0  // A

	// maxScaleRatio bounds each rescaling ratio. The linear model
	// extrapolates badly far from the reference point, so ratios are
	// clamped to [0, maxScaleRatio] instead of being trusted raw.
	maxScaleRatio = 20.0

	// DefaultGateVoltage is the assumed gate-drive voltage.
	DefaultGateVoltage = 15.0
)

// Breakdown is the per-device loss decomposition.
type Breakdown struct {
	Conduction float64 `json:"conduction_loss"`
	Switching  float64 `json:"switching_loss"`
	Diode      float64 `json:"diode_loss"`
	Total      float64 `json:"total_loss"`
}

// SwitchingResult details the switching-loss components of one device.
type SwitchingResult struct {
	TurnOn    float64 `json:"turn_on_loss"`
	TurnOff   float64 `json:"turn_off_loss"`
	GateDrive float64 `json:"gate_drive_loss"`
	Total     float64 `json:"total_switching_loss"`
}

// DiodeResult details body-diode losses.
type DiodeResult struct {
	Conduction      float64 `json:"conduction_loss"`
	ReverseRecovery float64 `json:"reverse_recovery_loss"`
	Total           float64 `json:"total_diode_loss"`
}

// Conduction returns I²R conduction loss weighted by duty cycle.
func Conduction(iRMS, rdsOn, duty float64) float64 {
	return iRMS * iRMS * rdsOn * duty
}

// Switching rescales the reference turn-on/turn-off energies linearly by the
// actual bus voltage and load current relative to the reference conditions,
// multiplies by switching frequency, and adds gate-drive loss Qg·Vgate·fsw.
func Switching(vin, iload, fsw, eon, eoff, qg, vgate float64) SwitchingResult {
	if vgate == 0 {
		vgate = DefaultGateVoltage
	}
	scale := scaleRatio(vin/RefVoltage) * scaleRatio(iload/RefCurrent)

	pOn := eon * scale * fsw
	pOff := eoff * scale * fsw
	pGate := qg * vgate * fsw

	return SwitchingResult{
		TurnOn:    pOn,
		TurnOff:   pOff,
		GateDrive: pGate,
		Total:     pOn + pOff + pGate,
	}
}

// Diode returns forward-conduction loss plus reverse-recovery loss. Recovery
// loss applies only when the device has a nonzero recovery time.
func Diode(iAvg, vf, trr, qrr, fsw, vdc float64) DiodeResult {
	pCond := vf * iAvg

	var pRR float64
	if trr > 0 {
		pRR = 0.5 * qrr * vdc * fsw
	}

	return DiodeResult{
		Conduction:      pCond,
		ReverseRecovery: pRR,
		Total:           pCond + pRR,
	}
}

// Device composes conduction, switching, and (when vf > 0) body-diode losses
// for a MOSFET carrying the given currents at the given duty cycle.
func Device(iRMS, iAvg, iPeak, rdsOn, vin, fsw, eon, eoff, qg, vf, trr, qrr, duty float64) Breakdown {
	pCond := Conduction(iRMS, rdsOn, duty)
	sw := Switching(vin, iPeak, fsw, eon, eoff, qg, DefaultGateVoltage)

	var pDiode float64
	if vf > 0 {
		d := Diode(iAvg*(1-duty), vf, trr, qrr, fsw, vin)
		pDiode = d.Total
	}

	return Breakdown{
		Conduction: pCond,
		Switching:  sw.Total,
		Diode:      pDiode,
		Total:      pCond + sw.Total + pDiode,
	}
}

// scaleRatio clamps a rescaling ratio into [0, maxScaleRatio].
func scaleRatio(r float64) float64 {
	return math.Min(math.Max(r, 0), maxScaleRatio)
}
