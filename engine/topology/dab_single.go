package topology

import (
	"math"

	"github.com/voltforge/simengine/engine/harmonic"
	"github.com/voltforge/simengine/engine/magnetics"
	"github.com/voltforge/simengine/engine/thermal"
	"github.com/voltforge/simengine/engine/waveform"
)

// Bridge and passive assumptions for the single-phase DAB loss model.
const (
	bridgeSwitchCount = 4
	capESR            = 0.01 // Ω, typical film capacitor
	capRippleFactor   = 0.1  // ripple share of the DC current

	// maxSwitchingFrequency bounds the supported frequency range.
	maxSwitchingFrequency = 1e6 // Hz

	waveformPoints = 2000
)

// Assumed transformer geometry for a converter in this power class.
var dabTransformerGeometry = magnetics.TransformerSpec{
	CoreVolume:    1e-5,
	CoreArea:      1e-4,
	WireAreaPri:   5e-6,
	WireAreaSec:   5e-6,
	LengthPerTurn: 0.05,
}

// DABSinglePhase is the fully modeled single-phase dual-active-bridge
// converter.
type DABSinglePhase struct {
	p Params
}

// NewDABSinglePhase builds a single-phase DAB from the parameter record,
// applying the 25 °C ambient and 100 ns deadtime defaults.
func NewDABSinglePhase(p Params) *DABSinglePhase {
	if p.TAmbient == 0 {
		p.TAmbient = 25
	}
	if p.Deadtime == 0 {
		p.Deadtime = 100e-9
	}
	return &DABSinglePhase{p: p}
}

func (d *DABSinglePhase) Name() string   { return "dab_single" }
func (d *DABSinglePhase) Status() Status { return StatusFull }
func (d *DABSinglePhase) Params() Params { return d.p }

func (d *DABSinglePhase) phiRad() float64 { return d.p.PhiDeg * math.Pi / 180 }

// Validate enforces the DAB parameter ranges.
func (d *DABSinglePhase) Validate() error {
	switch {
	case d.p.Vin <= 0:
		return NewValidationError("vin", d.p.Vin, ErrNonPositiveVin)
	case d.p.Vout <= 0:
		return NewValidationError("vout", d.p.Vout, ErrNonPositiveVout)
	case d.p.Power <= 0:
		return NewValidationError("power", d.p.Power, ErrNonPositivePower)
	case d.p.Fsw <= 0 || d.p.Fsw > maxSwitchingFrequency:
		return NewValidationError("fsw", d.p.Fsw, ErrFrequencyRange)
	case d.p.Llk <= 0:
		return NewValidationError("llk", d.p.Llk, ErrNonPositiveLlk)
	case d.p.TurnsRatio <= 0:
		return NewValidationError("n", d.p.TurnsRatio, ErrNonPositiveRatio)
	case d.p.PhiDeg < 0 || d.p.PhiDeg > 180:
		return NewValidationError("phi_deg", d.p.PhiDeg, ErrPhaseShiftRange)
	}
	return nil
}

// SteadyState computes the operating point: closed-form power transfer,
// waveform-derived currents, DC terminal currents, and the transformer
// analysis under the assumed geometry.
func (d *DABSinglePhase) SteadyState() (map[string]any, error) {
	pTransfer := waveform.PowerTransfer(d.p.Vin, d.p.Vout, d.p.TurnsRatio, d.p.Llk, d.p.Fsw, d.phiRad())

	wf := waveform.Generate(waveform.Config{
		Vin: d.p.Vin, Vout: d.p.Vout, N: d.p.TurnsRatio,
		Llk: d.p.Llk, Fsw: d.p.Fsw, Phi: d.phiRad(),
	})

	spec := dabTransformerGeometry
	spec.Vin = d.p.Vin
	spec.Vout = d.p.Vout
	spec.Power = pTransfer
	spec.Fsw = d.p.Fsw
	spec.TurnsRatio = d.p.TurnsRatio
	xfmr := magnetics.AnalyzeTransformer(spec)

	return map[string]any{
		"power_transfer":         pTransfer,
		"i_pri_rms":              wf.IRMS,
		"i_pri_peak":             wf.IPeak,
		"i_sec_rms":              wf.IRMS / d.p.TurnsRatio,
		"i_in_dc":                d.p.Power / d.p.Vin,
		"i_out_dc":               d.p.Power / d.p.Vout,
		"transformer_loss":       xfmr.TotalLoss,
		"transformer_efficiency": xfmr.Efficiency,
		"flux_density":           xfmr.FluxDensity,
		"operating_point": map[string]any{
			"vin":     d.p.Vin,
			"vout":    d.p.Vout,
			"phi_deg": d.p.PhiDeg,
			"fsw_khz": d.p.Fsw / 1000,
		},
	}, nil
}

// Losses runs the thermal-electrical iteration for each bridge, then adds
// transformer and capacitor ESR losses.
func (d *DABSinglePhase) Losses(dev DeviceParams) (map[string]any, error) {
	ss, err := d.SteadyState()
	if err != nil {
		return nil, err
	}

	iPriRMS := ss["i_pri_rms"].(float64)
	iSecRMS := ss["i_sec_rms"].(float64)
	iPriPeak := ss["i_pri_peak"].(float64)

	// Current splits between the two conducting switches of each bridge.
	iPriPerSwitch := iPriRMS / math.Sqrt2
	iSecPerSwitch := iSecRMS / math.Sqrt2

	swLossPerSwitch := (dev.Eon + dev.Eoff) * d.p.Fsw * iPriPeak / 10

	priThermal := thermal.Iterate(thermal.IterateConfig{
		IRMS:          iPriPerSwitch,
		RdsOn25:       dev.RdsOn25C,
		SwitchingLoss: swLossPerSwitch,
		RthJC:         dev.RthJC,
		RthCA:         dev.RthCA,
		TAmbient:      d.p.TAmbient,
		TjMax:         dev.TjMax,
	})
	secThermal := thermal.Iterate(thermal.IterateConfig{
		IRMS:          iSecPerSwitch,
		RdsOn25:       dev.RdsOn25C,
		SwitchingLoss: swLossPerSwitch,
		RthJC:         dev.RthJC,
		RthCA:         dev.RthCA,
		TAmbient:      d.p.TAmbient,
		TjMax:         dev.TjMax,
	})

	pPri := priThermal.PowerDissipation * bridgeSwitchCount
	pSec := secThermal.PowerDissipation * bridgeSwitchCount
	pXfmr := ss["transformer_loss"].(float64)

	iInDC := ss["i_in_dc"].(float64)
	iOutDC := ss["i_out_dc"].(float64)
	pCaps := iInDC*iInDC*capESR*capRippleFactor + iOutDC*iOutDC*capESR*capRippleFactor

	total := pPri + pSec + pXfmr + pCaps

	return map[string]any{
		"primary_switches":   pPri,
		"secondary_switches": pSec,
		"transformer":        pXfmr,
		"capacitors":         pCaps,
		"total_loss":         total,
		"junction_temp_pri":  priThermal.TjAvg,
		"junction_temp_sec":  secThermal.TjAvg,
		"thermal_safe":       priThermal.Safe && secThermal.Safe,
	}, nil
}

// Efficiency is Pout / (Pout + Ploss) in percent.
func (d *DABSinglePhase) Efficiency(lossBreakdown map[string]any) float64 {
	total, _ := lossBreakdown["total_loss"].(float64)
	pIn := d.p.Power + total
	if pIn <= 0 {
		return 0
	}
	return d.p.Power / pIn * 100
}

// Waveforms generates one high-resolution period and attaches harmonic and
// power-factor metrics.
func (d *DABSinglePhase) Waveforms() (WaveformSet, error) {
	wf := waveform.Generate(waveform.Config{
		Vin: d.p.Vin, Vout: d.p.Vout, N: d.p.TurnsRatio,
		Llk: d.p.Llk, Fsw: d.p.Fsw, Phi: d.phiRad(),
		Points: waveformPoints,
	})

	thd := harmonic.THDPair(wf.Current, wf.Voltage, d.p.Fsw)
	pf := harmonic.PowerFactor(wf.Voltage, wf.Current, d.p.Fsw)

	return WaveformSet{
		Series: map[string][]float64{
			"time":      wf.Time,
			"v_primary": wf.Voltage,
			"i_primary": wf.Current,
		},
		Metrics: map[string]float64{
			"i_rms":           wf.IRMS,
			"i_peak":          wf.IPeak,
			"thd_current":     thd.CurrentTHD,
			"thd_voltage":     thd.VoltageTHD,
			"power_factor":    pf.PowerFactor,
			"displacement_pf": pf.DisplacementPF,
		},
	}, nil
}
