// Package thermal models junction temperature through a thermal-resistance
// network and solves the temperature/on-resistance feedback by bounded
// fixed-point iteration.
package thermal

// Defaults for the iteration and the Rds(on) temperature model.
const (
	DefaultTempCoeff     = 0.006 // per °C, typical silicon MOSFET
	DefaultTjMax         = 175.0 // °C
	DefaultMaxIterations = 10
	DefaultTolerance     = 0.5 // °C

	// safetyMargin is how far below the rated maximum the junction must
	// stay for the state to be reported safe.
	safetyMargin = 10.0 // °C
)

// State is a resolved thermal operating point.
type State struct {
	TjAvg            float64 `json:"tj_avg"`
	TjMax            float64 `json:"tj_max"` // steady-state: equal to TjAvg
	TjRise           float64 `json:"tj_rise"`
	CaseTemp         float64 `json:"case_temp"`
	PowerDissipation float64 `json:"power_dissipation"`
	Safe             bool    `json:"is_safe"`
}

// JunctionTemp evaluates the thermal network Tj = Ta + P·(Rth_jc + Rth_ca)
// for a fixed power dissipation.
func JunctionTemp(powerLoss, rthJC, rthCA, tAmbient, tjMax float64) State {
	rise := powerLoss * (rthJC + rthCA)
	tj := tAmbient + rise

	return State{
		TjAvg:            tj,
		TjMax:            tj,
		TjRise:           rise,
		CaseTemp:         tAmbient + powerLoss*rthCA,
		PowerDissipation: powerLoss,
		Safe:             tj < tjMax-safetyMargin,
	}
}

// RdsOnAt scales a 25 °C on-resistance to junction temperature tj using a
// linear temperature coefficient, floored at the 25 °C value so the result
// is monotonically non-decreasing in tj.
func RdsOnAt(rdsOn25, tj, coeff float64) float64 {
	if coeff == 0 {
		coeff = DefaultTempCoeff
	}
	r := rdsOn25 * (1 + coeff*(tj-25))
	if r < rdsOn25 {
		return rdsOn25
	}
	return r
}

// IterateConfig parameterizes the fixed-point solve. Zero-valued limits fall
// back to the package defaults.
type IterateConfig struct {
	IRMS          float64
	RdsOn25       float64
	SwitchingLoss float64 // held fixed across iterations
	RthJC         float64
	RthCA         float64
	TAmbient      float64
	TjMax         float64
	MaxIterations int
	Tolerance     float64
}

// Iterate solves the junction-temperature / on-resistance feedback loop.
// Starting from a 25 °C guess it recomputes conduction loss at the updated
// resistance and the resulting junction temperature until successive
// iterates differ by less than the tolerance. The loop is hard-capped: if
// it does not converge within MaxIterations the last state is returned
// without error, keeping worst-case latency bounded for any input.
func Iterate(cfg IterateConfig) State {
	if cfg.TjMax == 0 {
		cfg.TjMax = DefaultTjMax
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}

	tj := 25.0
	var state State
	for i := 0; i < cfg.MaxIterations; i++ {
		rdsOn := RdsOnAt(cfg.RdsOn25, tj, DefaultTempCoeff)
		conduction := cfg.IRMS * cfg.IRMS * rdsOn
		total := conduction + cfg.SwitchingLoss

		state = JunctionTemp(total, cfg.RthJC, cfg.RthCA, cfg.TAmbient, cfg.TjMax)

		if diff := state.TjAvg - tj; diff < cfg.Tolerance && diff > -cfg.Tolerance {
			return state
		}
		tj = state.TjAvg
	}
	return state
}
