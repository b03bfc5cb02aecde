// Package topology defines the converter-topology contract — validate,
// steady state, losses, efficiency, waveforms — the orchestrator that
// sequences those five steps into one SimulationResult, and the registry
// mapping topology identifiers to constructors.
package topology

import "fmt"

// Status distinguishes fully modeled topologies from estimate-only ones so
// callers never conflate precision levels.
type Status string

const (
	StatusFull     Status = "full"
	StatusEstimate Status = "estimate"
)

// Params is the flat parameter record for any topology. Fields a topology
// does not use are ignored by it; Validate enforces the ones it needs.
// Params are immutable once a simulation request is created.
type Params struct {
	Vin      float64 `json:"vin"`       // V
	Vout     float64 `json:"vout"`      // V
	Power    float64 `json:"power"`     // W
	Fsw      float64 `json:"fsw"`       // Hz
	TAmbient float64 `json:"t_ambient"` // °C; 0 means 25 °C

	Llk        float64 `json:"llk"`        // H
	TurnsRatio float64 `json:"n"`          // Np/Ns
	PhiDeg     float64 `json:"phi_deg"`    // degrees
	CdcIn      float64 `json:"cdc_in"`     // F
	CdcOut     float64 `json:"cdc_out"`    // F
	Deadtime   float64 `json:"deadtime"`   // s; 0 means 100 ns

	NumModules int `json:"num_modules,omitempty"` // MMC submodules per arm
	NumCells   int `json:"num_cells,omitempty"`   // CHB cells per phase
}

// DeviceParams is the flat semiconductor record consumed by loss and ZVS
// calculations. It is sourced from a device library and read-only here.
type DeviceParams struct {
	RdsOn25C  float64 `json:"rds_on_25c"`  // Ω
	RdsOn125C float64 `json:"rds_on_125c"` // Ω
	Eon       float64 `json:"eon"`         // J at reference conditions
	Eoff      float64 `json:"eoff"`        // J at reference conditions
	Qg        float64 `json:"qg"`          // C
	Vf        float64 `json:"vf"`          // body-diode forward drop (V)
	Trr       float64 `json:"trr"`         // s
	Qrr       float64 `json:"qrr"`         // C
	TjMax     float64 `json:"tj_max"`      // °C
	RthJC     float64 `json:"rth_jc"`      // °C/W
	RthCA     float64 `json:"rth_ca"`      // °C/W
	Coss      float64 `json:"coss"`        // F
}

// DefaultDeviceParams is a generic 650 V-class SiC MOSFET operating point
// used when the caller supplies no device.
func DefaultDeviceParams() DeviceParams {
	return DeviceParams{
		RdsOn25C: 0.010,
		Eon:      100e-6,
		Eoff:     50e-6,
		Qg:       100e-9,
		TjMax:    175,
		RthJC:    0.5,
		RthCA:    2.0,
		Coss:     120e-12,
	}
}

// WaveformSet carries the generated time series plus scalar metrics derived
// from them. Series are keyed by signal name.
type WaveformSet struct {
	Series  map[string][]float64 `json:"series"`
	Metrics map[string]float64   `json:"metrics"`
}

// SimulationResult is the only record exposed to external collaborators.
// Results values stay float-coercible and key names are a stable contract
// with the compliance consumer, which addresses them by dotted path.
type SimulationResult struct {
	Success   bool                 `json:"success"`
	Topology  string               `json:"topology"`
	Status    Status               `json:"implementation_status"`
	Params    Params               `json:"params"`
	Results   map[string]any       `json:"results"`
	Waveforms map[string][]float64 `json:"waveforms"`
	Error     string               `json:"error"`
}

// Topology is the five-operation capability set every converter implements.
// Implementations are pure: no I/O, no shared mutable state, deterministic
// for identical inputs.
type Topology interface {
	Name() string
	Status() Status
	Params() Params
	Validate() error
	SteadyState() (map[string]any, error)
	Losses(dev DeviceParams) (map[string]any, error)
	Efficiency(losses map[string]any) float64
	Waveforms() (WaveformSet, error)
}

// Simulate runs the five-step sequence for a topology. Validation failures
// short-circuit into a failed result; any error or panic from a later step
// is converted into a failed result carrying the message — nothing
// propagates past this boundary.
func Simulate(t Topology, dev DeviceParams) (result SimulationResult) {
	result = SimulationResult{
		Topology: t.Name(),
		Status:   t.Status(),
		Params:   t.Params(),
		Results:  map[string]any{},
	}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Results = map[string]any{}
			result.Waveforms = nil
			result.Error = fmt.Sprintf("simulation fault: %v", r)
		}
	}()

	if err := t.Validate(); err != nil {
		result.Error = err.Error()
		return result
	}

	steadyState, err := t.SteadyState()
	if err != nil {
		result.Error = err.Error()
		return result
	}

	lossBreakdown, err := t.Losses(dev)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	efficiency := t.Efficiency(lossBreakdown)

	wf, err := t.Waveforms()
	if err != nil {
		result.Error = err.Error()
		return result
	}

	results := map[string]any{
		"steady_state": steadyState,
		"losses":       lossBreakdown,
		"efficiency":   efficiency,
	}
	for k, v := range wf.Metrics {
		results[k] = v
	}

	result.Success = true
	result.Results = results
	result.Waveforms = wf.Series
	return result
}
