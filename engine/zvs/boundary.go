package zvs

import "math"

// BoundaryConfig parameterizes a feasibility sweep. Resolution is caller-
// supplied: sweep cost grows with GridPoints², so the caller owns the
// cost/precision trade-off. Zero ranges default to φ∈[0,π], load∈[10%,100%],
// 50 points.
type BoundaryConfig struct {
	Vin, Vout float64
	N         float64
	Llk       float64
	Fsw       float64
	Coss      float64
	Deadtime  float64

	PhiMin, PhiMax   float64 // rad
	LoadMin, LoadMax float64 // fraction of rated load
	GridPoints       int
}

// BoundaryMap is the rectangular feasibility grid over phase shift and load.
// Grids are indexed [load][phi] and are read-only after construction. The
// JSON key names are a stable contract with visualization consumers.
type BoundaryMap struct {
	PhiDeg      []float64   `json:"phi_deg"`
	LoadPercent []float64   `json:"load_percent"`
	Feasible    [][]float64 `json:"zvs_map"`    // 0 or 1 per cell
	Margin      [][]float64 `json:"margin_map"` // percent per cell
}

// Boundary sweeps the (phase shift × load fraction) grid, running the
// energy-balance check at every point with the switching-instant current
// implied by that cell.
func Boundary(cfg BoundaryConfig) BoundaryMap {
	if cfg.PhiMax == 0 {
		cfg.PhiMax = math.Pi
	}
	if cfg.LoadMin == 0 && cfg.LoadMax == 0 {
		cfg.LoadMin, cfg.LoadMax = 0.1, 1.0
	}
	points := cfg.GridPoints
	if points <= 0 {
		points = 50
	}

	phiVals := linspace(cfg.PhiMin, cfg.PhiMax, points)
	loadVals := linspace(cfg.LoadMin, cfg.LoadMax, points)
	omega := 2 * math.Pi * cfg.Fsw

	m := BoundaryMap{
		PhiDeg:      make([]float64, points),
		LoadPercent: make([]float64, points),
		Feasible:    make([][]float64, points),
		Margin:      make([][]float64, points),
	}
	for i, phi := range phiVals {
		m.PhiDeg[i] = phi * 180 / math.Pi
	}
	for j, load := range loadVals {
		m.LoadPercent[j] = load * 100
		m.Feasible[j] = make([]float64, points)
		m.Margin[j] = make([]float64, points)
	}

	for i, phi := range phiVals {
		for j, load := range loadVals {
			iLlk := switchingCurrent(cfg.Vin, cfg.Vout, cfg.N, cfg.Llk, omega, phi, load)
			cond := Check(cfg.Vin, cfg.Vout, cfg.N, cfg.Llk, iLlk, cfg.Coss, cfg.Deadtime)

			if cond.Achieved {
				m.Feasible[j][i] = 1
			}
			m.Margin[j][i] = cond.Margin
		}
	}
	return m
}

// OptimalPoint is the outcome of a phase-shift search at a target power.
type OptimalPoint struct {
	PhiRad       float64 `json:"phi_optimal_rad"`
	PhiDeg       float64 `json:"phi_optimal_deg"`
	Achieved     bool    `json:"zvs_achieved"`
	Margin       float64 `json:"margin_percent"`
	DeadtimeNano float64 `json:"recommended_deadtime_ns"`
}

const (
	optimalScanPoints = 100
	powerTolerance    = 0.1 // accept points within ±10 % of target power
	fallbackPhi       = math.Pi / 4

	// infeasibleMargin is the finite margin sentinel reported when no
	// scanned point achieves soft switching. Side margins are bounded
	// below by -100 %, so any real margin beats it, and the result stays
	// JSON-marshalable.
	infeasibleMargin = -1000.0
)

// FindOptimalPoint scans phase shift for operating points whose closed-form
// power transfer lands within the tolerance band of targetPower and returns
// the feasible point with the largest margin. When no scanned point achieves
// ZVS at the target power, the 45° fallback angle is returned flagged
// infeasible.
func FindOptimalPoint(cfg BoundaryConfig, targetPower float64) OptimalPoint {
	if cfg.PhiMax == 0 {
		cfg.PhiMax = math.Pi
	}
	omega := 2 * math.Pi * cfg.Fsw

	bestPhi := math.NaN()
	bestMargin := infeasibleMargin

	for _, phi := range linspace(cfg.PhiMin, cfg.PhiMax, optimalScanPoints) {
		power := (cfg.N * cfg.Vin * cfg.Vout) / (omega * cfg.Llk) * phi * (1 - phi/math.Pi)
		if math.Abs(power-targetPower) > targetPower*powerTolerance {
			continue
		}

		iLlk := switchingCurrent(cfg.Vin, cfg.Vout, cfg.N, cfg.Llk, omega, phi, 1)
		cond := Check(cfg.Vin, cfg.Vout, cfg.N, cfg.Llk, iLlk, cfg.Coss, cfg.Deadtime)

		if cond.Achieved && cond.Margin > bestMargin {
			bestPhi = phi
			bestMargin = cond.Margin
		}
	}

	if math.IsNaN(bestPhi) {
		return OptimalPoint{
			PhiRad:       fallbackPhi,
			PhiDeg:       fallbackPhi * 180 / math.Pi,
			Achieved:     false,
			Margin:       bestMargin,
			DeadtimeNano: cfg.Deadtime * 1e9,
		}
	}
	return OptimalPoint{
		PhiRad:       bestPhi,
		PhiDeg:       bestPhi * 180 / math.Pi,
		Achieved:     true,
		Margin:       bestMargin,
		DeadtimeNano: cfg.Deadtime * 1e9,
	}
}

// linspace returns n evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	vals := make([]float64, n)
	if n == 1 {
		vals[0] = lo
		return vals
	}
	step := (hi - lo) / float64(n-1)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	return vals
}
