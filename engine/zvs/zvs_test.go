package zvs

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCheckEnergyBalance(t *testing.T) {
	c := Check(400, 400, 1, 10e-6, 10, 120e-12, 100e-9)

	if c.Achieved != (c.Primary && c.Secondary) {
		t.Error("achieved flag inconsistent with side flags")
	}
	if c.Achieved && c.EnergyAvailable <= c.EnergyRequired {
		t.Errorf("achieved but available %g <= required %g", c.EnergyAvailable, c.EnergyRequired)
	}
	if want := 0.5 * 10e-6 * 100; math.Abs(c.EnergyAvailable-want) > 1e-15 {
		t.Errorf("available energy = %g, want %g", c.EnergyAvailable, want)
	}
}

func TestCheckTinyCapacitance(t *testing.T) {
	c := Check(400, 400, 1, 10e-6, 5, 1e-15, 100e-9)
	if !c.Achieved {
		t.Error("near-zero Coss should always achieve soft switching")
	}
}

func TestCheckZeroRequirementMargin(t *testing.T) {
	c := Check(400, 400, 1, 10e-6, 5, 0, 100e-9)
	if !c.Achieved {
		t.Error("zero Coss should achieve soft switching")
	}
	if c.Margin != 100 {
		t.Errorf("margin with zero requirement = %g, want 100", c.Margin)
	}
}

func TestCheckZeroCurrent(t *testing.T) {
	c := Check(400, 400, 1, 10e-6, 0, 120e-12, 100e-9)
	if c.Achieved {
		t.Error("zero switching current cannot achieve soft switching")
	}
	if c.EnergyAvailable != 0 {
		t.Errorf("available energy = %g, want 0", c.EnergyAvailable)
	}
}

func TestCheckMarginDecreasesWithCoss(t *testing.T) {
	small := Check(400, 400, 1, 10e-6, 10, 120e-12, 100e-9)
	large := Check(400, 400, 1, 10e-6, 10, 1200e-12, 100e-9)
	if large.Margin >= small.Margin {
		t.Errorf("margin should shrink as Coss grows: %g >= %g", large.Margin, small.Margin)
	}
}

func TestCheckWorstSideRequirement(t *testing.T) {
	// With vin above the reflected output, the primary side sets the
	// requirement.
	c := Check(800, 400, 1, 10e-6, 3, 120e-12, 100e-9)
	if want := 0.5 * 120e-12 * 800 * 800; math.Abs(c.EnergyRequired-want) > 1e-18 {
		t.Errorf("required energy = %g, want primary side %g", c.EnergyRequired, want)
	}
}

func defaultBoundaryConfig() BoundaryConfig {
	return BoundaryConfig{
		Vin: 400, Vout: 400, N: 1,
		Llk: 10e-6, Fsw: 100e3,
		Coss: 120e-12, Deadtime: 100e-9,
	}
}

func TestBoundaryGridShape(t *testing.T) {
	m := Boundary(defaultBoundaryConfig())

	if len(m.PhiDeg) != 50 || len(m.LoadPercent) != 50 {
		t.Fatalf("axis lengths = %d/%d, want 50", len(m.PhiDeg), len(m.LoadPercent))
	}
	if len(m.Feasible) != 50 || len(m.Margin) != 50 {
		t.Fatalf("grid rows = %d/%d, want 50", len(m.Feasible), len(m.Margin))
	}
	for j := range m.Feasible {
		if len(m.Feasible[j]) != 50 || len(m.Margin[j]) != 50 {
			t.Fatalf("row %d has %d/%d columns, want 50", j, len(m.Feasible[j]), len(m.Margin[j]))
		}
	}

	if m.PhiDeg[0] != 0 {
		t.Errorf("phi axis starts at %g, want 0", m.PhiDeg[0])
	}
	if last := m.PhiDeg[len(m.PhiDeg)-1]; math.Abs(last-180) > 1e-9 {
		t.Errorf("phi axis ends at %g, want 180", last)
	}
	if m.LoadPercent[0] != 10 {
		t.Errorf("load axis starts at %g, want 10", m.LoadPercent[0])
	}
	if last := m.LoadPercent[len(m.LoadPercent)-1]; math.Abs(last-100) > 1e-9 {
		t.Errorf("load axis ends at %g, want 100", last)
	}
}

func TestBoundaryCellValues(t *testing.T) {
	m := Boundary(defaultBoundaryConfig())
	for j, row := range m.Feasible {
		for i, v := range row {
			if v != 0 && v != 1 {
				t.Fatalf("cell [%d][%d] = %g, want 0 or 1", j, i, v)
			}
		}
	}
}

func TestBoundaryCustomResolution(t *testing.T) {
	cfg := defaultBoundaryConfig()
	cfg.GridPoints = 10
	m := Boundary(cfg)
	if len(m.PhiDeg) != 10 || len(m.Feasible) != 10 {
		t.Errorf("grid = %dx%d, want 10x10", len(m.PhiDeg), len(m.Feasible))
	}
}

func TestFindOptimalPointFeasible(t *testing.T) {
	cfg := defaultBoundaryConfig()
	opt := FindOptimalPoint(cfg, 10e3)

	if !opt.Achieved {
		t.Fatalf("expected a feasible point at 10 kW: %+v", opt)
	}
	if opt.PhiRad <= 0 || opt.PhiRad > math.Pi {
		t.Errorf("optimal phi = %g rad, want in (0, pi]", opt.PhiRad)
	}
	if math.Abs(opt.PhiDeg-opt.PhiRad*180/math.Pi) > 1e-9 {
		t.Errorf("PhiDeg %g inconsistent with PhiRad %g", opt.PhiDeg, opt.PhiRad)
	}
	if opt.DeadtimeNano != 100 {
		t.Errorf("deadtime = %g ns, want 100", opt.DeadtimeNano)
	}
}

func TestFindOptimalPointInfeasible(t *testing.T) {
	cfg := defaultBoundaryConfig()
	cfg.Coss = 1 // absurd: no leakage energy can discharge a 1 F capacitance

	opt := FindOptimalPoint(cfg, 10e3)
	if opt.Achieved {
		t.Fatal("expected infeasible result")
	}
	if math.Abs(opt.PhiRad-math.Pi/4) > 1e-12 {
		t.Errorf("fallback phi = %g, want pi/4", opt.PhiRad)
	}

	// The fallback must stay a consumable record: a finite margin sentinel,
	// not an infinity that the JSON encoder rejects.
	if math.IsInf(opt.Margin, 0) || math.IsNaN(opt.Margin) {
		t.Fatalf("fallback margin = %g, want finite", opt.Margin)
	}
	if opt.Margin != infeasibleMargin {
		t.Errorf("fallback margin = %g, want %g", opt.Margin, infeasibleMargin)
	}
	if _, err := json.Marshal(opt); err != nil {
		t.Fatalf("fallback result must marshal: %v", err)
	}
}

func TestExtractCoverage(t *testing.T) {
	m := Boundary(defaultBoundaryConfig())
	cov := ExtractCoverage(m)

	if total := cov.ZVSCells + cov.HardSwitchCells; total != 50*50 {
		t.Fatalf("cell count = %d, want %d", total, 50*50)
	}
	want := float64(cov.ZVSCells) / (50 * 50) * 100
	if math.Abs(cov.CoveragePercent-want) > 1e-9 {
		t.Errorf("coverage = %g%%, want %g%%", cov.CoveragePercent, want)
	}
}

func TestExtractCoverageEmpty(t *testing.T) {
	cov := ExtractCoverage(BoundaryMap{})
	if cov.CoveragePercent != 0 || cov.ZVSCells != 0 {
		t.Errorf("empty map coverage = %+v, want zeros", cov)
	}
}

func TestRecommend(t *testing.T) {
	m := Boundary(defaultBoundaryConfig())
	recs := Recommend(m, 100)

	if len(recs) == 0 {
		t.Fatal("expected recommendations at full load")
	}
	if len(recs) > maxRecommendations {
		t.Fatalf("got %d recommendations, cap is %d", len(recs), maxRecommendations)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Margin > recs[i-1].Margin {
			t.Errorf("recommendations not sorted by margin: %g after %g", recs[i].Margin, recs[i-1].Margin)
		}
	}
	for _, r := range recs {
		wantRating := "Good"
		if r.Margin > 50 {
			wantRating = "Excellent"
		}
		if r.Rating != wantRating {
			t.Errorf("rating for margin %g = %q, want %q", r.Margin, r.Rating, wantRating)
		}
	}
}

func TestRecommendEmptyMap(t *testing.T) {
	if recs := Recommend(BoundaryMap{}, 50); recs != nil {
		t.Errorf("expected nil for empty map, got %v", recs)
	}
}
