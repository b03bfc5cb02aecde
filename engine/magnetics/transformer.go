package magnetics

import "math"

// Transformer design assumptions.
const (
	targetFluxDensity  = 0.25 // T, typical ferrite operating point
	xfmrThermalRes     = 10.0 // °C/W, medium transformer to ambient
	inductorALValue    = 100e-9
	inductorMeanTurn   = 0.05 // m
	wireCurrentDensity = 5e6  // A/m²
)

// TransformerResult is the outcome of a full transformer analysis.
type TransformerResult struct {
	CoreLoss        float64 `json:"core_loss"`
	CopperLoss      float64 `json:"copper_loss"`
	TotalLoss       float64 `json:"total_loss"`
	Efficiency      float64 `json:"efficiency"`
	FluxDensity     float64 `json:"flux_density"`
	TemperatureRise float64 `json:"temperature_rise"`
	TurnsPrimary    int     `json:"turns_primary"`
	TurnsSecondary  int     `json:"turns_secondary"`
}

// TransformerSpec collects the geometry and operating point for
// AnalyzeTransformer.
type TransformerSpec struct {
	Vin, Vout     float64
	Power         float64
	Fsw           float64
	TurnsRatio    float64
	CoreVolume    float64 // m³
	CoreArea      float64 // m²
	WireAreaPri   float64 // m²
	WireAreaSec   float64 // m²
	LengthPerTurn float64 // m
	Temp          float64 // °C; 0 means 100 °C
}

// AnalyzeTransformer picks primary turns for the target flux density,
// evaluates the actual flux, and composes Steinmetz core loss with primary
// and secondary copper losses into total loss, efficiency, and an
// approximate temperature rise under the fixed thermal-resistance assumption.
func AnalyzeTransformer(spec TransformerSpec) TransformerResult {
	temp := spec.Temp
	if temp == 0 {
		temp = 100
	}

	turnsPri := int(spec.Vin / (4.44 * spec.Fsw * spec.CoreArea * targetFluxDensity))
	if turnsPri < 1 {
		turnsPri = 1
	}
	turnsSec := int(float64(turnsPri) / spec.TurnsRatio)

	bPeak := FluxDensity(spec.Vin, turnsPri, spec.CoreArea, spec.Fsw)
	pCore := SteinmetzCoreLoss(spec.Fsw, bPeak, spec.CoreVolume, DefaultK, DefaultAlpha, DefaultBeta)

	iPri := spec.Power / spec.Vin
	iSec := spec.Power / spec.Vout

	cuPri := CopperLoss(iPri, turnsPri, spec.LengthPerTurn, spec.WireAreaPri, temp)
	cuSec := CopperLoss(iSec, turnsSec, spec.LengthPerTurn, spec.WireAreaSec, temp)
	pCopper := cuPri.CopperLoss + cuSec.CopperLoss

	pTotal := pCore + pCopper

	var efficiency float64
	if spec.Power > 0 {
		efficiency = spec.Power / (spec.Power + pTotal) * 100
	}

	return TransformerResult{
		CoreLoss:        pCore,
		CopperLoss:      pCopper,
		TotalLoss:       pTotal,
		Efficiency:      efficiency,
		FluxDensity:     bPeak,
		TemperatureRise: pTotal * xfmrThermalRes,
		TurnsPrimary:    turnsPri,
		TurnsSecondary:  turnsSec,
	}
}

// InductorDesign is a first-pass inductor sizing for a required inductance
// and current.
type InductorDesign struct {
	Turns           int     `json:"turns"`
	WireDiameterMM  float64 `json:"wire_diameter_mm"`
	WireAreaMM2     float64 `json:"wire_area_mm2"`
	DCROhms         float64 `json:"dcr_ohms"`
	CopperLossW     float64 `json:"copper_loss_w"`
	EnergyStoredJ   float64 `json:"energy_stored_j"`
	EstimatedVolCM3 float64 `json:"estimated_volume_cm3"`
}

// DesignInductor estimates turns from a typical inductance factor, wire
// gauge from a 5 A/mm² current density, and the resulting DCR and copper
// loss for a required inductance and current pair.
func DesignInductor(inductance, iPeak, iRMS float64) InductorDesign {
	energy := 0.5 * inductance * iPeak * iPeak
	coreVolume := inductance * iPeak * iPeak / 100 // rough scaling

	turns := int(math.Sqrt(inductance / inductorALValue))
	if turns < 1 {
		turns = 1
	}

	wireArea := iRMS / wireCurrentDensity
	wireDiameter := math.Sqrt(4 * wireArea / math.Pi)

	rDC := CopperResistivity * float64(turns) * inductorMeanTurn / wireArea

	return InductorDesign{
		Turns:           turns,
		WireDiameterMM:  wireDiameter * 1000,
		WireAreaMM2:     wireArea * 1e6,
		DCROhms:         rDC,
		CopperLossW:     iRMS * iRMS * rDC,
		EnergyStoredJ:   energy,
		EstimatedVolCM3: coreVolume * 1e6,
	}
}
