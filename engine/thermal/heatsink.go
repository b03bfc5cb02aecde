package thermal

// Heatsink describes the cooling required to hold a target junction
// temperature at a given dissipation.
type Heatsink struct {
	RthCARequired float64 `json:"rth_ca_required"`
	RthJAMax      float64 `json:"rth_ja_max"`
	TjTarget      float64 `json:"tj_target"`
	Category      string  `json:"cooling_category"`
}

// HeatsinkRequirement computes the maximum allowable case-to-ambient thermal
// resistance for a device and classifies the cooling solution it implies.
func HeatsinkRequirement(powerLoss, rthJC, tAmbient, tjMax, margin float64) Heatsink {
	tjTarget := tjMax - margin
	rthJAMax := (tjTarget - tAmbient) / powerLoss
	rthCA := rthJAMax - rthJC

	var category string
	switch {
	case rthCA < 0:
		category = "Impossible - power loss too high"
	case rthCA < 0.5:
		category = "High-performance forced air"
	case rthCA < 2.0:
		category = "Forced air cooling"
	case rthCA < 10.0:
		category = "Large heatsink with fan"
	default:
		category = "Natural convection possible"
	}

	return Heatsink{
		RthCARequired: rthCA,
		RthJAMax:      rthJAMax,
		TjTarget:      tjTarget,
		Category:      category,
	}
}
