package losses

// softSwitchRetention is the fraction of switching loss that survives full
// zero-voltage switching; turn-on loss (~70% of the base) is eliminated.
const softSwitchRetention = 0.3

// ZVSAdjustment describes how soft switching changed the switching loss.
type ZVSAdjustment struct {
	BaseLoss         float64 `json:"base_loss"`
	AdjustedLoss     float64 `json:"adjusted_loss"`
	Reduction        float64 `json:"reduction"`
	ReductionPercent float64 `json:"reduction_percent"`
}

// ZVSAdjust scales a base switching loss for the soft-switching condition.
// Full ZVS keeps only 30% of the base loss. Partial ZVS removes the
// proportional share of the eliminable 70%, with partialFactor in (0, 1].
// Hard switching leaves the loss unchanged.
func ZVSAdjust(baseLoss float64, achieved bool, partialFactor float64) ZVSAdjustment {
	switch {
	case achieved:
		adjusted := baseLoss * softSwitchRetention
		return ZVSAdjustment{
			BaseLoss:         baseLoss,
			AdjustedLoss:     adjusted,
			Reduction:        baseLoss - adjusted,
			ReductionPercent: (1 - softSwitchRetention) * 100,
		}
	case partialFactor > 0:
		reduction := baseLoss * partialFactor * (1 - softSwitchRetention)
		var pct float64
		if baseLoss > 0 {
			pct = reduction / baseLoss * 100
		}
		return ZVSAdjustment{
			BaseLoss:         baseLoss,
			AdjustedLoss:     baseLoss - reduction,
			Reduction:        reduction,
			ReductionPercent: pct,
		}
	default:
		return ZVSAdjustment{BaseLoss: baseLoss, AdjustedLoss: baseLoss}
	}
}
