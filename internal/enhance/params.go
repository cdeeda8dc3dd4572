// Package enhance implements the enhancement cost engine: the per-strategy
// probability model, the protection strategy search, the mirror-merge
// optimizer, and the path composer that assembles the final plan.
package enhance

import (
	"github.com/iwvelando/enhance-forecast/pkg/constants"
)

// Parameters holds the character-side inputs to an enhancement calculation.
// All values are snapshotted before the computation begins; the engine never
// reaches out to ambient state.
type Parameters struct {
	// EnhancingLevel is the character's enhancing skill level.
	EnhancingLevel int
	// HouseLevel is the relevant house room level, 0-8.
	HouseLevel int
	// ToolBonus is the percent success bonus from equipped tools.
	ToolBonus float64
	// SpeedBonus is the percent action speed bonus.
	SpeedBonus float64
	// BlessedTea indicates the double-jump buff is active.
	BlessedTea bool
	// GuzzlingBonus is the buff potency multiplier; zero means unmodified.
	GuzzlingBonus float64
}

// Valid reports whether the parameters are usable at all.
func (p Parameters) Valid() bool {
	return p.EnhancingLevel >= 1 &&
		p.HouseLevel >= 0 && p.HouseLevel <= constants.MaxHouseLevel &&
		p.ToolBonus >= 0 && p.SpeedBonus >= 0 && p.GuzzlingBonus >= 0
}

// guzzling returns the effective buff potency multiplier.
func (p Parameters) guzzling() float64 {
	if p.GuzzlingBonus <= 0 {
		return 1.0
	}
	return p.GuzzlingBonus
}
