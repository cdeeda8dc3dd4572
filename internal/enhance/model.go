package enhance

import (
	"github.com/iwvelando/enhance-forecast/pkg/constants"
	"github.com/iwvelando/enhance-forecast/pkg/mathutil"
)

// StrategyResult holds the expected outcome of climbing from +0 to the target
// level under one fixed protection strategy.
type StrategyResult struct {
	// Attempts is the expected number of enhancement attempts.
	Attempts float64
	// ProtectionCount is the expected number of protection items consumed.
	ProtectionCount float64
	// TotalTime is the expected wall-clock time in seconds.
	TotalTime float64
}

// successRate returns the per-attempt success probability at the given
// current enhancement level, clamped to [MinSuccessRate, 1]. The bool result
// is false when the unclamped rate was nonpositive, which marks the whole
// strategy uncomputable.
func successRate(params Parameters, itemLevel, currentLevel int) (float64, bool) {
	base := constants.BaseSuccessRates[currentLevel]

	effectiveSkill := float64(params.EnhancingLevel) +
		constants.HouseEffectiveLevelsPerRoom*float64(params.HouseLevel)

	var levelFactor float64
	if effectiveSkill >= float64(itemLevel) {
		levelFactor = 1 + constants.SkillSurplusBonusPerLevel*(effectiveSkill-float64(itemLevel))
	} else {
		levelFactor = 0.5 * (1 + effectiveSkill/float64(itemLevel))
	}

	bonus := params.ToolBonus + constants.HouseSuccessBonusPerLevel*float64(params.HouseLevel)
	rate := base * levelFactor * (1 + bonus/constants.PercentageMultiplier)

	if rate <= 0 {
		return 0, false
	}
	return mathutil.Clamp(rate, constants.MinSuccessRate, 1), true
}

// doubleJumpChance returns the probability, conditional on a successful
// attempt, that the level advances by two instead of one.
func doubleJumpChance(params Parameters) float64 {
	if !params.BlessedTea {
		return 0
	}
	return mathutil.Min(constants.BlessedDoubleChance*params.guzzling(), 1)
}

// affine represents a value of the form a + b*E0, where E0 is the unknown
// expectation at level zero. The reset transition ties every state back to
// level zero, so the backward sweep carries both coefficients and solves for
// E0 at the end.
type affine struct {
	a float64
	b float64
}

func (v affine) scale(f float64) affine {
	return affine{a: v.a * f, b: v.b * f}
}

func (v affine) plus(w affine) affine {
	return affine{a: v.a + w.a, b: v.b + w.b}
}

// ExpectedOutcome computes the expected attempts, protection consumption, and
// total time to take an item from +0 to targetLevel under a fixed protectFrom
// strategy. protectFrom of 0 means failures always reset to +0; protectFrom
// of N >= 2 means failures at level N or above hold the level and consume one
// protection item. Returns nil when the inputs are invalid or the chain does
// not converge.
func ExpectedOutcome(params Parameters, itemLevel, targetLevel, protectFrom int) *StrategyResult {
	if !params.Valid() || itemLevel < 1 {
		return nil
	}
	if targetLevel < constants.MinTargetLevel || targetLevel > constants.MaxEnhancementLevel {
		return nil
	}
	if protectFrom < 0 || protectFrom == 1 || protectFrom > targetLevel {
		return nil
	}

	double := doubleJumpChance(params)

	// attempts[s] and protections[s] hold the expected totals starting from
	// level s, each as a + b*E0. The absorbing state is targetLevel.
	attempts := make([]affine, targetLevel+1)
	protections := make([]affine, targetLevel+1)

	for s := targetLevel - 1; s >= 0; s-- {
		p, ok := successRate(params, itemLevel, s)
		if !ok {
			return nil
		}
		q := 1 - p

		// Next-state expectation on success; a double jump past the target
		// lands on the target.
		up1 := s + 1
		up2 := s + 2
		if up2 > targetLevel {
			up2 = targetLevel
		}
		nextA := attempts[up1].scale(1 - double).plus(attempts[up2].scale(double))
		nextP := protections[up1].scale(1 - double).plus(protections[up2].scale(double))

		if protectFrom >= constants.MinProtectFromLevel && s >= protectFrom {
			// Reflecting state: failure holds the level and consumes a
			// protection item. E = (1 + p*next) / p; P = q/p + nextP.
			attempts[s] = affine{a: (1 + p*nextA.a) / p, b: nextA.b}
			protections[s] = affine{a: q/p + nextP.a, b: nextP.b}
		} else {
			// Reset state: failure returns to level zero.
			attempts[s] = affine{a: 1 + p*nextA.a, b: p*nextA.b + q}
			protections[s] = affine{a: p * nextP.a, b: p*nextP.b + q}
		}
	}

	denom := 1 - attempts[0].b
	if denom <= constants.ConvergenceEpsilon {
		return nil
	}

	expectedAttempts := attempts[0].a / denom
	// The protections chain carries the same reset coefficients, so its
	// denominator is the same denom.
	expectedProtections := protections[0].a / denom

	timePerAttempt := constants.BaseActionSeconds /
		(1 + params.SpeedBonus/constants.PercentageMultiplier)

	return &StrategyResult{
		Attempts:        expectedAttempts,
		ProtectionCount: expectedProtections,
		TotalTime:       expectedAttempts * timePerAttempt,
	}
}
