package enhance

import (
	"github.com/iwvelando/enhance-forecast/internal/catalog"
	"github.com/iwvelando/enhance-forecast/internal/pricing"
	"github.com/iwvelando/enhance-forecast/pkg/constants"
	"go.uber.org/zap"
)

// CostBreakdown converts a StrategyResult into coin costs using the shared
// price resolution policy.
type CostBreakdown struct {
	// BaseCost is the resolved value of the unenhanced item.
	BaseCost float64
	// MaterialCost is the per-attempt material cost times expected attempts.
	MaterialCost float64
	// ProtectionCost is the protection item price times expected consumption.
	ProtectionCost float64
	// ProtectionItemHrid is the cheapest protection candidate, empty when the
	// strategy never protects.
	ProtectionItemHrid catalog.Hrid
	// TotalCost is the sum of the three components.
	TotalCost float64
	// MissingPrice is set when any component had no market or production
	// price anywhere in its chain and was treated as zero.
	MissingPrice bool
}

// StrategyOutcome pairs one protection strategy with its expected outcome and
// cost breakdown.
type StrategyOutcome struct {
	ProtectFrom int
	StrategyResult
	CostBreakdown
}

// protectFromCandidates returns the strategies evaluated for a target level:
// never protect, then every protectFrom from 2 up to the target. protectFrom
// of 1 is intentionally absent.
func protectFromCandidates(targetLevel int) []int {
	candidates := make([]int, 0, targetLevel)
	candidates = append(candidates, 0)
	for level := constants.MinProtectFromLevel; level <= targetLevel; level++ {
		candidates = append(candidates, level)
	}
	return candidates
}

// itemEconomics holds the per-item prices shared by every strategy candidate,
// resolved once before the search.
type itemEconomics struct {
	baseCost        float64
	baseMissing     bool
	materialPerTry  float64
	materialMissing bool
	protectionHrid  catalog.Hrid
	protectionCost  float64
	protectionFound bool
}

func resolveItemEconomics(resolver *pricing.Resolver, item catalog.Item) itemEconomics {
	var econ itemEconomics

	base := resolver.Resolve(item.Hrid)
	econ.baseCost = base.Value
	econ.baseMissing = base.Missing

	for _, mat := range item.EnhancementMaterials {
		price := resolver.Resolve(mat.ItemHrid)
		econ.materialPerTry += price.Value * mat.Count
		if price.Missing {
			econ.materialMissing = true
		}
	}

	for _, hrid := range resolver.Catalog().ProtectionCandidates(item) {
		price := resolver.Resolve(hrid)
		if price.Missing {
			continue
		}
		if !econ.protectionFound || price.Value < econ.protectionCost {
			econ.protectionHrid = hrid
			econ.protectionCost = price.Value
			econ.protectionFound = true
		}
	}

	return econ
}

// SearchStrategies evaluates every protection strategy for one item and
// target level, returning the candidates in evaluation order. Candidates the
// probability model cannot compute are filtered out.
func SearchStrategies(logger *zap.Logger, resolver *pricing.Resolver, item catalog.Item, targetLevel int, params Parameters) []StrategyOutcome {
	if logger == nil {
		logger = zap.NewNop()
	}

	econ := resolveItemEconomics(resolver, item)
	return searchWithEconomics(logger, item, targetLevel, params, econ)
}

func searchWithEconomics(logger *zap.Logger, item catalog.Item, targetLevel int, params Parameters, econ itemEconomics) []StrategyOutcome {
	var outcomes []StrategyOutcome

	for _, protectFrom := range protectFromCandidates(targetLevel) {
		result := ExpectedOutcome(params, item.ItemLevel, targetLevel, protectFrom)
		if result == nil {
			logger.Debug("skipping uncomputable strategy",
				zap.String("op", "enhance.SearchStrategies"),
				zap.String("itemHrid", item.Hrid.String()),
				zap.Int("targetLevel", targetLevel),
				zap.Int("protectFrom", protectFrom),
			)
			continue
		}

		breakdown := CostBreakdown{
			BaseCost:     econ.baseCost,
			MaterialCost: econ.materialPerTry * result.Attempts,
			MissingPrice: econ.baseMissing || econ.materialMissing,
		}
		if protectFrom >= constants.MinProtectFromLevel {
			if econ.protectionFound {
				breakdown.ProtectionItemHrid = econ.protectionHrid
				breakdown.ProtectionCost = econ.protectionCost * result.ProtectionCount
			} else {
				breakdown.MissingPrice = true
			}
		}
		breakdown.TotalCost = breakdown.BaseCost + breakdown.MaterialCost + breakdown.ProtectionCost

		outcomes = append(outcomes, StrategyOutcome{
			ProtectFrom:    protectFrom,
			StrategyResult: *result,
			CostBreakdown:  breakdown,
		})
	}

	return outcomes
}

// bestOutcome returns the minimum-cost outcome from a candidate list.
func bestOutcome(outcomes []StrategyOutcome) (StrategyOutcome, bool) {
	if len(outcomes) == 0 {
		return StrategyOutcome{}, false
	}
	best := outcomes[0]
	for _, outcome := range outcomes[1:] {
		if outcome.TotalCost < best.TotalCost {
			best = outcome
		}
	}
	return best, true
}

// buildTargetCosts assembles the per-level minimum traditional cost array:
// index 0 is the base item price and index N is the cheapest strategy cost to
// reach +N. The per-level best outcomes are returned alongside, indexed the
// same way (index 0 unused).
func buildTargetCosts(logger *zap.Logger, resolver *pricing.Resolver, item catalog.Item, targetLevel int, params Parameters) ([]float64, []StrategyOutcome, bool) {
	econ := resolveItemEconomics(resolver, item)

	costs := make([]float64, targetLevel+1)
	best := make([]StrategyOutcome, targetLevel+1)
	costs[0] = econ.baseCost

	for level := 1; level <= targetLevel; level++ {
		outcomes := searchWithEconomics(logger, item, level, params, econ)
		outcome, ok := bestOutcome(outcomes)
		if !ok {
			return nil, nil, false
		}
		costs[level] = outcome.TotalCost
		best[level] = outcome
	}

	return costs, best, true
}
