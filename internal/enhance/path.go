package enhance

import (
	"github.com/iwvelando/enhance-forecast/internal/catalog"
	"github.com/iwvelando/enhance-forecast/internal/market"
	"github.com/iwvelando/enhance-forecast/internal/pricing"
	"github.com/iwvelando/enhance-forecast/pkg/constants"
	"go.uber.org/zap"
)

// Planner computes enhancement plans against one catalog and one market
// snapshot. Each calculation is an independent pure computation over the
// snapshotted data; a Planner is safe for concurrent use.
type Planner struct {
	logger   *zap.Logger
	catalog  *catalog.Catalog
	snapshot *market.Snapshot
}

// NewPlanner constructs a Planner for the provided data snapshots.
func NewPlanner(logger *zap.Logger, cat *catalog.Catalog, snapshot *market.Snapshot) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{logger: logger, catalog: cat, snapshot: snapshot}
}

// TraditionalBreakdown describes the linear enhancement plan.
type TraditionalBreakdown struct {
	ProtectFrom        int          `json:"protectFrom"`
	ExpectedAttempts   float64      `json:"expectedAttempts"`
	ProtectionCount    float64      `json:"protectionCount"`
	TotalTime          float64      `json:"totalTime"`
	BaseCost           float64      `json:"baseCost"`
	MaterialCost       float64      `json:"materialCost"`
	ProtectionCost     float64      `json:"protectionCost"`
	ProtectionItemHrid catalog.Hrid `json:"protectionItemHrid,omitempty"`
	TotalCost          float64      `json:"totalCost"`
}

// ConsumedItem is one prerequisite tier consumed by the mirror plan.
type ConsumedItem struct {
	Level    int     `json:"level"`
	Quantity int64   `json:"quantity"`
	UnitCost float64 `json:"unitCost"`
}

// MirrorBreakdown describes the mirror-merge plan.
type MirrorBreakdown struct {
	MirrorStartLevel      int            `json:"mirrorStartLevel"`
	ConsumedItems         []ConsumedItem `json:"consumedItems"`
	MirrorCount           int64          `json:"mirrorCount"`
	PhilosopherMirrorCost float64        `json:"philosopherMirrorCost"`
	TotalCost             float64        `json:"totalCost"`
	TraditionalCost       float64        `json:"traditionalCost"`
}

// OptimalStrategy is the recommended plan: traditional, or mirror when the
// optimizer found a cheaper path for the final level.
type OptimalStrategy struct {
	UsedMirror   bool                  `json:"usedMirror"`
	Traditional  *TraditionalBreakdown `json:"traditional,omitempty"`
	Mirror       *MirrorBreakdown      `json:"mirror,omitempty"`
	MissingPrice bool                  `json:"missingPrice,omitempty"`
}

// LevelPlan summarizes the cheapest way to reach one intermediate level,
// after mirror relaxation.
type LevelPlan struct {
	Level       int     `json:"level"`
	ProtectFrom int     `json:"protectFrom"`
	Attempts    float64 `json:"attempts"`
	Cost        float64 `json:"cost"`
	ViaMirror   bool    `json:"viaMirror,omitempty"`
}

// PathResult is the externally-consumed answer for one item and target level.
type PathResult struct {
	ItemHrid        catalog.Hrid    `json:"itemHrid"`
	ItemName        string          `json:"itemName"`
	ItemLevel       int             `json:"itemLevel"`
	TargetLevel     int             `json:"targetLevel"`
	OptimalStrategy OptimalStrategy `json:"optimalStrategy"`
	Levels          []LevelPlan     `json:"levels"`
}

// CalculateEnhancementPath assembles the recommended strategy for taking an
// item from +0 to targetLevel. Returns nil when the item is unknown, not
// enhanceable, the target level is out of range, or no strategy is
// computable; callers treat a nil result as "cannot enhance this item".
func (p *Planner) CalculateEnhancementPath(itemHrid catalog.Hrid, targetLevel int, params Parameters) *PathResult {
	if targetLevel < constants.MinTargetLevel || targetLevel > constants.MaxEnhancementLevel {
		return nil
	}
	item, ok := p.catalog.Lookup(itemHrid)
	if !ok || !item.Enhanceable() {
		p.logger.Debug("item is unknown or not enhanceable",
			zap.String("op", "enhance.CalculateEnhancementPath"),
			zap.String("itemHrid", itemHrid.String()),
		)
		return nil
	}

	resolver := pricing.NewResolver(p.logger, p.catalog, p.snapshot)

	costs, best, ok := buildTargetCosts(p.logger, resolver, item, targetLevel, params)
	if !ok {
		return nil
	}

	catalyst := resolver.Resolve(catalog.PhilosophersMirrorHrid)
	relaxed := costs
	mirrorStart := 0
	if !catalyst.Missing {
		relaxed, mirrorStart = relaxMirror(costs, catalyst.Value)
	}

	result := &PathResult{
		ItemHrid:    item.Hrid,
		ItemName:    item.Name,
		ItemLevel:   item.ItemLevel,
		TargetLevel: targetLevel,
	}

	for level := 1; level <= targetLevel; level++ {
		result.Levels = append(result.Levels, LevelPlan{
			Level:       level,
			ProtectFrom: best[level].ProtectFrom,
			Attempts:    best[level].Attempts,
			Cost:        relaxed[level],
			ViaMirror:   relaxed[level] < costs[level],
		})
	}

	finalBest := best[targetLevel]
	missing := finalBest.MissingPrice

	if relaxed[targetLevel] < costs[targetLevel] {
		n := targetLevel - mirrorStart
		result.OptimalStrategy = OptimalStrategy{
			UsedMirror: true,
			Mirror: &MirrorBreakdown{
				MirrorStartLevel: mirrorStart,
				ConsumedItems: []ConsumedItem{
					{Level: mirrorStart - 2, Quantity: fibQuantity(n), UnitCost: relaxed[mirrorStart-2]},
					{Level: mirrorStart - 1, Quantity: fibQuantity(n + 1), UnitCost: relaxed[mirrorStart-1]},
				},
				MirrorCount:           mirrorFibQuantity(n),
				PhilosopherMirrorCost: catalyst.Value * float64(mirrorFibQuantity(n)),
				TotalCost:             relaxed[targetLevel],
				TraditionalCost:       costs[targetLevel],
			},
			MissingPrice: missing,
		}
		return result
	}

	result.OptimalStrategy = OptimalStrategy{
		Traditional: &TraditionalBreakdown{
			ProtectFrom:        finalBest.ProtectFrom,
			ExpectedAttempts:   finalBest.Attempts,
			ProtectionCount:    finalBest.ProtectionCount,
			TotalTime:          finalBest.TotalTime,
			BaseCost:           finalBest.BaseCost,
			MaterialCost:       finalBest.MaterialCost,
			ProtectionCost:     finalBest.ProtectionCost,
			ProtectionItemHrid: finalBest.ProtectionItemHrid,
			TotalCost:          finalBest.TotalCost,
		},
		MissingPrice: missing,
	}
	return result
}
