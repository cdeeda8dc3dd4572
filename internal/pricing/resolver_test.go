package pricing

import (
	"math"
	"testing"

	"github.com/iwvelando/enhance-forecast/internal/catalog"
	"github.com/iwvelando/enhance-forecast/internal/market"
	"go.uber.org/zap"
)

const (
	bladeHrid   = catalog.Hrid("/items/blade")
	ingotHrid   = catalog.Hrid("/items/ingot")
	oreHrid     = catalog.Hrid("/items/ore")
	loopAHrid   = catalog.Hrid("/items/loop_a")
	loopBHrid   = catalog.Hrid("/items/loop_b")
	orphanHrid  = catalog.Hrid("/items/orphan")
	upgradeHrid = catalog.Hrid("/items/old_blade")
)

func testResolverCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Item{
		{Hrid: oreHrid, Name: "Ore", ItemLevel: 1},
		{
			Hrid:      ingotHrid,
			Name:      "Ingot",
			ItemLevel: 1,
			Recipe:    &catalog.Recipe{Inputs: []catalog.Quantity{{ItemHrid: oreHrid, Count: 2}}},
		},
		{Hrid: upgradeHrid, Name: "Old Blade", ItemLevel: 5},
		{
			Hrid:      bladeHrid,
			Name:      "Blade",
			ItemLevel: 10,
			Recipe: &catalog.Recipe{
				Inputs:          []catalog.Quantity{{ItemHrid: ingotHrid, Count: 5}},
				UpgradeItemHrid: upgradeHrid,
			},
		},
		{
			Hrid:   loopAHrid,
			Name:   "Loop A",
			Recipe: &catalog.Recipe{Inputs: []catalog.Quantity{{ItemHrid: loopBHrid, Count: 1}}},
		},
		{
			Hrid:   loopBHrid,
			Name:   "Loop B",
			Recipe: &catalog.Recipe{Inputs: []catalog.Quantity{{ItemHrid: loopAHrid, Count: 1}}},
		},
		{Hrid: orphanHrid, Name: "Orphan"},
	})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return cat
}

func TestResolveAskBidInflationBoundary(t *testing.T) {
	// The guard is strictly greater-than 1.3: a ratio of exactly 1.30 keeps
	// the ask, 1.31 discards it for max(bid, production).
	tests := []struct {
		name     string
		ask      float64
		bid      float64
		expected float64
	}{
		{
			name:     "ratio exactly 1.30 keeps ask",
			ask:      130,
			bid:      100,
			expected: 130,
		},
		{
			name:     "ratio 1.31 falls back to bid",
			ask:      131,
			bid:      100,
			expected: 100,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cat := testResolverCatalog(t)
			snapshot := market.NewSnapshot(map[catalog.Hrid]map[int]market.Quote{
				oreHrid: {0: {Ask: market.Float(test.ask), Bid: market.Float(test.bid)}},
			})
			resolver := NewResolver(zap.NewNop(), cat, snapshot)
			price := resolver.Resolve(oreHrid)
			if price.Missing {
				t.Fatal("unexpected missing price")
			}
			if price.Value != test.expected {
				t.Errorf("resolved %f, want %f", price.Value, test.expected)
			}
		})
	}
}

func TestResolveAskInflatedAgainstProduction(t *testing.T) {
	// Ore at 100 gives ingot a production cost of 2*100*0.9 = 180. An ask of
	// 500 is inflated beyond 1.3x of that and is discarded for production.
	cat := testResolverCatalog(t)
	snapshot := market.NewSnapshot(map[catalog.Hrid]map[int]market.Quote{
		oreHrid:   {0: {Ask: market.Float(100)}},
		ingotHrid: {0: {Ask: market.Float(500)}},
	})
	resolver := NewResolver(zap.NewNop(), cat, snapshot)
	price := resolver.Resolve(ingotHrid)
	if !withinTolerance(price.Value, 180, 1e-9) {
		t.Errorf("resolved %f, want production cost 180", price.Value)
	}
}

func TestResolveProductionActsAsFloor(t *testing.T) {
	// Ask 200 against production 180: not inflated, and the floor keeps the
	// larger of the two.
	cat := testResolverCatalog(t)
	snapshot := market.NewSnapshot(map[catalog.Hrid]map[int]market.Quote{
		oreHrid:   {0: {Ask: market.Float(100)}},
		ingotHrid: {0: {Ask: market.Float(200)}},
	})
	resolver := NewResolver(zap.NewNop(), cat, snapshot)
	if price := resolver.Resolve(ingotHrid); !withinTolerance(price.Value, 200, 1e-9) {
		t.Errorf("resolved %f, want 200", price.Value)
	}

	// Bid-only quotes use the same floor.
	snapshot = market.NewSnapshot(map[catalog.Hrid]map[int]market.Quote{
		oreHrid:   {0: {Ask: market.Float(100)}},
		ingotHrid: {0: {Bid: market.Float(150)}},
	})
	resolver = NewResolver(zap.NewNop(), cat, snapshot)
	if price := resolver.Resolve(ingotHrid); !withinTolerance(price.Value, 180, 1e-9) {
		t.Errorf("resolved %f, want production floor 180", price.Value)
	}
}

func TestProductionCostWithUpgradeItem(t *testing.T) {
	cat := testResolverCatalog(t)
	snapshot := market.NewSnapshot(map[catalog.Hrid]map[int]market.Quote{
		oreHrid:     {0: {Ask: market.Float(100)}},
		upgradeHrid: {0: {Ask: market.Float(1000)}},
	})
	resolver := NewResolver(zap.NewNop(), cat, snapshot)

	// Blade: 5 ingots at production 180 each, discounted, plus the upgrade
	// blade at 1000: 5*180*0.9 + 1000 = 1810.
	cost := resolver.ProductionCost(bladeHrid)
	if !withinTolerance(cost, 1810, 1e-9) {
		t.Errorf("production cost %f, want 1810", cost)
	}
}

func TestProductionCostCycleTerminates(t *testing.T) {
	cat := testResolverCatalog(t)
	resolver := NewResolver(zap.NewNop(), cat, market.NewSnapshot(nil))
	if cost := resolver.ProductionCost(loopAHrid); cost != 0 {
		t.Errorf("cyclic recipe should cost zero, got %f", cost)
	}
}

func TestResolveMissingEverywhere(t *testing.T) {
	cat := testResolverCatalog(t)
	resolver := NewResolver(zap.NewNop(), cat, market.NewSnapshot(nil))
	price := resolver.Resolve(orphanHrid)
	if !price.Missing {
		t.Error("expected missing price for an item with no market data and no recipe")
	}
	if price.Value != 0 {
		t.Errorf("missing price must resolve to zero, got %f", price.Value)
	}
}

func TestResolveAtEnhancedLevelHasNoProductionFallback(t *testing.T) {
	cat := testResolverCatalog(t)
	snapshot := market.NewSnapshot(map[catalog.Hrid]map[int]market.Quote{
		oreHrid:   {0: {Ask: market.Float(100)}},
		ingotHrid: {0: {Ask: market.Float(200)}, 3: {Ask: market.Float(5000)}},
	})
	resolver := NewResolver(zap.NewNop(), cat, snapshot)

	if price := resolver.ResolveAt(ingotHrid, 3); !withinTolerance(price.Value, 5000, 1e-9) {
		t.Errorf("resolved %f, want the +3 listing at 5000", price.Value)
	}
	// No +5 listing, and crafting cannot produce an enhanced copy.
	if price := resolver.ResolveAt(ingotHrid, 5); !price.Missing {
		t.Error("expected missing price for an unlisted enhanced level")
	}
}

func withinTolerance(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
