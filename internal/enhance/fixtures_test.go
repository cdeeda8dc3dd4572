package enhance

import (
	"testing"

	"github.com/iwvelando/enhance-forecast/internal/catalog"
	"github.com/iwvelando/enhance-forecast/internal/market"
)

const (
	testSwordHrid     = catalog.Hrid("/items/test_sword")
	cheeseHrid        = catalog.Hrid("/items/cheese")
	swordProtector    = catalog.Hrid("/items/sword_protector")
	unlistedItemHrid  = catalog.Hrid("/items/unlisted_relic")
	mirrorOfProt      = catalog.MirrorOfProtectionHrid
	philosophersHrid  = catalog.PhilosophersMirrorHrid
	defaultSwordLevel = 10
)

// testCatalog builds the fixture catalog shared by the strategy and path
// tests. itemLevel adjusts the sword's difficulty.
func testCatalog(t *testing.T, itemLevel int) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Item{
		{
			Hrid:      cheeseHrid,
			Name:      "Cheese",
			ItemLevel: 1,
		},
		{
			Hrid:      testSwordHrid,
			Name:      "Test Sword",
			ItemLevel: itemLevel,
			EnhancementMaterials: []catalog.Quantity{
				{ItemHrid: cheeseHrid, Count: 2},
			},
			ProtectionItemHrids: []catalog.Hrid{swordProtector},
			Recipe: &catalog.Recipe{
				Inputs: []catalog.Quantity{{ItemHrid: cheeseHrid, Count: 10}},
			},
		},
		{
			Hrid:      unlistedItemHrid,
			Name:      "Unlisted Relic",
			ItemLevel: itemLevel,
			EnhancementMaterials: []catalog.Quantity{
				{ItemHrid: cheeseHrid, Count: 2},
			},
		},
		{Hrid: swordProtector, Name: "Sword Protector"},
		{Hrid: mirrorOfProt, Name: "Mirror of Protection"},
		{Hrid: philosophersHrid, Name: "Philosopher's Mirror"},
	})
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return cat
}

// testSnapshot builds the fixture market. The catalyst price is variable so
// tests can force or forbid the mirror path.
func testSnapshot(catalystAsk float64, protectorAsk float64) *market.Snapshot {
	return market.NewSnapshot(map[catalog.Hrid]map[int]market.Quote{
		cheeseHrid:       {0: {Ask: market.Float(100), Bid: market.Float(95)}},
		testSwordHrid:    {0: {Ask: market.Float(1000), Bid: market.Float(950)}},
		swordProtector:   {0: {Ask: market.Float(protectorAsk), Bid: market.Float(protectorAsk - 10)}},
		mirrorOfProt:     {0: {Ask: market.Float(50000), Bid: market.Float(48000)}},
		philosophersHrid: {0: {Ask: market.Float(catalystAsk), Bid: market.Float(catalystAsk)}},
	})
}
