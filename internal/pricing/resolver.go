// Package pricing implements the shared price resolution policy used for
// base-item, material, and protection-item costs. The policy deliberately
// biases against thinly-traded or manipulated ask listings: an ask inflated
// beyond 30% of the bid (or of the computed production cost) is discarded in
// favor of the bid or the production cost, and production cost acts as a
// floor whenever it is known.
package pricing

import (
	"github.com/iwvelando/enhance-forecast/internal/catalog"
	"github.com/iwvelando/enhance-forecast/internal/market"
	"github.com/iwvelando/enhance-forecast/pkg/constants"
	"github.com/iwvelando/enhance-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// Price is a resolved price. Missing indicates that neither market data nor a
// production fallback existed; Value is then zero and callers surface the
// degraded-data condition rather than failing.
type Price struct {
	Value   float64
	Missing bool
}

// Resolver resolves realistic prices against one catalog and one market
// snapshot. It is cheap to construct and not safe for concurrent use; build
// one per computation.
type Resolver struct {
	catalog  *catalog.Catalog
	snapshot *market.Snapshot
	logger   *zap.Logger

	productionMemo map[catalog.Hrid]float64
	inProgress     map[catalog.Hrid]bool
}

// NewResolver constructs a Resolver over the given catalog and snapshot.
func NewResolver(logger *zap.Logger, cat *catalog.Catalog, snapshot *market.Snapshot) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		catalog:        cat,
		snapshot:       snapshot,
		logger:         logger,
		productionMemo: make(map[catalog.Hrid]float64),
		inProgress:     make(map[catalog.Hrid]bool),
	}
}

// Catalog returns the catalog this resolver prices against.
func (r *Resolver) Catalog() *catalog.Catalog {
	return r.catalog
}

// Resolve returns the realistic price of the unenhanced item.
func (r *Resolver) Resolve(hrid catalog.Hrid) Price {
	quote, _ := r.snapshot.BaseQuote(hrid)
	production := r.ProductionCost(hrid)
	return resolveQuote(quote, production)
}

// ResolveAt returns the realistic price of an item at an enhancement level.
// The production fallback only applies to the base item; enhanced copies can
// only come from the market.
func (r *Resolver) ResolveAt(hrid catalog.Hrid, level int) Price {
	if level <= 0 {
		return r.Resolve(hrid)
	}
	quote, _ := r.snapshot.QuoteAt(hrid, level)
	return resolveQuote(quote, 0)
}

func resolveQuote(quote market.Quote, production float64) Price {
	switch {
	case quote.Ask != nil && quote.Bid != nil:
		if *quote.Ask / *quote.Bid > constants.AskInflationThreshold {
			return Price{Value: mathutil.Max(*quote.Bid, production)}
		}
		return askOrProduction(*quote.Ask, production)
	case quote.Ask != nil:
		return askOrProduction(*quote.Ask, production)
	case quote.Bid != nil:
		return Price{Value: mathutil.Max(*quote.Bid, production)}
	default:
		if production <= 0 {
			return Price{Missing: true}
		}
		return Price{Value: production}
	}
}

func askOrProduction(ask, production float64) Price {
	if production > 0 && ask/production > constants.AskInflationThreshold {
		return Price{Value: production}
	}
	return Price{Value: mathutil.Max(ask, production)}
}

// ProductionCost computes the recursive crafting cost of an item: the sum of
// input-item prices reduced by the artisan discount, plus any upgrade-item
// cost. Items with no recipe cost zero. Recipe cycles terminate at zero.
func (r *Resolver) ProductionCost(hrid catalog.Hrid) float64 {
	if cost, ok := r.productionMemo[hrid]; ok {
		return cost
	}
	if r.inProgress[hrid] {
		r.logger.Warn("recipe cycle detected while computing production cost",
			zap.String("op", "pricing.ProductionCost"),
			zap.String("itemHrid", hrid.String()),
		)
		return 0
	}

	item, ok := r.catalog.Lookup(hrid)
	if !ok || item.Recipe == nil {
		r.productionMemo[hrid] = 0
		return 0
	}

	r.inProgress[hrid] = true
	defer delete(r.inProgress, hrid)

	var materials float64
	for _, input := range item.Recipe.Inputs {
		price := r.Resolve(input.ItemHrid)
		materials += price.Value * input.Count
	}
	cost := materials * constants.ArtisanDiscount

	if item.Recipe.UpgradeItemHrid != "" {
		upgrade := r.Resolve(item.Recipe.UpgradeItemHrid)
		cost += upgrade.Value
	}

	r.productionMemo[hrid] = cost
	return cost
}
