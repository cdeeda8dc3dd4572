// Package market defines the market price snapshot supplied by the game's
// marketplace API.
package market

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/iwvelando/enhance-forecast/internal/catalog"
)

// Quote holds the ask and bid sides for one item at one enhancement level.
// A nil side means no listings exist on that side.
type Quote struct {
	Ask *float64 `json:"ask,omitempty"`
	Bid *float64 `json:"bid,omitempty"`
}

// Empty reports whether the quote carries no market data at all.
func (q Quote) Empty() bool {
	return q.Ask == nil && q.Bid == nil
}

// Snapshot is a point-in-time read-only view of market prices, keyed by item
// hrid and enhancement level.
type Snapshot struct {
	prices map[catalog.Hrid]map[int]Quote
}

type snapshotFile struct {
	Items map[string]map[string]Quote `json:"items"`
}

// Load reads a JSON market snapshot from the given path. Level keys are the
// string form of the enhancement level, "0" for the base item.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading market snapshot, %w", err)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unable to decode market snapshot, %w", err)
	}

	snap := &Snapshot{prices: make(map[catalog.Hrid]map[int]Quote, len(file.Items))}
	for hrid, levels := range file.Items {
		byLevel := make(map[int]Quote, len(levels))
		for levelKey, quote := range levels {
			level, convErr := strconv.Atoi(levelKey)
			if convErr != nil || level < 0 {
				return nil, fmt.Errorf("market snapshot entry %s has invalid level key %q", hrid, levelKey)
			}
			byLevel[level] = quote
		}
		snap.prices[catalog.Hrid(hrid)] = byLevel
	}

	return snap, nil
}

// NewSnapshot builds a Snapshot directly from quotes, primarily for tests.
func NewSnapshot(prices map[catalog.Hrid]map[int]Quote) *Snapshot {
	if prices == nil {
		prices = make(map[catalog.Hrid]map[int]Quote)
	}
	return &Snapshot{prices: prices}
}

// QuoteAt returns the quote for an item at a given enhancement level.
func (s *Snapshot) QuoteAt(hrid catalog.Hrid, level int) (Quote, bool) {
	levels, ok := s.prices[hrid]
	if !ok {
		return Quote{}, false
	}
	quote, ok := levels[level]
	return quote, ok
}

// BaseQuote returns the quote for the unenhanced item.
func (s *Snapshot) BaseQuote(hrid catalog.Hrid) (Quote, bool) {
	return s.QuoteAt(hrid, 0)
}

// Float is a convenience for building quote sides in fixtures.
func Float(v float64) *float64 {
	return &v
}
