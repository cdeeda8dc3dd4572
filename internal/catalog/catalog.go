// Package catalog defines the item catalog supplied by the game's data export
// and provides lookups for enhancement materials, protection candidates, and
// production recipes.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Hrid is a human-readable item identifier, e.g. "/items/philosophers_mirror".
// The string form exists only at the catalog boundary; everything downstream
// passes Hrid values.
type Hrid string

// Well-known hrids referenced by the enhancement planner.
const (
	// MirrorOfProtectionHrid is the universal protection item
	MirrorOfProtectionHrid Hrid = "/items/mirror_of_protection"

	// PhilosophersMirrorHrid is the catalyst consumed by a mirror merge
	PhilosophersMirrorHrid Hrid = "/items/philosophers_mirror"
)

// String returns the string form of the hrid.
func (h Hrid) String() string {
	return string(h)
}

// Valid reports whether the hrid has the item namespace prefix.
func (h Hrid) Valid() bool {
	return strings.HasPrefix(string(h), "/items/") && len(h) > len("/items/")
}

// Quantity pairs an item with a count, used for enhancement materials and
// recipe inputs.
type Quantity struct {
	ItemHrid Hrid    `json:"itemHrid"`
	Count    float64 `json:"count"`
}

// Recipe describes how an item is produced from inputs, optionally consuming
// a lower-tier item as an upgrade base.
type Recipe struct {
	Inputs          []Quantity `json:"inputs"`
	UpgradeItemHrid Hrid       `json:"upgradeItemHrid,omitempty"`
}

// Item is one catalog entry.
type Item struct {
	Hrid                 Hrid       `json:"hrid"`
	Name                 string     `json:"name"`
	ItemLevel            int        `json:"itemLevel"`
	EnhancementMaterials []Quantity `json:"enhancementMaterials,omitempty"`
	ProtectionItemHrids  []Hrid     `json:"protectionItemHrids,omitempty"`
	Recipe               *Recipe    `json:"recipe,omitempty"`
}

// Enhanceable reports whether the item can be enhanced at all.
func (i Item) Enhanceable() bool {
	return len(i.EnhancementMaterials) > 0
}

// Catalog is a read-only snapshot of the game's item catalog.
type Catalog struct {
	items map[Hrid]Item
}

type catalogFile struct {
	Items []Item `json:"items"`
}

// Load reads a JSON catalog snapshot from the given path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog file, %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unable to decode catalog snapshot, %w", err)
	}

	return New(file.Items)
}

// New builds a Catalog from item entries, validating cross-references. A
// catalog that references unknown items or carries nonpositive quantities is
// a broken collaborator contract and fails loading outright.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{items: make(map[Hrid]Item, len(items))}

	for _, item := range items {
		if !item.Hrid.Valid() {
			return nil, fmt.Errorf("catalog entry %q has an invalid hrid", item.Hrid)
		}
		if _, exists := c.items[item.Hrid]; exists {
			return nil, fmt.Errorf("catalog entry %s is duplicated", item.Hrid)
		}
		if item.ItemLevel < 0 {
			return nil, fmt.Errorf("catalog entry %s has negative item level %d", item.Hrid, item.ItemLevel)
		}
		c.items[item.Hrid] = item
	}

	for _, item := range c.items {
		for _, mat := range item.EnhancementMaterials {
			if err := c.checkReference(item.Hrid, mat, "enhancement material"); err != nil {
				return nil, err
			}
		}
		for _, prot := range item.ProtectionItemHrids {
			if _, ok := c.items[prot]; !ok {
				return nil, fmt.Errorf("catalog entry %s references unknown protection item %s", item.Hrid, prot)
			}
		}
		if item.Recipe != nil {
			for _, input := range item.Recipe.Inputs {
				if err := c.checkReference(item.Hrid, input, "recipe input"); err != nil {
					return nil, err
				}
			}
			if item.Recipe.UpgradeItemHrid != "" {
				if _, ok := c.items[item.Recipe.UpgradeItemHrid]; !ok {
					return nil, fmt.Errorf("catalog entry %s references unknown upgrade item %s", item.Hrid, item.Recipe.UpgradeItemHrid)
				}
			}
		}
	}

	return c, nil
}

func (c *Catalog) checkReference(owner Hrid, q Quantity, kind string) error {
	if _, ok := c.items[q.ItemHrid]; !ok {
		return fmt.Errorf("catalog entry %s references unknown %s %s", owner, kind, q.ItemHrid)
	}
	if q.Count <= 0 {
		return fmt.Errorf("catalog entry %s has nonpositive %s count for %s", owner, kind, q.ItemHrid)
	}
	return nil
}

// Lookup returns the catalog entry for an hrid.
func (c *Catalog) Lookup(hrid Hrid) (Item, bool) {
	item, ok := c.items[hrid]
	return item, ok
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.items)
}

// ProtectionCandidates returns the protection items worth pricing for an
// item: the item itself, the universal mirror of protection when present in
// the catalog, and any item-specific candidates.
func (c *Catalog) ProtectionCandidates(item Item) []Hrid {
	candidates := make([]Hrid, 0, 2+len(item.ProtectionItemHrids))
	candidates = append(candidates, item.Hrid)
	if _, ok := c.items[MirrorOfProtectionHrid]; ok {
		candidates = append(candidates, MirrorOfProtectionHrid)
	}
	candidates = append(candidates, item.ProtectionItemHrids...)
	return candidates
}
