// Package output provides utilities for formatting and displaying enhancement
// plans.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/enhance-forecast/internal/enhance"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []enhance.PathResult) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		fmt.Printf("--- Plan for %s (+%d, item level %d) ---\n", result.ItemHrid, result.TargetLevel, result.ItemLevel)
		fmt.Printf("Level | Protect | Attempts   | Cost\n")
		fmt.Printf("_____ | _______ | ________   | ____\n")
		for _, level := range result.Levels {
			marker := ""
			if level.ViaMirror {
				marker = " (mirror)"
			}
			_, _ = p.Printf("+%-4d | %-7s | %10.1f | %.0f%s\n",
				level.Level, protectLabel(level.ProtectFrom), level.Attempts, level.Cost, marker)
		}

		strategy := result.OptimalStrategy
		if strategy.UsedMirror {
			m := strategy.Mirror
			_, _ = p.Printf("Recommended: mirror merge from +%d\n", m.MirrorStartLevel)
			for _, consumed := range m.ConsumedItems {
				_, _ = p.Printf("  consume %d x +%d copies at %.0f each\n", consumed.Quantity, consumed.Level, consumed.UnitCost)
			}
			_, _ = p.Printf("  catalysts: %d (%.0f total)\n", m.MirrorCount, m.PhilosopherMirrorCost)
			_, _ = p.Printf("  total %.0f (traditional %.0f)\n", m.TotalCost, m.TraditionalCost)
		} else if strategy.Traditional != nil {
			t := strategy.Traditional
			_, _ = p.Printf("Recommended: enhance with protect from %s\n", protectLabel(t.ProtectFrom))
			_, _ = p.Printf("  attempts %.1f, time %.0fs, base %.0f + materials %.0f + protection %.0f = %.0f\n",
				t.ExpectedAttempts, t.TotalTime, t.BaseCost, t.MaterialCost, t.ProtectionCost, t.TotalCost)
		}
		if strategy.MissingPrice {
			fmt.Printf("  warning: some prices were missing; costs are underestimated\n")
		}
		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []enhance.PathResult) {
	fmt.Printf(`"item","targetLevel","level","protectFrom","attempts","cost","viaMirror"`)
	fmt.Printf("\n")
	for _, result := range results {
		for _, level := range result.Levels {
			fmt.Printf(`"%s","%d","%d","%d","%.2f","%.2f","%t"`,
				result.ItemHrid, result.TargetLevel, level.Level, level.ProtectFrom, level.Attempts, level.Cost, level.ViaMirror)
			fmt.Printf("\n")
		}
	}
}

func protectLabel(protectFrom int) string {
	if protectFrom == 0 {
		return "never"
	}
	return fmt.Sprintf("+%d", protectFrom)
}

// sheetName produces a valid XLSX sheet name from an item hrid.
func sheetName(hrid string) string {
	name := strings.TrimPrefix(hrid, "/items/")
	if len(name) > 31 {
		name = name[:31]
	}
	if name == "" {
		name = "plan"
	}
	return name
}
