package output

import (
	"fmt"

	"github.com/iwvelando/enhance-forecast/internal/enhance"
	"github.com/xuri/excelize/v2"
)

// XlsxExport writes one workbook with a sheet per plan: the per-level
// strategy table followed by the recommended strategy summary.
func XlsxExport(path string, results []enhance.PathResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no plans to export")
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	for i, result := range results {
		sheet := sheetName(result.ItemHrid.String())
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}

		headers := []interface{}{"Level", "Protect From", "Attempts", "Cost", "Via Mirror"}
		if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
			return err
		}

		row := 2
		for _, level := range result.Levels {
			values := []interface{}{
				level.Level,
				protectLabel(level.ProtectFrom),
				level.Attempts,
				level.Cost,
				level.ViaMirror,
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return err
			}
			row++
		}

		row++
		summary := summaryRows(result)
		for _, line := range summary {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &line); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func summaryRows(result enhance.PathResult) [][]interface{} {
	strategy := result.OptimalStrategy
	var rows [][]interface{}

	if strategy.UsedMirror && strategy.Mirror != nil {
		m := strategy.Mirror
		rows = append(rows, []interface{}{"Recommended", "mirror merge", "from level", m.MirrorStartLevel})
		for _, consumed := range m.ConsumedItems {
			rows = append(rows, []interface{}{"Consume", consumed.Quantity, fmt.Sprintf("+%d copies", consumed.Level), consumed.UnitCost})
		}
		rows = append(rows, []interface{}{"Catalysts", m.MirrorCount, "cost", m.PhilosopherMirrorCost})
		rows = append(rows, []interface{}{"Total", m.TotalCost, "traditional", m.TraditionalCost})
	} else if strategy.Traditional != nil {
		t := strategy.Traditional
		rows = append(rows, []interface{}{"Recommended", "enhance", "protect from", protectLabel(t.ProtectFrom)})
		rows = append(rows, []interface{}{"Attempts", t.ExpectedAttempts, "time (s)", t.TotalTime})
		rows = append(rows, []interface{}{"Base", t.BaseCost, "materials", t.MaterialCost})
		rows = append(rows, []interface{}{"Protection", t.ProtectionCost, "total", t.TotalCost})
	}

	if strategy.MissingPrice {
		rows = append(rows, []interface{}{"Warning", "missing prices; costs underestimated"})
	}
	return rows
}
