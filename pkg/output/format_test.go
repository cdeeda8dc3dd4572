package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/iwvelando/enhance-forecast/internal/enhance"
)

func sampleResults() []enhance.PathResult {
	return []enhance.PathResult{
		{
			ItemHrid:    "/items/cheese_sword",
			ItemName:    "Cheese Sword",
			ItemLevel:   50,
			TargetLevel: 3,
			OptimalStrategy: enhance.OptimalStrategy{
				Traditional: &enhance.TraditionalBreakdown{
					ProtectFrom:      0,
					ExpectedAttempts: 12.5,
					ProtectionCount:  0,
					TotalTime:        150,
					BaseCost:         1000,
					MaterialCost:     2500,
					TotalCost:        3500,
				},
			},
			Levels: []enhance.LevelPlan{
				{Level: 1, ProtectFrom: 0, Attempts: 2.0, Cost: 1400},
				{Level: 2, ProtectFrom: 0, Attempts: 4.4, Cost: 2100},
				{Level: 3, ProtectFrom: 2, Attempts: 6.1, Cost: 3500, ViaMirror: true},
			},
		},
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrettyFormat(t *testing.T) {
	output := captureStdout(t, func() {
		PrettyFormat(sampleResults())
	})

	if !strings.Contains(output, "--- Plan for /items/cheese_sword (+3, item level 50) ---") {
		t.Errorf("PrettyFormat missing plan header, got:\n%s", output)
	}
	if !strings.Contains(output, "Level | Protect | Attempts   | Cost") {
		t.Errorf("PrettyFormat missing table header")
	}
	if !strings.Contains(output, "never") {
		t.Errorf("PrettyFormat missing never-protect label")
	}
	if !strings.Contains(output, "(mirror)") {
		t.Errorf("PrettyFormat missing mirror marker")
	}
	if !strings.Contains(output, "Recommended: enhance with protect from never") {
		t.Errorf("PrettyFormat missing recommendation line, got:\n%s", output)
	}
}

func TestPrettyFormatMirror(t *testing.T) {
	results := sampleResults()
	results[0].OptimalStrategy = enhance.OptimalStrategy{
		UsedMirror: true,
		Mirror: &enhance.MirrorBreakdown{
			MirrorStartLevel: 3,
			ConsumedItems: []enhance.ConsumedItem{
				{Level: 1, Quantity: 1, UnitCost: 1400},
				{Level: 2, Quantity: 1, UnitCost: 2100},
			},
			MirrorCount:           1,
			PhilosopherMirrorCost: 500,
			TotalCost:             4000,
			TraditionalCost:       5200,
		},
		MissingPrice: true,
	}

	output := captureStdout(t, func() {
		PrettyFormat(results)
	})

	if !strings.Contains(output, "Recommended: mirror merge from +3") {
		t.Errorf("PrettyFormat missing mirror recommendation, got:\n%s", output)
	}
	if !strings.Contains(output, "consume 1 x +1 copies at 1,400 each") {
		t.Errorf("PrettyFormat missing consumed item line, got:\n%s", output)
	}
	if !strings.Contains(output, "catalysts: 1 (500 total)") {
		t.Errorf("PrettyFormat missing catalyst line, got:\n%s", output)
	}
	if !strings.Contains(output, "warning: some prices were missing") {
		t.Errorf("PrettyFormat missing price warning")
	}
}

func TestCsvFormat(t *testing.T) {
	output := captureStdout(t, func() {
		CsvFormat(sampleResults())
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines:\n%s", len(lines), output)
	}
	if lines[0] != `"item","targetLevel","level","protectFrom","attempts","cost","viaMirror"` {
		t.Errorf("unexpected CSV header: %s", lines[0])
	}
	if lines[1] != `"/items/cheese_sword","3","1","0","2.00","1400.00","false"` {
		t.Errorf("unexpected CSV row: %s", lines[1])
	}
	if lines[3] != `"/items/cheese_sword","3","3","2","6.10","3500.00","true"` {
		t.Errorf("unexpected CSV row: %s", lines[3])
	}
}

func TestProtectLabel(t *testing.T) {
	if got := protectLabel(0); got != "never" {
		t.Errorf("protectLabel(0) = %q", got)
	}
	if got := protectLabel(4); got != "+4" {
		t.Errorf("protectLabel(4) = %q", got)
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		hrid string
		want string
	}{
		{"/items/cheese_sword", "cheese_sword"},
		{"/items/" + strings.Repeat("x", 40), strings.Repeat("x", 31)},
		{"/items/", "plan"},
		{"bare_name", "bare_name"},
	}
	for _, tt := range tests {
		if got := sheetName(tt.hrid); got != tt.want {
			t.Errorf("sheetName(%q) = %q, want %q", tt.hrid, got, tt.want)
		}
	}
}
