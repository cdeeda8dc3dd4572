package mathutil

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round down", 1.234, 1.23},
		{"Round up", 1.235, 1.24},
		{"Already rounded", 1.23, 1.23},
		{"Negative value", -1.235, -1.24},
		{"Zero", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.input); got != tt.expected {
				t.Errorf("Round(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.0) {
		t.Error("IsZero(0.0) should be true")
	}
	if !IsZero(0.001) {
		t.Error("IsZero(0.001) should be true within tolerance")
	}
	if IsZero(0.02) {
		t.Error("IsZero(0.02) should be false")
	}
	if IsZero(-0.5) {
		t.Error("IsZero(-0.5) should be false")
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(1.0, 1.005, 0.01) {
		t.Error("values within tolerance reported as outside")
	}
	if WithinTolerance(1.0, 1.02, 0.01) {
		t.Error("values outside tolerance reported as within")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name             string
		val, lo, hi, out float64
	}{
		{"Below range", -1.0, 0.0, 1.0, 0.0},
		{"Above range", 2.0, 0.0, 1.0, 1.0},
		{"Inside range", 0.5, 0.0, 1.0, 0.5},
		{"At lower bound", 0.0, 0.0, 1.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.out {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.val, tt.lo, tt.hi, got, tt.out)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if Min(2.0, 3.0) != 2.0 || Min(3.0, 2.0) != 2.0 {
		t.Error("Min returned the wrong value")
	}
	if Max(2.0, 3.0) != 3.0 || Max(3.0, 2.0) != 3.0 {
		t.Error("Max returned the wrong value")
	}
}
