package easing

import (
	"math"
	"testing"
	"testing/quick"
)

var allCurves = map[string]Curve{
	"linear":                Linear,
	"decelerate":            Decelerate,
	"accelerate":            Accelerate,
	"accelerate_decelerate": AccelerateDecelerate,
	"decelerate_by_2":       DecelerateBy(2),
}

func TestCurveEndpoints(t *testing.T) {
	for name, c := range allCurves {
		t.Run(name, func(t *testing.T) {
			if got := c(0); math.Abs(got) > 1e-9 {
				t.Errorf("%s(0) = %v, want 0", name, got)
			}
			if got := c(1); math.Abs(got-1) > 1e-9 {
				t.Errorf("%s(1) = %v, want 1", name, got)
			}
		})
	}
}

// TestCurveMonotonic verifies that every curve is non-decreasing on [0, 1].
func TestCurveMonotonic(t *testing.T) {
	for name, c := range allCurves {
		property := func(a, b uint16) bool {
			x, y := float64(a)/math.MaxUint16, float64(b)/math.MaxUint16
			if x > y {
				x, y = y, x
			}
			return c(x) <= c(y)+1e-12
		}
		if err := quick.Check(property, nil); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestDecelerateByOneIsDecelerate(t *testing.T) {
	c := DecelerateBy(1)
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if c(x) != Decelerate(x) {
			t.Errorf("DecelerateBy(1)(%v) = %v, want %v", x, c(x), Decelerate(x))
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"linear", false},
		{"Decelerate", false},
		{"accelerate-decelerate", false},
		{" accelerate ", false},
		{"bounce", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Lookup(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && c == nil {
				t.Errorf("Lookup(%q) returned nil curve", tt.name)
			}
		})
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != 4 {
		t.Fatalf("Names() = %v, want 4 entries", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Names() not sorted: %v", names)
		}
	}
}
