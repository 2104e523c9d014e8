package xrayproj

import (
	"math"
	"testing"
)

func TestRigidDeformation(t *testing.T) {
	d, err := NewDeformation(map[string]any{
		"type":          "rigid",
		"displacements": []any{0.1, 0.2, 0.3},
	})
	if err != nil {
		t.Fatalf("rigid failed: %v", err)
	}
	x, y, z := d.Apply(1, 2, 3)
	if x != 1.1 || y != 2.2 || z != 3.3 {
		t.Fatalf("rigid apply wrong: %v %v %v", x, y, z)
	}
}

func TestLinearDeformation(t *testing.T) {
	d, err := NewDeformation(map[string]any{
		"type":    "linear",
		"strains": []any{0.1, 0.0, 0.0},
	})
	if err != nil {
		t.Fatalf("linear failed: %v", err)
	}
	x, y, z := d.Apply(1, 1, 1)
	if math.Abs(x-1.1) > 1e-12 || y != 1 || z != 1 {
		t.Fatalf("linear apply wrong: %v %v %v", x, y, z)
	}
}

func TestSigmoidDeformation(t *testing.T) {
	d, err := NewDeformation(map[string]any{
		"type":        "sigmoid",
		"amplitude":   1.0,
		"center":      0.0,
		"lengthscale": 0.01,
		"direction":   "x",
	})
	if err != nil {
		t.Fatalf("sigmoid failed: %v", err)
	}
	// Far past the step the full amplitude is added, far before nothing.
	x, _, _ := d.Apply(1, 0, 0)
	if math.Abs(x-2) > 1e-6 {
		t.Fatalf("sigmoid right side wrong: %v", x)
	}
	x, _, _ = d.Apply(-1, 0, 0)
	if math.Abs(x+1) > 1e-6 {
		t.Fatalf("sigmoid left side wrong: %v", x)
	}
	// Only the configured axis moves.
	d, err = NewDeformation(map[string]any{
		"type":        "sigmoid",
		"amplitude":   0.5,
		"center":      0.0,
		"lengthscale": 0.01,
		"direction":   "y",
	})
	if err != nil {
		t.Fatalf("sigmoid y failed: %v", err)
	}
	x, y, z := d.Apply(0.2, 1, 0.4)
	if x != 0.2 || z != 0.4 || math.Abs(y-1.5) > 1e-6 {
		t.Fatalf("sigmoid y apply wrong: %v %v %v", x, y, z)
	}
}

func TestGaussianDeformation(t *testing.T) {
	d, err := NewDeformation(map[string]any{
		"type":       "gaussian",
		"amplitudes": []any{0.5, 0.0, 0.0},
		"sigmas":     []any{1.0, 1.0, 1.0},
		"centers":    []any{0.0, 0.0, 0.0},
	})
	if err != nil {
		t.Fatalf("gaussian failed: %v", err)
	}
	x, y, z := d.Apply(0, 0, 0)
	if x != 0.5 || y != 0 || z != 0 {
		t.Fatalf("gaussian peak wrong: %v %v %v", x, y, z)
	}
	x, _, _ = d.Apply(10, 0, 0)
	if math.Abs(x-10) > 1e-6 {
		t.Fatalf("gaussian tail wrong: %v", x)
	}
}

func TestNewDeformationErrors(t *testing.T) {
	if _, err := NewDeformation(map[string]any{"type": "melt"}); err == nil {
		t.Fatal("unknown type must fail")
	}
	if _, err := NewDeformation(map[string]any{"strains": []any{0.1, 0.0, 0.0}}); err == nil {
		t.Fatal("missing type must fail")
	}
	_, err := NewDeformation(map[string]any{
		"type":    "linear",
		"strains": []any{0.1, 0.0},
	})
	if err == nil {
		t.Fatal("two strains must fail")
	}
	_, err = NewDeformation(map[string]any{
		"type":        "sigmoid",
		"amplitude":   1.0,
		"center":      0.0,
		"lengthscale": 0.01,
		"direction":   "w",
	})
	if err == nil {
		t.Fatal("bad direction must fail")
	}
}
