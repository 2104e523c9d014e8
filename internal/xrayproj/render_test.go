package xrayproj

import (
	"errors"
	"testing"
)

func TestNewRendererRejectsDegenerateStep(t *testing.T) {
	p := DefaultParams()
	p.Input = "scene.yaml"

	// empty collection: min feature size is +Inf
	_, err := newRenderer(&Scene{obj: &ObjectCollection{}, multiplier: 1}, &p)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("empty collection: want invalid config, got %v", err)
	}

	// zero-extent object: the auto step collapses to zero
	_, err = newRenderer(&Scene{obj: &Sphere{Radius: 0}, multiplier: 1}, &p)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("zero radius: want invalid config, got %v", err)
	}

	// an explicit step sidesteps the feature-size derivation
	p.DS = 0.01
	if _, err := newRenderer(&Scene{obj: &Sphere{Radius: 0}, multiplier: 1}, &p); err != nil {
		t.Fatalf("explicit ds: %v", err)
	}
}
