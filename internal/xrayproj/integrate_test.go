package xrayproj

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// unit-radius chord through a 0.5 sphere: analytic T is 1, exp(-1).
func testSphereScene(rho Real) *Scene {
	return &Scene{
		obj:        &Sphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 0.5, Rho: rho},
		multiplier: 1,
	}
}

func TestSimpleIntegration(t *testing.T) {
	in := newIntegrator(testSphereScene(1), IntegrationSimple, 0)
	origin := mgl64.Vec3{4, 0, 0}
	dir := mgl64.Vec3{-1, 0, 0}
	got := in.transmittance(origin, dir, 0.001, 4-cubeHalfDiagonal, 4+cubeHalfDiagonal)
	want := math.Exp(-1)
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("transmittance wrong: got %v want %v", got, want)
	}
}

func TestHierarchicalIntegration(t *testing.T) {
	in := newIntegrator(testSphereScene(1), IntegrationHierarchical, 0)
	origin := mgl64.Vec3{4, 0, 0}
	dir := mgl64.Vec3{-1, 0, 0}
	ds := 0.5 / autoStepDivisor
	got := in.transmittance(origin, dir, ds, 4-cubeHalfDiagonal, 4+cubeHalfDiagonal)
	want := math.Exp(-1)
	if math.Abs(got-want) > 0.05 {
		t.Fatalf("transmittance wrong: got %v want %v", got, want)
	}
}

func TestIntegrationMiss(t *testing.T) {
	for _, method := range []string{IntegrationSimple, IntegrationHierarchical} {
		in := newIntegrator(testSphereScene(1), method, 0)
		got := in.transmittance(mgl64.Vec3{4, 0, 0}, mgl64.Vec3{0, 0, 1}, 0.01, 4-cubeHalfDiagonal, 4+cubeHalfDiagonal)
		if got != 1.0 {
			t.Fatalf("%s miss must be fully transparent, got %v", method, got)
		}
	}
}

func TestIntegrationFlatField(t *testing.T) {
	in := newIntegrator(testSphereScene(1), IntegrationSimple, 0.5)
	got := in.transmittance(mgl64.Vec3{4, 0, 0}, mgl64.Vec3{0, 0, 1}, 0.01, 4-cubeHalfDiagonal, 4+cubeHalfDiagonal)
	want := math.Exp(-0.5)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("flat field offset wrong: got %v want %v", got, want)
	}
}

func TestIntegrationNormalizesDirection(t *testing.T) {
	in := newIntegrator(testSphereScene(1), IntegrationSimple, 0)
	origin := mgl64.Vec3{4, 0, 0}
	a := in.transmittance(origin, mgl64.Vec3{-1, 0, 0}, 0.01, 4-cubeHalfDiagonal, 4+cubeHalfDiagonal)
	b := in.transmittance(origin, mgl64.Vec3{-5, 0, 0}, 0.01, 4-cubeHalfDiagonal, 4+cubeHalfDiagonal)
	if a != b {
		t.Fatalf("direction scale must not matter: %v vs %v", a, b)
	}
}

func TestIntegrationMultiplier(t *testing.T) {
	scene := testSphereScene(1)
	scene.multiplier = 2
	in := newIntegrator(scene, IntegrationSimple, 0)
	got := in.transmittance(mgl64.Vec3{4, 0, 0}, mgl64.Vec3{-1, 0, 0}, 0.001, 4-cubeHalfDiagonal, 4+cubeHalfDiagonal)
	want := math.Exp(-2)
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("multiplier wrong: got %v want %v", got, want)
	}
}

func TestSimpleConvergesToHierarchical(t *testing.T) {
	scene := testSphereScene(1)
	origin := mgl64.Vec3{4, 0, 0}
	dir := mgl64.Vec3{-1, 0, 0}
	smin, smax := 4-cubeHalfDiagonal, 4+cubeHalfDiagonal

	ref := newIntegrator(scene, IntegrationHierarchical, 0).
		transmittance(origin, dir, 0.01, smin, smax)

	in := newIntegrator(scene, IntegrationSimple, 0)
	prev := math.Inf(1)
	for _, ds := range []Real{0.4, 0.1, 0.025, 0.00625} {
		diff := math.Abs(in.transmittance(origin, dir, ds, smin, smax) - ref)
		if diff > prev+1e-12 {
			t.Fatalf("error grew at ds=%v: %v after %v", ds, diff, prev)
		}
		prev = diff
	}
	if prev > 0.005 {
		t.Fatalf("finest step still off by %v", prev)
	}
}

func TestHierarchicalClippingWarning(t *testing.T) {
	in := newIntegrator(testSphereScene(1), IntegrationHierarchical, 0)
	// smin lands inside the sphere, the entry clip should latch once.
	in.transmittance(mgl64.Vec3{4, 0, 0}, mgl64.Vec3{-1, 0, 0}, 0.1, 3.8, 4+cubeHalfDiagonal)
	if !in.warnedMin.Load() {
		t.Fatal("entry clipping not flagged")
	}
	if in.warnedMax.Load() {
		t.Fatal("exit clipping flagged without cause")
	}
}
