package xrayproj

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Gyroid is a shell around the triply periodic gyroid surface
// sin(x)cos(y) + sin(y)cos(z) + sin(z)cos(x) = 0, sampled in
// coordinates shifted by Center and divided by Scale.
type Gyroid struct {
	Center    mgl64.Vec3
	Scale     Real
	Thickness Real
	Rho       Real
}

func (g *Gyroid) Density(x, y, z Real) Real {
	x = (x - g.Center[0]) / g.Scale
	y = (y - g.Center[1]) / g.Scale
	z = (z - g.Center[2]) / g.Scale
	v := math.Sin(x)*math.Cos(y) + math.Sin(y)*math.Cos(z) + math.Sin(z)*math.Cos(x)
	if math.Abs(v) < g.Thickness {
		return g.Rho
	}
	return 0.0
}

func (g *Gyroid) MinFeatureSize() Real {
	// The shell is thin relative to the cell, scale down accordingly.
	return g.Scale * g.Thickness * 0.1
}

func (g *Gyroid) ToMap() map[string]any {
	return map[string]any{
		"type":      "gyroid",
		"center":    g.Center,
		"scale":     g.Scale,
		"thickness": g.Thickness,
		"rho":       g.Rho,
	}
}

func (g *Gyroid) FromMap(data map[string]any) error {
	var err error
	if g.Center, err = toVec3(data["center"]); err != nil {
		return fmt.Errorf("gyroid center: %v", err)
	}
	if g.Scale, err = toFloat(data["scale"]); err != nil {
		return fmt.Errorf("gyroid scale: %v", err)
	}
	if g.Thickness, err = toFloat(data["thickness"]); err != nil {
		return fmt.Errorf("gyroid thickness: %v", err)
	}
	if g.Rho, err = toFloat(data["rho"]); err != nil {
		return fmt.Errorf("gyroid rho: %v", err)
	}
	return nil
}

func (g *Gyroid) String() string {
	return fmt.Sprintf("Gyroid{Center: %v, Scale: %v, Thickness: %v, Rho: %v}", g.Center, g.Scale, g.Thickness, g.Rho)
}
