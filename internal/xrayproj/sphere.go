package xrayproj

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere is a solid ball of constant density.
type Sphere struct {
	Center mgl64.Vec3
	Radius Real
	Rho    Real
}

func (s *Sphere) Density(x, y, z Real) Real {
	dx := x - s.Center[0]
	dy := y - s.Center[1]
	dz := z - s.Center[2]
	if dx*dx+dy*dy+dz*dz < s.Radius*s.Radius {
		return s.Rho
	}
	return 0.0
}

func (s *Sphere) MinFeatureSize() Real {
	return s.Radius
}

func (s *Sphere) ToMap() map[string]any {
	return map[string]any{
		"type":   "sphere",
		"center": s.Center,
		"radius": s.Radius,
		"rho":    s.Rho,
	}
}

func (s *Sphere) FromMap(data map[string]any) error {
	var err error
	if s.Center, err = toVec3(data["center"]); err != nil {
		return fmt.Errorf("sphere center: %v", err)
	}
	if s.Radius, err = toFloat(data["radius"]); err != nil {
		return fmt.Errorf("sphere radius: %v", err)
	}
	if s.Rho, err = toFloat(data["rho"]); err != nil {
		return fmt.Errorf("sphere rho: %v", err)
	}
	return nil
}

func (s *Sphere) String() string {
	return fmt.Sprintf("Sphere{Center: %v, Radius: %v, Rho: %v}", s.Center, s.Radius, s.Rho)
}
