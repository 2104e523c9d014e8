package xrayproj

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Cylinder is a finite solid cylinder between two axis endpoints.
type Cylinder struct {
	P0     mgl64.Vec3
	P1     mgl64.Vec3
	Radius Real
	Rho    Real
}

func (c *Cylinder) Density(x, y, z Real) Real {
	v := c.P1.Sub(c.P0)
	w := mgl64.Vec3{x, y, z}.Sub(c.P0)
	// Fraction of the axis the point projects onto.
	t := w.Dot(v) / v.Dot(v)
	if t < 0.0 || t > 1.0 {
		return 0.0
	}
	d := w.Sub(v.Mul(t))
	if d.Dot(d) < c.Radius*c.Radius {
		return c.Rho
	}
	return 0.0
}

func (c *Cylinder) MinFeatureSize() Real {
	return c.Radius
}

func (c *Cylinder) ToMap() map[string]any {
	return map[string]any{
		"type":   "cylinder",
		"p0":     c.P0,
		"p1":     c.P1,
		"radius": c.Radius,
		"rho":    c.Rho,
	}
}

func (c *Cylinder) FromMap(data map[string]any) error {
	var err error
	if c.P0, err = toVec3(data["p0"]); err != nil {
		return fmt.Errorf("cylinder p0: %v", err)
	}
	if c.P1, err = toVec3(data["p1"]); err != nil {
		return fmt.Errorf("cylinder p1: %v", err)
	}
	if c.Radius, err = toFloat(data["radius"]); err != nil {
		return fmt.Errorf("cylinder radius: %v", err)
	}
	// Struts generated by tessellations omit rho and mean full density.
	if _, ok := data["rho"]; !ok {
		c.Rho = 1.0
		return nil
	}
	if c.Rho, err = toFloat(data["rho"]); err != nil {
		return fmt.Errorf("cylinder rho: %v", err)
	}
	return nil
}

func (c *Cylinder) String() string {
	return fmt.Sprintf("Cylinder{P0: %v, P1: %v, Radius: %v, Rho: %v}", c.P0, c.P1, c.Radius, c.Rho)
}
