package xrayproj

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned cuboid with independent side lengths.
type Box struct {
	Center mgl64.Vec3
	Sides  mgl64.Vec3
	Rho    Real
}

func (b *Box) Density(x, y, z Real) Real {
	x = math.Abs(x - b.Center[0])
	y = math.Abs(y - b.Center[1])
	z = math.Abs(z - b.Center[2])
	if x < 0.5*b.Sides[0] && y < 0.5*b.Sides[1] && z < 0.5*b.Sides[2] {
		return b.Rho
	}
	return 0.0
}

func (b *Box) MinFeatureSize() Real {
	return 0.1 * math.Min(b.Sides[0], math.Min(b.Sides[1], b.Sides[2]))
}

func (b *Box) ToMap() map[string]any {
	return map[string]any{
		"type":   "box",
		"center": b.Center,
		"sides":  b.Sides,
		"rho":    b.Rho,
	}
}

func (b *Box) FromMap(data map[string]any) error {
	var err error
	if b.Center, err = toVec3(data["center"]); err != nil {
		return fmt.Errorf("box center: %v", err)
	}
	if b.Sides, err = toVec3(data["sides"]); err != nil {
		return fmt.Errorf("box sides: %v", err)
	}
	if b.Rho, err = toFloat(data["rho"]); err != nil {
		return fmt.Errorf("box rho: %v", err)
	}
	return nil
}

func (b *Box) String() string {
	return fmt.Sprintf("Box{Center: %v, Sides: %v, Rho: %v}", b.Center, b.Sides, b.Rho)
}

// Cube is an axis-aligned cube, a box with equal sides.
type Cube struct {
	Center mgl64.Vec3
	Side   Real
	Rho    Real
}

func (c *Cube) Density(x, y, z Real) Real {
	x = math.Abs(x - c.Center[0])
	y = math.Abs(y - c.Center[1])
	z = math.Abs(z - c.Center[2])
	h := 0.5 * c.Side
	if x < h && y < h && z < h {
		return c.Rho
	}
	return 0.0
}

func (c *Cube) MinFeatureSize() Real {
	return 0.1 * c.Side
}

func (c *Cube) ToMap() map[string]any {
	return map[string]any{
		"type":   "cube",
		"center": c.Center,
		"side":   c.Side,
		"rho":    c.Rho,
	}
}

func (c *Cube) FromMap(data map[string]any) error {
	var err error
	if c.Center, err = toVec3(data["center"]); err != nil {
		return fmt.Errorf("cube center: %v", err)
	}
	if c.Side, err = toFloat(data["side"]); err != nil {
		return fmt.Errorf("cube side: %v", err)
	}
	if c.Rho, err = toFloat(data["rho"]); err != nil {
		return fmt.Errorf("cube rho: %v", err)
	}
	return nil
}

func (c *Cube) String() string {
	return fmt.Sprintf("Cube{Center: %v, Side: %v, Rho: %v}", c.Center, c.Side, c.Rho)
}
