package xrayproj

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Parallelepiped is spanned by three edge vectors from an origin
// corner. Points are tested in the edge basis, so the solid may be
// sheared.
type Parallelepiped struct {
	Origin mgl64.Vec3
	V0     mgl64.Vec3
	V1     mgl64.Vec3
	V2     mgl64.Vec3
	Rho    Real

	mat mgl64.Mat3
}

func (p *Parallelepiped) Density(x, y, z Real) Real {
	pt := mgl64.Vec3{x, y, z}
	x, y, z = p.mat.Mul3x1(pt.Sub(p.Origin)).Elem()
	if x > 0.0 && x < 1.0 && y > 0.0 && y < 1.0 && z > 0.0 && z < 1.0 {
		return p.Rho
	}
	return 0.0
}

func (p *Parallelepiped) MinFeatureSize() Real {
	return 0.2 * math.Min(p.V0.Len(), math.Min(p.V1.Len(), p.V2.Len()))
}

func (p *Parallelepiped) ToMap() map[string]any {
	return map[string]any{
		"type":   "parallelepiped",
		"origin": p.Origin,
		"v0":     p.V0,
		"v1":     p.V1,
		"v2":     p.V2,
		"rho":    p.Rho,
	}
}

func (p *Parallelepiped) FromMap(data map[string]any) error {
	var err error
	if p.Origin, err = toVec3(data["origin"]); err != nil {
		return fmt.Errorf("parallelepiped origin: %v", err)
	}
	if p.V0, err = toVec3(data["v0"]); err != nil {
		return fmt.Errorf("parallelepiped v0: %v", err)
	}
	if p.V1, err = toVec3(data["v1"]); err != nil {
		return fmt.Errorf("parallelepiped v1: %v", err)
	}
	if p.V2, err = toVec3(data["v2"]); err != nil {
		return fmt.Errorf("parallelepiped v2: %v", err)
	}
	if p.Rho, err = toFloat(data["rho"]); err != nil {
		return fmt.Errorf("parallelepiped rho: %v", err)
	}
	basis := mgl64.Mat3FromCols(p.V0, p.V1, p.V2)
	if basis.Det() == 0 {
		return fmt.Errorf("parallelepiped edge vectors are coplanar")
	}
	p.mat = basis.Inv()
	return nil
}

func (p *Parallelepiped) String() string {
	return fmt.Sprintf("Parallelepiped{Origin: %v, V0: %v, V1: %v, V2: %v, Rho: %v}",
		p.Origin, p.V0, p.V1, p.V2, p.Rho)
}
