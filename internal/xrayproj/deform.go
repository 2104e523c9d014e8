package xrayproj

import (
	"fmt"
	"math"
)

// Deformation warps sampling coordinates before density evaluation, so
// a static scene can be imaged in a deformed state. At most one
// deformation is active per render.
type Deformation interface {
	Apply(x, y, z Real) (Real, Real, Real)
	ToMap() map[string]any
	FromMap(data map[string]any) error
}

var (
	_ Deformation = (*GaussianDeformation)(nil)
	_ Deformation = (*LinearDeformation)(nil)
	_ Deformation = (*RigidDeformation)(nil)
	_ Deformation = (*SigmoidDeformation)(nil)
)

// NewDeformation builds the deformation described by a decoded map by
// dispatching on its "type" field.
func NewDeformation(data map[string]any) (Deformation, error) {
	typ, ok := data["type"].(string)
	if !ok {
		return nil, fmt.Errorf("deformation map has no type field")
	}
	var d Deformation
	switch typ {
	case "gaussian":
		d = &GaussianDeformation{}
	case "linear":
		d = &LinearDeformation{}
	case "rigid":
		d = &RigidDeformation{}
	case "sigmoid":
		d = &SigmoidDeformation{}
	default:
		return nil, fmt.Errorf("unknown deformation type: %s", typ)
	}
	if err := d.FromMap(data); err != nil {
		return nil, err
	}
	return d, nil
}

// GaussianDeformation displaces points by per-axis amplitudes weighted
// with a Gaussian falloff in the radial distance from the center.
type GaussianDeformation struct {
	Amplitudes []Real
	Sigmas     []Real
	Centers    []Real
}

func (g *GaussianDeformation) Apply(x, y, z Real) (Real, Real, Real) {
	x0 := x - g.Centers[0]
	y0 := y - g.Centers[1]
	z0 := z - g.Centers[2]
	r2 := x0*x0 + y0*y0 + z0*z0
	dx := g.Amplitudes[0] * math.Exp(-r2/(2*g.Sigmas[0]*g.Sigmas[0]))
	dy := g.Amplitudes[1] * math.Exp(-r2/(2*g.Sigmas[1]*g.Sigmas[1]))
	dz := g.Amplitudes[2] * math.Exp(-r2/(2*g.Sigmas[2]*g.Sigmas[2]))
	return x + dx, y + dy, z + dz
}

func (g *GaussianDeformation) ToMap() map[string]any {
	return map[string]any{
		"type":       "gaussian",
		"amplitudes": g.Amplitudes,
		"sigmas":     g.Sigmas,
		"centers":    g.Centers,
	}
}

func (g *GaussianDeformation) FromMap(data map[string]any) error {
	var err error
	if g.Amplitudes, err = toFloats(data["amplitudes"]); err != nil {
		return fmt.Errorf("gaussian amplitudes: %v", err)
	}
	if g.Sigmas, err = toFloats(data["sigmas"]); err != nil {
		return fmt.Errorf("gaussian sigmas: %v", err)
	}
	if g.Centers, err = toFloats(data["centers"]); err != nil {
		return fmt.Errorf("gaussian centers: %v", err)
	}
	if len(g.Amplitudes) != 3 || len(g.Sigmas) != 3 || len(g.Centers) != 3 {
		return fmt.Errorf("gaussian deformation needs 3 amplitudes, 3 sigmas and 3 centers")
	}
	return nil
}

// LinearDeformation applies a homogeneous strain along each axis.
type LinearDeformation struct {
	Strains []Real
}

func (l *LinearDeformation) Apply(x, y, z Real) (Real, Real, Real) {
	return x + l.Strains[0]*x, y + l.Strains[1]*y, z + l.Strains[2]*z
}

func (l *LinearDeformation) ToMap() map[string]any {
	return map[string]any{
		"type":    "linear",
		"strains": l.Strains,
	}
}

func (l *LinearDeformation) FromMap(data map[string]any) error {
	var err error
	if l.Strains, err = toFloats(data["strains"]); err != nil {
		return fmt.Errorf("linear strains: %v", err)
	}
	if len(l.Strains) != 3 {
		return fmt.Errorf("linear deformation needs 3 strains")
	}
	return nil
}

// RigidDeformation translates the whole scene.
type RigidDeformation struct {
	Displacements []Real
}

func (r *RigidDeformation) Apply(x, y, z Real) (Real, Real, Real) {
	return x + r.Displacements[0], y + r.Displacements[1], z + r.Displacements[2]
}

func (r *RigidDeformation) ToMap() map[string]any {
	return map[string]any{
		"type":          "rigid",
		"displacements": r.Displacements,
	}
}

func (r *RigidDeformation) FromMap(data map[string]any) error {
	var err error
	if r.Displacements, err = toFloats(data["displacements"]); err != nil {
		return fmt.Errorf("rigid displacements: %v", err)
	}
	if len(r.Displacements) != 3 {
		return fmt.Errorf("rigid deformation needs 3 displacements")
	}
	return nil
}

// SigmoidDeformation displaces points along one axis with a smooth step
// centered on a plane, a localized shear band.
type SigmoidDeformation struct {
	Amplitude   Real
	Center      Real
	Lengthscale Real
	Direction   string
}

func (s *SigmoidDeformation) Apply(x, y, z Real) (Real, Real, Real) {
	switch s.Direction {
	case "x":
		return x + s.Amplitude/(1+math.Exp(-(x-s.Center)/s.Lengthscale)), y, z
	case "y":
		return x, y + s.Amplitude/(1+math.Exp(-(y-s.Center)/s.Lengthscale)), z
	case "z":
		return x, y, z + s.Amplitude/(1+math.Exp(-(z-s.Center)/s.Lengthscale))
	}
	// Direction is checked at load time, this is unreachable.
	return x, y, z
}

func (s *SigmoidDeformation) ToMap() map[string]any {
	return map[string]any{
		"type":        "sigmoid",
		"amplitude":   s.Amplitude,
		"center":      s.Center,
		"lengthscale": s.Lengthscale,
		"direction":   s.Direction,
	}
}

func (s *SigmoidDeformation) FromMap(data map[string]any) error {
	var ok bool
	var err error
	if s.Amplitude, err = toFloat(data["amplitude"]); err != nil {
		return fmt.Errorf("sigmoid amplitude: %v", err)
	}
	if s.Center, err = toFloat(data["center"]); err != nil {
		return fmt.Errorf("sigmoid center: %v", err)
	}
	if s.Lengthscale, err = toFloat(data["lengthscale"]); err != nil {
		return fmt.Errorf("sigmoid lengthscale: %v", err)
	}
	if s.Direction, ok = data["direction"].(string); !ok {
		return fmt.Errorf("sigmoid direction must be a string")
	}
	switch s.Direction {
	case "x", "y", "z":
	default:
		return fmt.Errorf("sigmoid direction must be x, y or z, got %q", s.Direction)
	}
	return nil
}
