package xrayproj

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
)

// integrator marches rays through a scene and converts the accumulated
// attenuation into transmittance exp(-T). Safe for concurrent use, the
// clipping warnings fire once per render.
type integrator struct {
	scene     *Scene
	flatField Real
	simple    bool

	warnedMin atomic.Bool
	warnedMax atomic.Bool
}

func newIntegrator(scene *Scene, method string, flatField Real) *integrator {
	return &integrator{
		scene:     scene,
		flatField: flatField,
		simple:    method == IntegrationSimple,
	}
}

// transmittance integrates density along one ray between path lengths
// smin and smax and returns exp(-T).
func (in *integrator) transmittance(origin, direction mgl64.Vec3, ds, smin, smax Real) Real {
	if in.simple {
		return in.alongRay(origin, direction, ds, smin, smax)
	}
	return in.hierarchical(origin, direction, ds, smin, smax)
}

// alongRay is the fixed-step reference method.
func (in *integrator) alongRay(origin, direction mgl64.Vec3, ds, smin, smax Real) Real {
	direction = direction.Normalize()
	T := in.flatField
	for s := smin; s < smax; s += ds {
		x := origin[0] + direction[0]*s
		y := origin[1] + direction[1]*s
		z := origin[2] + direction[2]*s
		T += in.scene.Density(x, y, z) * ds
	}
	return math.Exp(-T)
}

// hierarchical slides a window of the coarse step along the ray and
// re-integrates a window at a tenth of the step whenever the occupancy
// flips between its edges. Uniform stretches, inside or outside the
// object, cost one sample per window.
func (in *integrator) hierarchical(origin, direction mgl64.Vec3, ds, smin, smax Real) Real {
	direction = direction.Normalize()
	if in.scene.Density(origin[0]+direction[0]*smin, origin[1]+direction[1]*smin, origin[2]+direction[2]*smin) > 0 &&
		in.warnedMin.CompareAndSwap(false, true) {
		log.Warn().Msg("Clipping at smin detected")
	}
	if in.scene.Density(origin[0]+direction[0]*smax, origin[1]+direction[1]*smax, origin[2]+direction[2]*smax) > 0 &&
		in.warnedMax.CompareAndSwap(false, true) {
		log.Warn().Msg("Clipping at smax detected")
	}

	right := smin + ds
	left := smin
	fine := ds / refineDivisor
	prevRho := 0.0
	T := in.flatField
	for right <= smax {
		x := origin[0] + direction[0]*right
		y := origin[1] + direction[1]*right
		z := origin[2] + direction[2]*right
		rho := in.scene.Density(x, y, z)
		if (rho == 0) != (prevRho == 0) {
			// Occupancy changed between left and right, redo the window
			// at the fine step.
			left += fine
			for left < right {
				x := origin[0] + direction[0]*left
				y := origin[1] + direction[1]*left
				z := origin[2] + direction[2]*left
				T += in.scene.Density(x, y, z) * fine
				left += fine
			}
			T += rho * fine
		} else {
			T += rho * ds
		}
		prevRho = rho
		left = right
		right += ds
	}
	return math.Exp(-T)
}
