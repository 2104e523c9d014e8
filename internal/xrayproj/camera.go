package xrayproj

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// expandAngles turns a request into the concrete ordered list of view
// directions. Explicit camera_angles win, otherwise azimuths are spread
// equally over the full turn starting at 90 degrees, with the polar
// angle fixed or drawn uniformly on the sphere when out_of_plane is
// set. The list covers the whole acquisition, job sharding picks from
// it later.
func expandAngles(p *RenderParams, rng *rand.Rand) []CameraAngle {
	if len(p.CameraAngles) > 0 {
		out := make([]CameraAngle, len(p.CameraAngles))
		copy(out, p.CameraAngles)
		return out
	}
	dth := 360.0 / Real(p.NumImages)
	out := make([]CameraAngle, p.NumImages)
	for i := range out {
		polar := p.PolarAngle
		if p.OutOfPlane {
			// Uniform on the sphere: acos of a uniform z, nudged off
			// the poles to keep the view matrix invertible.
			z := rng.Float64()*2 - 1
			if z > 1-poleEps {
				z = 1 - poleEps
			} else if z < poleEps-1 {
				z = poleEps - 1
			}
			polar = mgl64.RadToDeg(math.Acos(z))
		}
		out[i] = CameraAngle{Azimuthal: Real(i)*dth + 90.0, Polar: polar}
	}
	return out
}

// pose is a camera placed on the sphere of radius r around the origin,
// looking at the origin with +Z up.
type pose struct {
	eye        mgl64.Vec3
	camToWorld mgl64.Mat4
	focal      Real
}

func newPose(angle CameraAngle, r, fovDeg Real) pose {
	th := mgl64.DegToRad(angle.Azimuthal)
	phi := mgl64.DegToRad(angle.Polar)
	eye := mgl64.Vec3{
		r * math.Cos(th) * math.Sin(phi),
		r * math.Sin(th) * math.Sin(phi),
		r * math.Cos(phi),
	}
	center := mgl64.Vec3{0, 0, 0}
	up := mgl64.Vec3{0, 0, 1}
	// Inverted view matrix maps camera space back to world space.
	camToWorld := mgl64.LookAtV(eye, center, up).Inv()
	return pose{
		eye:        eye,
		camToWorld: camToWorld,
		focal:      1 / math.Tan(mgl64.DegToRad(fovDeg/2)),
	}
}

// rayThrough returns the unnormalized world-space direction from the
// eye through pixel (i, j) on the focal plane.
func (p *pose) rayThrough(i, j, res int) mgl64.Vec3 {
	resF := Real(res)
	vx := mgl64.Vec3{Real(i)/(resF/2) - 1, Real(j)/(resF/2) - 1, -p.focal}
	vx = mgl64.TransformCoordinate(vx, p.camToWorld)
	return vx.Sub(p.eye)
}

// transformMatrix flattens the camera-to-world matrix into nested rows
// for the transforms metadata file.
func (p *pose) transformMatrix() [][]float64 {
	m := make([][]float64, 4)
	for i := 0; i < 4; i++ {
		m[i] = make([]float64, 4)
		for j := 0; j < 4; j++ {
			m[i][j] = p.camToWorld.At(i, j)
		}
	}
	return m
}
