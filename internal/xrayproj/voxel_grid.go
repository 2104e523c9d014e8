package xrayproj

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// VoxelGrid is a dense scalar field on a regular grid spanning the
// [-1,1]^3 scene cube, sampled with trilinear interpolation. Values are
// stored x-fastest: Rho[z*NX*NY + y*NX + x].
type VoxelGrid struct {
	Rho  []Real
	NX   int
	NY   int
	NZ   int
	Path string
}

func (v *VoxelGrid) Density(x, y, z Real) Real {
	if x < -1 || x > 1 || y < -1 || y > 1 || z < -1 || z > 1 {
		return 0.0
	}
	// Map [-1,1] onto fractional voxel coordinates.
	x = (x + 1) / 2 * Real(v.NX-1)
	y = (y + 1) / 2 * Real(v.NY-1)
	z = (z + 1) / 2 * Real(v.NZ-1)

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	z0 := int(math.Floor(z))
	x1 := x0 + 1
	y1 := y0 + 1
	z1 := z0 + 1
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if z0 < 0 {
		z0 = 0
	}
	if x1 >= v.NX {
		x1 = v.NX - 1
	}
	if y1 >= v.NY {
		y1 = v.NY - 1
	}
	if z1 >= v.NZ {
		z1 = v.NZ - 1
	}

	wx := x - Real(x0)
	wy := y - Real(y0)
	wz := z - Real(z0)

	plane := v.NX * v.NY
	v000 := v.Rho[z0*plane+y0*v.NX+x0]
	v001 := v.Rho[z1*plane+y0*v.NX+x0]
	v010 := v.Rho[z0*plane+y1*v.NX+x0]
	v011 := v.Rho[z1*plane+y1*v.NX+x0]
	v100 := v.Rho[z0*plane+y0*v.NX+x1]
	v101 := v.Rho[z1*plane+y0*v.NX+x1]
	v110 := v.Rho[z0*plane+y1*v.NX+x1]
	v111 := v.Rho[z1*plane+y1*v.NX+x1]

	v00 := v000*(1-wz) + v001*wz
	v01 := v010*(1-wz) + v011*wz
	v10 := v100*(1-wz) + v101*wz
	v11 := v110*(1-wz) + v111*wz
	v0 := v00*(1-wy) + v01*wy
	v1 := v10*(1-wy) + v11*wy
	return v0*(1-wx) + v1*wx
}

func (v *VoxelGrid) MinFeatureSize() Real {
	n := v.NX
	if v.NY > n {
		n = v.NY
	}
	if v.NZ > n {
		n = v.NZ
	}
	// One voxel in scene units.
	return 2.0 / Real(n)
}

// ToMap reports grid metadata only, inline density arrays are too large
// to echo back into scene files.
func (v *VoxelGrid) ToMap() map[string]any {
	return map[string]any{
		"type":  "voxel_grid",
		"nx":    v.NX,
		"ny":    v.NY,
		"nz":    v.NZ,
		"dtype": "float64",
		"path":  v.Path,
	}
}

func (v *VoxelGrid) FromMap(data map[string]any) error {
	if path, ok := data["path"].(string); ok && path != "" {
		if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext != "raw" {
			return fmt.Errorf("voxel_grid: only raw files are supported, got %q", path)
		}
		resData, ok := data["resolution"].([]any)
		if !ok {
			return fmt.Errorf("voxel_grid: resolution must be provided for raw files")
		}
		if len(resData) != 3 {
			return fmt.Errorf("voxel_grid: resolution must be a list of 3 integers")
		}
		var res [3]int
		for i, val := range resData {
			n, err := toInt(val)
			if err != nil {
				return fmt.Errorf("voxel_grid resolution[%d]: %v", i, err)
			}
			res[i] = n
		}
		dtype := "uint8"
		if s, ok := data["dtype"].(string); ok {
			dtype = s
		}
		vg, err := VoxelGridFromRaw(path, res, dtype)
		if err != nil {
			return err
		}
		*v = *vg
		return nil
	}

	// Inline grid with the density list embedded in the scene map.
	var err error
	if v.NX, err = toInt(data["nx"]); err != nil {
		return fmt.Errorf("voxel_grid nx: %v", err)
	}
	if v.NY, err = toInt(data["ny"]); err != nil {
		return fmt.Errorf("voxel_grid ny: %v", err)
	}
	if v.NZ, err = toInt(data["nz"]); err != nil {
		return fmt.Errorf("voxel_grid nz: %v", err)
	}
	if v.Rho, err = toFloats(data["rho"]); err != nil {
		return fmt.Errorf("voxel_grid rho: %v", err)
	}
	if len(v.Rho) != v.NX*v.NY*v.NZ {
		return fmt.Errorf("voxel_grid: rho has %d values, want %d", len(v.Rho), v.NX*v.NY*v.NZ)
	}
	return nil
}

func (v *VoxelGrid) String() string {
	return fmt.Sprintf("VoxelGrid{NX: %d, NY: %d, NZ: %d}", v.NX, v.NY, v.NZ)
}

// VoxelGridFromRaw loads a headerless little-endian raw volume.
// Integer dtypes are normalized to [0,1], float dtypes are taken as is.
func VoxelGridFromRaw(path string, resolution [3]int, dtype string) (*VoxelGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}

	var elemSize int
	switch dtype {
	case "uint8":
		elemSize = 1
	case "uint16":
		elemSize = 2
	case "uint32":
		elemSize = 4
	case "float32":
		elemSize = 4
	case "float64":
		elemSize = 8
	default:
		return nil, fmt.Errorf("unsupported data type: %s", dtype)
	}
	n := resolution[0] * resolution[1] * resolution[2]
	if len(data) != n*elemSize {
		return nil, fmt.Errorf("file size (%d) does not match expected size (%d) for type %s", len(data), n*elemSize, dtype)
	}

	rho := make([]Real, n)
	switch dtype {
	case "uint8":
		for i, b := range data {
			rho[i] = Real(b) / 255.0
		}
	case "uint16":
		for i := 0; i < n; i++ {
			rho[i] = Real(binary.LittleEndian.Uint16(data[2*i:])) / 65535.0
		}
	case "uint32":
		for i := 0; i < n; i++ {
			rho[i] = Real(binary.LittleEndian.Uint32(data[4*i:])) / 4294967295.0
		}
	case "float32":
		for i := 0; i < n; i++ {
			rho[i] = Real(math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:])))
		}
	case "float64":
		for i := 0; i < n; i++ {
			rho[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
		}
	}
	log.Info().Msgf("Loaded voxel grid %dx%dx%d (%s) from %s", resolution[0], resolution[1], resolution[2], dtype, path)

	return &VoxelGrid{
		Rho:  rho,
		NX:   resolution[0],
		NY:   resolution[1],
		NZ:   resolution[2],
		Path: path,
	}, nil
}
