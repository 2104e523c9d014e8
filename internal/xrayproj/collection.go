package xrayproj

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ObjectCollection sums the densities of its members, clipped to [0,1].
// With GreedyDensEval set it returns the first positive member density
// instead, which is much cheaper for lattices of non-overlapping parts.
type ObjectCollection struct {
	Objects        []Object
	GreedyDensEval bool
}

func (oc *ObjectCollection) Density(x, y, z Real) Real {
	var density Real
	for _, obj := range oc.Objects {
		rho := obj.Density(x, y, z)
		if oc.GreedyDensEval && rho > 0.0 {
			return rho
		}
		density += rho
	}
	if density < 0.0 {
		density = 0.0
	} else if density > 1.0 {
		density = 1.0
	}
	return density
}

func (oc *ObjectCollection) MinFeatureSize() Real {
	out := math.Inf(1)
	for _, obj := range oc.Objects {
		out = math.Min(out, obj.MinFeatureSize())
	}
	return out
}

func (oc *ObjectCollection) ToMap() map[string]any {
	objects := make([]map[string]any, len(oc.Objects))
	for i, obj := range oc.Objects {
		objects[i] = obj.ToMap()
	}
	return map[string]any{
		"type":             "object_collection",
		"objects":          objects,
		"greedy_dens_eval": oc.GreedyDensEval,
	}
}

func (oc *ObjectCollection) FromMap(data map[string]any) error {
	if greedy, ok := data["greedy_dens_eval"].(bool); ok {
		oc.GreedyDensEval = greedy
	}
	list, ok := data["objects"].([]any)
	if !ok {
		return fmt.Errorf("object_collection objects is not a list")
	}
	oc.Objects = make([]Object, len(list))
	for i, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			return fmt.Errorf("object_collection objects[%d] is not a map", i)
		}
		obj, err := NewObject(m)
		if err != nil {
			return fmt.Errorf("object_collection objects[%d]: %v", i, err)
		}
		oc.Objects[i] = obj
	}
	return nil
}

func (oc *ObjectCollection) String() string {
	if len(oc.Objects) > 5 {
		return fmt.Sprintf("ObjectCollection with %d objects. GreedyDensEval=%v", len(oc.Objects), oc.GreedyDensEval)
	}
	return fmt.Sprintf("ObjectCollection{%v, GreedyDensEval=%v}", oc.Objects, oc.GreedyDensEval)
}

// UnitCell is an object collection restricted to a bounding box, the
// repeating element of a tessellated lattice.
type UnitCell struct {
	Objects                            ObjectCollection
	Xmin, Xmax, Ymin, Ymax, Zmin, Zmax Real
}

func (uc *UnitCell) Density(x, y, z Real) Real {
	if x < uc.Xmin || x > uc.Xmax || y < uc.Ymin || y > uc.Ymax || z < uc.Zmin || z > uc.Zmax {
		return 0.0
	}
	return uc.Objects.Density(x, y, z)
}

func (uc *UnitCell) MinFeatureSize() Real {
	return uc.Objects.MinFeatureSize()
}

func (uc *UnitCell) ToMap() map[string]any {
	return map[string]any{
		"type":    "unit_cell",
		"objects": uc.Objects.ToMap(),
		"xmin":    uc.Xmin,
		"xmax":    uc.Xmax,
		"ymin":    uc.Ymin,
		"ymax":    uc.Ymax,
		"zmin":    uc.Zmin,
		"zmax":    uc.Zmax,
	}
}

func (uc *UnitCell) FromMap(data map[string]any) error {
	objData, ok := data["objects"].(map[string]any)
	if !ok {
		return fmt.Errorf("unit_cell objects is not a map")
	}
	if err := uc.Objects.FromMap(objData); err != nil {
		return err
	}
	// Cells hold non-overlapping struts, greedy evaluation is safe.
	uc.Objects.GreedyDensEval = true
	var err error
	if uc.Xmin, err = toFloat(data["xmin"]); err != nil {
		return fmt.Errorf("unit_cell xmin: %v", err)
	}
	if uc.Xmax, err = toFloat(data["xmax"]); err != nil {
		return fmt.Errorf("unit_cell xmax: %v", err)
	}
	if uc.Ymin, err = toFloat(data["ymin"]); err != nil {
		return fmt.Errorf("unit_cell ymin: %v", err)
	}
	if uc.Ymax, err = toFloat(data["ymax"]); err != nil {
		return fmt.Errorf("unit_cell ymax: %v", err)
	}
	if uc.Zmin, err = toFloat(data["zmin"]); err != nil {
		return fmt.Errorf("unit_cell zmin: %v", err)
	}
	if uc.Zmax, err = toFloat(data["zmax"]); err != nil {
		return fmt.Errorf("unit_cell zmax: %v", err)
	}
	return nil
}

func (uc *UnitCell) String() string {
	return fmt.Sprintf("UnitCell{Objects: {%v}, Xmin: %v, Xmax: %v, Ymin: %v, Ymax: %v, Zmin: %v, Zmax: %v}",
		uc.Objects.String(), uc.Xmin, uc.Xmax, uc.Ymin, uc.Ymax, uc.Zmin, uc.Zmax)
}

// TessellatedObjColl tiles a unit cell periodically inside an outer
// bounding box. Points are folded into the cell before evaluation.
type TessellatedObjColl struct {
	UC                                 UnitCell
	Xmin, Xmax, Ymin, Ymax, Zmin, Zmax Real
}

func (l *TessellatedObjColl) Density(x, y, z Real) Real {
	if x < l.Xmin || x > l.Xmax || y < l.Ymin || y > l.Ymax || z < l.Zmin || z > l.Zmax {
		return 0.0
	}
	dx := l.UC.Xmax - l.UC.Xmin
	x = x - dx*math.Floor((x-l.UC.Xmin)/dx)
	dy := l.UC.Ymax - l.UC.Ymin
	y = y - dy*math.Floor((y-l.UC.Ymin)/dy)
	dz := l.UC.Zmax - l.UC.Zmin
	z = z - dz*math.Floor((z-l.UC.Zmin)/dz)
	return l.UC.Density(x, y, z)
}

func (l *TessellatedObjColl) MinFeatureSize() Real {
	return l.UC.Objects.MinFeatureSize()
}

func (l *TessellatedObjColl) ToMap() map[string]any {
	return map[string]any{
		"type": "tessellated_obj_coll",
		"uc":   l.UC.ToMap(),
		"xmin": l.Xmin,
		"xmax": l.Xmax,
		"ymin": l.Ymin,
		"ymax": l.Ymax,
		"zmin": l.Zmin,
		"zmax": l.Zmax,
	}
}

func (l *TessellatedObjColl) FromMap(data map[string]any) error {
	ucData, ok := data["uc"].(map[string]any)
	if !ok {
		return fmt.Errorf("tessellated_obj_coll uc is not a map")
	}
	if err := l.UC.FromMap(ucData); err != nil {
		return err
	}
	var err error
	if l.Xmin, err = toFloat(data["xmin"]); err != nil {
		return fmt.Errorf("tessellated_obj_coll xmin: %v", err)
	}
	if l.Xmax, err = toFloat(data["xmax"]); err != nil {
		return fmt.Errorf("tessellated_obj_coll xmax: %v", err)
	}
	if l.Ymin, err = toFloat(data["ymin"]); err != nil {
		return fmt.Errorf("tessellated_obj_coll ymin: %v", err)
	}
	if l.Ymax, err = toFloat(data["ymax"]); err != nil {
		return fmt.Errorf("tessellated_obj_coll ymax: %v", err)
	}
	if l.Zmin, err = toFloat(data["zmin"]); err != nil {
		return fmt.Errorf("tessellated_obj_coll zmin: %v", err)
	}
	if l.Zmax, err = toFloat(data["zmax"]); err != nil {
		return fmt.Errorf("tessellated_obj_coll zmax: %v", err)
	}
	return nil
}

func (l *TessellatedObjColl) String() string {
	return fmt.Sprintf("TessellatedObjColl{UC: {%v}, Xmin: %v, Xmax: %v, Ymin: %v, Ymax: %v, Zmin: %v, Zmax: %v}",
		l.UC.String(), l.Xmin, l.Xmax, l.Ymin, l.Ymax, l.Zmin, l.Zmax)
}

// MakeKelvin builds the strut skeleton of a Kelvin cell (truncated
// octahedron) with the given strut radius, scaled from the unit cube.
func MakeKelvin(rad, scale Real) UnitCell {
	struts := []Cylinder{
		{P0: mgl64.Vec3{0.25, 0.00, 0.50}, P1: mgl64.Vec3{0.50, 0.00, 0.75}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.25, 1.00, 0.50}, P1: mgl64.Vec3{0.50, 1.00, 0.75}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.25, 0.00, 0.50}, P1: mgl64.Vec3{0.50, 0.00, 0.25}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.25, 1.00, 0.50}, P1: mgl64.Vec3{0.50, 1.00, 0.25}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.25, 0.00, 0.50}, P1: mgl64.Vec3{0.00, 0.25, 0.50}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.50, 0.00, 0.75}, P1: mgl64.Vec3{0.75, 0.00, 0.50}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.50, 1.00, 0.75}, P1: mgl64.Vec3{0.75, 1.00, 0.50}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.50, 0.00, 0.75}, P1: mgl64.Vec3{0.50, 0.25, 1.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.75, 0.00, 0.50}, P1: mgl64.Vec3{0.50, 0.00, 0.25}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.75, 1.00, 0.50}, P1: mgl64.Vec3{0.50, 1.00, 0.25}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.75, 0.00, 0.50}, P1: mgl64.Vec3{1.00, 0.25, 0.50}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.50, 0.00, 0.25}, P1: mgl64.Vec3{0.50, 0.25, 0.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{1.00, 0.50, 0.75}, P1: mgl64.Vec3{0.75, 0.50, 1.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{1.00, 0.75, 0.50}, P1: mgl64.Vec3{0.75, 1.00, 0.50}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{1.00, 0.50, 0.25}, P1: mgl64.Vec3{0.75, 0.50, 0.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.25, 1.00, 0.50}, P1: mgl64.Vec3{0.00, 0.75, 0.50}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.50, 1.00, 0.75}, P1: mgl64.Vec3{0.50, 0.75, 1.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.50, 1.00, 0.25}, P1: mgl64.Vec3{0.50, 0.75, 0.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.00, 0.25, 0.50}, P1: mgl64.Vec3{0.00, 0.50, 0.75}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{1.00, 0.25, 0.50}, P1: mgl64.Vec3{1.00, 0.50, 0.75}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.00, 0.25, 0.50}, P1: mgl64.Vec3{0.00, 0.50, 0.25}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{1.00, 0.25, 0.50}, P1: mgl64.Vec3{1.00, 0.50, 0.25}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.00, 0.50, 0.75}, P1: mgl64.Vec3{0.25, 0.50, 1.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.00, 0.50, 0.75}, P1: mgl64.Vec3{0.00, 0.75, 0.50}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{1.00, 0.50, 0.75}, P1: mgl64.Vec3{1.00, 0.75, 0.50}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.00, 0.75, 0.50}, P1: mgl64.Vec3{0.00, 0.50, 0.25}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{1.00, 0.75, 0.50}, P1: mgl64.Vec3{1.00, 0.50, 0.25}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.00, 0.50, 0.25}, P1: mgl64.Vec3{0.25, 0.50, 0.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.25, 0.50, 0.00}, P1: mgl64.Vec3{0.50, 0.75, 0.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.25, 0.50, 1.00}, P1: mgl64.Vec3{0.50, 0.75, 1.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.25, 0.50, 0.00}, P1: mgl64.Vec3{0.50, 0.25, 0.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.25, 0.50, 1.00}, P1: mgl64.Vec3{0.50, 0.25, 1.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.50, 0.75, 0.00}, P1: mgl64.Vec3{0.75, 0.50, 0.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.50, 0.75, 1.00}, P1: mgl64.Vec3{0.75, 0.50, 1.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.75, 0.50, 0.00}, P1: mgl64.Vec3{0.50, 0.25, 0.00}, Radius: rad, Rho: 1.0},
		{P0: mgl64.Vec3{0.75, 0.50, 1.00}, P1: mgl64.Vec3{0.50, 0.25, 1.00}, Radius: rad, Rho: 1.0},
	}
	objects := make([]Object, len(struts))
	for i := range struts {
		struts[i].P0 = struts[i].P0.Mul(scale)
		struts[i].P1 = struts[i].P1.Mul(scale)
		objects[i] = &struts[i]
	}
	return UnitCell{
		Objects: ObjectCollection{Objects: objects, GreedyDensEval: true},
		Xmin:    0.0, Xmax: scale,
		Ymin: 0.0, Ymax: scale,
		Zmin: 0.0, Zmax: scale,
	}
}
