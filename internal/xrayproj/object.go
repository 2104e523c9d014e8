package xrayproj

import "fmt"

// Object is a renderable density field. Implementations fill themselves
// from a decoded scene map and report densities in [0,1] before the
// global multiplier is applied.
type Object interface {
	// Density returns the attenuation density at a world point.
	Density(x, y, z Real) Real
	// MinFeatureSize is the smallest length scale the object resolves,
	// used to pick the integration step automatically.
	MinFeatureSize() Real
	// ToMap serializes the object back into a scene map.
	ToMap() map[string]any
	// FromMap fills the object from a decoded scene map.
	FromMap(data map[string]any) error
	String() string
}

// Compile-time interface checks.
var (
	_ Object = (*Sphere)(nil)
	_ Object = (*Cube)(nil)
	_ Object = (*Box)(nil)
	_ Object = (*Cylinder)(nil)
	_ Object = (*Parallelepiped)(nil)
	_ Object = (*Gyroid)(nil)
	_ Object = (*ObjectCollection)(nil)
	_ Object = (*TessellatedObjColl)(nil)
	_ Object = (*VoxelGrid)(nil)
)

// NewObject builds the object described by a decoded scene map by
// dispatching on its "type" field. Collections recurse through here, so
// nesting is unrestricted.
func NewObject(data map[string]any) (Object, error) {
	typ, ok := data["type"].(string)
	if !ok {
		return nil, fmt.Errorf("object map has no type field")
	}
	var obj Object
	switch typ {
	case "sphere":
		obj = &Sphere{}
	case "cube":
		obj = &Cube{}
	case "box":
		obj = &Box{}
	case "cylinder":
		obj = &Cylinder{}
	case "parallelepiped":
		obj = &Parallelepiped{}
	case "gyroid":
		obj = &Gyroid{}
	case "object_collection":
		obj = &ObjectCollection{}
	case "tessellated_obj_coll":
		obj = &TessellatedObjColl{}
	case "voxel_grid":
		obj = &VoxelGrid{}
	default:
		return nil, fmt.Errorf("unknown object type: %s", typ)
	}
	if err := obj.FromMap(data); err != nil {
		return nil, err
	}
	return obj, nil
}
