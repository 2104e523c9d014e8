package xrayproj

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Helpers for pulling typed values out of decoded YAML/JSON maps.
// YAML hands integers over as int, JSON as float64, so every numeric
// accessor takes the union.

func toFloat(v any) (Real, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return Real(n), nil
	case int:
		return Real(n), nil
	case int64:
		return Real(n), nil
	case uint64:
		return Real(n), nil
	}
	return 0, fmt.Errorf("%v is not a number", v)
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	case float32:
		return int(n), nil
	}
	return 0, fmt.Errorf("%v is not an integer", v)
}

func toFloats(v any) ([]Real, error) {
	switch s := v.(type) {
	case []Real:
		out := make([]Real, len(s))
		copy(out, s)
		return out, nil
	case []any:
		out := make([]Real, len(s))
		for i, e := range s {
			f, err := toFloat(e)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	}
	return nil, fmt.Errorf("%v is not a list of numbers", v)
}

func toVec3(v any) (mgl64.Vec3, error) {
	if vec, ok := v.(mgl64.Vec3); ok {
		return vec, nil
	}
	fs, err := toFloats(v)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	if len(fs) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fs))
	}
	return mgl64.Vec3{fs[0], fs[1], fs[2]}, nil
}
