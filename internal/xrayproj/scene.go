package xrayproj

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Scene is the loaded density field for one render: a single root
// object, an optional deformation and the global density multiplier.
type Scene struct {
	obj         Object
	deformation Deformation
	multiplier  Real
}

// decodeSceneFile reads a YAML or JSON description into a generic map.
func decodeSceneFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	case ".json":
		err = json.Unmarshal(data, &out)
	default:
		return nil, fmt.Errorf("unknown file extension %q, want .yaml, .yml or .json", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %v", path, err)
	}
	return out, nil
}

// LoadScene reads the object description at path and prepares it for
// rendering with the given density multiplier.
func LoadScene(path string, multiplier Real) (*Scene, error) {
	log.Info().Msgf("Loading object from '%s'", path)
	data, err := decodeSceneFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSceneLoad, err)
	}
	obj, err := NewObject(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSceneLoad, err)
	}
	log.Info().Msgf("Loaded object: %v", obj)
	return &Scene{obj: obj, multiplier: multiplier}, nil
}

// LoadDeformation attaches the deformation described at path. An empty
// path leaves the scene undeformed.
func (s *Scene) LoadDeformation(path string) error {
	if path == "" {
		log.Info().Msg("No deformation file provided")
		return nil
	}
	log.Info().Msgf("Loading deformation from '%s'", path)
	data, err := decodeSceneFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSceneLoad, err)
	}
	d, err := NewDeformation(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSceneLoad, err)
	}
	log.Info().Msgf("Deformation: %v", d)
	s.deformation = d
	return nil
}

// Density samples the scene at a world point, deformation first, then
// the multiplier. This is the innermost call of every ray step.
func (s *Scene) Density(x, y, z Real) Real {
	if s.deformation != nil {
		x, y, z = s.deformation.Apply(x, y, z)
	}
	return s.obj.Density(x, y, z) * s.multiplier
}

// MinFeatureSize reports the smallest feature of the root object,
// before deformation.
func (s *Scene) MinFeatureSize() Real {
	return s.obj.MinFeatureSize()
}

// Object returns the root object, used to echo the parsed scene back
// next to the rendered images.
func (s *Scene) Object() Object {
	return s.obj
}
