package xrayproj

import (
	"encoding/json"
	"fmt"
)

// CameraAngle is one explicit view direction, both angles in degrees.
type CameraAngle struct {
	Azimuthal Real `json:"azimuthal"`
	Polar     Real `json:"polar"`
}

// RenderParams is the full description of a render request as it
// crosses the JSON boundary. Fields left out of the request keep the
// defaults from DefaultParams.
type RenderParams struct {
	Input             string        `json:"input"`
	OutputDir         string        `json:"output_dir"`
	FnamePattern      string        `json:"fname_pattern"`
	Resolution        int           `json:"resolution"`
	NumImages         int           `json:"num_images"`
	OutOfPlane        bool          `json:"out_of_plane"`
	DS                Real          `json:"ds"`
	R                 Real          `json:"R"`
	FOV               Real          `json:"fov"`
	JobsModulo        int           `json:"jobs_modulo"`
	JobNum            int           `json:"job_num"`
	TransformsFile    string        `json:"transforms_file"`
	DeformationFile   string        `json:"deformation_file"`
	TimeLabel         Real          `json:"time_label"`
	Transparency      bool          `json:"transparency"`
	ExportVolume      bool          `json:"export_volume"`
	PolarAngle        Real          `json:"polar_angle"`
	CameraAngles      []CameraAngle `json:"camera_angles"`
	DensityMultiplier Real          `json:"density_multiplier"`
	FlatField         Real          `json:"flat_field"`
	Integration       string        `json:"integration"`
	LogLevel          string        `json:"log_level"`

	// CLI-only toggle, not part of the JSON contract.
	TextProgress bool `json:"-"`
}

// RenderResult is the reply sent back across the JSON boundary.
type RenderResult struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	NumImages int    `json:"num_images"`
	OutputDir string `json:"output_dir"`
}

// DefaultParams returns a request with every field at its documented
// default. A render of DefaultParams still fails validation because
// Input has no default.
func DefaultParams() RenderParams {
	return RenderParams{
		OutputDir:         DefaultOutputDir,
		FnamePattern:      DefaultFnamePattern,
		Resolution:        DefaultResolution,
		NumImages:         DefaultNumImages,
		DS:                DefaultDS,
		R:                 DefaultR,
		FOV:               DefaultFOV,
		JobsModulo:        DefaultJobsModulo,
		TransformsFile:    DefaultTransformsFile,
		PolarAngle:        DefaultPolarAngle,
		DensityMultiplier: DefaultDensityMultiplier,
		Integration:       DefaultIntegration,
		LogLevel:          DefaultLogLevel,
	}
}

// ParseParams decodes a JSON request over the defaults.
func ParseParams(data []byte) (RenderParams, error) {
	p := DefaultParams()
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("%w: failed to parse parameters: %v", ErrInvalidConfig, err)
	}
	return p, nil
}

// Validate rejects requests that cannot be rendered. It runs before
// any file is opened or created.
func (p *RenderParams) Validate() error {
	if p.Input == "" {
		return fmt.Errorf("%w: input file is required", ErrInvalidConfig)
	}
	if p.Resolution <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %d", ErrInvalidConfig, p.Resolution)
	}
	if len(p.CameraAngles) == 0 && p.NumImages <= 0 {
		return fmt.Errorf("%w: num_images must be positive when camera_angles is empty, got %d", ErrInvalidConfig, p.NumImages)
	}
	if p.DS == 0 {
		return fmt.Errorf("%w: ds must be negative (auto) or positive, not zero", ErrInvalidConfig)
	}
	if p.FOV <= 0 || p.FOV >= 180 {
		return fmt.Errorf("%w: fov must be in (0, 180) degrees, got %v", ErrInvalidConfig, p.FOV)
	}
	if p.JobsModulo < 1 {
		return fmt.Errorf("%w: jobs_modulo must be at least 1, got %d", ErrInvalidConfig, p.JobsModulo)
	}
	if p.JobNum < 0 || p.JobNum >= p.JobsModulo {
		return fmt.Errorf("%w: job_num must be in [0, jobs_modulo), got %d of %d", ErrInvalidConfig, p.JobNum, p.JobsModulo)
	}
	switch p.Integration {
	case IntegrationSimple, IntegrationHierarchical:
	default:
		return fmt.Errorf("%w: unknown integration method %q", ErrInvalidConfig, p.Integration)
	}
	return nil
}
