package xrayproj

// Integration method names accepted in render parameters.
const (
	IntegrationSimple       = "simple"
	IntegrationHierarchical = "hierarchical"
)

// Parameter defaults applied before decoding a render request.
const (
	DefaultOutputDir         = "images"
	DefaultFnamePattern      = "image_%03d.png"
	DefaultResolution        = 512
	DefaultNumImages         = 1
	DefaultDS                = -1.0 // negative asks for auto step from the scene feature size
	DefaultR                 = 4.0
	DefaultFOV               = 40.0
	DefaultJobsModulo        = 1
	DefaultTransformsFile    = "transforms.json"
	DefaultPolarAngle        = 90.0
	DefaultDensityMultiplier = 1.0
	DefaultIntegration       = IntegrationHierarchical
	DefaultLogLevel          = "error"
)

const (
	// Scenes are normalized to the [-1,1]^3 cube, so a ray entering from
	// camera distance R cannot hit anything outside R +- half the cube
	// diagonal. 1.74 pads sqrt(3) slightly.
	cubeHalfDiagonal = 1.74

	// Auto step: a third of the smallest feature in the scene.
	autoStepDivisor = 3.0

	// Refined step used by the hierarchical integrator inside occupied windows.
	refineDivisor = 10.0

	// Keeps generated polar angles off the +-Z poles where the view
	// matrix degenerates.
	poleEps = 1e-9
)
