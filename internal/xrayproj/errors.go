package xrayproj

import "errors"

// Error kinds reported across the JSON boundary. Everything returned by
// Run wraps exactly one of these, so callers can classify failures with
// errors.Is without parsing message text.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrSceneLoad     = errors.New("load scene")
	ErrIntegration   = errors.New("integration fault")
	ErrIO            = errors.New("write output")
)
