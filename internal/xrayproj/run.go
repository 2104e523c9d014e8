package xrayproj

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// timer logs the elapsed wall time of the surrounding call.
func timer() func() {
	start := time.Now()
	return func() {
		log.Info().Msgf("Elapsed time: %v", time.Since(start))
	}
}

// Run executes one render request end to end and reports the outcome.
// It never terminates the process: every failure, panics included,
// comes back classified in the result.
func Run(p RenderParams) RenderResult {
	SetLogLevel(p.LogLevel)

	var numImages int
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: internal panic: %v", ErrIntegration, r)
			}
		}()
		numImages, err = run(&p)
		return err
	}()

	if err != nil {
		log.Error().Msgf("Render failed: %v", err)
		return RenderResult{Success: false, Error: err.Error(), OutputDir: p.OutputDir}
	}
	return RenderResult{Success: true, NumImages: numImages, OutputDir: p.OutputDir}
}

// run is the sequential pipeline behind Run: validate, load, render,
// write metadata. It returns the size of the full view set, including
// images other jobs of a sharded acquisition are responsible for.
func run(p *RenderParams) (int, error) {
	defer timer()()

	if err := p.Validate(); err != nil {
		return 0, err
	}
	scene, err := LoadScene(p.Input, p.DensityMultiplier)
	if err != nil {
		return 0, err
	}
	if err := scene.LoadDeformation(p.DeformationFile); err != nil {
		return 0, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	views := expandAngles(p, rng)

	if _, err := os.Stat(p.OutputDir); os.IsNotExist(err) {
		log.Info().Msgf("Creating output directory '%s'", p.OutputDir)
		if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrIO, err)
		}
	} else {
		log.Info().Msgf("Output to directory '%s'", p.OutputDir)
	}

	log.Info().Msgf("Generating %d images at resolution %d", len(views), p.Resolution)
	log.Info().Msgf("Will render every %dth projection starting from %d", p.JobsModulo, p.JobNum)

	r, err := newRenderer(scene, p)
	if err != nil {
		return 0, err
	}
	frames, err := r.renderAll(views)
	if err != nil {
		return 0, err
	}

	if p.TransformsFile != "" {
		if err := writeTransforms(p.TransformsFile, newTransformParams(p, frames)); err != nil {
			return 0, err
		}
	}
	if err := writeObjectEcho(p.OutputDir, scene.Object()); err != nil {
		return 0, err
	}
	if p.ExportVolume {
		vol := buildVolume(scene, p.Resolution, p.TextProgress)
		if err := writeVolume(p.OutputDir, vol); err != nil {
			return 0, err
		}
	}
	return len(views), nil
}

// RenderJSON is the string-in, string-out form of Run used by the C
// binding and other embedders: a JSON request returns a JSON result.
func RenderJSON(request string) string {
	p, err := ParseParams([]byte(request))
	if err != nil {
		return marshalResult(RenderResult{Success: false, Error: err.Error()})
	}
	return marshalResult(Run(p))
}

func marshalResult(r RenderResult) string {
	data, err := json.Marshal(r)
	if err != nil {
		return `{"success":false,"error":"failed to marshal result"}`
	}
	return string(data)
}
