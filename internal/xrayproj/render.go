package xrayproj

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// renderer holds everything needed to produce the projection images of
// one request. The pixel buffer is reused across images.
type renderer struct {
	scene  *Scene
	params *RenderParams
	integ  *integrator
	ds     Real
	smin   Real
	smax   Real

	// transmittance buffer, indexed i*res+j with i the image column
	buf []Real

	minVal Real
	maxVal Real
}

func newRenderer(scene *Scene, p *RenderParams) (*renderer, error) {
	ds := p.DS
	if ds < 0 {
		ds = scene.MinFeatureSize() / autoStepDivisor
		log.Info().Msgf("Setting ds to %f", ds)
	}
	// A zero-extent object derives ds=0, an empty collection +Inf; either
	// way the march would never terminate sensibly.
	if !isFinite(ds) || ds <= 0 {
		return nil, fmt.Errorf("%w: computed ds %v is not positive and finite", ErrInvalidConfig, ds)
	}
	return &renderer{
		scene:  scene,
		params: p,
		integ:  newIntegrator(scene, p.Integration, p.FlatField),
		ds:     ds,
		smin:   p.R - cubeHalfDiagonal,
		smax:   p.R + cubeHalfDiagonal,
		buf:    make([]Real, p.Resolution*p.Resolution),
		minVal: 1.0,
		maxVal: 0.0,
	}, nil
}

// renderImage fills the pixel buffer for one pose, splitting columns
// across all CPUs. tick, when non-nil, is called roughly 50 times over
// the image for coarse progress output.
func (r *renderer) renderImage(p pose, tick func()) error {
	res := r.params.Resolution
	for i := range r.buf {
		r.buf[i] = 0
	}
	pixStep := res * res / 50
	if pixStep < 1 {
		pixStep = 1
	}
	workers := runtime.NumCPU()
	if workers > res {
		workers = res
	}
	chunk := (res + workers - 1) / workers
	var done atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > res {
			hi = res
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				for j := 0; j < res; j++ {
					dir := p.rayThrough(i, j, res)
					r.buf[i*res+j] = r.integ.transmittance(p.eye, dir, r.ds, r.smin, r.smax)
					if tick != nil && done.Add(1)%int64(pixStep) == 0 {
						tick()
					}
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	for idx, v := range r.buf {
		if !isFinite(v) {
			return fmt.Errorf("%w: non-finite transmittance at pixel %d", ErrIntegration, idx)
		}
		if v < r.minVal {
			r.minVal = v
		}
		if v > r.maxVal {
			r.maxVal = v
		}
	}
	return nil
}

// renderAll renders this job's share of the view list, writes each
// image and returns the frame metadata in render order.
func (r *renderer) renderAll(views []CameraAngle) ([]FrameParams, error) {
	p := r.params
	res := p.Resolution
	n := len(views)
	var wrt io.Writer = os.Stdout

	var bar *progressbar.ProgressBar
	if p.TextProgress {
		fmt.Fprintln(wrt, "Rendering images...")
		fmt.Fprintf(wrt, "%7s%54s%6s%6s\n", "Image", "Progress", "Pix/s", "ETA")
	} else {
		count := 0
		for i := p.JobNum; i < n; i += p.JobsModulo {
			count++
		}
		bar = progressbar.Default(int64(count))
	}

	frames := []FrameParams{}
	t0 := time.Now()
	for iImg := p.JobNum; iImg < n; iImg += p.JobsModulo {
		var tick func()
		if p.TextProgress {
			fmt.Fprintf(wrt, "%3d/%3d [", iImg, n)
			tick = func() { io.WriteString(wrt, "-") }
		} else {
			bar.Add(1)
		}

		cam := newPose(views[iImg], p.R, p.FOV)
		t1 := time.Now()
		if err := r.renderImage(cam, tick); err != nil {
			return nil, err
		}

		if p.TextProgress {
			eta := time.Since(t0) * time.Duration(n-iImg-1) / time.Duration(iImg+1)
			pixPerSec := Real(res*res) / time.Since(t1).Seconds()
			fmt.Fprintf(wrt, "] %5.0f %02d:%02d\n", pixPerSec, int(eta.Minutes()), int(eta.Seconds())%60)
		}
		if iImg == 0 || iImg == n-1 {
			log.Info().Msgf("Min value: %f, Max value: %f", r.minVal, r.maxVal)
		}

		filename := filepath.Join(p.OutputDir, fmt.Sprintf(p.FnamePattern, iImg))
		if err := writePNG(filename, r.buf, res, p.Transparency); err != nil {
			return nil, err
		}
		log.Debug().Msgf("Saved image to '%s'", filename)

		dname, fname := filepath.Split(filename)
		relPath := filepath.Join(filepath.Base(dname), fname)
		frames = append(frames, FrameParams{
			FilePath:        filepath.ToSlash(relPath),
			Time:            p.TimeLabel,
			TransformMatrix: cam.transformMatrix(),
		})
	}
	return frames, nil
}
