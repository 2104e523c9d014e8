package xrayproj

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// buildVolume samples the scene, deformation and multiplier included,
// on a res^3 grid over the [-1,1]^3 cube. Layout matches the raw
// volume consumers: index z*res*res + x*res + y.
func buildVolume(scene *Scene, res int, textProgress bool) []Real {
	log.Info().Msg("Assembling volume grid")
	var wrt io.Writer = os.Stdout
	var bar *progressbar.ProgressBar
	if textProgress {
		io.WriteString(wrt, "[")
	} else {
		bar = progressbar.Default(int64(res))
	}
	slabStep := res / 50
	if slabStep < 1 {
		slabStep = 1
	}

	vol := make([]Real, res*res*res)
	workers := runtime.NumCPU()
	if workers > res {
		workers = res
	}
	chunk := (res + workers - 1) / workers
	var doneSlabs atomic.Int64
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
				x := Real(i)/Real(res)*2.0 - 1.0
				for j := 0; j < res; j++ {
					y := Real(j)/Real(res)*2.0 - 1.0
					for k := 0; k < res; k++ {
						z := Real(k)/Real(res)*2.0 - 1.0
						vol[k*res*res+i*res+j] = scene.Density(x, y, z)
					}
				}
				n := doneSlabs.Add(1)
				if textProgress {
					if n%int64(slabStep) == 0 {
						io.WriteString(wrt, "-")
					}
				} else {
					bar.Add(1)
				}
			}
		}(lo, hi)
	}
	wg.Wait()
	if textProgress {
		io.WriteString(wrt, "]\n")
	}
	return vol
}

// writeVolume normalizes the sampled densities to [0,255] and writes
// them as headerless bytes into the parent of the output directory.
func writeVolume(outputDir string, vol []Real) error {
	maxVal := 0.0
	for _, v := range vol {
		if v > maxVal {
			maxVal = v
		}
	}
	out := make([]byte, len(vol))
	if maxVal > 0 {
		for i, v := range vol {
			out[i] = byte(v / maxVal * 255)
		}
	}
	path := filepath.Join(filepath.Dir(outputDir), "volume.raw")
	log.Info().Msgf("Writing volume to '%s'", path)
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
