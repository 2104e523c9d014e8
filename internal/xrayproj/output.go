package xrayproj

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
)

// FrameParams is one image entry in the transforms file.
type FrameParams struct {
	FilePath        string      `json:"file_path"`
	Time            float64     `json:"time"`
	TransformMatrix [][]float64 `json:"transform_matrix"`
}

// TransformParams is the camera metadata written next to the rendered
// images, in the layout NeRF-style pipelines expect.
type TransformParams struct {
	CameraAngle float64       `json:"camera_angle_x"`
	FLX         float64       `json:"fl_x"`
	FLY         float64       `json:"fl_y"`
	W           int           `json:"w"`
	H           int           `json:"h"`
	CX          float64       `json:"cx"`
	CY          float64       `json:"cy"`
	Frames      []FrameParams `json:"frames"`
}

func newTransformParams(p *RenderParams, frames []FrameParams) TransformParams {
	resF := float64(p.Resolution)
	f := 1 / math.Tan(mgl64.DegToRad(p.FOV/2))
	return TransformParams{
		CameraAngle: p.FOV * math.Pi / 180.0,
		FLX:         f * resF / 2.0,
		FLY:         f * resF / 2.0,
		W:           p.Resolution,
		H:           p.Resolution,
		CX:          resF / 2.0,
		CY:          resF / 2.0,
		Frames:      frames,
	}
}

// writePNG saves the transmittance buffer as a 16-bit PNG. Values are
// clipped to [0,1] and the vertical axis is flipped so scene +Z points
// up in the image. With transparency set, pixels at full transmittance
// (the ray hit nothing) get zero alpha.
func writePNG(path string, buf []Real, res int, transparency bool) error {
	img := image.NewNRGBA64(image.Rect(0, 0, res, res))
	for i := 0; i < res; i++ {
		for j := 0; j < res; j++ {
			val := buf[i*res+j]
			if val < 0 {
				val = 0
			} else if val > 1 {
				val = 1
			}
			v := uint16(val * 0xffff)
			alpha := uint16(0xffff)
			if transparency && val >= 1.0 {
				alpha = 0
			}
			idx := img.PixOffset(i, res-j-1)
			img.Pix[idx+0] = uint8(v >> 8)
			img.Pix[idx+1] = uint8(v)
			img.Pix[idx+2] = uint8(v >> 8)
			img.Pix[idx+3] = uint8(v)
			img.Pix[idx+4] = uint8(v >> 8)
			img.Pix[idx+5] = uint8(v)
			img.Pix[idx+6] = uint8(alpha >> 8)
			img.Pix[idx+7] = uint8(alpha)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrIO, path, err)
	}
	return nil
}

func writeTransforms(path string, tp TransformParams) error {
	data, err := json.MarshalIndent(tp, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal transforms: %v", ErrIO, err)
	}
	log.Info().Msgf("Writing transform parameters to '%s'", path)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// writeObjectEcho writes the parsed object back as JSON into the
// parent of the output directory, so downstream tooling sees the scene
// exactly as the renderer understood it.
func writeObjectEcho(outputDir string, obj Object) error {
	data, err := json.MarshalIndent(obj.ToMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal object: %v", ErrIO, err)
	}
	path := filepath.Join(filepath.Dir(outputDir), "object.json")
	log.Info().Msgf("Writing object to '%s'", filepath.ToSlash(path))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
