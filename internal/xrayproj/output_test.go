package xrayproj

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func decodePNG(t *testing.T, path string) *image.NRGBA64 {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	nrgba, ok := img.(*image.NRGBA64)
	if !ok {
		t.Fatalf("want 16-bit NRGBA, got %T", img)
	}
	return nrgba
}

func TestWritePNGOrientation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	// buf[i*res+j], j growing upward in the scene
	buf := []Real{0, 0.25, 0.5, 0.75}
	if err := writePNG(path, buf, 2, false); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	img := decodePNG(t, path)
	// the j axis is flipped, row 0 of the file is the top of the scene
	cases := []struct {
		x, y int
		want uint16
	}{
		{0, 1, 0},
		{0, 0, 16383},
		{1, 1, 32767},
		{1, 0, 49151},
	}
	for _, tc := range cases {
		px := img.NRGBA64At(tc.x, tc.y)
		if px.R != tc.want || px.G != tc.want || px.B != tc.want {
			t.Fatalf("pixel (%d,%d) wrong: %v, want %d", tc.x, tc.y, px, tc.want)
		}
		if px.A != 0xffff {
			t.Fatalf("pixel (%d,%d) must be opaque: %v", tc.x, tc.y, px)
		}
	}
}

func TestWritePNGClipping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	buf := []Real{-0.5, 1.5, 0.5, 1.0}
	if err := writePNG(path, buf, 2, true); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	img := decodePNG(t, path)
	if px := img.NRGBA64At(0, 1); px.R != 0 || px.A != 0xffff {
		t.Fatalf("negative value must clip to opaque black: %v", px)
	}
	// clipped and exactly saturated rays hit nothing, they drop out
	if px := img.NRGBA64At(0, 0); px.R != 0xffff || px.A != 0 {
		t.Fatalf("value above one must clip to transparent white: %v", px)
	}
	if px := img.NRGBA64At(1, 0); px.A != 0 {
		t.Fatalf("val 1.0 must be transparent: %v", px)
	}
	if px := img.NRGBA64At(1, 1); px.R != 32767 || px.A != 0xffff {
		t.Fatalf("interior value must stay opaque: %v", px)
	}
}

func TestWritePNGBadPath(t *testing.T) {
	err := writePNG(filepath.Join(t.TempDir(), "no", "such", "dir.png"), []Real{0}, 1, false)
	if err == nil {
		t.Fatal("unwritable path must fail")
	}
}
