package xrayproj

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestVoxelGridTrilinear(t *testing.T) {
	v := &VoxelGrid{
		Rho: []Real{0, 1, 2, 3, 4, 5, 6, 7},
		NX:  2, NY: 2, NZ: 2,
	}
	// corners hit the stored values exactly
	if d := v.Density(-1, -1, -1); d != 0 {
		t.Fatalf("corner 000 wrong: %v", d)
	}
	if d := v.Density(1, 1, 1); d != 7 {
		t.Fatalf("corner 111 wrong: %v", d)
	}
	if d := v.Density(1, -1, -1); d != 1 {
		t.Fatalf("corner 100 wrong: %v", d)
	}
	// center interpolates to the mean of all eight
	if d := v.Density(0, 0, 0); math.Abs(d-3.5) > 1e-12 {
		t.Fatalf("center wrong: %v", d)
	}
	// outside the cube
	if d := v.Density(1.5, 0, 0); d != 0 {
		t.Fatalf("outside wrong: %v", d)
	}
	if got := v.MinFeatureSize(); got != 1.0 {
		t.Fatalf("feature size wrong: %v", got)
	}
}

func TestVoxelGridInlineFromMap(t *testing.T) {
	obj, err := NewObject(map[string]any{
		"type": "voxel_grid",
		"nx":   2, "ny": 1, "nz": 1,
		"rho": []any{0.25, 0.75},
	})
	if err != nil {
		t.Fatalf("inline grid failed: %v", err)
	}
	vg := obj.(*VoxelGrid)
	if vg.NX != 2 || vg.NY != 1 || vg.NZ != 1 {
		t.Fatalf("dims wrong: %v", vg)
	}
	_, err = NewObject(map[string]any{
		"type": "voxel_grid",
		"nx":   2, "ny": 2, "nz": 2,
		"rho": []any{1.0},
	})
	if err == nil {
		t.Fatal("length mismatch must fail")
	}
}

func TestVoxelGridFromRawUint8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.raw")
	if err := os.WriteFile(path, []byte{0, 255, 128, 64, 32, 16, 8, 4}, 0644); err != nil {
		t.Fatal(err)
	}
	// resolution arrives as float64 when the scene file is JSON
	obj, err := NewObject(map[string]any{
		"type":       "voxel_grid",
		"path":       path,
		"resolution": []any{2.0, 2.0, 2.0},
	})
	if err != nil {
		t.Fatalf("raw load failed: %v", err)
	}
	vg := obj.(*VoxelGrid)
	if vg.Rho[0] != 0 || vg.Rho[1] != 1.0 {
		t.Fatalf("normalization wrong: %v %v", vg.Rho[0], vg.Rho[1])
	}
	if vg.Path != path {
		t.Fatalf("path not kept: %q", vg.Path)
	}
}

func TestVoxelGridFromRawUint16(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.raw")
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, 65535)
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}
	vg, err := VoxelGridFromRaw(path, [3]int{1, 1, 1}, "uint16")
	if err != nil {
		t.Fatalf("raw load failed: %v", err)
	}
	if vg.Rho[0] != 1.0 {
		t.Fatalf("uint16 normalization wrong: %v", vg.Rho[0])
	}
}

func TestVoxelGridFromRawUint32(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.raw")
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, 4294967295)
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}
	vg, err := VoxelGridFromRaw(path, [3]int{1, 1, 1}, "uint32")
	if err != nil {
		t.Fatalf("raw load failed: %v", err)
	}
	if vg.Rho[0] != 1.0 {
		t.Fatalf("uint32 normalization wrong: %v", vg.Rho[0])
	}
}

func TestVoxelGridFromRawFloat32(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.raw")
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(0.25))
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}
	vg, err := VoxelGridFromRaw(path, [3]int{1, 1, 1}, "float32")
	if err != nil {
		t.Fatalf("raw load failed: %v", err)
	}
	if vg.Rho[0] != 0.25 {
		t.Fatalf("float32 value wrong: %v", vg.Rho[0])
	}
}

func TestVoxelGridFromRawFloat64(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.raw")
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(0.625))
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}
	vg, err := VoxelGridFromRaw(path, [3]int{1, 1, 1}, "float64")
	if err != nil {
		t.Fatalf("raw load failed: %v", err)
	}
	if vg.Rho[0] != 0.625 {
		t.Fatalf("float64 value wrong: %v", vg.Rho[0])
	}
}

func TestVoxelGridFromRawErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.raw")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := VoxelGridFromRaw(path, [3]int{2, 2, 2}, "uint8"); err == nil {
		t.Fatal("size mismatch must fail")
	}
	if _, err := VoxelGridFromRaw(path, [3]int{1, 1, 3}, "int7"); err == nil {
		t.Fatal("unknown dtype must fail")
	}
	if _, err := VoxelGridFromRaw(filepath.Join(dir, "missing.raw"), [3]int{1, 1, 1}, "uint8"); err == nil {
		t.Fatal("missing file must fail")
	}
	_, err := NewObject(map[string]any{
		"type":       "voxel_grid",
		"path":       filepath.Join(dir, "grid.npy"),
		"resolution": []any{1, 1, 3},
	})
	if err == nil {
		t.Fatal("non-raw extension must fail")
	}
}
