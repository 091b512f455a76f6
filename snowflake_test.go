package evergreen

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateSnowflakeBitmap(t *testing.T) {
	img := GenerateSnowflakeBitmap(64)
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("bounds = %v, want 64x64", b)
	}
	if a := img.NRGBAAt(32, 32).A; a < 200 {
		t.Errorf("center alpha = %d, want opaque stroke", a)
	}
	if a := img.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want transparent", a)
	}
	// The six arms reach up and down along the Y axis.
	if a := img.NRGBAAt(32, 12).A; a < 100 {
		t.Errorf("arm alpha above center = %d, want a stroke", a)
	}
	if a := img.NRGBAAt(32, 52).A; a < 100 {
		t.Errorf("arm alpha below center = %d, want a stroke", a)
	}
}

func TestGenerateSnowflakeDeterministic(t *testing.T) {
	a := GenerateSnowflakeBitmap(48)
	b := GenerateSnowflakeBitmap(48)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("snowflake bitmap should depend only on its size")
	}
}

func TestGenerateSnowflakeZeroSize(t *testing.T) {
	if b := GenerateSnowflakeBitmap(0).Bounds(); !b.Empty() {
		t.Errorf("size 0 bounds = %v, want empty", b)
	}
}

func TestWriteSnowflakePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flake.png")
	if err := WriteSnowflakePNG(path, 32); err != nil {
		t.Fatalf("WriteSnowflakePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("decoded bounds = %v, want 32x32", b)
	}
}

func TestWriteSnowflakePNGTooSmall(t *testing.T) {
	err := WriteSnowflakePNG(filepath.Join(t.TempDir(), "x.png"), 4)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}
