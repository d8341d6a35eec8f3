package heatmap

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNewPixmap(t *testing.T) {
	pm := NewPixmap(4, 3)
	if pm.Width() != 4 || pm.Height() != 3 {
		t.Errorf("size = %dx%d, want 4x3", pm.Width(), pm.Height())
	}
	if len(pm.Data()) != 4*3*4 {
		t.Errorf("len(Data()) = %d, want %d", len(pm.Data()), 4*3*4)
	}
	for _, v := range pm.Data() {
		if v != 0 {
			t.Fatal("new pixmap is not transparent")
		}
	}
}

func TestNewPixmapFromData(t *testing.T) {
	data := make([]uint8, 2*2*4)
	pm, err := NewPixmapFromData(2, 2, data)
	if err != nil {
		t.Fatalf("NewPixmapFromData: %v", err)
	}
	pm.SetPixel(1, 1, color.NRGBA{1, 2, 3, 4})
	if data[12] != 1 || data[15] != 4 {
		t.Error("pixmap does not share the caller's buffer")
	}

	for _, tc := range []struct{ w, h, n int }{{2, 2, 15}, {2, 2, 17}, {-1, 2, 0}, {3, 1, 8}} {
		_, err := NewPixmapFromData(tc.w, tc.h, make([]uint8, tc.n))
		if !errors.Is(err, ErrInvalidBuffer) {
			t.Errorf("NewPixmapFromData(%d, %d, len %d) = %v, want ErrInvalidBuffer", tc.w, tc.h, tc.n, err)
		}
	}
}

func TestPixmap_SetGetPixel(t *testing.T) {
	pm := NewPixmap(3, 3)
	c := color.NRGBA{10, 20, 30, 40}
	pm.SetPixel(2, 1, c)

	if got := pm.GetPixel(2, 1); got != c {
		t.Errorf("GetPixel = %v, want %v", got, c)
	}
	if got := pm.At(2, 1); got != c {
		t.Errorf("At = %v, want %v", got, c)
	}

	// Out of bounds is ignored.
	pm.SetPixel(-1, 0, c)
	pm.SetPixel(3, 0, c)
	if got := pm.GetPixel(5, 5); got != (color.NRGBA{}) {
		t.Errorf("out of bounds GetPixel = %v, want zero", got)
	}
}

func TestPixmap_ToImageShares(t *testing.T) {
	pm := NewPixmap(2, 2)
	img := pm.ToImage()
	img.SetNRGBA(0, 1, color.NRGBA{9, 8, 7, 6})
	if got := pm.GetPixel(0, 1); got != (color.NRGBA{9, 8, 7, 6}) {
		t.Errorf("pixmap did not see image write, got %v", got)
	}
	if img.Bounds() != pm.Bounds() {
		t.Errorf("bounds %v != %v", img.Bounds(), pm.Bounds())
	}
}

func TestFromImage_NRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 128})

	pm := FromImage(src)
	if got := pm.GetPixel(1, 0); got != (color.NRGBA{0, 0, 0, 128}) {
		t.Errorf("GetPixel = %v", got)
	}

	// A copy, not a view.
	src.SetNRGBA(1, 0, color.NRGBA{})
	if pm.GetPixel(1, 0).A != 128 {
		t.Error("FromImage aliases the source image")
	}
}

func TestFromImage_OffsetRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 13, 12))
	src.SetRGBA(12, 11, color.RGBA{0, 0, 0, 200})

	pm := FromImage(src)
	if pm.Width() != 3 || pm.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", pm.Width(), pm.Height())
	}
	if got := pm.GetPixel(2, 1); got.A != 200 {
		t.Errorf("alpha = %d, want 200", got.A)
	}
}

func TestIntensityFromGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 1))
	src.SetGray(0, 0, color.Gray{0})
	src.SetGray(1, 0, color.Gray{128})
	src.SetGray(2, 0, color.Gray{255})

	pm := IntensityFromGray(src)
	want := []uint8{0, 128, 255}
	for x, a := range want {
		got := pm.GetPixel(x, 0)
		if got != (color.NRGBA{0, 0, 0, a}) {
			t.Errorf("pixel %d = %v, want alpha %d", x, got, a)
		}
	}
}

func TestPixmap_Colorize(t *testing.T) {
	pm := NewPixmap(2, 1)
	pm.SetPixel(0, 0, color.NRGBA{0, 0, 0, 255})
	table := mustBuild(t, []ColorStop{{0, Black}, {1, Red}})

	if err := pm.Colorize(table); err != nil {
		t.Fatalf("Colorize: %v", err)
	}
	if got := pm.GetPixel(0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel 0 = %v, want red", got)
	}
	if got := pm.GetPixel(1, 0); got != (color.NRGBA{}) {
		t.Errorf("transparent pixel = %v, want untouched", got)
	}
}

func TestPixmap_SavePNG(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.SetPixel(1, 0, color.NRGBA{255, 0, 0, 128})

	path := filepath.Join(t.TempDir(), "tile.png")
	if err := pm.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
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
	got := color.NRGBAModel.Convert(img.At(1, 0)).(color.NRGBA)
	if got != (color.NRGBA{255, 0, 0, 128}) {
		t.Errorf("decoded pixel = %v, want (255,0,0,128)", got)
	}
}

func TestPixmap_SavePNGError(t *testing.T) {
	pm := NewPixmap(1, 1)
	if err := pm.SavePNG(filepath.Join(t.TempDir(), "missing", "tile.png")); err == nil {
		t.Error("expected error for missing directory")
	}
}
