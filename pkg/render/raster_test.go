package render

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRenderPNG(t *testing.T) {
	s := testScene(t, map[string]string{"urllib3": "5.0 MB"})

	out, err := RenderPNG(s, 200)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("bounds = %dx%d, want 200x200", b.Dx(), b.Dy())
	}
}

func TestRenderPNGDefaultSize(t *testing.T) {
	// Small graph at zero size falls back to the default export size.
	out, err := RenderPNG(Scene{Project: "p"}, 0)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if got := img.Bounds().Dx(); got != DefaultPNGSize {
		t.Errorf("width = %d, want %d", got, DefaultPNGSize)
	}
}

func TestProjectorKeepsPointsInBounds(t *testing.T) {
	p := newProjector(1000)
	for _, c := range [][3]float64{
		{0, 0, 0}, {1, 1, 1}, {-1, -1, -1}, {1, -1, 1}, {-1, 1, 0},
	} {
		x, y, _ := p.point(c[0], c[1], c[2])
		if x < 0 || x > 1000 || y < 0 || y > 1000 {
			t.Errorf("point %v projected outside canvas: (%v, %v)", c, x, y)
		}
	}
}
