// Package fonts provides the typeface used for PNG rendering.
//
// The Go Regular font ships with golang.org/x/image, so the binary needs
// no external font files. Faces are cached per size because opentype
// face construction is comparatively expensive.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	parseOnce sync.Once
	parsed    *opentype.Font
	parseErr  error

	mu    sync.Mutex
	faces = map[float64]font.Face{}
)

// Face returns a font face at the given size in points. Faces are cached
// and shared; they must not be mutated by callers.
func Face(size float64) (font.Face, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
	})
	if parseErr != nil {
		return nil, parseErr
	}

	mu.Lock()
	defer mu.Unlock()
	if face, ok := faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	faces[size] = face
	return face, nil
}
