// Package banner renders short text as large block art using half-block
// characters.
package banner

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// fontPaths are bold sans faces tried before falling back to the built-in
// bitmap face.
var fontPaths = []string{
	// macOS
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	// Linux
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	// Windows
	"C:\\Windows\\Fonts\\arialbd.ttf",
}

var (
	faceOnce sync.Once
	face     font.Face

	mu    sync.Mutex
	cache = make(map[string]string)
)

// threshold is the brightness above which a half cell is drawn.
const threshold = 80

func loadFace() font.Face {
	faceOnce.Do(func() {
		face = basicfont.Face7x13
		for _, path := range fontPaths {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if f := parseFace(data); f != nil {
				face = f
				return
			}
		}
	})
	return face
}

func parseFace(data []byte) font.Face {
	opts := &opentype.FaceOptions{Size: 48, DPI: 72, Hinting: font.HintingFull}

	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			if f, err := opentype.NewFace(fnt, opts); err == nil {
				return f
			}
		}
	}
	if fnt, err := opentype.Parse(data); err == nil {
		if f, err := opentype.NewFace(fnt, opts); err == nil {
			return f
		}
	}
	return nil
}

// Rasterize draws text in white on black at the face's natural size.
func Rasterize(f font.Face, text string) *image.Gray {
	const pad = 2
	m := f.Metrics()
	width := font.MeasureString(f, text).Ceil() + pad*2
	height := (m.Ascent + m.Descent).Ceil() + pad*2

	img := image.NewGray(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: f,
		Dot:  fixed.P(pad, pad+m.Ascent.Ceil()),
	}
	d.DrawString(text)
	return img
}

// Render returns text as cols x rows terminal cells of half-block art.
func Render(text string, cols, rows int) string {
	if text == "" || cols <= 0 || rows <= 0 {
		return ""
	}

	key := fmt.Sprintf("%s\x00%d\x00%d", text, cols, rows)
	mu.Lock()
	defer mu.Unlock()
	if out, ok := cache[key]; ok {
		return out
	}

	src := Rasterize(loadFace(), text)
	dst := image.NewGray(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := HalfBlocks(dst)
	cache[key] = out
	return out
}

// HalfBlocks converts a grayscale image to half-block art, one terminal cell
// per two vertical pixels.
func HalfBlocks(img *image.Gray) string {
	b := img.Bounds()
	rows := (b.Dy() + 1) / 2

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := lit(img, x, b.Min.Y+row*2)
			bottom := lit(img, x, b.Min.Y+row*2+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		if row < rows-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

func lit(img *image.Gray, x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return false
	}
	return img.GrayAt(x, y).Y > threshold
}
