package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/closer/internal/flow"
	"github.com/f3rmion/closer/internal/geo"
	"github.com/mattn/go-runewidth"
)

// Marker glyphs. The person glyphs are double width on most terminals.
const (
	glyphGF    = "👩"
	glyphME    = "👨"
	glyphCryME = "😢"
	glyphHeart = "♥"
	glyphGrid  = "·"
	glyphPlace = "✦"
)

var placeNames = map[flow.Place]string{
	flow.PlaceConnecticut: "Connecticut",
	flow.PlaceNepal:       "Nepal",
	flow.PlaceAlaska:      "Alaska",
}

// ink selects the style of a canvas cell.
type ink int

const (
	inkBlank ink = iota
	inkGrid
	inkLabel
	inkHeart
	inkTear
	inkGF
	inkME
)

func (k ink) style() lipgloss.Style {
	switch k {
	case inkGrid:
		return MapGridStyle
	case inkLabel:
		return MapLabelStyle
	case inkHeart:
		return HeartStyle
	case inkTear:
		return TearStyle
	case inkGF:
		return GFMarkerStyle
	case inkME:
		return MEMarkerStyle
	}
	return lipgloss.NewStyle()
}

type cell struct {
	r    rune
	ink  ink
	tail bool // right half of a wide rune
}

// canvas is a fixed grid of terminal cells that understands wide runes.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

// at maps a plane point to a cell, clamped to the canvas.
func (c *canvas) at(p geo.PlanePoint) (int, int) {
	x := int(p.X/100*float64(c.w-1) + 0.5)
	y := int(p.Y/100*float64(c.h-1) + 0.5)
	return clamp(x, 0, c.w-1), clamp(y, 0, c.h-1)
}

// put writes s starting at (x, y). Runes that would cross the right edge are
// dropped. It returns the column after the last rune written.
func (c *canvas) put(x, y int, s string, k ink) int {
	if y < 0 || y >= c.h {
		return x
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x < 0 || x+w > c.w {
			return x
		}
		c.clear(x, y)
		c.cells[y*c.w+x] = cell{r: r, ink: k}
		if w == 2 {
			c.clear(x+1, y)
			c.cells[y*c.w+x+1] = cell{ink: k, tail: true}
		}
		x += w
	}
	return x
}

// clear blanks the cell at (x, y) along with the other half of any wide rune
// it belongs to.
func (c *canvas) clear(x, y int) {
	i := y*c.w + x
	cur := c.cells[i]
	if cur.tail && x > 0 {
		c.cells[i-1] = cell{r: ' '}
	}
	if !cur.tail && runewidth.RuneWidth(cur.r) == 2 && x+1 < c.w {
		c.cells[i+1] = cell{r: ' '}
	}
	c.cells[i] = cell{r: ' '}
}

// Plain returns the canvas without styling.
func (c *canvas) Plain() string {
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			if cl := c.cells[y*c.w+x]; !cl.tail {
				sb.WriteRune(cl.r)
			}
		}
		if y < c.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Render returns the canvas with each run of same-ink cells styled once.
func (c *canvas) Render() string {
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		var run strings.Builder
		cur := inkBlank
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == inkBlank {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(cur.style().Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.tail {
				continue
			}
			if cl.ink != cur {
				flush()
				cur = cl.ink
			}
			run.WriteRune(cl.r)
		}
		flush()
		if y < c.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// drawMap lays out the grid, place labels, overlays and both markers.
func drawMap(b *board, w, h int) *canvas {
	c := newCanvas(w, h)
	if w <= 0 || h <= 0 {
		return c
	}

	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x += 4 {
			c.put(x, y, glyphGrid, inkGrid)
		}
	}

	for _, p := range []flow.Place{flow.PlaceConnecticut, flow.PlaceNepal, flow.PlaceAlaska} {
		pt, ok := b.labels[p]
		if !ok {
			continue
		}
		x, y := c.at(pt)
		label := glyphPlace + " " + placeNames[p]
		// keep labels inside the right edge
		if lw := runewidth.StringWidth(label); x+lw > w {
			x = max(w-lw, 0)
		}
		c.put(x, y, label, inkLabel)
	}

	gx, gy := c.at(b.gf)
	mx, my := c.at(b.me)

	if b.modes[flow.ModeHearts] {
		for _, d := range [][2]int{{-3, -1}, {3, -1}, {-5, 0}, {6, 0}, {-2, 1}, {4, 1}} {
			c.put(gx+d[0], gy+d[1], glyphHeart, inkHeart)
		}
	}

	meGlyph, meInk := glyphME, inkME
	if b.modes[flow.ModeCry] {
		meGlyph = glyphCryME
		c.put(mx, my+1, "💧", inkTear)
	}

	// Markers on the same spot sit side by side instead of overlapping.
	gw := runewidth.StringWidth(glyphGF)
	if my == gy && mx < gx+gw && mx+runewidth.StringWidth(meGlyph) > gx {
		mx = gx + gw
		if mx+runewidth.StringWidth(meGlyph) > w {
			gx = max(w-gw-runewidth.StringWidth(meGlyph), 0)
			mx = gx + gw
		}
	}
	c.put(gx, gy, glyphGF, inkGF)
	c.put(mx, my, meGlyph, meInk)
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
