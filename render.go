package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/softbody/common"
	"github.com/milk9111/softbody/ecs"
	"github.com/milk9111/softbody/prefabs"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var uiFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// Theme holds the draw colors, taken from the theme section of the tunables.
type Theme struct {
	Background color.Color
	Body       color.Color
	Point      color.Color
	Ground     color.Color
	Grid       color.Color
	Arrow      color.Color
}

func themeFrom(spec prefabs.ThemeSpec) Theme {
	return Theme{
		Background: spec.Background.Or(colornames.Black),
		Body:       spec.Body.Or(colornames.White),
		Point:      spec.Point.Or(colornames.White),
		Ground:     spec.Ground.Or(colornames.White),
		Grid:       spec.Grid.Or(color.NRGBA{R: 100, G: 100, B: 100, A: 51}),
		Arrow:      spec.Arrow.Or(colornames.Yellow),
	}
}

func drawWorld(screen *ebiten.Image, w *ecs.World, theme Theme) {
	floor := float32(w.FloorY())
	vector.StrokeLine(screen, 0, floor-1, common.BaseWidth, floor-1, 2, theme.Ground, true)

	r := float32(w.Tuning().PointRadius)
	for _, b := range w.Bodies() {
		drawBody(screen, b, r, theme)
	}
}

// drawBody draws the spring network from the body's position buffer, then a
// filled circle per point.
func drawBody(screen *ebiten.Image, b *ecs.Body, r float32, theme Theme) {
	pos := b.Positions
	for _, s := range b.Springs {
		if s.A >= pos.Len() || s.B >= pos.Len() {
			continue
		}
		a, c := pos.At(s.A), pos.At(s.B)
		width := float32(2)
		clr := theme.Body
		if s.CompressionScale > 1 {
			width = 1
			clr = theme.Grid
		}
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(c.X), float32(c.Y), width, clr, true)
	}
	for i := 0; i < pos.Len(); i++ {
		p := pos.At(i)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), r, theme.Point, true)
	}
}

// drawArrow draws a line from (sx, sy) to (ex, ey) with a two-stroke head.
func drawArrow(screen *ebiten.Image, sx, sy, ex, ey float64, clr color.Color) {
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(ex), float32(ey), 2, clr, true)
	const headLen = 10
	angle := math.Atan2(ey-sy, ex-sx)
	for _, side := range []float64{-math.Pi / 6, math.Pi / 6} {
		hx := ex - headLen*math.Cos(angle+side)
		hy := ey - headLen*math.Sin(angle+side)
		vector.StrokeLine(screen, float32(ex), float32(ey), float32(hx), float32(hy), 2, clr, true)
	}
}

// drawText draws s with its top-left at (x, y), or centred on x.
func drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color, centered bool) {
	op := &ebtext.DrawOptions{}
	op.LineSpacing = 18
	if centered {
		w, _ := ebtext.Measure(s, uiFace, op.LineSpacing)
		x -= w * scale / 2
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, uiFace, op)
}
