package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/softbody/common"
	"github.com/milk9111/softbody/ecs"
	"github.com/milk9111/softbody/levels"
	"golang.org/x/image/colornames"
)

const (
	gridStep   = 100
	targetSize = 20
)

// drawLevelBackdrop draws what sits behind the bodies.
func drawLevelBackdrop(screen *ebiten.Image, s *levels.Session, theme Theme) {
	if s == nil {
		return
	}
	if s.Level.Kind == levels.KindDisplacement {
		drawGrid(screen, theme)
	}
	for _, m := range s.Level.Markers {
		vector.StrokeLine(screen, float32(m.X1), float32(m.Y1), float32(m.X2), float32(m.Y2), 3, m.RGBA(), true)
		if m.Label != "" {
			drawText(screen, m.Label, m.X1+5, m.Y1-18, 1, m.RGBA(), false)
		}
	}
}

func drawGrid(screen *ebiten.Image, theme Theme) {
	label := color.NRGBA{R: 150, G: 150, B: 150, A: 128}
	for x := 0; x <= common.BaseWidth; x += gridStep {
		vector.StrokeLine(screen, float32(x), 0, float32(x), common.BaseHeight, 1, theme.Grid, false)
		drawText(screen, fmt.Sprint(x), float64(x)+5, 3, 1, label, false)
	}
	for y := 0; y <= common.BaseHeight; y += gridStep {
		vector.StrokeLine(screen, 0, float32(y), common.BaseWidth, float32(y), 1, theme.Grid, false)
		drawText(screen, fmt.Sprint(y), 5, float64(y)+3, 1, label, false)
	}
}

// drawLevelOverlay draws what sits in front of the bodies.
func drawLevelOverlay(screen *ebiten.Image, s *levels.Session, w *ecs.World, theme Theme) {
	if s == nil {
		return
	}
	switch s.Level.Kind {
	case levels.KindTitle:
		drawTitle(screen, s)
	case levels.KindDisplacement:
		drawTargets(screen, s, w, theme)
	case levels.KindScript:
		drawText(screen, s.Level.Title, 20, 20, 1.2, colornames.White, false)
	}
}

func drawTitle(screen *ebiten.Image, s *levels.Session) {
	mid := float64(common.BaseWidth) / 2
	drawText(screen, s.Level.Title, mid, 180, 3, colornames.White, true)
	drawText(screen, "A 2D Physics Simulation", mid, 240, 2, colornames.White, true)

	pulse := (math.Sin(float64(time.Now().UnixMilli())/300) + 1) / 2
	alpha := uint8(255 * common.Lerp(0.6, 1, float32(pulse)))
	drawText(screen, "Press Enter to start", mid, 340, 1.5, color.NRGBA{R: 255, G: 255, B: 255, A: alpha}, true)
	drawText(screen, "Controls: A/D or Left/Right to move, W to jump, R to reset, Tab for tuning", mid, 500, 1, colornames.White, true)
}

func drawTargets(screen *ebiten.Image, s *levels.Session, w *ecs.World, theme Theme) {
	targets := s.Level.Targets
	for i, t := range targets {
		var clr color.Color = t.RGBA()
		switch {
		case i < s.TargetIndex():
			clr = colornames.Gray
		case i > s.TargetIndex():
			c := t.RGBA()
			clr = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 128}
		}
		vector.FillRect(screen, float32(t.X-targetSize/2), float32(t.Y-targetSize/2), targetSize, targetSize, clr, false)
		drawText(screen, fmt.Sprintf("(%.0f, %.0f)", t.X, t.Y), t.X+15, t.Y-22, 1, colornames.White, false)
	}

	if !s.StartedMoving() {
		return
	}
	b, ok := w.Body(s.Player())
	if !ok {
		return
	}
	start := s.StartPos()
	end := b.Centroid()
	drawArrow(screen, start.X, start.Y, end.X, end.Y, theme.Arrow)

	d := end.Sub(start)
	drawText(screen, fmt.Sprintf("(%.0f, %.0f)", d.X, d.Y), start.X+d.X/2+5, start.Y+d.Y/2-18, 1.2, colornames.White, false)

	if !s.Done() && s.TargetIndex() < len(targets) {
		t := targets[s.TargetIndex()]
		drawText(screen, fmt.Sprintf("Target: %d/%d (%.0f, %.0f)", s.TargetIndex()+1, len(targets), t.X, t.Y), 20, 20, 1.2, colornames.White, false)
	}
}
