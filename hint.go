package main

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/softbody/common"
)

const (
	hintX          = 20
	hintY          = 50
	hintWidth      = common.BaseWidth - 2*hintX
	hintLineHeight = 18
	hintPadding    = 12
	hintMaxHeight  = 150
)

var (
	hintPanelColor  = color.NRGBA{R: 0, G: 0, B: 0, A: 204}
	hintBorderColor = color.NRGBA{R: 0x55, G: 0x90, B: 0xd2, A: 0xff}
)

// HintBox is the typewriter hint panel. It satisfies levels.UI.
type HintBox struct {
	tw *common.Typewriter
}

func NewHintBox() *HintBox {
	return &HintBox{tw: common.NewTypewriter(common.HintCharInterval, common.HintColumns)}
}

func (h *HintBox) ShowHint(text string) {
	h.tw.Show(text, time.Now())
}

func (h *HintBox) ClearHint() {
	h.tw.Clear()
}

func (h *HintBox) Update(now time.Time) {
	h.tw.Update(now)
}

func (h *HintBox) Typing() bool {
	return h.tw.Typing()
}

// Skip fast-forwards the reveal.
func (h *HintBox) Skip() {
	h.tw.Skip()
}

func (h *HintBox) Draw(screen *ebiten.Image) {
	if !h.tw.Active() {
		return
	}
	height := float32(h.tw.Lines()*hintLineHeight + 2*hintPadding)
	if height > hintMaxHeight {
		height = hintMaxHeight
	}
	vector.FillRect(screen, hintX, hintY, hintWidth, height, hintPanelColor, false)
	vector.StrokeRect(screen, hintX, hintY, hintWidth, height, 3, hintBorderColor, false)
	drawText(screen, h.tw.Text(), hintX+hintPadding, hintY+hintPadding-2, 1, color.White, false)

	if !h.tw.Typing() {
		drawText(screen, ">", hintX+hintWidth-20, float64(hintY)+float64(height)-hintPadding-14, 1, hintBorderColor, false)
	}
}
