package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/softbody/ecs"
	"github.com/milk9111/softbody/physics"
	"golang.org/x/image/font/basicfont"
)

// TuningPanel is the Tab overlay with +/- buttons for each runtime knob.
type TuningPanel struct {
	ui     *ebitenui.UI
	world  *ecs.World
	labels []*widget.Text
	knobs  []physics.Knob
}

func NewTuningPanel(w *ecs.World) *TuningPanel {
	p := &TuningPanel{world: w, knobs: physics.Knobs()}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x90, B: 0xd2, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Tuning (Tab to close)", &face, white),
	))

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnHover}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(24, 18)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	for _, k := range p.knobs {
		knob := k
		row := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			)),
		)
		label := widget.NewText(
			widget.TextOpts.Text("", &face, white),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.MinSize(190, 18)),
		)
		row.AddChild(button("-", func() { p.nudge(knob, -1) }))
		row.AddChild(label)
		row.AddChild(button("+", func() { p.nudge(knob, 1) }))
		panel.AddChild(row)
		p.labels = append(p.labels, label)
	}

	panel.AddChild(button("defaults", func() {
		t := physics.DefaultTuning()
		t.PointRadius = p.world.Tuning().PointRadius
		p.world.UpdateTuning(t)
	}))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	p.ui = &ebitenui.UI{Container: root}
	p.refresh()
	return p
}

func (p *TuningPanel) nudge(k physics.Knob, steps int) {
	p.world.UpdateTuning(k.Nudge(p.world.Tuning(), steps))
	p.refresh()
}

// refresh rewrites the labels from the world's current tuning, which may
// also change through a file reload.
func (p *TuningPanel) refresh() {
	t := p.world.Tuning()
	for i, k := range p.knobs {
		p.labels[i].Label = fmt.Sprintf("%-16s %8.2f", k.Name, k.Get(t))
	}
}

func (p *TuningPanel) Update() {
	p.refresh()
	p.ui.Update()
}

func (p *TuningPanel) Draw(screen *ebiten.Image) {
	p.ui.Draw(screen)
}
