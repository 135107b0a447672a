package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/softbody/common"
	"github.com/milk9111/softbody/ecs"
	"github.com/milk9111/softbody/ecs/system"
	"github.com/milk9111/softbody/levels"
	"github.com/milk9111/softbody/obj"
	"github.com/milk9111/softbody/prefabs"
)

// diagnosticsEvery is how many ticks pass between body dumps in debug mode.
const diagnosticsEvery = 60

type Options struct {
	Level      string
	Debug      bool
	TuningPath string
}

type Game struct {
	frames int
	last   time.Time
	opts   Options

	input   *obj.Input
	world   *ecs.World
	levels  *levels.Manager
	hint    *HintBox
	panel   *TuningPanel
	watcher *prefabs.Watcher
	theme   Theme

	showPanel bool
}

func NewGame(opts Options) (*Game, error) {
	spec, err := loadTuning(opts.TuningPath)
	if err != nil {
		log.Printf("main: %v; using default tuning", err)
		spec = prefabs.DefaultTuningSpec()
	}

	var diagEvery uint64
	if opts.Debug {
		diagEvery = diagnosticsEvery
	}
	world := ecs.NewWorld(common.BaseHeight, spec.ToTuning())
	system.Install(world, diagEvery)

	g := &Game{
		opts:  opts,
		input: obj.NewInput(),
		world: world,
		hint:  NewHintBox(),
		theme: themeFrom(spec.Theme),
	}
	g.levels = levels.NewManager(world, g.hint, levels.Order, nil)
	g.panel = NewTuningPanel(world)
	g.watcher = newReloadWatcher(opts.TuningPath)

	if err := g.levels.Start(opts.Level); err != nil {
		return nil, err
	}
	return g, nil
}

func loadTuning(path string) (prefabs.TuningSpec, error) {
	if path != "" {
		return prefabs.LoadTuningFile(path)
	}
	return prefabs.LoadTuningSpec(prefabs.TuningFile)
}

func newReloadWatcher(tuningPath string) *prefabs.Watcher {
	dirs := prefabs.WatchDirs()
	if tuningPath != "" {
		dirs = append(dirs, filepath.Dir(tuningPath))
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("main: watch %s: %v", strings.Join(dirs, ", "), err)
		return nil
	}
	return w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	defer g.recoverFrame()

	g.frames++
	now := time.Now()
	var dt float64
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	g.input.Update()
	if g.input.Quit {
		return ebiten.Termination
	}
	if g.input.TogglePanel {
		g.showPanel = !g.showPanel
	}
	if g.showPanel {
		g.panel.Update()
	}
	g.applyReloads()

	g.hint.Update(now)
	// Enter belongs to the level while it is waiting to advance
	skip := g.input.Clicked || (g.input.EnterPressed && !g.levels.AwaitingEnter())
	if skip && g.hint.Typing() {
		g.hint.Skip()
	}

	g.world.Tick(dt, g.input.Keys)
	g.levels.Update(g.world.DeltaTime(), g.input.Keys)
	events := g.world.Events().Drain()
	if g.opts.Debug {
		for _, ev := range events {
			log.Printf("tick %d: %s %s", ev.Tick, ev.Body, ev.Kind)
		}
	}
	return nil
}

// recoverFrame keeps a panicking frame from taking the game down.
func (g *Game) recoverFrame() {
	r := recover()
	if r == nil {
		return
	}
	log.Printf("main: frame %d panic: %v", g.frames, r)
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("level", g.levelName())
		scope.SetTag("frame", fmt.Sprint(g.frames))
	})
	hub.Recover(r)
	hub.Flush(2 * time.Second)
}

func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("prefabs: watch: %v", err)
		}
	default:
	}
	for _, c := range g.watcher.Drain() {
		switch c.Kind {
		case prefabs.ChangeTuning:
			if g.opts.TuningPath != "" && filepath.Clean(c.Path) != filepath.Clean(g.opts.TuningPath) {
				continue
			}
			if g.opts.TuningPath == "" && filepath.Base(c.Path) != prefabs.TuningFile {
				continue
			}
			spec, err := loadTuning(g.opts.TuningPath)
			if err != nil {
				log.Printf("prefabs: reload %s: %v", c.Path, err)
				continue
			}
			g.world.UpdateTuning(spec.ToTuning())
			g.theme = themeFrom(spec.Theme)
			log.Printf("prefabs: reloaded %s", c.Path)
		case prefabs.ChangeScript:
			log.Printf("prefabs: %s changed; it applies on the next level load", c.Path)
		}
	}
}

func (g *Game) levelName() string {
	if s := g.levels.Current(); s != nil {
		return s.Level.Name
	}
	return ""
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.theme.Background)

	session := g.levels.Current()
	drawLevelBackdrop(screen, session, g.theme)
	drawWorld(screen, g.world, g.theme)
	drawLevelOverlay(screen, session, g.world, g.theme)
	g.hint.Draw(screen)

	if g.opts.Debug {
		g.drawDebug(screen)
	}
	if g.showPanel {
		g.panel.Draw(screen)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	lines := []string{fmt.Sprintf("Frames: %d    FPS: %.2f    ticks: %d", g.frames, ebiten.ActualFPS(), g.world.Ticks())}
	for _, b := range g.world.Bodies() {
		lines = append(lines, system.DescribeBody(b))
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 10, common.BaseHeight-20-16*len(lines))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
