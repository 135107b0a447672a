package levels

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/softbody/common"
	"github.com/milk9111/softbody/ecs"
	"github.com/milk9111/softbody/physics"
)

const (
	CompleteHint    = "Level Complete! Press Enter to continue."
	AllCompleteHint = "All levels complete! Thanks for playing."

	// titleScatter is the half-width of the random offset applied on the
	// title screen.
	titleScatter = 150.0
)

// UI receives hint text from levels.
type UI interface {
	ShowHint(text string)
	ClearHint()
}

// Manager walks the level order, registering each level's bodies with the
// world and running its per-tick logic.
type Manager struct {
	world *ecs.World
	ui    UI
	order []string
	rng   *rand.Rand

	idx      int
	current  *Session
	finished bool

	keys      physics.Keys
	landed    map[string]bool
	prevEnter bool
	pending   bool
}

func NewManager(w *ecs.World, ui UI, order []string, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Manager{
		world: w,
		ui:    ui,
		order: append([]string(nil), order...),
		rng:   rng,
	}
}

// Start skips ahead to name and loads it.
func (m *Manager) Start(name string) error {
	if name == "" {
		_, err := m.LoadNext()
		return err
	}
	for i, n := range m.order {
		if n == name {
			m.idx = i
			_, err := m.LoadNext()
			return err
		}
	}
	return fmt.Errorf("levels: start %s: %w", name, ErrUnknownLevel)
}

// LoadNext tears down the current level and loads the next one. It reports
// false once every level has been played.
func (m *Manager) LoadNext() (bool, error) {
	if m == nil {
		return false, nil
	}
	m.unload()

	if m.idx >= len(m.order) {
		m.finished = true
		m.world.SetTitleScreen(false)
		m.showHint(AllCompleteHint)
		log.Printf("levels: all %d levels complete", len(m.order))
		return false, nil
	}

	name := m.order[m.idx]
	m.idx++

	lvl, err := LoadLevelFromFS(name)
	if err != nil {
		return true, fmt.Errorf("levels: load %s: %w", name, err)
	}
	s, err := m.start(lvl)
	if err != nil {
		return true, fmt.Errorf("levels: start %s: %w", name, err)
	}
	m.current = s
	log.Printf("levels: loaded %s (%s)", lvl.Name, lvl.Kind)
	return true, nil
}

func (m *Manager) unload() {
	if m.current == nil {
		return
	}
	m.current.cleanup()
	for _, name := range m.current.bodies {
		m.world.Unregister(name)
	}
	m.current = nil
	m.pending = false
	if m.ui != nil {
		m.ui.ClearHint()
	}
}

func (m *Manager) start(lvl *Level) (*Session, error) {
	s := &Session{Level: lvl, manager: m}
	gravity := m.world.Tuning().Gravity
	for _, spec := range lvl.Bodies {
		b, err := m.world.Register(spec.Name, spec.BuildPoints(gravity))
		if err != nil {
			for _, name := range s.bodies {
				m.world.Unregister(name)
			}
			return nil, err
		}
		b.Controllable = spec.Controllable
		for _, brace := range spec.Braces {
			if err := b.AddBrace(brace[0], brace[1]); err != nil {
				log.Printf("levels: %s: %v", lvl.Name, err)
			}
		}
		s.bodies = append(s.bodies, spec.Name)
	}
	if player, ok := lvl.Player(); ok {
		s.player = player.Name
	}

	m.world.SetTitleScreen(lvl.Kind == KindTitle)
	if err := s.init(); err != nil {
		for _, name := range s.bodies {
			m.world.Unregister(name)
		}
		return nil, err
	}
	return s, nil
}

// Update runs the current level after the world has ticked.
func (m *Manager) Update(dt float64, keys physics.Keys) {
	if m == nil {
		return
	}
	m.keys = keys
	m.landed = map[string]bool{}
	for _, ev := range m.world.Events().Peek() {
		if ev.Kind == ecs.GroundEventLanded {
			m.landed[ev.Body] = true
		}
	}
	enter := keys.Held(physics.KeyEnter)
	pressed := enter && !m.prevEnter
	m.prevEnter = enter

	if m.current == nil {
		return
	}

	switch {
	case m.current.Level.Kind == KindTitle && pressed:
		m.complete()
	case m.current.done && pressed:
		m.pending = true
	default:
		m.current.update(dt)
	}

	if m.pending {
		m.pending = false
		if _, err := m.LoadNext(); err != nil {
			log.Printf("%v", err)
		}
	}
}

func (m *Manager) complete() {
	if m.current == nil || m.current.done {
		return
	}
	m.current.done = true
	if m.current.Level.Kind == KindTitle {
		m.pending = true
		return
	}
	m.showHint(CompleteHint)
}

func (m *Manager) showHint(text string) {
	if m.ui != nil {
		m.ui.ShowHint(text)
	}
}

// IsTitleScreen reports whether the title screen is showing.
func (m *Manager) IsTitleScreen() bool {
	return m != nil && m.current != nil && m.current.Level.Kind == KindTitle
}

// AwaitingEnter reports whether the next Enter press advances the level.
func (m *Manager) AwaitingEnter() bool {
	if m == nil || m.current == nil {
		return false
	}
	return m.current.Level.Kind == KindTitle || m.current.done
}

func (m *Manager) Current() *Session {
	if m == nil {
		return nil
	}
	return m.current
}

// Finished reports whether every level has been played.
func (m *Manager) Finished() bool {
	return m != nil && m.finished
}

// Session is the live state of one loaded level.
type Session struct {
	Level *Level

	manager *Manager
	bodies  []string
	player  string
	done    bool

	// title screen
	saved map[string][]cp.Vector

	// displacement
	targetIndex   int
	reached       []bool
	startPos      cp.Vector
	startedMoving bool

	script *Script
}

func (s *Session) init() error {
	m := s.manager
	m.showHint(s.Level.Hint)

	switch s.Level.Kind {
	case KindTitle:
		s.scatter()
	case KindDisplacement:
		s.reached = make([]bool, len(s.Level.Targets))
		if c, ok := s.center(s.player); ok {
			s.startPos = c
		}
	case KindScript:
		script, err := LoadScript(s.Level.Script)
		if err != nil {
			return err
		}
		s.script = script
	}
	return nil
}

// scatter places every body around the canvas centre with a random offset,
// remembering where each point started. The scattered layout becomes the
// reset position.
func (s *Session) scatter() {
	w := s.manager.world
	rng := s.manager.rng
	mid := cp.Vector{X: common.BaseWidth / 2, Y: common.BaseHeight / 2}
	s.saved = map[string][]cp.Vector{}
	for _, name := range s.bodies {
		b, ok := w.Body(name)
		if !ok {
			continue
		}
		s.saved[name] = physics.PositionsOf(b.Points)
		c := b.Centroid()
		offset := cp.Vector{
			X: mid.X - c.X + (rng.Float64()*2*titleScatter - titleScatter),
			Y: mid.Y - c.Y + (rng.Float64()*2*titleScatter - titleScatter),
		}
		physics.Translate(b.Points, offset)
		for _, p := range b.Points {
			p.Vel = cp.Vector{}
		}
		b.Sync()
		b.Recapture()
	}
}

func (s *Session) cleanup() {
	if s.Level.Kind != KindTitle {
		return
	}
	w := s.manager.world
	for name, positions := range s.saved {
		b, ok := w.Body(name)
		if !ok {
			continue
		}
		for i, p := range b.Points {
			if i >= len(positions) {
				break
			}
			p.Pos = positions[i]
			p.Vel = cp.Vector{}
		}
		b.Sync()
		b.Recapture()
	}
}

func (s *Session) update(dt float64) {
	if s.done {
		return
	}
	switch s.Level.Kind {
	case KindDisplacement:
		s.updateDisplacement()
	case KindScript:
		if s.script == nil {
			return
		}
		if err := s.script.Update(s.manager, dt); err != nil {
			log.Printf("%v", err)
			s.script = nil
		}
	}
}

func (s *Session) updateDisplacement() {
	keys := s.manager.keys
	if !s.startedMoving && keys.Steering() {
		s.startedMoving = true
	}
	if s.targetIndex >= len(s.Level.Targets) || s.reached[s.targetIndex] {
		return
	}
	c, ok := s.center(s.player)
	if !ok {
		return
	}
	target := s.Level.Targets[s.targetIndex]
	tp := cp.Vector{X: target.X, Y: target.Y}
	if c.Sub(tp).Length() >= s.Level.ReachRadius {
		return
	}

	s.reached[s.targetIndex] = true
	s.startPos = tp
	if target.Hint != "" {
		s.manager.showHint(target.Hint)
	}
	s.targetIndex++
	if s.targetIndex >= len(s.Level.Targets) {
		s.manager.complete()
	}
}

func (s *Session) center(name string) (cp.Vector, bool) {
	b, ok := s.manager.world.Body(name)
	if !ok {
		return cp.Vector{}, false
	}
	return b.Centroid(), true
}

// Done reports whether the level's goal was met.
func (s *Session) Done() bool { return s != nil && s.done }

// Player returns the name of the controlled body.
func (s *Session) Player() string { return s.player }

// TargetIndex returns the index of the target being approached.
func (s *Session) TargetIndex() int { return s.targetIndex }

// StartPos is where the displacement arrow starts: the body's starting centre
// or the last target reached.
func (s *Session) StartPos() cp.Vector { return s.startPos }

// StartedMoving reports whether the player has steered since the level began.
func (s *Session) StartedMoving() bool { return s.startedMoving }

// Script returns the level script, or nil.
func (s *Session) Script() *Script { return s.script }

// Manager implements Host for level scripts.

func (m *Manager) Center(body string) (cp.Vector, bool) {
	b, ok := m.world.Body(body)
	if !ok {
		return cp.Vector{}, false
	}
	return b.Centroid(), true
}

func (m *Manager) OnGround(body string) bool {
	b, ok := m.world.Body(body)
	return ok && b.OnGround
}

// Landed reports whether body touched down during the last tick.
func (m *Manager) Landed(body string) bool {
	return m.landed[body]
}

func (m *Manager) KeyHeld(key string) bool {
	return m.keys.Held(key)
}

func (m *Manager) ShowHint(text string) {
	m.showHint(text)
}

func (m *Manager) Complete() {
	m.complete()
}

func (m *Manager) SetScriptedImpulse(y float64) {
	m.world.Controller().SetScriptedImpulse(y)
}
