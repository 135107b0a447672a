package ecs

import (
	"errors"
	"fmt"
	"math"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/milk9111/softbody/common"
	"github.com/milk9111/softbody/physics"
)

var (
	ErrBodyExists   = errors.New("ecs: body already registered")
	ErrBodyNotFound = errors.New("ecs: body not found")
	ErrTooFewPoints = errors.New("ecs: a body needs at least 2 points")
	ErrInvalidMass  = errors.New("ecs: point mass must be positive")
)

// World owns the registered bodies, the tunables, the movement controller and
// the system order. It is not safe for concurrent use; all mutation happens
// between ticks on the simulation goroutine.
type World struct {
	bodies    *orderedmap.OrderedMap[string, *Body]
	scheduler *Scheduler

	tuning     physics.Tuning
	controller physics.Controller

	floorY      float64
	titleScreen bool

	dt     float64
	keys   physics.Keys
	ticks  uint64
	events EventQueue
}

// NewWorld creates an empty world whose floor sits at floorY.
func NewWorld(floorY float64, tuning physics.Tuning) *World {
	return &World{
		bodies:    orderedmap.NewOrderedMap[string, *Body](),
		scheduler: NewScheduler(),
		tuning:    tuning,
		floorY:    floorY,
	}
}

// AddSystem appends a system to the tick order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Systems returns the tick order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return w.scheduler.Systems()
}

// Register adds a named body. Its ring springs and reset snapshot are taken
// from the points' current state.
func (w *World) Register(name string, points []*physics.PointMass) (*Body, error) {
	if w == nil {
		return nil, fmt.Errorf("ecs: register %s: nil world", name)
	}
	if _, ok := w.bodies.Get(name); ok {
		return nil, fmt.Errorf("ecs: register %s: %w", name, ErrBodyExists)
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("ecs: register %s: %w", name, ErrTooFewPoints)
	}
	for i, p := range points {
		if p == nil || !(p.Mass > 0) {
			return nil, fmt.Errorf("ecs: register %s point %d: %w", name, i, ErrInvalidMass)
		}
	}

	b := newBody(name, points)
	w.bodies.Set(name, b)
	return b, nil
}

// Unregister retires a body name. Registering the name again starts from a
// fresh topology and snapshot.
func (w *World) Unregister(name string) bool {
	if w == nil {
		return false
	}
	return w.bodies.Delete(name)
}

// Clear unregisters every body.
func (w *World) Clear() {
	if w == nil {
		return
	}
	for _, name := range w.Names() {
		w.bodies.Delete(name)
	}
}

// Body returns the body registered under name.
func (w *World) Body(name string) (*Body, bool) {
	if w == nil {
		return nil, false
	}
	return w.bodies.Get(name)
}

// Bodies returns every body in registration order.
func (w *World) Bodies() []*Body {
	if w == nil {
		return nil
	}
	out := make([]*Body, 0, w.bodies.Len())
	for el := w.bodies.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Names returns every body name in registration order.
func (w *World) Names() []string {
	if w == nil {
		return nil
	}
	out := make([]string, 0, w.bodies.Len())
	for el := w.bodies.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}

// FindPointIndex scans every body for p and returns its owner and index.
func (w *World) FindPointIndex(p *physics.PointMass) (string, int, bool) {
	if w == nil || p == nil {
		return "", -1, false
	}
	for el := w.bodies.Front(); el != nil; el = el.Next() {
		for i, q := range el.Value.Points {
			if q == p {
				return el.Key, i, true
			}
		}
	}
	return "", -1, false
}

// Reset restores a body to its registration snapshot.
func (w *World) Reset(name string) error {
	b, ok := w.Body(name)
	if !ok {
		return fmt.Errorf("ecs: reset %s: %w", name, ErrBodyNotFound)
	}
	b.Reset()
	return nil
}

// Tick advances every body by one step. dt is clamped to [0, common.MaxFrameDelta].
func (w *World) Tick(dt float64, keys physics.Keys) {
	if w == nil {
		return
	}
	w.dt = ClampDelta(dt)
	w.keys = keys
	w.events.flush()
	w.scheduler.Update(w)
	w.ticks++
}

// ClampDelta bounds a raw frame delta to the integrable range.
func ClampDelta(dt float64) float64 {
	if math.IsNaN(dt) {
		return 0
	}
	return common.Clamp(dt, 0, common.MaxFrameDelta)
}

// UpdateTuning replaces the tunables. The next tick reads the new values.
func (w *World) UpdateTuning(t physics.Tuning) {
	if w == nil {
		return
	}
	w.tuning = t
}

// Tuning returns the current tunables.
func (w *World) Tuning() physics.Tuning {
	if w == nil {
		return physics.DefaultTuning()
	}
	return w.tuning
}

// Controller returns the world's movement controller.
func (w *World) Controller() *physics.Controller {
	if w == nil {
		return nil
	}
	return &w.controller
}

func (w *World) FloorY() float64 {
	if w == nil {
		return 0
	}
	return w.floorY
}

func (w *World) SetFloorY(y float64) {
	if w == nil {
		return
	}
	w.floorY = y
}

// TitleScreen reports whether player control and friction are suspended.
func (w *World) TitleScreen() bool {
	if w == nil {
		return false
	}
	return w.titleScreen
}

func (w *World) SetTitleScreen(on bool) {
	if w == nil {
		return
	}
	w.titleScreen = on
}

// DeltaTime returns the clamped dt of the tick in progress.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Keys returns the key snapshot of the tick in progress.
func (w *World) Keys() physics.Keys {
	if w == nil {
		return nil
	}
	return w.keys
}

// Events returns the ground events raised by the last tick. The queue is
// cleared when the next tick starts.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Ticks returns how many ticks have completed.
func (w *World) Ticks() uint64 {
	if w == nil {
		return 0
	}
	return w.ticks
}
