package system

import (
	"github.com/milk9111/softbody/ecs"
	"github.com/milk9111/softbody/physics"
)

// SpringSystem resets forces, applies gravity and the spring-damper network of
// every body, then caps point speed.
type SpringSystem struct{}

func NewSpringSystem() *SpringSystem {
	return &SpringSystem{}
}

func (s *SpringSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	tuning := w.Tuning()
	for _, b := range w.Bodies() {
		physics.SolveSprings(b.Points, b.Springs, tuning)
	}
}

// GroundSystem lifts bodies out of the floor and records their on-ground flag,
// raising a ground event whenever the flag flips.
type GroundSystem struct{}

func NewGroundSystem() *GroundSystem {
	return &GroundSystem{}
}

func (s *GroundSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	radius := w.Tuning().PointRadius
	floor := w.FloorY()
	for _, b := range w.Bodies() {
		was := b.OnGround
		b.OnGround = physics.ResolveGround(b.Points, floor, radius)
		switch {
		case b.OnGround && !was:
			w.Events().Push(ecs.GroundEvent{Body: b.Name, Kind: ecs.GroundEventLanded, Tick: w.Ticks()})
		case !b.OnGround && was:
			w.Events().Push(ecs.GroundEvent{Body: b.Name, Kind: ecs.GroundEventLeft, Tick: w.Ticks()})
		}
	}
}

// IntegrateSystem advances every point by the tick's dt.
type IntegrateSystem struct{}

func NewIntegrateSystem() *IntegrateSystem {
	return &IntegrateSystem{}
}

func (s *IntegrateSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DeltaTime()
	for _, b := range w.Bodies() {
		for _, p := range b.Points {
			p.Integrate(dt)
		}
	}
}
