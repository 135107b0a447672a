package system

import (
	"github.com/milk9111/softbody/ecs"
	"github.com/milk9111/softbody/physics"
)

// NormalForceSystem samples the per-point normal force of every body.
type NormalForceSystem struct{}

func NewNormalForceSystem() *NormalForceSystem {
	return &NormalForceSystem{}
}

func (s *NormalForceSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	g := w.Tuning().Gravity
	for _, b := range w.Bodies() {
		b.NormalForces = physics.FillNormalForces(b.NormalForces, b.Points, g)
	}
}

// FrictionSystem applies kinetic friction to grounded bodies using each body's
// first normal-force sample. It is idle on the title screen.
type FrictionSystem struct{}

func NewFrictionSystem() *FrictionSystem {
	return &FrictionSystem{}
}

func (s *FrictionSystem) Update(w *ecs.World) {
	if s == nil || w == nil || w.TitleScreen() {
		return
	}
	_, _, muK := w.Tuning().FrictionTriple()
	steering := w.Keys().Steering()
	dt := w.DeltaTime()
	for _, b := range w.Bodies() {
		physics.ApplyKineticFriction(b.Points, b.NormalForce(), muK, dt, b.OnGround, steering)
	}
}
