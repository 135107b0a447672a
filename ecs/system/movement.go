package system

import (
	"github.com/milk9111/softbody/ecs"
)

// MovementSystem feeds the key snapshot through the world's controller for
// every controllable body. Player control is off on the title screen.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil || w.TitleScreen() {
		return
	}
	ctrl := w.Controller()
	keys := w.Keys()
	tuning := w.Tuning()
	dt := w.DeltaTime()

	for _, b := range w.Bodies() {
		if !b.Controllable {
			continue
		}
		ctrl.Move(keys)
		// The jump request only follows the key while grounded; in the air the
		// last request is kept.
		if b.OnGround {
			ctrl.Jump(keys)
		}
		ctrl.ApplyImpulses(b.Points, dt, b.OnGround, tuning)
	}
}
