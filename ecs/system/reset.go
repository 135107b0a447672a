package system

import (
	"github.com/milk9111/softbody/ecs"
	"github.com/milk9111/softbody/physics"
)

// ResetSystem restores every body to its registration snapshot while the reset
// key is held.
type ResetSystem struct{}

func NewResetSystem() *ResetSystem {
	return &ResetSystem{}
}

func (s *ResetSystem) Update(w *ecs.World) {
	if s == nil || w == nil || !w.Keys().Held(physics.KeyReset) {
		return
	}
	for _, b := range w.Bodies() {
		b.Reset()
	}
}
