package system

import "github.com/milk9111/softbody/ecs"

// DefaultSystems returns the per-tick physics order. diagEvery > 0 appends a
// DiagnosticsSystem that logs every diagEvery ticks.
func DefaultSystems(diagEvery uint64) []ecs.System {
	systems := []ecs.System{
		NewBufferSyncSystem(),
		NewSpringSystem(),
		NewGroundSystem(),
		NewNormalForceSystem(),
		NewMovementSystem(),
		NewIntegrateSystem(),
		NewFrictionSystem(),
		NewResetSystem(),
		NewBufferSyncSystem(),
	}
	if diagEvery > 0 {
		systems = append(systems, NewDiagnosticsSystem(diagEvery))
	}
	return systems
}

// Install appends DefaultSystems to w.
func Install(w *ecs.World, diagEvery uint64) {
	for _, s := range DefaultSystems(diagEvery) {
		w.AddSystem(s)
	}
}
