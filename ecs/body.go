package ecs

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/softbody/physics"
)

// Snapshot is the kinematic state of a body's points at one moment.
type Snapshot struct {
	Positions     physics.VectorBuffer
	Velocities    physics.VectorBuffer
	Accelerations physics.VectorBuffer
}

func captureSnapshot(points []*physics.PointMass) Snapshot {
	return Snapshot{
		Positions:     physics.PositionsOf(points),
		Velocities:    physics.VelocitiesOf(points),
		Accelerations: physics.AccelerationsOf(points),
	}
}

// Body is one registry entry: a named soft body and its per-tick bookkeeping.
type Body struct {
	Name   string
	Points []*physics.PointMass
	// Springs is the body's topology. The ring springs are captured once at
	// registration; braces may be appended later.
	Springs []physics.Spring

	Positions     physics.VectorBuffer
	Velocities    physics.VectorBuffer
	Accelerations physics.VectorBuffer
	Forces        physics.VectorBuffer

	NormalForces []float64
	OnGround     bool
	Controllable bool

	initial Snapshot
}

func newBody(name string, points []*physics.PointMass) *Body {
	b := &Body{
		Name:    name,
		Points:  points,
		Springs: physics.RingSprings(points),
		initial: captureSnapshot(points),
	}
	b.Sync()
	return b
}

// Sync rebuilds the vector buffers from the live points.
func (b *Body) Sync() {
	b.Positions = b.Positions.Fill(b.Points, func(p *physics.PointMass) cp.Vector { return p.Pos })
	b.Velocities = b.Velocities.Fill(b.Points, func(p *physics.PointMass) cp.Vector { return p.Vel })
	b.Accelerations = b.Accelerations.Fill(b.Points, func(p *physics.PointMass) cp.Vector { return p.Acc })
	b.Forces = b.Forces.Fill(b.Points, func(p *physics.PointMass) cp.Vector { return p.Force })
}

// RestLengths returns the rest length of every spring in order.
func (b *Body) RestLengths() []float64 {
	return physics.RestLengths(b.Springs)
}

// NormalForce returns the first point's sampled normal force, or 0 before any
// sample was taken.
func (b *Body) NormalForce() float64 {
	if len(b.NormalForces) == 0 {
		return 0
	}
	return b.NormalForces[0]
}

// Centroid returns the mean point position.
func (b *Body) Centroid() cp.Vector {
	return physics.Centroid(b.Points)
}

// Initial returns a copy of the snapshot captured at registration.
func (b *Body) Initial() Snapshot {
	return Snapshot{
		Positions:     b.initial.Positions.Clone(),
		Velocities:    b.initial.Velocities.Clone(),
		Accelerations: b.initial.Accelerations.Clone(),
	}
}

// Recapture replaces the reset snapshot with the points' current state.
func (b *Body) Recapture() {
	b.initial = captureSnapshot(b.Points)
}

// Reset restores every point's position, velocity and acceleration from the
// registration snapshot.
func (b *Body) Reset() {
	for i, p := range b.Points {
		if i >= b.initial.Positions.Len() {
			break
		}
		p.Pos = b.initial.Positions.At(i)
		p.Vel = b.initial.Velocities.At(i)
		p.Acc = b.initial.Accelerations.At(i)
	}
	b.Sync()
}

// AddBrace adds an internal spring between points i and j with its rest length
// taken from their current distance. Braces resist compression twice as hard.
func (b *Body) AddBrace(i, j int) error {
	n := len(b.Points)
	if i < 0 || j < 0 || i >= n || j >= n || i == j {
		return fmt.Errorf("ecs: brace %s %d-%d: invalid point index", b.Name, i, j)
	}
	s := physics.NewSpring(b.Points, i, j)
	s.CompressionScale = physics.BraceCompressionScale
	b.Springs = append(b.Springs, s)
	return nil
}
