package physics

import "github.com/jakecoffman/cp"

// PointMass is a single kinematic point of a soft body.
type PointMass struct {
	Pos     cp.Vector
	PrevPos cp.Vector
	Vel     cp.Vector
	PrevVel cp.Vector
	Acc     cp.Vector
	Force   cp.Vector
	Mass    float64
	InvMass float64
}

// NewPointMass creates a resting point. mass must be > 0.
func NewPointMass(x, y, mass float64) *PointMass {
	pos := cp.Vector{X: x, Y: y}
	return &PointMass{
		Pos:     pos,
		PrevPos: pos,
		Mass:    mass,
		InvMass: 1 / mass,
	}
}

// SetMass updates mass and keeps InvMass in step.
func (p *PointMass) SetMass(mass float64) {
	p.Mass = mass
	p.InvMass = 1 / mass
}

// ResetForce zeroes the accumulated force.
func (p *PointMass) ResetForce() {
	p.Force = cp.Vector{}
}

// AddForce accumulates f into the point's force.
func (p *PointMass) AddForce(f cp.Vector) {
	p.Force = p.Force.Add(f)
}

// Integrate advances the point by dt.
//
// Position is advanced from the velocity held before this step, then the
// velocity is advanced from the new acceleration. dt is not clamped here.
func (p *PointMass) Integrate(dt float64) {
	p.PrevVel = p.Vel
	p.PrevPos = p.Pos

	p.Acc = p.Force.Mult(p.InvMass)

	step := p.PrevVel.Mult(dt).Add(p.Acc.Mult(0.5 * dt * dt))
	p.Pos = p.Pos.Add(step)
	p.Vel = p.PrevVel.Add(p.Acc.Mult(dt))
}

// Centroid returns the mean position of points.
func Centroid(points []*PointMass) cp.Vector {
	if len(points) == 0 {
		return cp.Vector{}
	}
	var sum cp.Vector
	for _, p := range points {
		sum = sum.Add(p.Pos)
	}
	return sum.Mult(1 / float64(len(points)))
}

// Translate moves every point by d without touching velocity.
func Translate(points []*PointMass, d cp.Vector) {
	for _, p := range points {
		p.Pos = p.Pos.Add(d)
	}
}
