package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// MinSpringLength is the edge length below which a spring is skipped.
	MinSpringLength = 1e-3
	// MaxVelocity caps point speed after constraint forces are applied.
	MaxVelocity = 1000.0
	// BraceCompressionScale stiffens braces while they are shorter than rest.
	BraceCompressionScale = 2.0
)

// Spring is a spring-damper between two points of the same body.
type Spring struct {
	A, B       int
	RestLength float64
	// CompressionScale multiplies stiffness while the spring is compressed.
	// Zero means 1.
	CompressionScale float64
}

// NewSpring builds a spring between points[a] and points[b] whose rest length
// is their current distance.
func NewSpring(points []*PointMass, a, b int) Spring {
	d := points[b].Pos.Sub(points[a].Pos)
	return Spring{A: a, B: b, RestLength: math.Hypot(d.X, d.Y)}
}

// RingSprings connects point i to point (i+1) mod n, capturing each rest
// length from the current geometry.
func RingSprings(points []*PointMass) []Spring {
	n := len(points)
	if n < 2 {
		return nil
	}
	springs := make([]Spring, n)
	for i := range points {
		springs[i] = NewSpring(points, i, (i+1)%n)
	}
	return springs
}

// RestLengths returns the rest length of every spring, in order.
func RestLengths(springs []Spring) []float64 {
	out := make([]float64, len(springs))
	for i, s := range springs {
		out[i] = s.RestLength
	}
	return out
}

// SolveSprings resets every force, applies gravity, spring and damping forces
// for each spring and then clamps point speed to MaxVelocity.
func SolveSprings(points []*PointMass, springs []Spring, t Tuning) {
	k, c, g := t.Stiffness, t.Damping, t.Gravity

	for _, p := range points {
		p.ResetForce()
	}
	for _, p := range points {
		p.Force.Y += p.Mass * g
	}

	for _, s := range springs {
		applySpring(points, s, k, c)
	}

	ClampVelocities(points, MaxVelocity)
}

func applySpring(points []*PointMass, s Spring, k, c float64) {
	if s.A < 0 || s.B < 0 || s.A >= len(points) || s.B >= len(points) {
		return
	}
	p, nxt := points[s.A], points[s.B]

	d := nxt.Pos.Sub(p.Pos)
	length := math.Sqrt(d.X*d.X + d.Y*d.Y)
	if length < MinSpringLength {
		return
	}
	dir := cp.Vector{X: d.X / length, Y: d.Y / length}

	displacement := length - s.RestLength
	stiffness := k
	if displacement < 0 && s.CompressionScale != 0 {
		stiffness *= s.CompressionScale
	}
	springForce := -stiffness * displacement

	p.Force.X -= springForce * dir.X
	p.Force.Y -= springForce * dir.Y
	nxt.Force.X += springForce * dir.X
	nxt.Force.Y += springForce * dir.Y

	rel := nxt.Vel.Sub(p.Vel)
	relProj := rel.X*dir.X + rel.Y*dir.Y
	dampingForce := -c * relProj

	p.Force.X -= dampingForce * dir.X
	p.Force.Y -= dampingForce * dir.Y
	nxt.Force.X += dampingForce * dir.X
	nxt.Force.Y += dampingForce * dir.Y
}

// ClampVelocities rescales any velocity whose magnitude exceeds limit down to
// exactly limit, keeping its direction.
func ClampVelocities(points []*PointMass, limit float64) {
	for _, p := range points {
		mag := math.Sqrt(p.Vel.X*p.Vel.X + p.Vel.Y*p.Vel.Y)
		if mag > limit {
			scale := limit / mag
			p.Vel.X *= scale
			p.Vel.Y *= scale
		}
	}
}
