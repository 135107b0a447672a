package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// FrictionSnapSpeed is the horizontal speed under which an idle body stops.
	FrictionSnapSpeed = 0.05
	// StribeckMinSpeed is the speed under which Stribeck friction is zero.
	StribeckMinSpeed = 1e-3
)

// NormalForces samples max(0, fy + m*g) for every point.
func NormalForces(points []*PointMass, gravity float64) []float64 {
	return FillNormalForces(nil, points, gravity)
}

// FillNormalForces is NormalForces reusing dst's storage.
func FillNormalForces(dst []float64, points []*PointMass, gravity float64) []float64 {
	if cap(dst) < len(points) {
		dst = make([]float64, len(points))
	}
	dst = dst[:len(points)]
	for i, p := range points {
		dst[i] = math.Max(0, p.Force.Y+p.Mass*gravity)
	}
	return dst
}

// ApplyKineticFriction decelerates the horizontal velocity of a grounded body.
//
// A single normal force (normal) is used for every point; callers pass the first
// point's sample. Nothing happens while airborne or while steering.
func ApplyKineticFriction(points []*PointMass, normal, muK, dt float64, onGround, steering bool) {
	if !onGround || steering {
		return
	}

	for _, p := range points {
		vx := p.Vel.X
		speed := math.Abs(vx)
		if speed < FrictionSnapSpeed {
			p.Vel.X = 0
			continue
		}

		dv := (muK * normal) / p.Mass * dt
		if speed <= dv {
			p.Vel.X = 0
		} else {
			p.Vel.X -= dv * sign(vx)
		}
	}
}

// StribeckFriction returns the friction force opposing (vx, vy) for a contact
// with the given normal force. The coefficient decays from static to kinetic
// as speed grows.
func StribeckFriction(normal, vx, vy float64, static bool, t Tuning) cp.Vector {
	stribeck, muS, muK := t.FrictionTriple()
	speed := math.Hypot(vx, vy)
	if static || speed < StribeckMinSpeed {
		return cp.Vector{}
	}

	mu := muK + (muS-muK)*math.Exp(-speed/stribeck)
	mag := mu * normal
	return cp.Vector{X: -mag * (vx / speed), Y: -mag * (vy / speed)}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
