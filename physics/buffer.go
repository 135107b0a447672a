package physics

import (
	"log"

	"github.com/jakecoffman/cp"
)

// VectorBuffer is an ordered list of 2D vectors mirroring one field of a
// point-mass array. Arithmetic returns a new buffer.
type VectorBuffer []cp.Vector

// PositionsOf copies the positions of points into a new buffer.
func PositionsOf(points []*PointMass) VectorBuffer {
	return collect(points, func(p *PointMass) cp.Vector { return p.Pos })
}

// VelocitiesOf copies the velocities of points into a new buffer.
func VelocitiesOf(points []*PointMass) VectorBuffer {
	return collect(points, func(p *PointMass) cp.Vector { return p.Vel })
}

// AccelerationsOf copies the accelerations of points into a new buffer.
func AccelerationsOf(points []*PointMass) VectorBuffer {
	return collect(points, func(p *PointMass) cp.Vector { return p.Acc })
}

// ForcesOf copies the accumulated forces of points into a new buffer.
func ForcesOf(points []*PointMass) VectorBuffer {
	return collect(points, func(p *PointMass) cp.Vector { return p.Force })
}

func collect(points []*PointMass, field func(*PointMass) cp.Vector) VectorBuffer {
	out := make(VectorBuffer, len(points))
	for i, p := range points {
		out[i] = field(p)
	}
	return out
}

// Fill overwrites b in place from points, growing or shrinking b as needed.
func (b VectorBuffer) Fill(points []*PointMass, field func(*PointMass) cp.Vector) VectorBuffer {
	if cap(b) < len(points) {
		b = make(VectorBuffer, len(points))
	}
	b = b[:len(points)]
	for i, p := range points {
		b[i] = field(p)
	}
	return b
}

// Len returns the number of vectors.
func (b VectorBuffer) Len() int {
	return len(b)
}

// At returns the vector at i.
func (b VectorBuffer) At(i int) cp.Vector {
	return b[i]
}

// Set replaces the vector at i.
func (b VectorBuffer) Set(i int, v cp.Vector) {
	b[i] = v
}

// Clone returns a deep copy of b.
func (b VectorBuffer) Clone() VectorBuffer {
	if b == nil {
		return nil
	}
	out := make(VectorBuffer, len(b))
	copy(out, b)
	return out
}

// Add returns b + other elementwise.
func (b VectorBuffer) Add(other VectorBuffer) VectorBuffer {
	if !b.sameLen("add", other) {
		return b
	}
	out := make(VectorBuffer, len(b))
	for i := range b {
		out[i] = b[i].Add(other[i])
	}
	return out
}

// Sub returns b - other elementwise.
func (b VectorBuffer) Sub(other VectorBuffer) VectorBuffer {
	if !b.sameLen("sub", other) {
		return b
	}
	out := make(VectorBuffer, len(b))
	for i := range b {
		out[i] = b[i].Sub(other[i])
	}
	return out
}

// Scale returns b * s.
func (b VectorBuffer) Scale(s float64) VectorBuffer {
	out := make(VectorBuffer, len(b))
	for i := range b {
		out[i] = b[i].Mult(s)
	}
	return out
}

// Div returns b / s. Dividing by zero logs and returns b unchanged.
func (b VectorBuffer) Div(s float64) VectorBuffer {
	if s == 0 {
		log.Printf("physics: vector buffer: cannot divide by zero")
		return b
	}
	out := make(VectorBuffer, len(b))
	for i := range b {
		out[i] = cp.Vector{X: b[i].X / s, Y: b[i].Y / s}
	}
	return out
}

func (b VectorBuffer) sameLen(op string, other VectorBuffer) bool {
	if len(b) == len(other) {
		return true
	}
	log.Printf("physics: vector buffer %s: length mismatch %d != %d", op, len(b), len(other))
	return false
}
