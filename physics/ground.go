package physics

// ResolveGround pushes the whole body out of the floor at floorY.
//
// The deepest penetration (y + radius - floorY) is applied as one rigid upward
// shift to every point, and any downward velocity is zeroed. It reports whether
// the body touched the floor.
func ResolveGround(points []*PointMass, floorY, radius float64) bool {
	maxPen := 0.0
	for _, p := range points {
		if pen := p.Pos.Y + radius - floorY; pen > maxPen {
			maxPen = pen
		}
	}
	if maxPen <= 0 {
		return false
	}

	for _, p := range points {
		p.Pos.Y -= maxPen
		if p.Vel.Y > 0 {
			p.Vel.Y = 0
		}
	}
	return true
}
