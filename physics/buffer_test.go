package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestVectorBufferArithmetic(t *testing.T) {
	a := VectorBuffer{{X: 1, Y: 2}, {X: 3, Y: 4}}
	b := VectorBuffer{{X: 10, Y: 20}, {X: 30, Y: 40}}

	tests := []struct {
		name string
		got  VectorBuffer
		want VectorBuffer
	}{
		{"add", a.Add(b), VectorBuffer{{X: 11, Y: 22}, {X: 33, Y: 44}}},
		{"sub", b.Sub(a), VectorBuffer{{X: 9, Y: 18}, {X: 27, Y: 36}}},
		{"scale", a.Scale(2), VectorBuffer{{X: 2, Y: 4}, {X: 6, Y: 8}}},
		{"div", b.Div(10), VectorBuffer{{X: 1, Y: 2}, {X: 3, Y: 4}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got.Len() != tc.want.Len() {
				t.Fatalf("expected len %d, got %d", tc.want.Len(), tc.got.Len())
			}
			for i := range tc.want {
				if tc.got.At(i) != tc.want[i] {
					t.Fatalf("index %d: expected %v, got %v", i, tc.want[i], tc.got.At(i))
				}
			}
		})
	}

	if a[0] != (cp.Vector{X: 1, Y: 2}) {
		t.Fatalf("arithmetic must not mutate the receiver, got %v", a[0])
	}
}

func TestVectorBufferDivideByZeroIsNoop(t *testing.T) {
	a := VectorBuffer{{X: 1, Y: 2}}
	got := a.Div(0)
	if &got[0] != &a[0] {
		t.Fatalf("expected the original buffer back")
	}
	if got[0] != (cp.Vector{X: 1, Y: 2}) {
		t.Fatalf("expected unchanged values, got %v", got[0])
	}
}

func TestVectorBufferLengthMismatchIsNoop(t *testing.T) {
	a := VectorBuffer{{X: 1, Y: 1}, {X: 2, Y: 2}}
	b := VectorBuffer{{X: 1, Y: 1}}
	if got := a.Add(b); len(got) != 2 || got[1] != (cp.Vector{X: 2, Y: 2}) {
		t.Fatalf("expected receiver unchanged on mismatch, got %v", got)
	}
	if got := a.Sub(b); len(got) != 2 || got[0] != (cp.Vector{X: 1, Y: 1}) {
		t.Fatalf("expected receiver unchanged on mismatch, got %v", got)
	}
}

func TestVectorBufferFromPoints(t *testing.T) {
	p0 := NewPointMass(1, 2, 1)
	p0.Vel = cp.Vector{X: 3, Y: 4}
	p0.Acc = cp.Vector{X: 5, Y: 6}
	p1 := NewPointMass(7, 8, 1)
	points := []*PointMass{p0, p1}

	pos := PositionsOf(points)
	vel := VelocitiesOf(points)
	acc := AccelerationsOf(points)

	if pos[1] != (cp.Vector{X: 7, Y: 8}) || vel[0] != (cp.Vector{X: 3, Y: 4}) || acc[0] != (cp.Vector{X: 5, Y: 6}) {
		t.Fatalf("unexpected buffers pos=%v vel=%v acc=%v", pos, vel, acc)
	}

	p0.Pos = cp.Vector{X: 100, Y: 100}
	if pos[0] != (cp.Vector{X: 1, Y: 2}) {
		t.Fatalf("buffers must be copies, got %v", pos[0])
	}

	var reused VectorBuffer
	reused = reused.Fill(points, func(p *PointMass) cp.Vector { return p.Pos })
	if reused.Len() != 2 || reused[0] != (cp.Vector{X: 100, Y: 100}) {
		t.Fatalf("unexpected filled buffer %v", reused)
	}
	reused = reused.Fill(points[:1], func(p *PointMass) cp.Vector { return p.Vel })
	if reused.Len() != 1 || reused[0] != (cp.Vector{X: 3, Y: 4}) {
		t.Fatalf("expected shrink to one element, got %v", reused)
	}

	clone := reused.Clone()
	clone.Set(0, cp.Vector{})
	if reused[0] == (cp.Vector{}) {
		t.Fatalf("clone must not alias the source")
	}
}
