package ecs

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/softbody/common"
	"github.com/milk9111/softbody/physics"
)

func box(x, y, size float64) []*physics.PointMass {
	return []*physics.PointMass{
		physics.NewPointMass(x+size, y, 1),
		physics.NewPointMass(x+size, y+size, 1),
		physics.NewPointMass(x, y+size, 1),
		physics.NewPointMass(x, y, 1),
	}
}

type recordingSystem struct {
	name string
	log  *[]string
}

func (r recordingSystem) Update(w *World) {
	*r.log = append(*r.log, r.name)
}

func TestWorldRegister(t *testing.T) {
	cases := []struct {
		name    string
		points  []*physics.PointMass
		wantErr error
	}{
		{"box", box(0, 0, 100), nil},
		{"single_point", box(0, 0, 100)[:1], ErrTooFewPoints},
		{"zero_mass", []*physics.PointMass{physics.NewPointMass(0, 0, 1), {Pos: cp.Vector{X: 1}}}, ErrInvalidMass},
		{"nil_point", []*physics.PointMass{physics.NewPointMass(0, 0, 1), nil}, ErrInvalidMass},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld(common.BaseHeight, physics.DefaultTuning())
			b, err := w.Register("player", c.points)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				if _, ok := w.Body("player"); ok {
					t.Fatalf("failed registration must not add a body")
				}
				return
			}
			if err != nil {
				t.Fatalf("register failed: %v", err)
			}
			if len(b.Springs) != len(c.points) || len(b.RestLengths()) != len(c.points) {
				t.Fatalf("expected %d springs, got %d", len(c.points), len(b.Springs))
			}
			if b.Positions.Len() != len(c.points) {
				t.Fatalf("expected buffers built on register")
			}
		})
	}
}

func TestWorldRegisterDuplicateAndUnregister(t *testing.T) {
	w := NewWorld(600, physics.DefaultTuning())
	first := box(0, 0, 100)
	if _, err := w.Register("player", first); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := w.Register("player", box(0, 0, 50)); !errors.Is(err, ErrBodyExists) {
		t.Fatalf("expected ErrBodyExists, got %v", err)
	}

	if !w.Unregister("player") {
		t.Fatalf("expected unregister to report removal")
	}
	if w.Unregister("player") {
		t.Fatalf("second unregister must report nothing removed")
	}

	b, err := w.Register("player", box(0, 0, 50))
	if err != nil {
		t.Fatalf("re-register failed: %v", err)
	}
	if math.Abs(b.Springs[0].RestLength-50) > 1e-9 {
		t.Fatalf("expected rest lengths from the new geometry, got %v", b.Springs[0].RestLength)
	}
	if b.Initial().Positions.At(0) != (cp.Vector{X: 50, Y: 0}) {
		t.Fatalf("expected a fresh snapshot, got %v", b.Initial().Positions.At(0))
	}
}

func TestWorldBodiesKeepRegistrationOrder(t *testing.T) {
	w := NewWorld(600, physics.DefaultTuning())
	for _, name := range []string{"player", "npc", "crate"} {
		if _, err := w.Register(name, box(0, 0, 10)); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	w.Unregister("npc")
	if _, err := w.Register("npc", box(0, 0, 10)); err != nil {
		t.Fatalf("register npc: %v", err)
	}

	want := []string{"player", "crate", "npc"}
	got := w.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] || w.Bodies()[i].Name != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	w.Clear()
	if len(w.Bodies()) != 0 {
		t.Fatalf("expected no bodies after Clear")
	}
}

func TestWorldFindPointIndex(t *testing.T) {
	w := NewWorld(600, physics.DefaultTuning())
	a := box(0, 0, 10)
	b := box(100, 0, 10)
	_, _ = w.Register("a", a)
	_, _ = w.Register("b", b)

	name, idx, ok := w.FindPointIndex(b[2])
	if !ok || name != "b" || idx != 2 {
		t.Fatalf("expected (b, 2), got (%s, %d, %v)", name, idx, ok)
	}
	if _, idx, ok := w.FindPointIndex(physics.NewPointMass(0, 0, 1)); ok || idx != -1 {
		t.Fatalf("expected a stranger point to be missing")
	}
}

func TestWorldResetIsIdempotent(t *testing.T) {
	w := NewWorld(600, physics.DefaultTuning())
	points := box(100, 100, 200)
	points[0].Acc = cp.Vector{Y: 588.42}
	b, _ := w.Register("player", points)
	want := b.Initial()

	for _, p := range points {
		p.Pos = p.Pos.Add(cp.Vector{X: 13, Y: -7})
		p.Vel = cp.Vector{X: 40, Y: 2}
		p.Acc = cp.Vector{X: 1, Y: 1}
	}

	if err := w.Reset("player"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	once := physics.PositionsOf(points)
	if err := w.Reset("player"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	for i, p := range points {
		if p.Pos != once[i] {
			t.Fatalf("point %d: second reset changed state", i)
		}
		if p.Pos != want.Positions.At(i) || p.Vel != want.Velocities.At(i) || p.Acc != want.Accelerations.At(i) {
			t.Fatalf("point %d: expected snapshot state, got pos=%v vel=%v acc=%v", i, p.Pos, p.Vel, p.Acc)
		}
	}
	if b.Positions.At(0) != want.Positions.At(0) {
		t.Fatalf("expected buffers to follow the reset")
	}

	if err := w.Reset("ghost"); !errors.Is(err, ErrBodyNotFound) {
		t.Fatalf("expected ErrBodyNotFound, got %v", err)
	}
}

func TestWorldTickClampsDeltaAndRunsSystemsInOrder(t *testing.T) {
	w := NewWorld(600, physics.DefaultTuning())
	var order []string
	w.AddSystem(recordingSystem{"first", &order})
	w.AddSystem(nil)
	w.AddSystem(recordingSystem{"second", &order})

	cases := []struct {
		raw, want float64
	}{
		{1.0 / 60.0, 1.0 / 60.0},
		{0.5, common.MaxFrameDelta},
		{-1, 0},
		{math.NaN(), 0},
	}
	for _, c := range cases {
		w.Tick(c.raw, physics.Keys{physics.KeyJump: true})
		if w.DeltaTime() != c.want {
			t.Fatalf("raw %v: expected dt %v, got %v", c.raw, c.want, w.DeltaTime())
		}
		if !w.Keys().Held(physics.KeyJump) {
			t.Fatalf("expected key snapshot to be visible to systems")
		}
	}

	if len(order) != 8 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected system order %v", order)
	}
	if w.Ticks() != 4 {
		t.Fatalf("expected 4 ticks, got %d", w.Ticks())
	}
	if len(w.Systems()) != 2 {
		t.Fatalf("nil systems must be ignored, got %d", len(w.Systems()))
	}
}

func TestWorldUpdateTuning(t *testing.T) {
	w := NewWorld(600, physics.DefaultTuning())
	tun := w.Tuning()
	tun.Stiffness = 42
	if w.Tuning().Stiffness == 42 {
		t.Fatalf("Tuning must return a copy")
	}
	w.UpdateTuning(tun)
	if w.Tuning().Stiffness != 42 {
		t.Fatalf("expected updated stiffness")
	}
}

func TestBodyAddBrace(t *testing.T) {
	w := NewWorld(600, physics.DefaultTuning())
	b, _ := w.Register("player", box(0, 0, 30))

	if err := b.AddBrace(0, 2); err != nil {
		t.Fatalf("brace failed: %v", err)
	}
	last := b.Springs[len(b.Springs)-1]
	if last.A != 0 || last.B != 2 || math.Abs(last.RestLength-math.Sqrt(1800)) > 1e-9 {
		t.Fatalf("unexpected brace %+v", last)
	}
	if last.CompressionScale != physics.BraceCompressionScale {
		t.Fatalf("expected brace compression scale")
	}

	for _, pair := range [][2]int{{0, 0}, {-1, 2}, {0, 4}} {
		if err := b.AddBrace(pair[0], pair[1]); err == nil {
			t.Fatalf("expected error for brace %v", pair)
		}
	}
}

func TestNilWorldIsInert(t *testing.T) {
	var w *World
	w.Tick(1, nil)
	w.AddSystem(nil)
	if w.Bodies() != nil || w.Ticks() != 0 || w.Controller() != nil {
		t.Fatalf("nil world must be inert")
	}
	if _, err := w.Register("x", box(0, 0, 1)); err == nil {
		t.Fatalf("expected error registering on nil world")
	}
}

func TestBodyRecapture(t *testing.T) {
	w := NewWorld(600, physics.DefaultTuning())
	b, _ := w.Register("player", box(0, 0, 10))
	physics.Translate(b.Points, cp.Vector{X: 50, Y: 20})
	b.Points[0].Vel = cp.Vector{X: 3}
	b.Recapture()

	for _, p := range b.Points {
		p.Pos = p.Pos.Add(cp.Vector{X: 7})
	}
	b.Reset()
	if b.Points[0].Pos != (cp.Vector{X: 60, Y: 20}) || b.Points[0].Vel != (cp.Vector{X: 3}) {
		t.Fatalf("expected the recaptured state, got pos=%v vel=%v", b.Points[0].Pos, b.Points[0].Vel)
	}
}

func TestClampDelta(t *testing.T) {
	cases := []struct {
		name    string
		raw, dt float64
	}{
		{"frame", 1.0 / 60.0, 1.0 / 60.0},
		{"stall", 2, common.MaxFrameDelta},
		{"positive_inf", math.Inf(1), common.MaxFrameDelta},
		{"negative", -0.01, 0},
		{"negative_inf", math.Inf(-1), 0},
		{"nan", math.NaN(), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClampDelta(c.raw); got != c.dt {
				t.Fatalf("expected %v, got %v", c.dt, got)
			}
		})
	}
}
