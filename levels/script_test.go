package levels

import (
	"testing"

	"github.com/jakecoffman/cp"
)

type fakeHost struct {
	centers  map[string]cp.Vector
	ground   map[string]bool
	landed   map[string]bool
	keys     map[string]bool
	hints    []string
	complete int
	impulses []float64
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		centers: map[string]cp.Vector{},
		ground:  map[string]bool{},
		landed:  map[string]bool{},
		keys:    map[string]bool{},
	}
}

func (h *fakeHost) Center(body string) (cp.Vector, bool) {
	c, ok := h.centers[body]
	return c, ok
}
func (h *fakeHost) OnGround(body string) bool    { return h.ground[body] }
func (h *fakeHost) Landed(body string) bool      { return h.landed[body] }
func (h *fakeHost) KeyHeld(key string) bool      { return h.keys[key] }
func (h *fakeHost) ShowHint(text string)         { h.hints = append(h.hints, text) }
func (h *fakeHost) Complete()                    { h.complete++ }
func (h *fakeHost) SetScriptedImpulse(y float64) { h.impulses = append(h.impulses, y) }

func TestScriptEngineFunctions(t *testing.T) {
	src := []byte(`
update := func(engine, state) {
	state.ticks = (state.ticks == undefined ? 0 : state.ticks) + 1
	c := engine.center("player")
	state.x = c[0]
	state.missing = engine.center("ghost") == undefined
	state.jump = engine.key("W")
	state.dt = engine.dt
	state.landed = engine.landed("player")
	if engine.on_ground("player") {
		engine.impulse(-1500)
		engine.hint("grounded")
		engine.complete()
	}
}
`)
	s, err := CompileScript("inline", src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	h := newFakeHost()
	h.centers["player"] = cp.Vector{X: 12.5, Y: 3}
	h.keys["w"] = true

	if err := s.Update(h, 0.25); err != nil {
		t.Fatalf("update: %v", err)
	}
	h.ground["player"] = true
	h.landed["player"] = true
	if err := s.Update(h, 0.25); err != nil {
		t.Fatalf("update: %v", err)
	}

	state := s.State()
	if state["ticks"] != 2 {
		t.Fatalf("expected state to persist across ticks, got %v", state["ticks"])
	}
	if state["x"] != 12.5 || state["missing"] != true || state["jump"] != true || state["dt"] != 0.25 || state["landed"] != true {
		t.Fatalf("unexpected state %v", state)
	}
	if len(h.impulses) != 1 || h.impulses[0] != -1500 {
		t.Fatalf("expected one integer impulse converted to float, got %v", h.impulses)
	}
	if h.complete != 1 || len(h.hints) != 1 || h.hints[0] != "grounded" {
		t.Fatalf("unexpected host calls: complete=%d hints=%v", h.complete, h.hints)
	}
}

func TestCompileScriptErrors(t *testing.T) {
	if _, err := CompileScript("broken", []byte("update := func(engine, state) {")); err == nil {
		t.Fatalf("expected a compile error")
	}
	if _, err := CompileScript("no_update", []byte("x := 1")); err == nil {
		t.Fatalf("expected an error when update is missing")
	}
	if _, err := LoadScript("does_not_exist"); err == nil {
		t.Fatalf("expected a load error")
	}

	var s *Script
	if err := s.Update(newFakeHost(), 0); err == nil {
		t.Fatalf("expected an error from a nil script")
	}
}

func TestLaunchScript(t *testing.T) {
	s, err := LoadScript("level2_launch.tengo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	h := newFakeHost()

	steps := []struct {
		center   cp.Vector
		ground   bool
		landed   bool
		impulses int
		complete int
	}{
		{cp.Vector{X: 300, Y: 430}, true, false, 0, 0},
		{cp.Vector{X: 600, Y: 430}, true, false, 0, 0},
		{cp.Vector{X: 600, Y: 400}, false, false, 1, 0},
		{cp.Vector{X: 610, Y: 300}, false, false, 1, 0},
		{cp.Vector{X: 620, Y: 120}, false, false, 2, 0},
		// resting on the floor without a touchdown this tick does not finish
		{cp.Vector{X: 630, Y: 430}, true, false, 2, 0},
		{cp.Vector{X: 640, Y: 430}, true, true, 2, 1},
	}
	for i, st := range steps {
		h.centers["player"] = st.center
		h.ground["player"] = st.ground
		h.landed["player"] = st.landed
		if err := s.Update(h, 1.0/60.0); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if len(h.impulses) != st.impulses || h.complete != st.complete {
			t.Fatalf("step %d: expected %d impulses and %d completions, got %v and %d", i, st.impulses, st.complete, h.impulses, h.complete)
		}
	}
	if h.impulses[0] >= -1000 {
		t.Fatalf("launch impulse must stay active while airborne, got %v", h.impulses[0])
	}
	if h.impulses[1] != 0 {
		t.Fatalf("expected the impulse to be cleared, got %v", h.impulses[1])
	}
}
