package physics

// FrameRate is the nominal frame rate the tunables are expressed against.
// Per-frame quantities (gravity, impulses) are multiplied by it.
const FrameRate = 60.0

// Tuning is the live-tunable parameter set read by every tick.
//
// No range is enforced here. Keeping mass positive and friction non-negative is
// the caller's job.
type Tuning struct {
	Stiffness       float64
	Gravity         float64
	Stribeck        float64
	StaticFriction  float64
	KineticFriction float64
	Damping         float64
	PointRadius     float64
	JumpStrength    float64
}

// DefaultTuning returns the values the simulator starts with.
func DefaultTuning() Tuning {
	return Tuning{
		Stiffness:       1,
		Gravity:         9.807 * FrameRate,
		Stribeck:        0.05,
		StaticFriction:  0.55,
		KineticFriction: 0.5,
		Damping:         2.5,
		PointRadius:     10,
		JumpStrength:    15,
	}
}

// FrictionTriple returns (stribeck, static, kinetic).
func (t Tuning) FrictionTriple() (float64, float64, float64) {
	return t.Stribeck, t.StaticFriction, t.KineticFriction
}

// Knob is one adjustable tunable as exposed to the tuning panel.
type Knob struct {
	Name string
	Step float64
	Get  func(Tuning) float64
	Set  func(*Tuning, float64)
}

// Knobs lists the tunables adjustable at runtime, in display order. Point
// radius is absent: it changes collision geometry mid-flight.
func Knobs() []Knob {
	return []Knob{
		{"stiffness", 0.5, func(t Tuning) float64 { return t.Stiffness }, func(t *Tuning, v float64) { t.Stiffness = v }},
		{"gravity", 0.5 * FrameRate, func(t Tuning) float64 { return t.Gravity }, func(t *Tuning, v float64) { t.Gravity = v }},
		{"stribeck", 0.01, func(t Tuning) float64 { return t.Stribeck }, func(t *Tuning, v float64) { t.Stribeck = v }},
		{"static friction", 0.05, func(t Tuning) float64 { return t.StaticFriction }, func(t *Tuning, v float64) { t.StaticFriction = v }},
		{"kinetic friction", 0.05, func(t Tuning) float64 { return t.KineticFriction }, func(t *Tuning, v float64) { t.KineticFriction = v }},
		{"damping", 0.25, func(t Tuning) float64 { return t.Damping }, func(t *Tuning, v float64) { t.Damping = v }},
		{"jump strength", 1, func(t Tuning) float64 { return t.JumpStrength }, func(t *Tuning, v float64) { t.JumpStrength = v }},
	}
}

// Nudge returns t with the knob moved by steps increments, floored at zero.
func (k Knob) Nudge(t Tuning, steps int) Tuning {
	v := k.Get(t) + float64(steps)*k.Step
	if v < 0 {
		v = 0
	}
	k.Set(&t, v)
	return t
}
