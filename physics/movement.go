package physics

import "math"

// Canonical key names understood by the controller.
const (
	KeyLeft       = "a"
	KeyRight      = "d"
	KeyArrowLeft  = "arrowleft"
	KeyArrowRight = "arrowright"
	KeyJump       = "w"
	KeyReset      = "r"
	KeyEnter      = "enter"
)

const (
	// MoveImpulse is the horizontal impulse added per held direction key.
	MoveImpulse = 1.2 * FrameRate
	// AirControl scales horizontal impulses while airborne.
	AirControl = 0.4
	// ScriptedImpulseThreshold marks vertical impulses below it as scripted;
	// those survive the end of ApplyImpulses.
	ScriptedImpulseThreshold = -1000.0
	minImpulseDt             = 1e-3
)

// Keys is a snapshot of held keys by lowercase name.
type Keys map[string]bool

// Held reports whether key is held. A nil Keys holds nothing.
func (k Keys) Held(key string) bool {
	return k[key]
}

// Left reports whether a left key is held.
func (k Keys) Left() bool {
	return k[KeyLeft] || k[KeyArrowLeft]
}

// Right reports whether a right key is held.
func (k Keys) Right() bool {
	return k[KeyRight] || k[KeyArrowRight]
}

// Steering reports whether any horizontal key is held.
func (k Keys) Steering() bool {
	return k.Left() || k.Right()
}

// Controller turns key state into impulses applied as forces.
//
// Its state persists across ticks until cleared by ApplyImpulses, so one
// Controller belongs to one simulation.
type Controller struct {
	ImpulseX      float64
	ImpulseY      float64
	JumpRequested bool
}

// Move recomputes the horizontal impulse from the direction keys.
func (c *Controller) Move(keys Keys) {
	c.ImpulseX = 0
	if keys.Left() {
		c.ImpulseX -= MoveImpulse
	}
	if keys.Right() {
		c.ImpulseX += MoveImpulse
	}
}

// Jump requests a jump for as long as the jump key is held.
func (c *Controller) Jump(keys Keys) {
	c.JumpRequested = keys.Held(KeyJump)
}

// SetScriptedImpulse sets the vertical impulse directly. Values below
// ScriptedImpulseThreshold keep being applied every tick while airborne until
// replaced.
func (c *Controller) SetScriptedImpulse(y float64) {
	c.ImpulseY = y
}

// ApplyImpulses converts the pending impulses into forces on points.
func (c *Controller) ApplyImpulses(points []*PointMass, dt float64, onGround bool, t Tuning) {
	safeDt := math.Max(dt, minImpulseDt)

	switch {
	case c.JumpRequested && onGround:
		c.ImpulseY = -t.JumpStrength * FrameRate
		c.JumpRequested = false
	case c.ImpulseY != 0 && !onGround:
		// scripted impulse carried while airborne
	default:
		c.ImpulseY = 0
	}

	air := 1.0
	if !onGround {
		air = AirControl
	}
	for _, p := range points {
		if c.ImpulseX != 0 {
			p.Force.X += c.ImpulseX * air / safeDt
		}
		if c.ImpulseY != 0 {
			p.Force.Y += c.ImpulseY / safeDt
		}
	}

	if c.ImpulseY < ScriptedImpulseThreshold {
		return
	}
	c.ImpulseX = 0
	c.ImpulseY = 0
}
