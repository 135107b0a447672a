package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/softbody/physics"
)

// keyBindings maps physical keys to the canonical names the simulation reads.
var keyBindings = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.KeyA, physics.KeyLeft},
	{ebiten.KeyD, physics.KeyRight},
	{ebiten.KeyArrowLeft, physics.KeyArrowLeft},
	{ebiten.KeyArrowRight, physics.KeyArrowRight},
	{ebiten.KeyW, physics.KeyJump},
	{ebiten.KeyR, physics.KeyReset},
	{ebiten.KeyEnter, physics.KeyEnter},
	{ebiten.KeyNumpadEnter, physics.KeyEnter},
}

// Input holds the key snapshot for one frame plus the UI edges.
type Input struct {
	// Keys is rebuilt every frame; systems may keep a reference for the tick.
	Keys physics.Keys
	// EnterPressed is true on the frame Enter was pressed.
	EnterPressed bool
	// Clicked is true on the frame the left mouse button was pressed.
	Clicked bool
	// TogglePanel is true on the frame Tab was pressed.
	TogglePanel bool
	// Quit is true on the frame F12 was pressed.
	Quit bool
}

func NewInput() *Input {
	return &Input{Keys: physics.Keys{}}
}

// Update polls the keyboard and the first gamepad.
func (i *Input) Update() {
	keys := make(physics.Keys, len(keyBindings))
	for _, b := range keyBindings {
		if ebiten.IsKeyPressed(b.key) {
			keys[b.name] = true
		}
	}

	// Gamepad: left stick steers, the primary button jumps, start confirms.
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			keys[physics.KeyLeft] = true
		} else if leftX > 0.3 {
			keys[physics.KeyRight] = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			keys[physics.KeyJump] = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonCenterRight) {
			keys[physics.KeyEnter] = true
		}
	}
	i.Keys = keys

	i.EnterPressed = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	i.Clicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	i.TogglePanel = inpututil.IsKeyJustPressed(ebiten.KeyTab)
	i.Quit = inpututil.IsKeyJustPressed(ebiten.KeyF12)
}
