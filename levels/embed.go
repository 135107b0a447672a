package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"strings"

	"github.com/milk9111/softbody/physics"
	"golang.org/x/image/colornames"
)

//go:embed *.json
var LevelsFS embed.FS

var (
	ErrUnknownLevel = errors.New("levels: unknown level")
	ErrInvalidLevel = errors.New("levels: invalid level")
)

// Order is the play order. The first entry is the title screen.
var Order = []string{
	"title_screen",
	"level1_displacement",
	"level2_launch",
}

type Kind string

const (
	KindTitle        Kind = "title"
	KindDisplacement Kind = "displacement"
	KindScript       Kind = "script"
)

type Level struct {
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Kind    Kind       `json:"kind"`
	Hint    string     `json:"hint,omitempty"`
	Script  string     `json:"script,omitempty"`
	Bodies  []BodySpec `json:"bodies"`
	Targets []Target   `json:"targets,omitempty"`
	Markers []Marker   `json:"markers,omitempty"`
	// ReachRadius is how close the controlled body's centre must get to a target.
	ReachRadius float64 `json:"reach_radius,omitempty"`
}

type BodySpec struct {
	Name         string      `json:"name"`
	Controllable bool        `json:"controllable"`
	Braces       [][2]int    `json:"braces,omitempty"`
	Points       []PointSpec `json:"points"`
}

type PointSpec struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Mass float64 `json:"mass"`
}

type Target struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	// Hint is shown when the target is reached.
	Hint string `json:"hint,omitempty"`
}

// Marker is a decorative line drawn with the level, such as a launch pad.
type Marker struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color string  `json:"color"`
	Label string  `json:"label,omitempty"`
}

func (m Marker) RGBA() color.RGBA {
	return colorByName(m.Color)
}

const defaultReachRadius = 20

// RGBA resolves the target's CSS color name.
func (t Target) RGBA() color.RGBA {
	return colorByName(t.Color)
}

func colorByName(name string) color.RGBA {
	if c, ok := colornames.Map[strings.ToLower(name)]; ok {
		return c
	}
	return colornames.White
}

func LoadLevelFromFS(name string) (*Level, error) {
	file := name
	if !strings.HasSuffix(file, ".json") {
		file += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, name)
		}
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(file, ".json")
	}
	if lvl.ReachRadius <= 0 {
		lvl.ReachRadius = defaultReachRadius
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	switch l.Kind {
	case KindTitle, KindDisplacement, KindScript:
	default:
		return fmt.Errorf("%w: %s: kind %q", ErrInvalidLevel, l.Name, l.Kind)
	}
	if l.Kind == KindScript && strings.TrimSpace(l.Script) == "" {
		return fmt.Errorf("%w: %s: script level without a script", ErrInvalidLevel, l.Name)
	}
	if l.Kind == KindDisplacement && len(l.Targets) == 0 {
		return fmt.Errorf("%w: %s: displacement level without targets", ErrInvalidLevel, l.Name)
	}
	seen := map[string]bool{}
	for _, b := range l.Bodies {
		if b.Name == "" || seen[b.Name] {
			return fmt.Errorf("%w: %s: body name %q missing or repeated", ErrInvalidLevel, l.Name, b.Name)
		}
		seen[b.Name] = true
		if len(b.Points) < 2 {
			return fmt.Errorf("%w: %s: body %s needs at least 2 points", ErrInvalidLevel, l.Name, b.Name)
		}
		for i, p := range b.Points {
			if !(p.Mass > 0) {
				return fmt.Errorf("%w: %s: body %s point %d mass %v", ErrInvalidLevel, l.Name, b.Name, i, p.Mass)
			}
		}
	}
	return nil
}

// Player returns the first controllable body, if any.
func (l *Level) Player() (BodySpec, bool) {
	for _, b := range l.Bodies {
		if b.Controllable {
			return b, true
		}
	}
	return BodySpec{}, false
}

// BuildPoints creates resting points that start out accelerating at gravity.
func (b BodySpec) BuildPoints(gravity float64) []*physics.PointMass {
	points := make([]*physics.PointMass, 0, len(b.Points))
	for _, p := range b.Points {
		pm := physics.NewPointMass(p.X, p.Y, p.Mass)
		pm.Acc.Y = gravity
		points = append(points, pm)
	}
	return points
}
