package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/milk9111/softbody/physics"
	"gopkg.in/yaml.v3"
)

// TuningFile is the embedded tunables file.
const TuningFile = "tuning.yaml"

var ErrInvalidTuning = errors.New("prefabs: invalid tuning")

// TuningSpec is the yaml form of physics.Tuning plus the render theme.
type TuningSpec struct {
	Stiffness       float64   `yaml:"stiffness"`
	Gravity         float64   `yaml:"gravity"`
	Stribeck        float64   `yaml:"stribeck"`
	StaticFriction  float64   `yaml:"static_friction"`
	KineticFriction float64   `yaml:"kinetic_friction"`
	Damping         float64   `yaml:"damping"`
	PointRadius     float64   `yaml:"point_radius"`
	JumpStrength    float64   `yaml:"jump_strength"`
	Theme           ThemeSpec `yaml:"theme"`
}

type ThemeSpec struct {
	Background *YAMLColor `yaml:"background"`
	Body       *YAMLColor `yaml:"body"`
	Point      *YAMLColor `yaml:"point"`
	Ground     *YAMLColor `yaml:"ground"`
	Grid       *YAMLColor `yaml:"grid"`
	Arrow      *YAMLColor `yaml:"arrow"`
}

// DefaultTuningSpec mirrors physics.DefaultTuning. Keys missing from a file
// keep these values.
func DefaultTuningSpec() TuningSpec {
	t := physics.DefaultTuning()
	return TuningSpec{
		Stiffness:       t.Stiffness,
		Gravity:         t.Gravity,
		Stribeck:        t.Stribeck,
		StaticFriction:  t.StaticFriction,
		KineticFriction: t.KineticFriction,
		Damping:         t.Damping,
		PointRadius:     t.PointRadius,
		JumpStrength:    t.JumpStrength,
	}
}

func DecodeTuningSpec(data []byte) (TuningSpec, error) {
	spec := DefaultTuningSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return TuningSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return TuningSpec{}, err
	}
	return spec, nil
}

// LoadTuningSpec loads a tunables file through Load.
func LoadTuningSpec(filename string) (TuningSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return TuningSpec{}, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := DecodeTuningSpec(data)
	if err != nil {
		return TuningSpec{}, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// LoadTuningFile loads a tunables file from an explicit path.
func LoadTuningFile(path string) (TuningSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TuningSpec{}, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	spec, err := DecodeTuningSpec(data)
	if err != nil {
		return TuningSpec{}, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}
	return spec, nil
}

// Validate rejects values the solver cannot integrate.
func (s TuningSpec) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"stiffness", s.Stiffness},
		{"stribeck", s.Stribeck},
		{"static_friction", s.StaticFriction},
		{"kinetic_friction", s.KineticFriction},
		{"damping", s.Damping},
		{"point_radius", s.PointRadius},
		{"jump_strength", s.JumpStrength},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%w: %s = %v", ErrInvalidTuning, f.name, f.value)
		}
	}
	if math.IsNaN(s.Gravity) || math.IsInf(s.Gravity, 0) {
		return fmt.Errorf("%w: gravity = %v", ErrInvalidTuning, s.Gravity)
	}
	return nil
}

func (s TuningSpec) ToTuning() physics.Tuning {
	return physics.Tuning{
		Stiffness:       s.Stiffness,
		Gravity:         s.Gravity,
		Stribeck:        s.Stribeck,
		StaticFriction:  s.StaticFriction,
		KineticFriction: s.KineticFriction,
		Damping:         s.Damping,
		PointRadius:     s.PointRadius,
		JumpStrength:    s.JumpStrength,
	}
}

// Or returns c, or fallback when the theme left it unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
