package levels

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/softbody/prefabs"
)

// Host is what a level script can see and do.
type Host interface {
	Center(body string) (cp.Vector, bool)
	OnGround(body string) bool
	Landed(body string) bool
	KeyHeld(key string) bool
	ShowHint(text string)
	Complete()
	SetScriptedImpulse(y float64)
}

// Script is a compiled level script exposing update(engine, state).
type Script struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

const levelDispatchScript = `
update(__engine, __state)
`

func LoadScript(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("levels: load script %s: %w", name, err)
	}
	return CompileScript(name, src)
}

func CompileScript(name string, src []byte) (*Script, error) {
	full := string(src) + "\n" + levelDispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("levels: compile script %s: %w", name, err)
	}
	return &Script{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (s *Script) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Update runs one script tick. State written to the state map survives
// between ticks.
func (s *Script) Update(host Host, dt float64) error {
	if s == nil || s.compiled == nil {
		return fmt.Errorf("levels: nil script")
	}
	if err := s.compiled.Set("__engine", buildScriptEngine(host, dt)); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("levels: run script %s: %w", s.name, err)
	}
	return nil
}

// State returns a Go copy of the script's persistent state.
func (s *Script) State() map[string]any {
	if s == nil || s.state == nil {
		return nil
	}
	out, _ := objectToAny(s.state).(map[string]any)
	return out
}

func buildScriptEngine(host Host, dt float64) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["dt"] = &tengo.Float{Value: dt}

	values["center"] = &tengo.UserFunction{Name: "center", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if host == nil || len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		c, ok := host.Center(objectAsString(args[0]))
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: c.X}, &tengo.Float{Value: c.Y}}}, nil
	}}

	values["on_ground"] = &tengo.UserFunction{Name: "on_ground", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if host == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(host.OnGround(objectAsString(args[0]))), nil
	}}

	values["landed"] = &tengo.UserFunction{Name: "landed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if host == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(host.Landed(objectAsString(args[0]))), nil
	}}

	values["key"] = &tengo.UserFunction{Name: "key", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if host == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(host.KeyHeld(strings.ToLower(objectAsString(args[0])))), nil
	}}

	values["hint"] = &tengo.UserFunction{Name: "hint", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if host == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		host.ShowHint(objectAsString(args[0]))
		return tengo.TrueValue, nil
	}}

	values["complete"] = &tengo.UserFunction{Name: "complete", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if host == nil {
			return tengo.FalseValue, nil
		}
		host.Complete()
		return tengo.TrueValue, nil
	}}

	values["impulse"] = &tengo.UserFunction{Name: "impulse", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if host == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		y, ok := objectAsFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		host.SetScriptedImpulse(y)
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	default:
		return nil
	}
}
