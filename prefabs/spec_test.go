package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeTuningSpec(t *testing.T) {
	def := DefaultTuningSpec()

	cases := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, s TuningSpec)
	}{
		{
			name: "partial_keeps_defaults",
			yaml: "stiffness: 3\n",
			check: func(t *testing.T, s TuningSpec) {
				if s.Stiffness != 3 {
					t.Fatalf("expected stiffness 3, got %v", s.Stiffness)
				}
				if s.Damping != def.Damping || s.PointRadius != def.PointRadius || s.Gravity != def.Gravity {
					t.Fatalf("expected untouched keys to keep defaults, got %+v", s)
				}
			},
		},
		{
			name: "zero_gravity_allowed",
			yaml: "gravity: 0\n",
			check: func(t *testing.T, s TuningSpec) {
				if s.Gravity != 0 {
					t.Fatalf("expected gravity 0, got %v", s.Gravity)
				}
			},
		},
		{
			name: "theme_colors",
			yaml: "theme:\n  arrow: \"#ff000080\"\n",
			check: func(t *testing.T, s TuningSpec) {
				want := color.NRGBA{R: 255, A: 128}
				if s.Theme.Arrow.Or(color.White) != want {
					t.Fatalf("expected %v, got %v", want, s.Theme.Arrow.Color)
				}
				if s.Theme.Body.Or(color.White) != color.White {
					t.Fatalf("unset color must fall back")
				}
			},
		},
		{name: "negative_damping", yaml: "damping: -1\n", wantErr: true},
		{name: "bad_color", yaml: "theme:\n  body: \"#abc\"\n", wantErr: true},
		{name: "not_a_number", yaml: "stiffness: [1]\n", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := DecodeTuningSpec([]byte(c.yaml))
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			c.check(t, s)
		})
	}
}

func TestTuningSpecValidate(t *testing.T) {
	s := DefaultTuningSpec()
	s.Gravity = s.Gravity * 0
	if err := s.Validate(); err != nil {
		t.Fatalf("zero gravity is valid: %v", err)
	}
	s.PointRadius = -2
	if err := s.Validate(); !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("expected ErrInvalidTuning, got %v", err)
	}
}

func TestLoadTuningSpecEmbedded(t *testing.T) {
	withDir(t, t.TempDir())

	s, err := LoadTuningSpec(TuningFile)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	tun := s.ToTuning()
	if tun.Stiffness != 1 || tun.PointRadius != 10 || tun.JumpStrength != 15 || tun.Damping != 2.5 {
		t.Fatalf("unexpected embedded tuning %+v", tun)
	}
	if s.Theme.Arrow.Or(color.Black) != (color.NRGBA{R: 255, G: 255, A: 255}) {
		t.Fatalf("unexpected arrow color %v", s.Theme.Arrow.Color)
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	withDir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, TuningFile), []byte("stiffness: 7\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := LoadTuningSpec("prefabs/" + TuningFile)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Stiffness != 7 {
		t.Fatalf("expected the disk copy, got stiffness %v", s.Stiffness)
	}

	if _, err := LoadTuningFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestLoadScript(t *testing.T) {
	withDir(t, t.TempDir())

	for _, name := range []string{"level2_launch", "level2_launch.tengo", "scripts/level2_launch.tengo", "prefabs/scripts/level2_launch.tengo"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s: empty script", name)
		}
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{cleanPrefabPath, "prefabs/tuning.yaml", "tuning.yaml"},
		{cleanPrefabPath, "tuning.yaml", "tuning.yaml"},
		{cleanPrefabPath, "", ""},
		{cleanScriptPath, "launch", "scripts/launch.tengo"},
		{cleanScriptPath, "prefabs/scripts/launch.tengo", "scripts/launch.tengo"},
		{cleanScriptPath, "", ""},
	}
	for _, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Fatalf("%q: expected %q, got %q", c.in, c.want, got)
		}
	}
}

func withDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}
