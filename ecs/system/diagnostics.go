package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/milk9111/softbody/ecs"
)

// DiagnosticsSystem logs each body's positions, forces and ground state every
// Every ticks. Zero Every disables it.
type DiagnosticsSystem struct {
	Every  uint64
	Logf   func(format string, args ...any)
	frames uint64
}

func NewDiagnosticsSystem(every uint64) *DiagnosticsSystem {
	return &DiagnosticsSystem{Every: every, Logf: log.Printf}
}

func (s *DiagnosticsSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.Every == 0 {
		return
	}
	s.frames++
	if s.frames%s.Every != 0 {
		return
	}
	logf := s.Logf
	if logf == nil {
		logf = log.Printf
	}
	for _, b := range w.Bodies() {
		logf("diag: %s pos: %s", b.Name, formatPairs(b.Positions.Len(), func(i int) (float64, float64) {
			v := b.Positions.At(i)
			return v.X, v.Y
		}))
		logf("diag: %s force: %s", b.Name, formatPairs(b.Forces.Len(), func(i int) (float64, float64) {
			v := b.Forces.At(i)
			return v.X, v.Y
		}))
		logf("diag: %s on ground: %v normal: %.1f", b.Name, b.OnGround, b.NormalForce())
	}
}

// DescribeBody returns the one-line summary used by the debug overlay.
func DescribeBody(b *ecs.Body) string {
	if b == nil {
		return ""
	}
	c := b.Centroid()
	return fmt.Sprintf("%s center=(%.0f,%.0f) ground=%v N=%.1f", b.Name, c.X, c.Y, b.OnGround, b.NormalForce())
}

func formatPairs(n int, at func(i int) (float64, float64)) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		x, y := at(i)
		parts[i] = fmt.Sprintf("[%.0f,%.0f]", x, y)
	}
	return strings.Join(parts, ", ")
}
