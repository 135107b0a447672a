package system

import "github.com/milk9111/softbody/ecs"

// BufferSyncSystem rebuilds every body's vector buffers from its points.
type BufferSyncSystem struct{}

func NewBufferSyncSystem() *BufferSyncSystem {
	return &BufferSyncSystem{}
}

func (s *BufferSyncSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, b := range w.Bodies() {
		b.Sync()
	}
}
