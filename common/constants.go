package common

const (
	BaseWidth  = 800
	BaseHeight = 600

	// MaxFrameDelta is the longest step, in seconds, a single tick integrates.
	MaxFrameDelta = 1.0 / 30.0
)
