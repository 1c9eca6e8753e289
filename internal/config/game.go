package config

import "time"

// Frame pacing for the local and SSH loops.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// MaxFrameDelta caps a single frame's delta so a stalled terminal cannot
// fast-forward the countdown or the coin in one step.
const MaxFrameDelta = 100 * time.Millisecond

// Render area limits (terminal cells). Larger terminals are centred.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 48
)

// Inactivity limits for SSH sessions.
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
