// Package physics runs the coin playfield on Chipmunk2D: the coin body the
// state machine commands, the keeper that blocks shots and the goal sensor.
// Contacts are reported back by category after each step.
package physics

import "math"

// Rect is an axis-aligned box; X, Y is the corner with the smallest
// coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the middle of the box.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// PingPong bounces t between 0 and length.
func PingPong(t, length float64) float64 {
	if length <= 0 {
		return 0
	}
	t = math.Mod(t, 2*length)
	if t < 0 {
		t += 2 * length
	}
	return length - math.Abs(t-length)
}

