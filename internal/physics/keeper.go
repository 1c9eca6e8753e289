package physics

// Keeper is the ambient-motion obstacle: a box that slides up and down
// between Bottom and Top at Speed units per second.
type Keeper struct {
	X      float64
	Bottom float64
	Top    float64
	Speed  float64
	Width  float64
	Height float64
}

// CenterY returns the keeper's vertical centre at game time t (seconds).
func (k Keeper) CenterY(t float64) float64 {
	if k.Top < k.Bottom {
		return k.Bottom
	}
	return PingPong(t*k.Speed, k.Top-k.Bottom) + k.Bottom
}

// Bounds returns the keeper's box at game time t.
func (k Keeper) Bounds(t float64) Rect {
	y := k.CenterY(t)
	return Rect{X: k.X - k.Width/2, Y: y - k.Height/2, Width: k.Width, Height: k.Height}
}
