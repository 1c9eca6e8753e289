package coin

import "math"

// Vec is a 2D vector in field units.
type Vec struct {
	X, Y float64
}

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Rotate returns v rotated counter-clockwise by rad radians.
func (v Vec) Rotate(rad float64) Vec {
	sin, cos := math.Sincos(rad)
	return Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Body is the physics capability a coin commands. The machine never owns the
// body's lifecycle; it only switches modes and assigns velocities.
type Body interface {
	SetKinematic()
	SetDynamicNoGravity()
	SetVelocity(v Vec)
	// ZeroVelocity stops both linear and angular motion.
	ZeroVelocity()
	SetPosition(p Vec)
	SetAngle(rad float64)
}

// Category classifies what the coin touched.
type Category int

const (
	CategoryOther Category = iota
	CategoryObstacle
	CategoryGoal
)

func (c Category) String() string {
	switch c {
	case CategoryObstacle:
		return "obstacle"
	case CategoryGoal:
		return "goal"
	default:
		return "other"
	}
}

// Outcome is the terminal classification of a single launch.
type Outcome int

const (
	Miss Outcome = iota
	Blocked
	Scored
)

func (o Outcome) String() string {
	switch o {
	case Scored:
		return "scored"
	case Blocked:
		return "blocked"
	default:
		return "miss"
	}
}

// Result is what a resolved shot reports upstream. Points is only non-zero
// for Scored and always reflects the denomination captured at launch.
type Result struct {
	Outcome      Outcome
	Denomination Denomination
	Points       int
}

// Reporter receives shot results and the out-of-coins signal. It is
// implemented by the game session.
type Reporter interface {
	ReportOutcome(r Result)
	ReportOutOfCoins()
}
