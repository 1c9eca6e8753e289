package physics

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/tomz197/coinshove/internal/coin"
)

// Collision types used to route Chipmunk contacts.
const (
	collisionCoin cp.CollisionType = iota + 1
	collisionKeeper
	collisionGoal
)

const coinMass = 1.0

// Layout describes the playfield.
type Layout struct {
	Width, Height float64
	Spawn         coin.Vec
	CoinRadius    float64
	Goal          Rect
	Keeper        Keeper
}

// ContactFunc receives contacts after a step.
type ContactFunc func(c coin.Category)

// World owns the Chipmunk space. It implements coin.Body for the coin.
type World struct {
	layout Layout
	space  *cp.Space

	coinBody   *cp.Body
	keeperBody *cp.Body

	clock     float64 // Seconds since creation, drives the keeper
	dynamic   bool
	contacts  []coin.Category
	onContact ContactFunc
}

// Compile-time check that World can be driven by the coin machine.
var _ coin.Body = (*World)(nil)

// NewWorld builds the playfield with the coin resting at the spawn point.
func NewWorld(layout Layout) *World {
	w := &World{layout: layout}

	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	w.space = space

	// Coin: starts kinematic, becomes dynamic on launch.
	radius := layout.CoinRadius
	w.coinBody = space.AddBody(cp.NewBody(coinMass, cp.MomentForCircle(coinMass, 0, radius, cp.Vector{})))
	coinShape := space.AddShape(cp.NewCircle(w.coinBody, radius, cp.Vector{}))
	coinShape.SetMass(coinMass)
	coinShape.SetCollisionType(collisionCoin)
	w.coinBody.SetPosition(cp.Vector{X: layout.Spawn.X, Y: layout.Spawn.Y})
	w.coinBody.SetType(cp.BODY_KINEMATIC)

	// Keeper: kinematic box moved by velocity so contacts stay continuous.
	k := layout.Keeper
	w.keeperBody = space.AddBody(cp.NewKinematicBody())
	w.keeperBody.SetPosition(cp.Vector{X: k.X, Y: k.CenterY(0)})
	keeperShape := space.AddShape(cp.NewBox(w.keeperBody, k.Width, k.Height, 0))
	keeperShape.SetCollisionType(collisionKeeper)

	// Goal: static sensor.
	g := layout.Goal
	goalShape := space.AddShape(cp.NewBox2(space.StaticBody, cp.BB{L: g.X, B: g.Y, R: g.X + g.Width, T: g.Y + g.Height}, 0))
	goalShape.SetSensor(true)
	goalShape.SetCollisionType(collisionGoal)

	w.handle(collisionKeeper, coin.CategoryObstacle)
	w.handle(collisionGoal, coin.CategoryGoal)
	return w
}

// handle queues a contact of the given category whenever the coin begins
// touching a shape of type other. The contact itself is rejected: the coin
// stops where it touched instead of bouncing.
func (w *World) handle(other cp.CollisionType, c coin.Category) {
	h := w.space.NewCollisionHandler(collisionCoin, other)
	h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, data interface{}) bool {
		w.contacts = append(w.contacts, c)
		return false
	}
}

// OnContact sets the receiver for contacts.
func (w *World) OnContact(fn ContactFunc) {
	w.onContact = fn
}

// Step advances the simulation by dt and dispatches the contacts it found.
// Dispatch happens after the space has unlocked, so handlers may switch body
// modes freely.
func (w *World) Step(dt time.Duration) {
	step := dt.Seconds()
	if step <= 0 {
		return
	}

	w.clock += step
	k := w.layout.Keeper
	target := k.CenterY(w.clock)
	pos := w.keeperBody.Position()
	w.keeperBody.SetVelocity(0, (target-pos.Y)/step)

	w.space.Step(step)

	contacts := w.contacts
	w.contacts = w.contacts[:0]
	if w.onContact == nil {
		return
	}
	for _, c := range contacts {
		w.onContact(c)
	}
}

// SetKinematic freezes the coin out of the simulation's dynamics.
func (w *World) SetKinematic() {
	w.coinBody.SetType(cp.BODY_KINEMATIC)
	w.dynamic = false
}

// SetDynamicNoGravity lets the coin move under its own velocity. The space
// has no gravity.
func (w *World) SetDynamicNoGravity() {
	w.coinBody.SetType(cp.BODY_DYNAMIC)
	w.dynamic = true
}

// SetVelocity assigns the coin's linear velocity.
func (w *World) SetVelocity(v coin.Vec) {
	w.coinBody.SetVelocity(v.X, v.Y)
}

// ZeroVelocity stops linear and angular motion.
func (w *World) ZeroVelocity() {
	w.coinBody.SetVelocity(0, 0)
	w.coinBody.SetAngularVelocity(0)
}

// SetPosition teleports the coin.
func (w *World) SetPosition(p coin.Vec) {
	w.coinBody.SetPosition(cp.Vector{X: p.X, Y: p.Y})
}

// SetAngle sets the coin's orientation.
func (w *World) SetAngle(rad float64) {
	w.coinBody.SetAngle(rad)
}

// CoinPosition returns where the coin is.
func (w *World) CoinPosition() coin.Vec {
	p := w.coinBody.Position()
	return coin.Vec{X: p.X, Y: p.Y}
}

// CoinVelocity returns the coin's linear velocity.
func (w *World) CoinVelocity() coin.Vec {
	v := w.coinBody.Velocity()
	return coin.Vec{X: v.X, Y: v.Y}
}

// CoinAngle returns the coin's orientation in radians.
func (w *World) CoinAngle() float64 {
	return w.coinBody.Angle()
}

// CoinDynamic reports whether the coin is simulated.
func (w *World) CoinDynamic() bool {
	return w.dynamic
}

// KeeperBounds returns the keeper's current box.
func (w *World) KeeperBounds() Rect {
	k := w.layout.Keeper
	p := w.keeperBody.Position()
	return Rect{X: p.X - k.Width/2, Y: p.Y - k.Height/2, Width: k.Width, Height: k.Height}
}

// Layout returns the playfield description.
func (w *World) Layout() Layout {
	return w.layout
}
