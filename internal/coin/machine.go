package coin

import (
	"math"
	"time"

	"github.com/tomz197/coinshove/internal/deferred"
)

// ShotState is the lifecycle phase of the coin.
type ShotState int

const (
	Idle      ShotState = iota // No active shot; selection allowed
	Aiming                     // Meter oscillating
	InFlight                   // Launched and spinning
	Resolving                  // Outcome decided, waiting for reset
)

func (s ShotState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Aiming:
		return "aiming"
	case InFlight:
		return "in_flight"
	case Resolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// Config holds the tunables of a coin.
type Config struct {
	Table      Table
	Inventory  Inventory
	ShotPower  float64       // Launch speed in field units per second
	MeterSpeed float64       // Meter angular frequency (rad/s)
	MaxAngle   float64       // Launch angle at full meter deflection (degrees)
	SpinRate   float64       // Visual spin (degrees per second)
	ResetDelay time.Duration // Delay between outcome and reset
	Spawn      Vec           // Rest position
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Table:      DefaultTable(),
		Inventory:  DefaultInventory(),
		ShotPower:  15,
		MeterSpeed: 3,
		MaxAngle:   30,
		SpinRate:   360,
		ResetDelay: time.Second,
	}
}

// Machine is the state machine of a single coin.
type Machine struct {
	cfg      Config
	body     Body
	reporter Reporter

	state     ShotState
	inventory Inventory
	current   Denomination
	launched  Denomination // Captured at launch; scoring uses this

	meter         float64
	spinCeiling   float64 // Seconds
	spinRemaining float64 // Seconds
	angle         float64 // Visual orientation (radians)

	reset       deferred.Task
	launches    int
	outOfCoins  bool
	lastOutcome Outcome
	resolved    int
}

// New creates a coin at rest and selects the first available denomination.
// body and rep may be nil.
func New(cfg Config, body Body, rep Reporter) *Machine {
	cfg.Inventory.normalize()
	m := &Machine{
		cfg:       cfg,
		body:      body,
		reporter:  rep,
		inventory: cfg.Inventory,
		current:   Nickel,
	}
	if d, ok := m.inventory.FirstAvailable(); ok {
		m.setDenomination(d)
	} else {
		m.setDenomination(Nickel)
	}
	m.restBody()
	return m
}

// SetReporter replaces the outcome receiver.
func (m *Machine) SetReporter(rep Reporter) {
	m.reporter = rep
}

// SelectDenomination switches the current coin. Only allowed while Idle and
// when the denomination has coins left.
func (m *Machine) SelectDenomination(d Denomination) bool {
	if m.state != Idle || m.inventory.Remaining(d) <= 0 {
		return false
	}
	m.setDenomination(d)
	return true
}

// StartAim begins aiming with the current denomination.
func (m *Machine) StartAim() bool {
	if m.state != Idle || m.inventory.Remaining(m.current) <= 0 {
		return false
	}
	m.state = Aiming
	m.meter = 0
	return true
}

// Tick advances the coin by dt. elapsed is the absolute game clock; the meter
// is a pure function of it.
func (m *Machine) Tick(elapsed, dt time.Duration) {
	m.reset.Advance(dt)

	switch m.state {
	case Aiming:
		m.meter = math.Sin(elapsed.Seconds() * m.cfg.MeterSpeed)
	case InFlight:
		step := dt.Seconds()
		m.spinRemaining = math.Max(0, m.spinRemaining-step)
		m.angle = math.Mod(m.angle+degToRad(m.cfg.SpinRate)*step, 2*math.Pi)
		if m.body != nil {
			m.body.SetAngle(m.angle)
		}
		if m.spinRemaining <= 0 {
			m.resolve(Miss)
		}
	}
}

// Launch fires the coin at the current meter angle. Only valid while Aiming.
func (m *Machine) Launch() bool {
	if m.state != Aiming || !m.inventory.take(m.current) {
		return false
	}
	m.state = InFlight
	m.launched = m.current
	m.launches++
	m.spinRemaining = m.spinCeiling

	angle := LaunchAngle(m.meter, m.cfg.MaxAngle)
	if m.body != nil {
		m.body.SetDynamicNoGravity()
		m.body.SetVelocity(LaunchVelocity(angle, m.cfg.ShotPower))
	}
	return true
}

// OnCollision handles a solid or trigger contact. Only obstacles matter.
func (m *Machine) OnCollision(c Category) bool {
	if c != CategoryObstacle || m.state != InFlight {
		return false
	}
	m.resolve(Blocked)
	return true
}

// OnGoalEntered scores the launched coin.
func (m *Machine) OnGoalEntered() bool {
	if m.state != InFlight {
		return false
	}
	m.resolve(Scored)
	return true
}

// ResolveDeferredReset puts the coin back at the spawn point and returns to
// Idle. It normally runs from the scheduled reset; calling it directly
// cancels that schedule.
func (m *Machine) ResolveDeferredReset() bool {
	if m.state != Resolving {
		return false
	}
	m.reset.Cancel()

	m.restBody()
	m.state = Idle
	m.meter = 0

	if m.inventory.Remaining(m.current) > 0 {
		m.setDenomination(m.current)
		return true
	}
	if d, ok := m.inventory.FirstAvailable(); ok {
		m.setDenomination(d)
		return true
	}
	if !m.outOfCoins {
		m.outOfCoins = true
		if m.reporter != nil {
			m.reporter.ReportOutOfCoins()
		}
	}
	return true
}

// resolve freezes the coin, schedules the reset and reports the result.
func (m *Machine) resolve(o Outcome) {
	m.state = Resolving
	m.lastOutcome = o
	m.resolved++
	if m.body != nil {
		m.body.ZeroVelocity()
	}

	m.reset.Cancel()
	m.reset.Schedule(m.cfg.ResetDelay, func() { m.ResolveDeferredReset() })

	r := Result{Outcome: o, Denomination: m.launched}
	if o == Scored {
		r.Points = m.cfg.Table.Spec(m.launched).Value
	}
	if m.reporter != nil {
		m.reporter.ReportOutcome(r)
	}
}

func (m *Machine) setDenomination(d Denomination) {
	m.current = d
	m.spinCeiling = m.cfg.Table.Spec(d).SpinTime.Seconds()
	m.spinRemaining = m.spinCeiling
}

func (m *Machine) restBody() {
	m.angle = 0
	if m.body == nil {
		return
	}
	m.body.SetPosition(m.cfg.Spawn)
	m.body.SetAngle(0)
	m.body.SetKinematic()
	m.body.ZeroVelocity()
}

// State returns the current shot state.
func (m *Machine) State() ShotState { return m.state }

// Current returns the selected denomination.
func (m *Machine) Current() Denomination { return m.current }

// Inventory returns a copy of the remaining coins.
func (m *Machine) Inventory() Inventory { return m.inventory }

// Meter returns the aim meter in [-1, 1].
func (m *Machine) Meter() float64 { return m.meter }

// SpinRemaining returns the seconds left in the spin window.
func (m *Machine) SpinRemaining() float64 { return m.spinRemaining }

// SpinCeiling returns the spin window of the current denomination in seconds.
func (m *Machine) SpinCeiling() float64 { return m.spinCeiling }

// Angle returns the visual orientation in radians.
func (m *Machine) Angle() float64 { return m.angle }

// Table returns the denomination table in use.
func (m *Machine) Table() Table { return m.cfg.Table }

// Launches returns how many coins have been launched.
func (m *Machine) Launches() int { return m.launches }

// LastOutcome returns the most recent outcome and whether any shot has
// resolved yet.
func (m *Machine) LastOutcome() (Outcome, bool) { return m.lastOutcome, m.resolved > 0 }

// ResetPending reports whether a deferred reset is scheduled.
func (m *Machine) ResetPending() bool { return m.reset.Pending() }

// LaunchAngle maps a meter value to a launch angle in degrees, bounded to
// ±maxDeg.
func LaunchAngle(meter, maxDeg float64) float64 {
	meter = math.Max(-1, math.Min(1, meter))
	return meter * maxDeg
}

// LaunchVelocity rotates the forward unit vector by -angleDeg and scales it
// by power.
func LaunchVelocity(angleDeg, power float64) Vec {
	return Vec{X: 1}.Rotate(-degToRad(angleDeg)).Scale(power)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
