package coin

import (
	"math"
	"testing"
	"time"
)

type fakeBody struct {
	kinematic bool
	dynamic   bool
	velocity  Vec
	position  Vec
	angle     float64
	zeroed    int
}

func (b *fakeBody) SetKinematic()        { b.kinematic, b.dynamic = true, false }
func (b *fakeBody) SetDynamicNoGravity() { b.kinematic, b.dynamic = false, true }
func (b *fakeBody) SetVelocity(v Vec)    { b.velocity = v }
func (b *fakeBody) ZeroVelocity()        { b.velocity = Vec{}; b.zeroed++ }
func (b *fakeBody) SetPosition(p Vec)    { b.position = p }
func (b *fakeBody) SetAngle(rad float64) { b.angle = rad }

type fakeReporter struct {
	results    []Result
	outOfCoins int
}

func (r *fakeReporter) ReportOutcome(res Result) { r.results = append(r.results, res) }
func (r *fakeReporter) ReportOutOfCoins()        { r.outOfCoins++ }

const frame = time.Second / 60

func newTestMachine(inv Inventory) (*Machine, *fakeBody, *fakeReporter) {
	cfg := DefaultConfig()
	cfg.Inventory = inv
	cfg.Spawn = Vec{X: 2, Y: 6}
	body := &fakeBody{}
	rep := &fakeReporter{}
	return New(cfg, body, rep), body, rep
}

// elapsedForMeter returns a game clock at which sin(t*speed) == meter.
func elapsedForMeter(meter, speed float64) time.Duration {
	return time.Duration(math.Asin(meter) / speed * float64(time.Second))
}

func launch(t *testing.T, m *Machine, meter float64) {
	t.Helper()
	if !m.StartAim() {
		t.Fatalf("StartAim refused in state %v", m.State())
	}
	m.Tick(elapsedForMeter(meter, m.cfg.MeterSpeed), frame)
	if !m.Launch() {
		t.Fatalf("Launch refused in state %v", m.State())
	}
}

// settle runs the deferred reset to completion.
func settle(m *Machine) {
	for i := 0; i < 120 && m.ResetPending(); i++ {
		m.Tick(0, frame)
	}
}

func TestNewSelectsFirstAvailable(t *testing.T) {
	m, body, _ := newTestMachine(Inventory{Nickel: 0, Dime: 0, Quarter: 4})
	if m.Current() != Quarter {
		t.Fatalf("current = %v, want quarter", m.Current())
	}
	if m.SpinCeiling() != 2 {
		t.Fatalf("spin ceiling = %v, want 2", m.SpinCeiling())
	}
	if !body.kinematic || body.position != (Vec{X: 2, Y: 6}) {
		t.Fatalf("body not at rest: %+v", body)
	}
}

func TestQuarterLaunchScenario(t *testing.T) {
	m, body, _ := newTestMachine(Inventory{Nickel: 5, Dime: 3, Quarter: 2})

	if !m.SelectDenomination(Quarter) {
		t.Fatal("select quarter refused")
	}
	launch(t, m, 1.0)

	if m.State() != InFlight {
		t.Fatalf("state = %v, want in_flight", m.State())
	}
	if !body.dynamic {
		t.Fatal("body not switched to dynamic")
	}
	if math.Abs(body.velocity.X-12.99) > 0.01 || math.Abs(body.velocity.Y+7.50) > 0.01 {
		t.Fatalf("velocity = %+v, want ~(12.99, -7.50)", body.velocity)
	}
	inv := m.Inventory()
	if inv[Quarter] != 1 || inv[Nickel] != 5 || inv[Dime] != 3 {
		t.Fatalf("inventory = %v, want [5 3 1]", inv)
	}
	if m.SpinRemaining() != 2 {
		t.Fatalf("spin remaining = %v, want 2", m.SpinRemaining())
	}
}

func TestLaunchOnlyFromAiming(t *testing.T) {
	m, _, _ := newTestMachine(DefaultInventory())

	if m.Launch() {
		t.Fatal("launch accepted from idle")
	}
	if m.Inventory() != DefaultInventory() {
		t.Fatal("inventory changed by idle launch")
	}

	launch(t, m, 0)
	before := m.Inventory()
	if m.Launch() {
		t.Fatal("launch accepted while in flight")
	}

	m.OnGoalEntered()
	if m.State() != Resolving {
		t.Fatalf("state = %v, want resolving", m.State())
	}
	if m.Launch() {
		t.Fatal("launch accepted while resolving")
	}
	if m.Inventory() != before {
		t.Fatalf("inventory = %v, want %v", m.Inventory(), before)
	}
	if m.Launches() != 1 {
		t.Fatalf("launches = %d, want 1", m.Launches())
	}
}

func TestSelectionGuards(t *testing.T) {
	m, _, _ := newTestMachine(Inventory{Nickel: 1, Dime: 0, Quarter: 1})

	if m.SelectDenomination(Dime) {
		t.Fatal("selected a depleted denomination")
	}
	if m.SelectDenomination(Denomination(7)) {
		t.Fatal("selected an invalid denomination")
	}
	m.StartAim()
	if m.SelectDenomination(Quarter) {
		t.Fatal("selection changed while aiming")
	}
	if m.Current() != Nickel {
		t.Fatalf("current = %v, want nickel", m.Current())
	}
}

func TestSelectRebaselinesSpinWindow(t *testing.T) {
	m, _, _ := newTestMachine(DefaultInventory())
	m.SelectDenomination(Dime)
	if m.SpinRemaining() != 3.5 || m.SpinCeiling() != 3.5 {
		t.Fatalf("spin = %v/%v, want 3.5/3.5", m.SpinRemaining(), m.SpinCeiling())
	}
	m.SelectDenomination(Nickel)
	if m.SpinRemaining() != 5 {
		t.Fatalf("spin remaining = %v, want 5", m.SpinRemaining())
	}
}

func TestMeterIsFunctionOfElapsed(t *testing.T) {
	a, _, _ := newTestMachine(DefaultInventory())
	b, _, _ := newTestMachine(DefaultInventory())
	a.StartAim()
	b.StartAim()

	target := 1234 * time.Millisecond
	a.Tick(target, target)
	for el := time.Duration(0); el < target; el += 7 * time.Millisecond {
		b.Tick(el, 7*time.Millisecond)
	}
	b.Tick(target, time.Millisecond)

	if a.Meter() != b.Meter() {
		t.Fatalf("meter differs: %v vs %v", a.Meter(), b.Meter())
	}
	if want := math.Sin(target.Seconds() * 3); a.Meter() != want {
		t.Fatalf("meter = %v, want %v", a.Meter(), want)
	}
}

func TestSpinCountdownTimesOutAsMiss(t *testing.T) {
	m, body, rep := newTestMachine(Inventory{Quarter: 1})
	launch(t, m, 0)

	prev := m.SpinRemaining()
	for i := 0; i < 200 && m.State() == InFlight; i++ {
		m.Tick(0, frame)
		got := m.SpinRemaining()
		if got < 0 {
			t.Fatalf("spin remaining went negative: %v", got)
		}
		if got > prev {
			t.Fatalf("spin remaining increased: %v -> %v", prev, got)
		}
		prev = got
	}

	if m.State() != Resolving {
		t.Fatalf("state = %v, want resolving", m.State())
	}
	if len(rep.results) != 1 || rep.results[0].Outcome != Miss || rep.results[0].Points != 0 {
		t.Fatalf("results = %+v, want one miss", rep.results)
	}
	if body.velocity != (Vec{}) {
		t.Fatalf("coin still moving: %+v", body.velocity)
	}
}

func TestSpinRotatesBody(t *testing.T) {
	m, body, _ := newTestMachine(DefaultInventory())
	launch(t, m, 0)
	m.Tick(0, 250*time.Millisecond)
	if math.Abs(body.angle-math.Pi/2) > 1e-9 {
		t.Fatalf("angle = %v, want pi/2", body.angle)
	}
}

func TestObstacleBlocks(t *testing.T) {
	m, _, rep := newTestMachine(DefaultInventory())

	if m.OnCollision(CategoryObstacle) {
		t.Fatal("collision handled while idle")
	}

	launch(t, m, 0.5)
	if m.OnCollision(CategoryOther) {
		t.Fatal("non-obstacle contact resolved the shot")
	}
	if !m.OnCollision(CategoryObstacle) {
		t.Fatal("obstacle contact ignored in flight")
	}
	// A trigger contact on the same frame must not resolve twice.
	m.OnCollision(CategoryObstacle)
	m.OnGoalEntered()

	if len(rep.results) != 1 || rep.results[0].Outcome != Blocked {
		t.Fatalf("results = %+v, want one blocked", rep.results)
	}
}

func TestScoredUsesLaunchedDenomination(t *testing.T) {
	m, _, rep := newTestMachine(DefaultInventory())
	m.SelectDenomination(Dime)
	launch(t, m, 0)

	m.OnGoalEntered()
	// Selection attempts while resolving are ignored.
	m.SelectDenomination(Quarter)

	if len(rep.results) != 1 {
		t.Fatalf("results = %+v, want one", rep.results)
	}
	r := rep.results[0]
	if r.Outcome != Scored || r.Denomination != Dime || r.Points != 10 {
		t.Fatalf("result = %+v, want scored dime 10", r)
	}
}

func TestDeferredResetRestoresSpawn(t *testing.T) {
	m, body, _ := newTestMachine(DefaultInventory())
	launch(t, m, 0)
	body.position = Vec{X: 15, Y: 3}
	m.OnGoalEntered()

	m.Tick(0, 500*time.Millisecond)
	if m.State() != Resolving {
		t.Fatalf("reset fired early, state = %v", m.State())
	}
	m.Tick(0, 500*time.Millisecond)
	if m.State() != Idle {
		t.Fatalf("state = %v, want idle", m.State())
	}
	if !body.kinematic || body.position != (Vec{X: 2, Y: 6}) || body.angle != 0 {
		t.Fatalf("body not reset: %+v", body)
	}
	if m.ResetPending() {
		t.Fatal("reset still pending")
	}
}

func TestDirectResetCancelsPending(t *testing.T) {
	m, _, _ := newTestMachine(DefaultInventory())
	launch(t, m, 0)
	m.OnGoalEntered()

	if !m.ResolveDeferredReset() {
		t.Fatal("direct reset refused while resolving")
	}
	if m.ResetPending() {
		t.Fatal("scheduled reset survived a direct reset")
	}
	if m.ResolveDeferredReset() {
		t.Fatal("reset accepted outside resolving")
	}

	// Start a new shot before the stale delay would have elapsed; it must
	// not be interrupted.
	launch(t, m, 0)
	m.Tick(0, 2*time.Second)
	if m.State() != InFlight {
		t.Fatalf("state = %v, want in_flight", m.State())
	}
}

func TestAutoAdvanceOnDepletion(t *testing.T) {
	m, _, rep := newTestMachine(Inventory{Nickel: 1, Dime: 1, Quarter: 1})
	m.SelectDenomination(Dime)
	launch(t, m, 0)
	m.OnGoalEntered()
	settle(m)

	if m.Current() != Nickel {
		t.Fatalf("current = %v, want nickel", m.Current())
	}
	if m.SpinRemaining() != 5 {
		t.Fatalf("spin remaining = %v, want 5", m.SpinRemaining())
	}

	launch(t, m, 0)
	m.OnCollision(CategoryObstacle)
	settle(m)
	if m.Current() != Quarter {
		t.Fatalf("current = %v, want quarter", m.Current())
	}
	if rep.outOfCoins != 0 {
		t.Fatal("out of coins reported early")
	}
}

func TestOutOfCoinsReportedOnce(t *testing.T) {
	initial := Inventory{Nickel: 2, Dime: 1, Quarter: 1}
	m, _, rep := newTestMachine(initial)

	for i := 0; i < 10; i++ {
		if m.State() != Idle || !m.StartAim() {
			break
		}
		m.Tick(0, frame)
		m.Launch()
		if initial.Total()-m.Inventory().Total() != m.Launches() {
			t.Fatalf("launch accounting off: %v left after %d launches", m.Inventory(), m.Launches())
		}
		m.OnGoalEntered()
		settle(m)
	}

	if m.Launches() != 4 {
		t.Fatalf("launches = %d, want 4", m.Launches())
	}
	if !m.Inventory().Empty() {
		t.Fatalf("inventory = %v, want empty", m.Inventory())
	}
	if rep.outOfCoins != 1 {
		t.Fatalf("out of coins reported %d times, want 1", rep.outOfCoins)
	}
	if m.StartAim() {
		t.Fatal("aiming allowed with no coins")
	}
}

func TestNilCollaborators(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Inventory = Inventory{Quarter: 1}
	m := New(cfg, nil, nil)

	m.StartAim()
	m.Tick(0, frame)
	m.Launch()
	m.Tick(0, 3*time.Second)
	settle(m)

	if m.State() != Idle {
		t.Fatalf("state = %v, want idle", m.State())
	}
}

func TestLaunchAngleBounds(t *testing.T) {
	tests := []struct {
		meter float64
		want  float64
	}{
		{-1, -30},
		{-0.5, -15},
		{0, 0},
		{0.25, 7.5},
		{1, 30},
		{1.5, 30},
	}
	for _, tt := range tests {
		if got := LaunchAngle(tt.meter, 30); got != tt.want {
			t.Errorf("LaunchAngle(%v) = %v, want %v", tt.meter, got, tt.want)
		}
	}

	for i := -100; i <= 100; i++ {
		a := LaunchAngle(float64(i)/100, 30)
		if a < -30 || a > 30 {
			t.Fatalf("angle %v out of bounds", a)
		}
	}
}
