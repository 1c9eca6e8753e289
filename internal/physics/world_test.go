package physics

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/coinshove/internal/coin"
)

const frame = time.Second / 60

func testLayout(keeperY float64) Layout {
	return Layout{
		Width:      24,
		Height:     12,
		Spawn:      coin.Vec{X: 2, Y: 6},
		CoinRadius: 0.45,
		Goal:       Rect{X: 21, Y: 1, Width: 2, Height: 10},
		Keeper: Keeper{
			X:      16,
			Bottom: keeperY,
			Top:    keeperY,
			Speed:  1,
			Width:  0.6,
			Height: 1,
		},
	}
}

func collect(w *World) *[]coin.Category {
	var got []coin.Category
	w.OnContact(func(c coin.Category) { got = append(got, c) })
	return &got
}

func TestCoinRestsUntilLaunched(t *testing.T) {
	w := NewWorld(testLayout(11.5))
	got := collect(w)

	for i := 0; i < 60; i++ {
		w.Step(frame)
	}
	if p := w.CoinPosition(); p != (coin.Vec{X: 2, Y: 6}) {
		t.Fatalf("coin drifted to %+v", p)
	}
	if w.CoinDynamic() {
		t.Fatal("coin dynamic before launch")
	}
	if len(*got) != 0 {
		t.Fatalf("contacts = %v, want none", *got)
	}
}

func TestStraightShotReachesGoal(t *testing.T) {
	w := NewWorld(testLayout(11.5))
	got := collect(w)

	w.SetDynamicNoGravity()
	w.SetVelocity(coin.Vec{X: 15})
	for i := 0; i < 120 && len(*got) == 0; i++ {
		w.Step(frame)
	}

	if len(*got) == 0 || (*got)[0] != coin.CategoryGoal {
		t.Fatalf("contacts = %v, want goal first", *got)
	}
	if p := w.CoinPosition(); p.X < 20 || math.Abs(p.Y-6) > 1e-6 {
		t.Fatalf("coin at %+v when entering goal", p)
	}
}

func TestKeeperBlocksShot(t *testing.T) {
	w := NewWorld(testLayout(6))
	got := collect(w)

	w.SetDynamicNoGravity()
	w.SetVelocity(coin.Vec{X: 15})
	for i := 0; i < 120 && len(*got) == 0; i++ {
		w.Step(frame)
	}

	if len(*got) == 0 || (*got)[0] != coin.CategoryObstacle {
		t.Fatalf("contacts = %v, want obstacle first", *got)
	}
	if p := w.CoinPosition(); p.X > 16 {
		t.Fatalf("coin passed the keeper: %+v", p)
	}
}

func TestMachineDrivesWorld(t *testing.T) {
	w := NewWorld(testLayout(11.5))
	var results []coin.Result
	rep := reporterFunc(func(r coin.Result) { results = append(results, r) })

	cfg := coin.DefaultConfig()
	cfg.Spawn = coin.Vec{X: 2, Y: 6}
	m := coin.New(cfg, w, rep)
	w.OnContact(func(c coin.Category) {
		if c == coin.CategoryGoal {
			m.OnGoalEntered()
			return
		}
		m.OnCollision(c)
	})

	m.SelectDenomination(coin.Quarter)
	m.StartAim()
	var elapsed time.Duration
	for i := 0; i < 120 && len(results) == 0; i++ {
		elapsed += frame
		m.Tick(elapsed, frame)
		if i == 0 {
			// sin(3 * 1/60) is a shallow upward-right shot that still lands.
			m.Launch()
		}
		w.Step(frame)
	}

	if len(results) != 1 || results[0].Outcome != coin.Scored || results[0].Points != 25 {
		t.Fatalf("results = %+v, want one scored quarter", results)
	}
	if v := w.CoinVelocity(); v != (coin.Vec{}) {
		t.Fatalf("coin still moving after score: %+v", v)
	}

	for i := 0; i < 70; i++ {
		elapsed += frame
		m.Tick(elapsed, frame)
		w.Step(frame)
	}
	if m.State() != coin.Idle {
		t.Fatalf("state = %v, want idle", m.State())
	}
	if w.CoinDynamic() || w.CoinPosition() != (coin.Vec{X: 2, Y: 6}) {
		t.Fatalf("coin not back at spawn: %+v dynamic=%v", w.CoinPosition(), w.CoinDynamic())
	}
}

func TestKeeperPingPong(t *testing.T) {
	k := Keeper{X: 16, Bottom: 3, Top: 9, Speed: 1}
	tests := []struct {
		t    float64
		want float64
	}{
		{0, 3},
		{3, 6},
		{6, 9},
		{9, 6},
		{12, 3},
		{15, 6},
	}
	for _, tt := range tests {
		if got := k.CenterY(tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("CenterY(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestKeeperFollowsPath(t *testing.T) {
	layout := testLayout(0)
	layout.Keeper.Bottom, layout.Keeper.Top = 3, 9
	w := NewWorld(layout)

	for i := 0; i < 180; i++ {
		w.Step(frame)
	}
	_, y := w.KeeperBounds().Center()
	if want := layout.Keeper.CenterY(3); math.Abs(y-want) > 0.05 {
		t.Fatalf("keeper y = %v, want ~%v", y, want)
	}
}

type reporterFunc func(coin.Result)

func (f reporterFunc) ReportOutcome(r coin.Result) { f(r) }
func (f reporterFunc) ReportOutOfCoins()           {}
