package session

import (
	"testing"
	"time"

	"github.com/tomz197/coinshove/internal/coin"
)

type recorder struct {
	outcomes []coin.Result
	ended    []EndReason
	restarts int
}

func (r *recorder) OutcomeReported(res coin.Result)      { r.outcomes = append(r.outcomes, res) }
func (r *recorder) SessionEnded(reason EndReason, _ int) { r.ended = append(r.ended, reason) }
func (r *recorder) SessionRestarted()                    { r.restarts++ }

const frame = time.Second / 60

func TestTimerExpiresAfterDuration(t *testing.T) {
	rec := &recorder{}
	s := New(60*time.Second, WithObserver(rec))
	s.AddScore(15)

	for i := 0; i < 60; i++ {
		s.Tick(time.Second)
	}

	if s.Status() != Ended {
		t.Fatalf("status = %v, want ended", s.Status())
	}
	if s.Reason() != ReasonTimeExpired || s.Reason().String() != "time expired" {
		t.Fatalf("reason = %q, want time expired", s.Reason())
	}
	if s.Remaining() != 0 {
		t.Fatalf("remaining = %v, want 0", s.Remaining())
	}
	if s.Score() != 15 {
		t.Fatalf("score = %d, want 15", s.Score())
	}
	if len(rec.ended) != 1 {
		t.Fatalf("ended notified %d times, want 1", len(rec.ended))
	}
}

func TestTimerBoundary(t *testing.T) {
	tests := []struct {
		name string
		step time.Duration
	}{
		{"whole seconds", time.Second},
		{"50 fps frames", 20 * time.Millisecond},
		{"frame deltas", time.Second / 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(60 * time.Second)
			var elapsed time.Duration
			for elapsed+tt.step < 60*time.Second {
				s.Tick(tt.step)
				elapsed += tt.step
			}
			if s.Status() != Active {
				t.Fatalf("ended early after %v", elapsed)
			}
			s.Tick(tt.step)
			if s.Status() != Ended || s.Reason() != ReasonTimeExpired {
				t.Fatalf("got %v/%v after %v, want ended/time expired", s.Status(), s.Reason(), elapsed+tt.step)
			}
		})
	}
}

func TestTimerClampsAtZero(t *testing.T) {
	s := New(time.Second)
	s.Tick(5 * time.Second)
	if s.Remaining() != 0 || s.RemainingDisplay() != 0 {
		t.Fatalf("remaining = %v, want 0", s.Remaining())
	}
}

func TestRemainingDisplayRoundsUp(t *testing.T) {
	s := New(60 * time.Second)
	s.Tick(100 * time.Millisecond)
	if got := s.RemainingDisplay(); got != 60 {
		t.Fatalf("display = %d, want 60", got)
	}
	s.Tick(time.Second)
	if got := s.RemainingDisplay(); got != 59 {
		t.Fatalf("display = %d, want 59", got)
	}
}

func TestReportOutcome(t *testing.T) {
	tests := []struct {
		name   string
		result coin.Result
		want   int
	}{
		{"scored quarter", coin.Result{Outcome: coin.Scored, Denomination: coin.Quarter, Points: 25}, 25},
		{"blocked", coin.Result{Outcome: coin.Blocked, Denomination: coin.Dime}, 0},
		{"miss", coin.Result{Outcome: coin.Miss, Denomination: coin.Nickel}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			s := New(DefaultDuration, WithObserver(rec))
			s.ReportOutcome(tt.result)
			if s.Score() != tt.want {
				t.Fatalf("score = %d, want %d", s.Score(), tt.want)
			}
			if s.Status() != Active {
				t.Fatalf("status = %v, want active", s.Status())
			}
			if len(rec.outcomes) != 1 || rec.outcomes[0] != tt.result {
				t.Fatalf("observer saw %+v", rec.outcomes)
			}
		})
	}
}

func TestScoreIsMonotonic(t *testing.T) {
	s := New(DefaultDuration)
	s.AddScore(10)
	s.AddScore(-5)
	s.AddScore(0)
	if s.Score() != 10 {
		t.Fatalf("score = %d, want 10", s.Score())
	}
}

func TestEndFreezesSession(t *testing.T) {
	s := New(DefaultDuration)
	s.AddScore(5)
	s.Tick(10 * time.Second)
	s.ReportOutOfCoins()

	if s.Reason() != ReasonOutOfCoins {
		t.Fatalf("reason = %v, want out of coins", s.Reason())
	}
	remaining := s.Remaining()

	s.Tick(10 * time.Second)
	s.AddScore(25)
	s.ReportOutcome(coin.Result{Outcome: coin.Scored, Points: 10})
	s.End(ReasonTimeExpired)

	if s.Remaining() != remaining {
		t.Fatalf("timer moved after end: %v -> %v", remaining, s.Remaining())
	}
	if s.Score() != 5 {
		t.Fatalf("score = %d, want 5", s.Score())
	}
	if s.Reason() != ReasonOutOfCoins {
		t.Fatalf("reason overwritten: %v", s.Reason())
	}
	if !s.AwaitingRestart() {
		t.Fatal("not awaiting restart")
	}
}

func TestOutOfCoinsOnlyWhileActive(t *testing.T) {
	rec := &recorder{}
	s := New(time.Second, WithObserver(rec))
	s.Tick(time.Second)
	s.ReportOutOfCoins()
	s.ReportOutOfCoins()

	if s.Reason() != ReasonTimeExpired {
		t.Fatalf("reason = %v, want time expired", s.Reason())
	}
	if len(rec.ended) != 1 {
		t.Fatalf("ended notified %d times, want 1", len(rec.ended))
	}
}

func TestPollRestart(t *testing.T) {
	rec := &recorder{}
	rebuilt := 0
	s := New(30*time.Second, WithObserver(rec), WithRestart(func() { rebuilt++ }))

	if s.PollRestart(true) {
		t.Fatal("restart accepted while active")
	}

	s.AddScore(40)
	s.End(ReasonOutOfCoins)
	if s.PollRestart(false) {
		t.Fatal("restart without signal")
	}
	if !s.PollRestart(true) {
		t.Fatal("restart refused while ended")
	}

	if rebuilt != 1 || rec.restarts != 1 {
		t.Fatalf("rebuilt = %d, restarts = %d, want 1/1", rebuilt, rec.restarts)
	}
	if s.Status() != Active || s.Score() != 0 || s.Remaining() != 30 {
		t.Fatalf("session not reinitialized: status=%v score=%d remaining=%v", s.Status(), s.Score(), s.Remaining())
	}
	if s.Reason() != ReasonNone || s.AwaitingRestart() {
		t.Fatal("end state not cleared")
	}
	if s.PollRestart(true) {
		t.Fatal("second restart accepted while active")
	}
}

func TestSessionEndsWhenCoinsRunOut(t *testing.T) {
	cfg := coin.DefaultConfig()
	cfg.Inventory = coin.Inventory{coin.Nickel: 1, coin.Dime: 1, coin.Quarter: 1}
	s := New(DefaultDuration)
	m := coin.New(cfg, nil, s)

	for m.StartAim() {
		m.Tick(0, frame)
		m.Launch()
		m.OnGoalEntered()
		for i := 0; i < 120 && m.ResetPending(); i++ {
			m.Tick(0, frame)
			s.Tick(frame)
		}
	}

	if s.Status() != Ended || s.Reason() != ReasonOutOfCoins {
		t.Fatalf("status=%v reason=%v, want ended/out of coins", s.Status(), s.Reason())
	}
	if s.Score() != 40 {
		t.Fatalf("score = %d, want 40", s.Score())
	}
}
