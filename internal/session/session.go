// Package session tracks a timed game: score, countdown, how it ended and
// when the player asked to play again.
package session

import (
	"math"
	"time"

	"github.com/tomz197/coinshove/internal/coin"
)

// DefaultDuration is the length of a session.
const DefaultDuration = 60 * time.Second

// Status is the session phase.
type Status int

const (
	Active Status = iota
	Ended
)

func (s Status) String() string {
	if s == Ended {
		return "ended"
	}
	return "active"
}

// EndReason records why a session ended.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonTimeExpired
	ReasonOutOfCoins
)

func (r EndReason) String() string {
	switch r {
	case ReasonTimeExpired:
		return "time expired"
	case ReasonOutOfCoins:
		return "inventory exhausted"
	default:
		return "none"
	}
}

// Banner is the headline shown on the game over screen.
func (r EndReason) Banner() string {
	switch r {
	case ReasonTimeExpired:
		return "TIME'S UP!"
	case ReasonOutOfCoins:
		return "YOU'RE OUT OF COINS!"
	default:
		return ""
	}
}

// Observer is told about everything that changes the session. All methods
// are called synchronously from the frame loop.
type Observer interface {
	OutcomeReported(r coin.Result)
	SessionEnded(reason EndReason, score int)
	SessionRestarted()
}

// Option configures a Session.
type Option func(*Session)

// WithObserver attaches an observer.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithRestart sets the callback that rebuilds the rest of the game when the
// player restarts.
func WithRestart(fn func()) Option {
	return func(s *Session) { s.onRestart = fn }
}

// Session is the timed game instance.
type Session struct {
	duration  time.Duration
	remaining time.Duration
	score     int
	status    Status
	reason    EndReason

	awaitingRestart bool
	observer        Observer
	onRestart       func()
}

// Compile-time check that Session receives coin results.
var _ coin.Reporter = (*Session)(nil)

// New starts an active session with the given countdown.
func New(duration time.Duration, opts ...Option) *Session {
	if duration <= 0 {
		duration = DefaultDuration
	}
	s := &Session{
		duration:  duration,
		remaining: duration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tick counts the timer down and ends the session when it reaches zero.
func (s *Session) Tick(dt time.Duration) {
	if s.status != Active {
		return
	}
	s.remaining = max(0, s.remaining-dt)
	if s.remaining <= 0 {
		s.End(ReasonTimeExpired)
	}
}

// AddScore adds points while the session is active.
func (s *Session) AddScore(points int) {
	if s.status != Active || points <= 0 {
		return
	}
	s.score += points
}

// ReportOutcome applies the result of a shot.
func (s *Session) ReportOutcome(r coin.Result) {
	if s.observer != nil {
		s.observer.OutcomeReported(r)
	}
	switch r.Outcome {
	case coin.Scored:
		s.AddScore(r.Points)
	case coin.Blocked:
		s.onBlocked(r)
	case coin.Miss:
		s.onMiss(r)
	}
}

// onMiss is the extension point for missed shots. Misses cost nothing.
func (s *Session) onMiss(coin.Result) {}

// onBlocked is the extension point for blocked shots. Blocks cost nothing.
func (s *Session) onBlocked(coin.Result) {}

// ReportOutOfCoins ends the session when the purse is empty.
func (s *Session) ReportOutOfCoins() {
	if s.status != Active {
		return
	}
	s.End(ReasonOutOfCoins)
}

// End finishes the session. Only the first call has any effect.
func (s *Session) End(reason EndReason) {
	if s.status != Active {
		return
	}
	s.status = Ended
	s.reason = reason
	s.awaitingRestart = true
	if s.observer != nil {
		s.observer.SessionEnded(reason, s.score)
	}
}

// PollRestart is checked once per frame. When the session has ended and the
// restart signal is present, it requests a full reinitialization and starts
// over. Returns true if a restart happened.
func (s *Session) PollRestart(signal bool) bool {
	if s.status != Ended || !s.awaitingRestart || !signal {
		return false
	}
	s.status = Active
	s.reason = ReasonNone
	s.awaitingRestart = false
	s.score = 0
	s.remaining = s.duration

	if s.onRestart != nil {
		s.onRestart()
	}
	if s.observer != nil {
		s.observer.SessionRestarted()
	}
	return true
}

// Status returns the session phase.
func (s *Session) Status() Status { return s.status }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Remaining returns the countdown in seconds.
func (s *Session) Remaining() float64 { return s.remaining.Seconds() }

// RemainingDisplay returns the countdown rounded up to whole seconds.
func (s *Session) RemainingDisplay() int { return int(math.Ceil(s.remaining.Seconds())) }

// Duration returns the starting countdown.
func (s *Session) Duration() time.Duration { return s.duration }

// Reason returns why the session ended, or ReasonNone while active.
func (s *Session) Reason() EndReason { return s.reason }

// AwaitingRestart reports whether the session is waiting for a restart signal.
func (s *Session) AwaitingRestart() bool { return s.awaitingRestart }
