// Package metrics exports game counters for Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tomz197/coinshove/internal/coin"
	"github.com/tomz197/coinshove/internal/session"
)

const namespace = "coinshove"

// CoinLaunches counts coins leaving the spawn point.
var CoinLaunches = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "coin",
	Name:      "launches_total",
	Help:      "Coins launched, by denomination.",
}, []string{"denomination"})

// CoinOutcomes counts scored, blocked and missed shots.
var CoinOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "coin",
	Name:      "outcomes_total",
	Help:      "Resolved shots, by outcome.",
}, []string{"outcome"})

// SessionsActive is the number of open games.
var SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "session",
	Name:      "active",
	Help:      "Games currently running.",
})

// SessionsEnded counts game overs.
var SessionsEnded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "session",
	Name:      "ended_total",
	Help:      "Sessions that reached game over, by reason.",
}, []string{"reason"})

// FinalScore is the score distribution at game over.
var FinalScore = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "session",
	Name:      "final_score",
	Help:      "Score in cents when a session ends.",
	Buckets:   []float64{0, 5, 10, 25, 50, 75, 100, 150, 200},
})

// SessionRestarts counts restarts from the game over screen.
var SessionRestarts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "session",
	Name:      "restarts_total",
	Help:      "Restarts after game over.",
})

// Recorder feeds one game's events into the collectors. The zero value is
// ready to use; collectors are shared and safe across goroutines.
type Recorder struct {
	open bool
}

var _ session.Observer = (*Recorder)(nil)

// Open marks a game as running.
func (r *Recorder) Open() {
	if r.open {
		return
	}
	r.open = true
	SessionsActive.Inc()
}

// Close marks the game as gone. Safe to call more than once.
func (r *Recorder) Close() {
	if !r.open {
		return
	}
	r.open = false
	SessionsActive.Dec()
}

// CoinLaunched counts a launch.
func (r *Recorder) CoinLaunched(d coin.Denomination) {
	CoinLaunches.WithLabelValues(d.String()).Inc()
}

func (r *Recorder) OutcomeReported(res coin.Result) {
	CoinOutcomes.WithLabelValues(res.Outcome.String()).Inc()
}

func (r *Recorder) SessionEnded(reason session.EndReason, score int) {
	SessionsEnded.WithLabelValues(reason.String()).Inc()
	FinalScore.Observe(float64(score))
}

func (r *Recorder) SessionRestarted() {
	SessionRestarts.Inc()
}
