package loop

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tomz197/coinshove/internal/coin"
	"github.com/tomz197/coinshove/internal/config"
	"github.com/tomz197/coinshove/internal/input"
	"github.com/tomz197/coinshove/internal/metrics"
	"github.com/tomz197/coinshove/internal/physics"
	"github.com/tomz197/coinshove/internal/session"
)

// Game is one player's coin shove: the coin machine, the session and the
// physics world it drives. All methods run on the frame loop goroutine.
type Game struct {
	ID string

	tuning   config.Tuning
	machine  *coin.Machine
	session  *session.Session
	world    *physics.World
	clock    time.Duration // Game time since the last (re)start
	logger   *log.Logger
	recorder *metrics.Recorder
}

// NewGame builds a game from tuning. A nil logger discards output; a nil
// recorder skips metrics.
func NewGame(t config.Tuning, logger *log.Logger, rec *metrics.Recorder) *Game {
	id := uuid.NewString()
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		ID:       id,
		tuning:   t,
		logger:   logger.With("session", id),
		recorder: rec,
	}

	opts := []session.Option{session.WithRestart(g.rebuild)}
	if rec != nil {
		opts = append(opts, session.WithObserver(rec))
	}
	g.session = session.New(t.SessionDuration(), opts...)
	g.rebuild()

	g.logger.Info("game started", "duration", g.session.Duration())
	return g
}

// rebuild replaces the coin and the world with fresh ones. The session resets
// itself before calling this on restart.
func (g *Game) rebuild() {
	g.clock = 0
	g.world = physics.NewWorld(g.tuning.Layout())
	g.machine = coin.New(g.tuning.CoinConfig(), g.world, reporter{g})
	g.world.OnContact(g.contact)
}

func (g *Game) contact(c coin.Category) {
	if c == coin.CategoryGoal {
		g.machine.OnGoalEntered()
		return
	}
	g.machine.OnCollision(c)
}

// Update advances the game by one frame: apply input, tick the coin, step
// physics, tick the session. Once the session has ended only a restart is
// accepted and nothing moves.
func (g *Game) Update(sig input.Signals, dt time.Duration) {
	if dt > config.MaxFrameDelta {
		dt = config.MaxFrameDelta
	}

	if g.session.Status() == session.Ended {
		if g.session.PollRestart(sig.Restart) {
			g.logger.Info("game restarted")
		}
		return
	}

	g.apply(sig)

	g.clock += dt
	g.machine.Tick(g.clock, dt)
	g.world.Step(dt)
	g.session.Tick(dt)

	if g.session.Status() == session.Ended {
		g.logger.Info("game over", "reason", g.session.Reason(), "score", g.session.Score())
	}
}

func (g *Game) apply(sig input.Signals) {
	m := g.machine
	if sig.Select > 0 && sig.Select <= len(coin.Priority) {
		m.SelectDenomination(coin.Priority[sig.Select-1])
	}
	if !sig.Aim {
		return
	}
	if m.State() == coin.Aiming {
		d := m.Current()
		if m.Launch() {
			g.logger.Debug("coin launched", "denomination", d, "angle", coin.LaunchAngle(m.Meter(), g.tuning.Shot.MaxAngle))
			if g.recorder != nil {
				g.recorder.CoinLaunched(d)
			}
		}
		return
	}
	m.StartAim()
}

// Machine returns the coin state machine.
func (g *Game) Machine() *coin.Machine { return g.machine }

// Session returns the timed session.
func (g *Game) Session() *session.Session { return g.session }

// World returns the physics world.
func (g *Game) World() *physics.World { return g.world }

// Close logs the final state.
func (g *Game) Close() {
	g.logger.Info("game closed", "score", g.session.Score(), "status", g.session.Status())
}

// reporter sits between the coin and the session so outcomes get logged.
type reporter struct {
	g *Game
}

func (r reporter) ReportOutcome(res coin.Result) {
	r.g.logger.Debug("shot resolved", "outcome", res.Outcome, "denomination", res.Denomination, "points", res.Points)
	r.g.session.ReportOutcome(res)
}

func (r reporter) ReportOutOfCoins() {
	r.g.logger.Debug("out of coins")
	r.g.session.ReportOutOfCoins()
}
