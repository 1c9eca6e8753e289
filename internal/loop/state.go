package loop

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/coinshove/internal/config"
	"github.com/tomz197/coinshove/internal/draw"
	"github.com/tomz197/coinshove/internal/input"
	"github.com/tomz197/coinshove/internal/session"
)

// Screen is which view the client is showing.
type Screen int

const (
	ScreenStart    Screen = iota // Title screen, no game yet
	ScreenPlaying                // Session active
	ScreenGameOver               // Session ended, waiting for R
)

// Options configures Run.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Tuning       *config.Tuning // Nil uses config.DefaultTuning
	Logger       *log.Logger    // Nil discards
	Metrics      bool           // Record Prometheus metrics
	Inactivity   bool           // Warn and disconnect idle players
}

// ClientState is what the frame loop tracks besides the game itself.
type ClientState struct {
	Screen       Screen
	Input        input.Signals
	Running      bool
	delta        time.Duration
	lastInput    time.Time
	isInactive   bool
	prevScreen   Screen
	wasInactive  bool
	termSizeFunc draw.TermSizeFunc
}

// NewClientState creates the state for a fresh connection.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:    ScreenStart,
		Running:   true,
		lastInput: time.Now(),
	}
}

// screenFor maps a game to the screen that shows it.
func screenFor(g *Game) Screen {
	switch {
	case g == nil:
		return ScreenStart
	case g.Session().Status() == session.Ended:
		return ScreenGameOver
	default:
		return ScreenPlaying
	}
}
