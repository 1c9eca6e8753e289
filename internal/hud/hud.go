// Package hud builds the read-only view of a running game: what the player
// sees each frame as text.
package hud

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomz197/coinshove/internal/coin"
	"github.com/tomz197/coinshove/internal/session"
)

// MeterCells is the width of the aim meter (without brackets).
const MeterCells = 21

// Instructions is the controls reminder.
var Instructions = []string{
	"[1/2/3] Select coin type",
	"[SPACE] Aim, SPACE again to shoot!",
}

// CoinLine is one row of the inventory panel.
type CoinLine struct {
	Key          int
	Denomination coin.Denomination
	Value        int
	Remaining    int
	Selected     bool
}

// Snapshot is everything the display needs for one frame.
type Snapshot struct {
	Score     int
	Remaining float64 // Seconds
	Status    session.Status
	Reason    session.EndReason

	Coins         []CoinLine
	ShotState     coin.ShotState
	Meter         float64
	SpinRemaining float64
	OutOfCoins    bool
}

// Capture reads both machines. Either may be nil.
func Capture(m *coin.Machine, s *session.Session) Snapshot {
	var snap Snapshot
	if s != nil {
		snap.Score = s.Score()
		snap.Remaining = s.Remaining()
		snap.Status = s.Status()
		snap.Reason = s.Reason()
	}
	if m != nil {
		inv := m.Inventory()
		table := m.Table()
		for i, d := range coin.Priority {
			snap.Coins = append(snap.Coins, CoinLine{
				Key:          i + 1,
				Denomination: d,
				Value:        table.Spec(d).Value,
				Remaining:    inv.Remaining(d),
				Selected:     d == m.Current(),
			})
		}
		snap.ShotState = m.State()
		snap.Meter = m.Meter()
		snap.SpinRemaining = m.SpinRemaining()
		snap.OutOfCoins = inv.Empty()
	}
	return snap
}

// ScoreText renders the score corner.
func (s Snapshot) ScoreText() string {
	return fmt.Sprintf("Score: %d cents", s.Score)
}

// TimerText renders the countdown, rounded up to whole seconds.
func (s Snapshot) TimerText() string {
	return fmt.Sprintf("Time: %ds", int(math.Ceil(s.Remaining)))
}

// InventoryLines renders the coin panel, with the spin countdown appended
// while a coin is in flight.
func (s Snapshot) InventoryLines() []string {
	lines := make([]string, 0, len(s.Coins)+2)
	for _, c := range s.Coins {
		line := fmt.Sprintf("[%d] %s (%dc): %d", c.Key, c.Denomination.Plural(), c.Value, c.Remaining)
		if c.Selected {
			line += " <--"
		}
		lines = append(lines, line)
	}
	if s.ShotState == coin.InFlight {
		lines = append(lines, "", fmt.Sprintf("Spin Time: %.1fs", s.SpinRemaining))
	}
	return lines
}

// PromptLines renders the centre prompt: the aim meter while aiming,
// otherwise a status line.
func (s Snapshot) PromptLines() []string {
	switch {
	case s.ShotState == coin.Aiming:
		return []string{"AIM: " + MeterBar(s.Meter), "Press SPACE to shoot!"}
	case s.ShotState == coin.InFlight || s.ShotState == coin.Resolving:
		return []string{"SHOT IN PROGRESS..."}
	case s.OutOfCoins:
		return []string{"OUT OF COINS!"}
	default:
		return []string{"Press SPACE to aim"}
	}
}

// GameOverLines renders the banner shown once the session has ended. Empty
// while the session is active.
func (s Snapshot) GameOverLines() []string {
	if s.Status != session.Ended {
		return nil
	}
	return []string{
		"GAME OVER!",
		s.Reason.Banner(),
		"",
		fmt.Sprintf("Final Score: %d cents", s.Score),
		"",
		"Press R to restart",
	}
}

// MeterBar draws the aim meter as [---------|---O-------]. The centre mark
// is fixed; the O tracks the meter and is drawn over the centre when the
// two coincide.
func MeterBar(meter float64) string {
	meter = math.Max(-1, math.Min(1, meter))
	half := MeterCells / 2
	pos := int(math.Round((meter + 1) * float64(half)))

	var b strings.Builder
	b.Grow(MeterCells + 2)
	b.WriteByte('[')
	for i := 0; i < MeterCells; i++ {
		switch {
		case i == pos:
			b.WriteByte('O')
		case i == half:
			b.WriteByte('|')
		default:
			b.WriteByte('-')
		}
	}
	b.WriteByte(']')
	return b.String()
}
