package loop

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tomz197/coinshove/internal/config"
	"github.com/tomz197/coinshove/internal/hud"
	"github.com/tomz197/coinshove/internal/object"
)

// drawFrame draws the field on the canvas, then the text on top of it.
func (c *Client) drawFrame() error {
	// Screen and inactivity transitions get a full clear so text from the
	// previous screen does not linger.
	if c.state.Screen != c.state.prevScreen || c.state.isInactive != c.state.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.Invalidate()
		c.state.prevScreen = c.state.Screen
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	if c.game != nil && !c.state.isInactive {
		for _, obj := range object.Field(c.game.World()) {
			if err := obj.Draw(c.drawContext()); err != nil {
				return err
			}
		}
	}

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	width := c.canvas.TerminalWidth()
	height := c.canvas.TerminalHeight()
	centerX := width / 2
	centerY := height / 2

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Screen {
	case ScreenStart:
		c.drawStartScreen(centerX, centerY)
	case ScreenPlaying:
		snap := hud.Capture(c.game.Machine(), c.game.Session())
		c.drawHUD(snap, width, height)
		c.centered(centerX, height-4, snap.PromptLines())
	case ScreenGameOver:
		snap := hud.Capture(c.game.Machine(), c.game.Session())
		c.drawHUD(snap, width, height)
		lines := snap.GameOverLines()
		c.centered(centerX, centerY-len(lines)/2, lines)
	}
}

// drawHUD draws score, timer, inventory and the controls reminder.
func (c *Client) drawHUD(snap hud.Snapshot, width, height int) {
	c.text(2, 1, snap.ScoreText())

	timer := snap.TimerText()
	c.text(width-utf8.RuneCountInString(timer), 1, timer)

	for i, line := range snap.InventoryLines() {
		c.text(2, 3+i, line)
	}

	for i, line := range hud.Instructions {
		c.text(2, height-len(hud.Instructions)+1+i, line)
	}
}

func (c *Client) drawStartScreen(centerX, centerY int) {
	titleArt := []string{
		`  ___ ___ ___ _  _   ___ _  _  _____   _____ `,
		` / __/ _ \_ _| \| | / __| || |/ _ \ \ / / __|`,
		`| (_| (_) | || .' | \__ \ __ | (_) \ V /| _| `,
		` \___\___/___|_|\_| |___/_||_|\___/ \_/ |___|`,
	}
	top := centerY - 6
	c.centered(centerX, top, titleArt)

	lines := []string{
		"Shove a coin past the keeper and into the goal.",
		fmt.Sprintf("You have %d seconds.", int(c.tuning.Session.Seconds)),
		"",
		"Press SPACE to start",
		"",
	}
	lines = append(lines, hud.Instructions...)
	lines = append(lines, "[Q] Quit")
	c.centered(centerX, top+len(titleArt)+1, lines)
}

func (c *Client) drawInactivityScreen(centerX, centerY int) {
	left := config.InactivityDisconnectUser - time.Since(c.state.lastInput).Seconds()
	c.centered(centerX, centerY-2, []string{
		"INACTIVITY WARNING",
		"",
		fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", int(left)),
		"",
		"Press any key to continue",
	})
}

func (c *Client) drawContext() object.DrawContext {
	return object.DrawContext{Canvas: c.canvas, Writer: c.chunkWriter}
}

func (c *Client) text(col, row int, s string) {
	_ = object.Text{X: col, Y: row, Value: s}.Draw(c.drawContext())
}

func (c *Client) centered(centerX, row int, lines []string) {
	for _, t := range object.Centered(centerX, row, lines) {
		_ = t.Draw(c.drawContext())
	}
}
