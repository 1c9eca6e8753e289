// Package loop runs a coin shove game in a terminal: Input, Update, Draw at a
// fixed frame rate.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/coinshove/internal/config"
	"github.com/tomz197/coinshove/internal/draw"
	"github.com/tomz197/coinshove/internal/input"
	"github.com/tomz197/coinshove/internal/metrics"
)

// Client owns one terminal and the game played in it.
type Client struct {
	state       *ClientState
	game        *Game
	tuning      config.Tuning
	logger      *log.Logger
	recorder    *metrics.Recorder
	inactivity  bool
	canvas      *draw.Canvas
	chunkWriter *draw.ChunkWriter
	writer      io.Writer
	inputStream *input.Stream
}

// NewClient prepares a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) *Client {
	return newClient(input.StartStream(r), w, opts)
}

func newClient(stream *input.Stream, w io.Writer, opts Options) *Client {
	state := NewClientState()
	state.termSizeFunc = opts.TermSizeFunc
	if state.termSizeFunc == nil {
		state.termSizeFunc = draw.DefaultTermSizeFunc
	}

	tuning := config.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var rec *metrics.Recorder
	if opts.Metrics {
		rec = &metrics.Recorder{}
	}

	termWidth, termHeight, _ := state.termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, tuning.Field.Width, tuning.Field.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		state:       state,
		tuning:      tuning,
		logger:      logger,
		recorder:    rec,
		inactivity:  opts.Inactivity,
		canvas:      canvas,
		chunkWriter: draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:      w,
		inputStream: stream,
	}
}

// Run starts a client on r and w and blocks until the player quits or the
// input ends.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	return NewClient(r, w, opts).Run()
}

// Run is the frame loop.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	c.canvas.Invalidate()

	if c.recorder != nil {
		c.recorder.Open()
		defer c.recorder.Close()
	}
	defer func() {
		if c.game != nil {
			c.game.Close()
		}
	}()

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.updateScreen()

		switch c.state.Screen {
		case ScreenStart:
			c.updateStartState()
		case ScreenPlaying, ScreenGameOver:
			c.game.Update(c.state.Input, c.state.delta)
		}
		c.state.Screen = screenFor(c.game)

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads this frame's keys and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = c.inputStream.Read()

	if c.inputStream.Closed() {
		c.state.Running = false
	}

	if c.state.Input.Any() {
		c.state.lastInput = time.Now()
		c.state.isInactive = false
	} else if c.inactivity {
		idle := time.Since(c.state.lastInput).Seconds()
		if idle > config.InactivityDisconnectUser {
			c.logger.Info("disconnecting idle player", "idle", idle)
			c.state.Running = false
		} else if idle > config.InactivityWarnUser {
			c.state.isInactive = true
		}
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// updateScreen follows terminal resizes. A real change clears the terminal so
// nothing is left outside the new render area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.state.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.Resize(renderWidth, renderHeight)
		c.canvas.Invalidate()
	}

	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// updateStartState starts the game on Space.
func (c *Client) updateStartState() {
	if c.state.Input.Aim {
		c.startGame()
	}
}

func (c *Client) startGame() {
	c.inputStream.Reset()
	c.game = NewGame(c.tuning, c.logger, c.recorder)
}
