// Package object holds the drawable pieces of the playfield.
package object

import (
	"math"

	"github.com/tomz197/coinshove/internal/coin"
	"github.com/tomz197/coinshove/internal/draw"
	"github.com/tomz197/coinshove/internal/physics"
)

// Object is anything drawn each frame.
type Object interface {
	Draw(ctx DrawContext) error
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // Field pixels, in field units
	Writer *draw.ChunkWriter // Text output for the frame
}

// Goal is the scoring area, drawn as an outline.
type Goal struct {
	Area physics.Rect
}

func (g Goal) Draw(ctx DrawContext) error {
	a := g.Area
	ctx.Canvas.DrawRect(a.X, a.Y, a.Width, a.Height, false)
	return nil
}

// Keeper is the moving obstacle, drawn solid.
type Keeper struct {
	Bounds physics.Rect
}

func (k Keeper) Draw(ctx DrawContext) error {
	b := k.Bounds
	ctx.Canvas.DrawRect(b.X, b.Y, b.Width, b.Height, true)
	return nil
}

const coinSegments = 16

// Coin is the shot coin. It is seen edge-on while spinning, so its drawn
// width follows the angle.
type Coin struct {
	Position coin.Vec
	Radius   float64
	Angle    float64 // Radians
}

func (c Coin) Draw(ctx DrawContext) error {
	rx := c.Radius * math.Abs(math.Cos(c.Angle))
	ctx.Canvas.FillEllipse(c.Position.X, c.Position.Y, rx, c.Radius, coinSegments)
	return nil
}

// Field returns the objects of a world in draw order.
func Field(w *physics.World) []Object {
	layout := w.Layout()
	return []Object{
		Goal{Area: layout.Goal},
		Keeper{Bounds: w.KeeperBounds()},
		Coin{Position: w.CoinPosition(), Radius: layout.CoinRadius, Angle: w.CoinAngle()},
	}
}
