package object

import "unicode/utf8"

// Text is a line of text at a 1-based canvas position.
type Text struct {
	X     int
	Y     int
	Value string
}

// Draw writes the text and marks the cells it covers so the canvas repaints
// them once the text is gone.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	x := max(t.X, 1)
	y := max(t.Y, 1)
	ctx.Writer.WriteAt(x, y, t.Value)
	ctx.Canvas.Overdrawn(x, y, utf8.RuneCountInString(t.Value))
	return nil
}

// Centered lays out lines centred on column centerX, one per row starting at
// row. Empty lines keep their row but produce nothing.
func Centered(centerX, row int, lines []string) []Text {
	out := make([]Text, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		out = append(out, Text{X: centerX - utf8.RuneCountInString(line)/2, Y: row + i, Value: line})
	}
	return out
}
