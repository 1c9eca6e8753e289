// Package input turns raw terminal bytes into edge-triggered game signals.
package input

import (
	"bufio"
	"time"
)

// repeatWindow is how close two Space bytes must be to count as terminal
// autorepeat from one held key rather than two presses.
const repeatWindow = 120 * time.Millisecond

// Signals is one frame's worth of input. Every field is edge-triggered: a key
// press shows up in exactly one frame.
type Signals struct {
	Select  int  // 1, 2 or 3 when a denomination key was pressed; 0 otherwise
	Aim     bool // Space pressed: starts aiming, or releases when already aiming
	Restart bool
	Quit    bool
	Pressed []byte // Raw bytes seen this frame (activity tracking)
}

// Any reports whether any key arrived this frame.
func (s Signals) Any() bool {
	return len(s.Pressed) > 0
}

// Stream delivers input bytes via a channel and remembers enough state to
// collapse key autorepeat into single edges.
type Stream struct {
	ch        chan byte
	closed    bool
	lastSpace time.Time
	now       func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := NewStream(make(chan byte, 128))
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// NewStream wraps an existing byte channel. The caller owns sending and
// closing.
func NewStream(ch chan byte) *Stream {
	return &Stream{ch: ch, now: time.Now}
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Read drains all available bytes from the stream without blocking and
// returns this frame's signals.
func (s *Stream) Read() Signals {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.parse(buf, s.now())
}

// Reset forgets autorepeat state so the next Space press is always an edge.
func (s *Stream) Reset() {
	s.lastSpace = time.Time{}
}

// parse maps bytes to signals. Escape sequences (arrow keys and the like)
// are skipped whole so their tail bytes are not mistaken for commands.
func (s *Stream) parse(buf []byte, now time.Time) Signals {
	sig := Signals{Pressed: buf}
	spaceSeen := false

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			i = skipEscape(buf, i)
			continue
		}

		switch b {
		case 'q', 'Q', '\x03':
			sig.Quit = true
		case 'r', 'R':
			sig.Restart = true
		case '1', '2', '3':
			sig.Select = int(b - '0')
		case ' ':
			spaceSeen = true
		}
	}

	if spaceSeen {
		if s.lastSpace.IsZero() || now.Sub(s.lastSpace) > repeatWindow {
			sig.Aim = true
		}
		s.lastSpace = now
	}
	return sig
}

// skipEscape returns the index of the last byte of the escape sequence that
// starts at buf[i]. CSI sequences (ESC [) run through any parameter and
// intermediate bytes up to a final byte in 0x40-0x7E. SS3 sequences (ESC O)
// carry exactly one more byte. A truncated sequence swallows the rest of buf.
func skipEscape(buf []byte, i int) int {
	if i+1 >= len(buf) {
		return i
	}
	switch buf[i+1] {
	case '[':
		j := i + 2
		for j < len(buf) && buf[j] >= 0x20 && buf[j] <= 0x3f {
			j++
		}
		if j >= len(buf) {
			return len(buf) - 1
		}
		return j
	case 'O':
		if i+2 >= len(buf) {
			return len(buf) - 1
		}
		return i + 2
	}
	return i
}
