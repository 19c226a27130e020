package input

import (
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	"golang.org/x/term"
)

// Kind classifies one keypress into the navigation events the menus understand.
type Kind int

const (
	Character Kind = iota
	Backspace
	Enter
	Escape
	Up
	Down
	Ignored
)

// Event is one decoded keypress. Rune is set only for Character events.
type Event struct {
	Kind Kind
	Rune rune
}

// Decoder yields one logical key event per blocking read.
type Decoder interface {
	ReadEvent() (Event, error)
}

// TerminalDecoder decodes raw keypresses from a tty.
type TerminalDecoder struct {
	tty *os.File
}

func NewTerminalDecoder(tty *os.File) *TerminalDecoder {
	return &TerminalDecoder{tty: tty}
}

// ReadEvent switches the terminal into raw mode for the duration of a
// single blocking read and restores the previous mode before returning,
// on every path.
func (d *TerminalDecoder) ReadEvent() (Event, error) {
	fd := int(d.tty.Fd())
	prev, err := term.MakeRaw(fd)
	if err != nil {
		return Event{}, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(fd, prev)

	// Arrow keys arrive as a complete ESC [ X burst within one read,
	// while a lone ESC keypress arrives by itself.
	buf := make([]byte, 8)
	n, err := d.tty.Read(buf)
	if err != nil {
		return Event{}, fmt.Errorf("failed to read key: %w", err)
	}
	return Decode(buf[:n]), nil
}

// Decode classifies the bytes of one raw read.
func Decode(buf []byte) Event {
	if len(buf) == 0 {
		return Event{Kind: Ignored}
	}

	if buf[0] == 0x1b {
		if len(buf) >= 3 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				return Event{Kind: Up}
			case 'B':
				return Event{Kind: Down}
			}
			// Left/right arrows and any other CSI sequence.
			return Event{Kind: Ignored}
		}
		return Event{Kind: Escape}
	}

	switch buf[0] {
	case '\r', '\n':
		return Event{Kind: Enter}
	case 0x7f, 0x08:
		return Event{Kind: Backspace}
	case 0x03:
		// Raw mode suppresses the interrupt signal; treat Ctrl-C as cancel.
		return Event{Kind: Escape}
	}

	r, size := utf8.DecodeRune(buf)
	if r != utf8.RuneError && size > 0 && unicode.IsPrint(r) {
		return Event{Kind: Character, Rune: r}
	}
	return Event{Kind: Ignored}
}
