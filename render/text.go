package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/wfunc/connect4/board"
	"github.com/wfunc/connect4/broadcast"
	"github.com/wfunc/connect4/rules"
)

const reset = "\x1b[0m"

var ErrBadColor = errors.New("bad color")

// Palette holds the ANSI prefixes used for each kind of cell.
type Palette struct {
	P1    string
	P2    string
	Board string
	Reset string
}

// DefaultPalette is bright red for player 1, bold blue for player 2, grey dots.
func DefaultPalette() Palette {
	return Palette{
		P1:    "\x1b[91m\x1b[1m",
		P2:    "\x1b[34m\x1b[1m",
		Board: "\x1b[90m",
		Reset: reset,
	}
}

// PlainPalette prints no escape sequences at all.
func PlainPalette() Palette {
	return Palette{}
}

// ParseColors reads "RRGGBB,RRGGBB" (or "#RRGGBB", or color names tcell knows)
// for players 1 and 2 and returns a truecolor palette.
func ParseColors(colors string) (Palette, error) {
	parts := strings.Split(colors, ",")
	if len(parts) != 2 {
		return Palette{}, fmt.Errorf("%w: want two colors separated by a comma, got %q", ErrBadColor, colors)
	}
	p := DefaultPalette()
	for i, part := range parts {
		esc, err := colorEscape(part)
		if err != nil {
			return Palette{}, err
		}
		if i == 0 {
			p.P1 = esc
		} else {
			p.P2 = esc
		}
	}
	return p, nil
}

func colorEscape(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 6 && isHex(name) {
		name = "#" + name
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault || !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrBadColor, name)
	}
	r, g, b := c.RGB()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[1m", r, g, b), nil
}

func isHex(s string) bool {
	for _, ch := range s {
		if !strings.ContainsRune("0123456789abcdef", ch) {
			return false
		}
	}
	return true
}

// Text draws the whole rack after every frame, the way the terminal game looks.
type Text struct {
	out     io.Writer
	palette Palette
}

func NewText(out io.Writer, palette Palette) *Text {
	return &Text{out: out, palette: palette}
}

func (t *Text) Observe(frame broadcast.Frame) error {
	w := bufio.NewWriter(t.out)
	if frame.Outcome.Terminal() {
		t.writeRack(w, frame.Board)
		t.writeResult(w, frame.Outcome)
	} else {
		fmt.Fprintf(w, "%sPlayer %d:%s\n", t.color(frame.ToMove), frame.ToMove, t.palette.Reset)
		t.writeRack(w, frame.Board)
		if frame.LastColumn >= 0 {
			fmt.Fprintln(w)
		}
	}
	return w.Flush()
}

func (t *Text) color(p board.Player) string {
	switch p {
	case board.Player1:
		return t.palette.P1
	case board.Player2:
		return t.palette.P2
	}
	return ""
}

func (t *Text) writeRack(w io.Writer, snap board.Snapshot) {
	cols := snap.Columns()
	if cols >= 10 {
		fmt.Fprint(w, strings.Repeat(" ", 18))
		for i := 9; i < cols; i++ {
			fmt.Fprintf(w, "%d ", (i+1)/10)
		}
		fmt.Fprintln(w)
	}
	for i := 0; i < cols; i++ {
		fmt.Fprintf(w, "%d ", (i+1)%10)
	}
	fmt.Fprintln(w)

	for r := snap.Rows() - 1; r >= 0; r-- {
		for c := 0; c < cols; c++ {
			switch snap.At(c, r) {
			case board.Player1:
				fmt.Fprintf(w, "%sX%s ", t.palette.P1, t.palette.Reset)
			case board.Player2:
				fmt.Fprintf(w, "%sO%s ", t.palette.P2, t.palette.Reset)
			default:
				fmt.Fprintf(w, "%s.%s ", t.palette.Board, t.palette.Reset)
			}
		}
		fmt.Fprintln(w)
	}
}

func (t *Text) writeResult(w io.Writer, o rules.Outcome) {
	writeResult(w, o, t.color(o.Winner), t.palette.Reset)
}

func writeResult(w io.Writer, o rules.Outcome, color, reset string) {
	switch o.Status {
	case rules.Win:
		fmt.Fprintf(w, "%sPlayer %d wins!!!%s\n", color, o.Winner, reset)
	case rules.Draw:
		fmt.Fprintln(w, "It was a tie!")
	}
}

// Summary prints only the result line; it is what runs with rendering disabled.
type Summary struct {
	out io.Writer
}

func NewSummary(out io.Writer) *Summary {
	return &Summary{out: out}
}

func (s *Summary) Observe(frame broadcast.Frame) error {
	if !frame.Outcome.Terminal() {
		return nil
	}
	w := bufio.NewWriter(s.out)
	writeResult(w, frame.Outcome, "", "")
	return w.Flush()
}
