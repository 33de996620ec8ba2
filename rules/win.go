// rules/win.go
package rules

import (
	"fmt"

	"github.com/wfunc/connect4/board"
)

// WinLength is the number of aligned discs that wins the game.
const WinLength = 4

// Coord addresses a cell, row 0 at the bottom.
type Coord struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Axis names the direction a line runs along.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
	DiagonalUp
	DiagonalDown
)

func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	case DiagonalUp:
		return "diagonal-up"
	case DiagonalDown:
		return "diagonal-down"
	}
	return "unknown"
}

// Line is a winning run, bounded by its two extremity cells. From is the end
// reached by walking against the axis direction.
type Line struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
	Axis Axis  `json:"axis"`
}

// Len returns the number of cells covered by the line.
func (l Line) Len() int {
	dc := l.To.Column - l.From.Column
	dr := l.To.Row - l.From.Row
	if dc < 0 {
		dc = -dc
	}
	if dr < 0 {
		dr = -dr
	}
	return max(dc, dr) + 1
}

func (l Line) String() string {
	return fmt.Sprintf("%s (%d,%d)-(%d,%d)", l.Axis, l.From.Column, l.From.Row, l.To.Column, l.To.Row)
}

// axes in evaluation order, each as a (column, row) step.
var axes = [...]struct {
	axis   Axis
	dc, dr int
}{
	{Vertical, 0, 1},
	{Horizontal, 1, 0},
	{DiagonalUp, 1, 1},
	{DiagonalDown, 1, -1},
}

// CheckWin looks for a line through the top disc of lastColumn. Only that cell
// is inspected: as long as the board held no line before the last move, any
// line on it must pass through the disc just played.
func CheckWin(v board.View, lastColumn int) (Line, bool) {
	if lastColumn < 0 || lastColumn >= v.Columns() {
		return Line{}, false
	}
	row := v.Height(lastColumn) - 1
	if row < 0 {
		return Line{}, false
	}
	player := v.At(lastColumn, row)
	if !player.Valid() {
		return Line{}, false
	}

	for _, a := range axes {
		fromC, fromR := extend(v, lastColumn, row, -a.dc, -a.dr, player)
		toC, toR := extend(v, lastColumn, row, a.dc, a.dr, player)

		line := Line{
			From: Coord{Column: fromC, Row: fromR},
			To:   Coord{Column: toC, Row: toR},
			Axis: a.axis,
		}
		if line.Len() >= WinLength {
			return line, true
		}
	}
	return Line{}, false
}

// extend walks from (c, r) by (dc, dr) while the next cell is on the board and
// owned by player, and returns the last cell reached.
func extend(v board.View, c, r, dc, dr int, player board.Player) (int, int) {
	for {
		nc, nr := c+dc, r+dr
		if nc < 0 || nc >= v.Columns() || nr < 0 || nr >= v.Rows() {
			return c, r
		}
		if v.At(nc, nr) != player {
			return c, r
		}
		c, r = nc, nr
	}
}
