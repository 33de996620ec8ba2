package rules

import (
	"fmt"

	"github.com/wfunc/connect4/board"
)

// Status is the coarse state of a game result.
type Status int

const (
	InProgress Status = iota
	Win
	Draw
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Win:
		return "win"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Outcome is the result of a game so far. Winner and Line are only set for Win.
type Outcome struct {
	Status Status       `json:"status"`
	Winner board.Player `json:"winner,omitempty"`
	Line   Line         `json:"line,omitempty"`
}

func Ongoing() Outcome { return Outcome{Status: InProgress} }

func Won(p board.Player, line Line) Outcome {
	return Outcome{Status: Win, Winner: p, Line: line}
}

func Drawn() Outcome { return Outcome{Status: Draw} }

// Terminal reports whether the game is over.
func (o Outcome) Terminal() bool {
	return o.Status == Win || o.Status == Draw
}

func (o Outcome) String() string {
	switch o.Status {
	case Win:
		return fmt.Sprintf("%s wins along %s", o.Winner, o.Line)
	case Draw:
		return "draw"
	}
	return "in progress"
}

// Evaluate computes the outcome right after a disc was dropped into lastColumn.
func Evaluate(v board.View, lastColumn int) Outcome {
	if line, ok := CheckWin(v, lastColumn); ok {
		row := v.Height(lastColumn) - 1
		return Won(v.At(lastColumn, row), line)
	}
	if full(v) {
		return Drawn()
	}
	return Ongoing()
}

func full(v board.View) bool {
	for c := 0; c < v.Columns(); c++ {
		if v.Height(c) < v.Rows() {
			return false
		}
	}
	return true
}
