// strategy/strategy.go
package strategy

import (
	"errors"

	"github.com/wfunc/connect4/board"
)

// Kind separates strategies whose illegal moves are user mistakes from those
// whose illegal moves are bugs.
type Kind int

const (
	KindHuman Kind = iota
	KindComputer
)

func (k Kind) String() string {
	if k == KindHuman {
		return "human"
	}
	return "computer"
}

// Strategy supplies the next column for one seat.
type Strategy interface {
	PickMove(snap board.Snapshot) (int, error)
	Kind() Kind
	String() string
}

// Rejecter is implemented by strategies that want to hear about a refused column
// before being asked again.
type Rejecter interface {
	Reject(column int)
}

// Decider is the automated decision procedure behind a Computer strategy. It must
// return a legal column of the snapshot it is given.
type Decider interface {
	PickMove(snap board.Snapshot) int
}

// DeciderFunc adapts a plain function to Decider.
type DeciderFunc func(snap board.Snapshot) int

func (f DeciderFunc) PickMove(snap board.Snapshot) int { return f(snap) }

// Input is the collaborator that collects columns for a human.
type Input interface {
	// ReadColumn blocks until a 0-based column was entered or input ran out.
	ReadColumn(snap board.Snapshot) (int, error)
	// Invalid tells the user the column was refused.
	Invalid(column int)
}

// ErrNoMoreInput is returned by an Input that cannot supply further columns.
var ErrNoMoreInput = errors.New("no more input")
