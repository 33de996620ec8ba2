// state/interfaces.go
package state

import (
	"github.com/wfunc/connect4/board"
	"github.com/wfunc/connect4/monitor"
	"github.com/wfunc/connect4/rules"
	"github.com/wfunc/connect4/strategy"
)

// TurnContext defines what the turn states need from the game that runs them.
// This breaks the import cycle between game and state.
type TurnContext interface {
	GetID() string
	Board() *board.Board
	Strategy(p board.Player) strategy.Strategy
	// CoinFlip picks the first player.
	CoinFlip() board.Player
	ChangeState(newState State) error
	// Publish records the outcome after a move (or the start of the game) and
	// notifies observers. lastColumn is -1 before the first move.
	Publish(outcome rules.Outcome, toMove board.Player, lastColumn int)
	Monitor() *monitor.Monitor
}
