package strategy

import (
	"fmt"

	"github.com/wfunc/connect4/board"
)

// Computer wraps a Decider resolved by the loader. Level is whatever the
// decider's factory was built with.
type Computer struct {
	Name    string
	Level   int
	player  board.Player
	decider Decider
}

func NewComputer(name string, level int, player board.Player, decider Decider) *Computer {
	return &Computer{Name: name, Level: level, player: player, decider: decider}
}

func (c *Computer) PickMove(snap board.Snapshot) (int, error) {
	return c.decider.PickMove(snap), nil
}

func (c *Computer) Kind() Kind { return KindComputer }

func (c *Computer) String() string {
	return fmt.Sprintf("%s level %d (%s)", c.Name, c.Level, c.player)
}
