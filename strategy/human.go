package strategy

import (
	"fmt"

	"github.com/wfunc/connect4/board"
)

// Human forwards every decision to an Input. It never judges legality itself.
type Human struct {
	player board.Player
	input  Input
}

func NewHuman(player board.Player, input Input) *Human {
	return &Human{player: player, input: input}
}

func (h *Human) PickMove(snap board.Snapshot) (int, error) {
	return h.input.ReadColumn(snap)
}

func (h *Human) Reject(column int) {
	h.input.Invalid(column)
}

func (h *Human) Kind() Kind { return KindHuman }

func (h *Human) String() string {
	return fmt.Sprintf("human (%s)", h.player)
}
