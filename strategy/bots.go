package strategy

import (
	"math"
	"math/rand"
	"time"

	"github.com/wfunc/connect4/board"
	"github.com/wfunc/connect4/rules"
)

const (
	DefaultModule = "minimax"
	DefaultLevel  = 4

	winScore = 100000
)

func init() {
	Register("random", func(_ board.Player, _ int) Decider {
		return NewRandom(rand.New(rand.NewSource(time.Now().UnixNano())))
	})
	Register("greedy", func(p board.Player, _ int) Decider {
		return &Greedy{Me: p}
	})
	Register("minimax", func(p board.Player, level int) Decider {
		return &Minimax{Me: p, Depth: level}
	})
}

// Random plays any legal column.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) PickMove(snap board.Snapshot) int {
	moves := snap.LegalMoves()
	if len(moves) == 0 {
		return -1
	}
	return moves[r.rng.Intn(len(moves))]
}

// Greedy wins if it can, blocks if it must, and otherwise takes the column with
// the best static evaluation, nudged towards the center.
type Greedy struct {
	Me board.Player
}

func (g *Greedy) PickMove(snap board.Snapshot) int {
	if c := immediateWin(snap, g.Me); c >= 0 {
		return c
	}
	if c := immediateWin(snap, g.Me.Other()); c >= 0 {
		return c
	}
	best, bestScore := -1, math.MinInt
	center := snap.Columns() / 2
	for _, c := range snap.LegalMoves() {
		next, _, err := snap.Play(c, g.Me)
		if err != nil {
			continue
		}
		score := evaluate(next, g.Me) - absInt(center-c)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// Minimax is a depth-limited alpha-beta search. Depth is the difficulty level.
type Minimax struct {
	Me    board.Player
	Depth int
}

func (m *Minimax) PickMove(snap board.Snapshot) int {
	moves := centerFirst(snap.LegalMoves(), snap.Columns())
	if len(moves) == 0 {
		return -1
	}
	depth := max(m.Depth, 1)
	best, bestScore := moves[0], math.MinInt
	for _, c := range moves {
		next, _, err := snap.Play(c, m.Me)
		if err != nil {
			continue
		}
		score := m.search(next, c, depth-1, math.MinInt/2, math.MaxInt/2, false)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// search scores the position reached by playing last. remaining counts the
// plies still allowed; quicker wins score higher.
func (m *Minimax) search(snap board.Snapshot, last, remaining, alpha, beta int, maximizing bool) int {
	switch out := rules.Evaluate(snap, last); out.Status {
	case rules.Win:
		if out.Winner == m.Me {
			return winScore + remaining
		}
		return -winScore - remaining
	case rules.Draw:
		return 0
	}
	if remaining == 0 {
		return evaluate(snap, m.Me)
	}

	moves := centerFirst(snap.LegalMoves(), snap.Columns())
	if maximizing {
		value := math.MinInt
		for _, c := range moves {
			next, _, err := snap.Play(c, m.Me)
			if err != nil {
				continue
			}
			value = max(value, m.search(next, c, remaining-1, alpha, beta, false))
			alpha = max(alpha, value)
			if beta <= alpha {
				break
			}
		}
		return value
	}

	value := math.MaxInt
	opp := m.Me.Other()
	for _, c := range moves {
		next, _, err := snap.Play(c, opp)
		if err != nil {
			continue
		}
		value = min(value, m.search(next, c, remaining-1, alpha, beta, true))
		beta = min(beta, value)
		if beta <= alpha {
			break
		}
	}
	return value
}

func immediateWin(snap board.Snapshot, p board.Player) int {
	for _, c := range snap.LegalMoves() {
		next, _, err := snap.Play(c, p)
		if err != nil {
			continue
		}
		if _, ok := rules.CheckWin(next, c); ok {
			return c
		}
	}
	return -1
}

// centerFirst orders columns by distance to the center, left before right on ties.
func centerFirst(moves []int, columns int) []int {
	center := columns / 2
	out := append([]int(nil), moves...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && absInt(out[j]-center) < absInt(out[j-1]-center); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// evaluate scores every window of four cells from me's point of view, plus a
// bonus for discs in the center column.
func evaluate(snap board.Snapshot, me board.Player) int {
	cols, rows := snap.Columns(), snap.Rows()
	score := 0
	center := cols / 2
	for r := 0; r < rows; r++ {
		if snap.At(center, r) == me {
			score += 6
		}
	}

	var window [rules.WinLength]board.Player
	scan := func(c, r, dc, dr int) {
		for i := range window {
			window[i] = snap.At(c+i*dc, r+i*dr)
		}
		score += scoreWindow(window[:], me)
	}
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			if c+rules.WinLength <= cols {
				scan(c, r, 1, 0)
			}
			if r+rules.WinLength <= rows {
				scan(c, r, 0, 1)
			}
			if c+rules.WinLength <= cols && r+rules.WinLength <= rows {
				scan(c, r, 1, 1)
			}
			if c+rules.WinLength <= cols && r >= rules.WinLength-1 {
				scan(c, r, 1, -1)
			}
		}
	}
	return score
}

func scoreWindow(cells []board.Player, me board.Player) int {
	opp := me.Other()
	mine, theirs, empty := 0, 0, 0
	for _, v := range cells {
		switch v {
		case me:
			mine++
		case opp:
			theirs++
		default:
			empty++
		}
	}
	switch {
	case mine == 4:
		return 10000
	case mine == 3 && empty == 1:
		return 100
	case mine == 2 && empty == 2:
		return 10
	case theirs == 3 && empty == 1:
		return -120
	case theirs == 2 && empty == 2:
		return -12
	}
	return 0
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
