package board

// Snapshot is a frozen copy of a board. Its slices are never shared with the
// live Board or handed out, so a strategy holding one cannot reach the game.
type Snapshot struct {
	columns int
	rows    int
	cells   []Player // column-major, row 0 at the bottom
	heights []int
}

func (s Snapshot) Columns() int { return s.columns }

func (s Snapshot) Rows() int { return s.rows }

func (s Snapshot) At(column, row int) Player {
	if column < 0 || column >= s.columns || row < 0 || row >= s.rows {
		return Empty
	}
	return s.cells[column*s.rows+row]
}

func (s Snapshot) Height(column int) int {
	if column < 0 || column >= s.columns {
		return 0
	}
	return s.heights[column]
}

func (s Snapshot) IsLegalMove(column int) bool {
	return column >= 0 && column < s.columns && s.heights[column] < s.rows
}

func (s Snapshot) IsFull() bool {
	for _, h := range s.heights {
		if h < s.rows {
			return false
		}
	}
	return true
}

// LegalMoves lists the playable columns from left to right.
func (s Snapshot) LegalMoves() []int {
	moves := make([]int, 0, s.columns)
	for c := 0; c < s.columns; c++ {
		if s.heights[c] < s.rows {
			moves = append(moves, c)
		}
	}
	return moves
}

// Moves returns the number of discs in the snapshot.
func (s Snapshot) Moves() int {
	n := 0
	for _, h := range s.heights {
		n += h
	}
	return n
}

// Play returns a new snapshot with p's disc dropped into column and the row it
// landed on. The receiver is not modified.
func (s Snapshot) Play(column int, p Player) (Snapshot, int, error) {
	if !s.IsLegalMove(column) {
		reason := "is full"
		if column < 0 || column >= s.columns {
			reason = "out of range"
		}
		return s, -1, &InvalidMoveError{Column: column, Reason: reason}
	}
	if !p.Valid() {
		return s, -1, ErrInvalidPlayer
	}
	cells := make([]Player, len(s.cells))
	copy(cells, s.cells)
	heights := make([]int, len(s.heights))
	copy(heights, s.heights)

	row := heights[column]
	cells[column*s.rows+row] = p
	heights[column]++
	return Snapshot{columns: s.columns, rows: s.rows, cells: cells, heights: heights}, row, nil
}

// Cells returns a column-major copy of the grid, cells[column][row].
func (s Snapshot) Cells() [][]Player {
	out := make([][]Player, s.columns)
	for c := range out {
		out[c] = make([]Player, s.rows)
		copy(out[c], s.cells[c*s.rows:(c+1)*s.rows])
	}
	return out
}
