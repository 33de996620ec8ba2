// board/board.go
package board

import (
	"errors"
	"fmt"
)

const (
	DefaultColumns = 7
	DefaultRows    = 6

	// MinRows is the smallest rack on which a vertical four fits.
	MinRows = 4
)

// Player is the content of a single cell.
type Player uint8

const (
	Empty Player = iota
	Player1
	Player2
)

// Other returns the opponent of p. Empty has no opponent and is returned unchanged.
func (p Player) Other() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

// Valid reports whether p can own a disc.
func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "player 1"
	case Player2:
		return "player 2"
	}
	return "empty"
}

var (
	ErrInvalidMove       = errors.New("invalid move")
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrInvalidDimensions = errors.New("invalid board dimensions")
)

// InvalidMoveError carries the column that was refused and why.
type InvalidMoveError struct {
	Column int
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move: column %d %s", e.Column, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidMove) hold for every InvalidMoveError.
func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMove
}

// View is the read-only surface shared by Board and Snapshot.
type View interface {
	Columns() int
	Rows() int
	At(column, row int) Player
	Height(column int) int
}

// Board is the rack. cells is column-major with row 0 at the bottom; heights[c]
// is always the index of the first empty row in column c.
type Board struct {
	columns int
	rows    int
	cells   [][]Player
	heights []int
}

// New creates an empty columns x rows board.
func New(columns, rows int) (*Board, error) {
	if columns < 1 || rows < MinRows {
		return nil, fmt.Errorf("%w: %dx%d (need at least 1x%d)", ErrInvalidDimensions, columns, rows, MinRows)
	}
	cells := make([][]Player, columns)
	for c := range cells {
		cells[c] = make([]Player, rows)
	}
	return &Board{
		columns: columns,
		rows:    rows,
		cells:   cells,
		heights: make([]int, columns),
	}, nil
}

// NewDefault creates the standard 7x6 rack.
func NewDefault() *Board {
	b, _ := New(DefaultColumns, DefaultRows)
	return b
}

func (b *Board) Columns() int { return b.columns }

func (b *Board) Rows() int { return b.rows }

// At returns the cell content, or Empty for coordinates off the board.
func (b *Board) At(column, row int) Player {
	if column < 0 || column >= b.columns || row < 0 || row >= b.rows {
		return Empty
	}
	return b.cells[column][row]
}

// Height returns the number of discs in column, which is also its next free row.
func (b *Board) Height(column int) int {
	if column < 0 || column >= b.columns {
		return 0
	}
	return b.heights[column]
}

// IsLegalMove reports whether a disc can be dropped into column.
func (b *Board) IsLegalMove(column int) bool {
	return column >= 0 && column < b.columns && b.heights[column] < b.rows
}

// ApplyMove drops a disc for p into column and returns the row it landed on.
// The board is left untouched when an error is returned.
func (b *Board) ApplyMove(column int, p Player) (int, error) {
	if err := b.checkMove(column); err != nil {
		return -1, err
	}
	if !p.Valid() {
		return -1, fmt.Errorf("%w: %d", ErrInvalidPlayer, p)
	}
	row := b.heights[column]
	b.cells[column][row] = p
	b.heights[column]++
	return row, nil
}

func (b *Board) checkMove(column int) error {
	if column < 0 || column >= b.columns {
		return &InvalidMoveError{Column: column, Reason: "out of range"}
	}
	if b.heights[column] >= b.rows {
		return &InvalidMoveError{Column: column, Reason: "is full"}
	}
	return nil
}

// IsFull reports whether no legal move remains.
func (b *Board) IsFull() bool {
	for _, h := range b.heights {
		if h < b.rows {
			return false
		}
	}
	return true
}

// Moves returns the number of discs on the board.
func (b *Board) Moves() int {
	n := 0
	for _, h := range b.heights {
		n += h
	}
	return n
}

// Snapshot copies the current cells into an immutable view.
func (b *Board) Snapshot() Snapshot {
	cells := make([]Player, b.columns*b.rows)
	for c := 0; c < b.columns; c++ {
		copy(cells[c*b.rows:(c+1)*b.rows], b.cells[c])
	}
	heights := make([]int, b.columns)
	copy(heights, b.heights)
	return Snapshot{columns: b.columns, rows: b.rows, cells: cells, heights: heights}
}
