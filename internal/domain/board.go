package domain

import (
	"fmt"
	"strings"
)

// Board is the 7x6 grid. Row 0 is the bottom row, so a column fills upward
// from index 0. Board is a value: assigning it copies every cell.
type Board [Rows][Columns]PlayerID

func NewBoard() Board {
	return Board{}
}

// IsValidColumn reports whether a piece can still be dropped into column.
func (b *Board) IsValidColumn(column int) (bool, error) {
	if column < 0 || column >= Columns {
		return false, ErrInvalidColumn
	}
	return b[Rows-1][column] == Empty, nil
}

// NextOpenRow returns the lowest empty row of column.
func (b *Board) NextOpenRow(column int) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidColumn
	}
	for row := 0; row < Rows; row++ {
		if b[row][column] == Empty {
			return row, nil
		}
	}
	return -1, ErrColumnFull
}

// Drop sets a single cell. The caller supplies a row from NextOpenRow;
// gravity is not checked here.
func (b *Board) Drop(row, column int, player PlayerID) {
	b[row][column] = player
}

// Place drops player's piece into the lowest empty row of column and
// returns that row.
func (b *Board) Place(column int, player PlayerID) (int, error) {
	row, err := b.NextOpenRow(column)
	if err != nil {
		return -1, err
	}
	b.Drop(row, column, player)
	return row, nil
}

func (b Board) Copy() Board {
	return b
}

// ValidMoves lists the playable columns in ascending order.
func (b *Board) ValidMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b[Rows-1][col] == Empty {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b *Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b[Rows-1][col] == Empty {
			return false
		}
	}
	return true
}

// Simulate returns a copy of the board with player's piece dropped into column.
func (b *Board) Simulate(column int, player PlayerID) (Board, int, error) {
	next := *b
	row, err := next.Place(column, player)
	if err != nil {
		return Board{}, -1, err
	}
	return next, row, nil
}

func (b *Board) MoveCount() int {
	count := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b[row][col] != Empty {
				count++
			}
		}
	}
	return count
}

// Grid converts the board to plain ints, row 0 first, for JSON.
func (b *Board) Grid() [][]int {
	grid := make([][]int, Rows)
	for row := range grid {
		grid[row] = make([]int, Columns)
		for col := 0; col < Columns; col++ {
			grid[row][col] = int(b[row][col])
		}
	}
	return grid
}

// FromGrid is the inverse of Grid. It rejects wrong dimensions, unknown
// cell values and pieces floating above an empty cell.
func FromGrid(grid [][]int) (Board, error) {
	var b Board
	if len(grid) != Rows {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Rows, len(grid))
	}
	for row := range grid {
		if len(grid[row]) != Columns {
			return b, fmt.Errorf("%w: row %d has %d columns", ErrInvalidBoard, row, len(grid[row]))
		}
		for col, v := range grid[row] {
			p := PlayerID(v)
			if p != Empty && !p.IsSide() {
				return b, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidBoard, row, col, v)
			}
			b[row][col] = p
		}
	}
	if err := b.checkGravity(); err != nil {
		return Board{}, err
	}
	return b, nil
}

func (b *Board) checkGravity() error {
	for col := 0; col < Columns; col++ {
		for row := 1; row < Rows; row++ {
			if b[row][col] != Empty && b[row-1][col] == Empty {
				return fmt.Errorf("%w: floating piece at (%d,%d)", ErrInvalidBoard, row, col)
			}
		}
	}
	return nil
}

var cellRunes = [...]byte{Empty: '.', Player: 'X', Opponent: 'O'}

// cellRune renders anything outside the three known values as '?'.
func cellRune(p PlayerID) byte {
	if p < 0 || int(p) >= len(cellRunes) {
		return '?'
	}
	return cellRunes[p]
}

// String encodes the board as 42 characters, bottom row first.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Rows * Columns)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			sb.WriteByte(cellRune(b[row][col]))
		}
	}
	return sb.String()
}

// Picture renders the board the way it is seen, top row first.
func (b Board) Picture() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			sb.WriteByte(cellRune(b[row][col]))
		}
		if row > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseBoard reads a Picture: six lines of seven cells, top row first,
// using '.', 'X' (Player) and 'O' (Opponent). Surrounding blank space is ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	lines := strings.Fields(s)
	if len(lines) != Rows {
		return b, fmt.Errorf("%w: expected %d lines, got %d", ErrInvalidBoard, Rows, len(lines))
	}
	for i, line := range lines {
		row := Rows - 1 - i
		if len(line) != Columns {
			return b, fmt.Errorf("%w: line %d has %d cells", ErrInvalidBoard, i, len(line))
		}
		for col := 0; col < Columns; col++ {
			switch line[col] {
			case '.':
				b[row][col] = Empty
			case 'X', 'x':
				b[row][col] = Player
			case 'O', 'o':
				b[row][col] = Opponent
			default:
				return b, fmt.Errorf("%w: unexpected %q", ErrInvalidBoard, line[col])
			}
		}
	}
	if err := b.checkGravity(); err != nil {
		return Board{}, err
	}
	return b, nil
}
