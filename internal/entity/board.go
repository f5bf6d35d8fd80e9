package entity

import "strings"

const (
	BoardWidth  = 7
	BoardHeight = 6

	WinLength = 4
)

// Cell is the content of one board position.
type Cell uint8

const (
	EmptyCell Cell = iota
	FirstCell
	SecondCell
)

func cellOf(player Player) Cell {
	if player == First {
		return FirstCell
	}
	return SecondCell
}

// directions of a run as {column step, row step}: vertical, horizontal, rising and falling diagonal.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// Board is a 7x6 Connect-Four grid indexed by column then row, row 0 being the bottom.
type Board struct {
	cells [BoardWidth][BoardHeight]Cell
}

func NewBoard() *Board {
	return &Board{}
}

// Place - drops a piece into the lowest empty row of the column.
// Returns false without touching the board when the column is out of range or full.
func (that *Board) Place(column int, player Player) bool {
	if column < 0 || column >= BoardWidth {
		return false
	}

	for row := range BoardHeight {
		if that.cells[column][row] == EmptyCell {
			that.cells[column][row] = cellOf(player)
			return true
		}
	}

	return false
}

// CheckWin - reports whether player owns at least WinLength contiguous cells in any direction.
// Every line is rescanned from scratch.
func (that *Board) CheckWin(player Player) bool {
	mark := cellOf(player)

	for _, dir := range directions {
		for column := range BoardWidth {
			for row := range BoardHeight {
				// only walk from the first cell of each line
				if inBounds(column-dir[0], row-dir[1]) {
					continue
				}

				if that.scanLine(column, row, dir, mark) {
					return true
				}
			}
		}
	}

	return false
}

func (that *Board) scanLine(column, row int, dir [2]int, mark Cell) bool {
	run := 0

	for ; inBounds(column, row); column, row = column+dir[0], row+dir[1] {
		if that.cells[column][row] != mark {
			run = 0
			continue
		}

		run++
		if run >= WinLength {
			return true
		}
	}

	return false
}

// Cell - returns the content at column/row, EmptyCell when outside the board.
func (that *Board) Cell(column, row int) Cell {
	if !inBounds(column, row) {
		return EmptyCell
	}
	return that.cells[column][row]
}

// Height - number of pieces in the column.
func (that *Board) Height(column int) int {
	if column < 0 || column >= BoardWidth {
		return 0
	}

	for row := range BoardHeight {
		if that.cells[column][row] == EmptyCell {
			return row
		}
	}

	return BoardHeight
}

func (that *Board) IsFull() bool {
	for column := range BoardWidth {
		if that.Height(column) < BoardHeight {
			return false
		}
	}
	return true
}

// Rows - renders the board top row first, "." for empty and the role number for a piece.
func (that *Board) Rows() []string {
	rows := make([]string, 0, BoardHeight)

	for row := BoardHeight - 1; row >= 0; row-- {
		var line strings.Builder
		for column := range BoardWidth {
			switch that.cells[column][row] {
			case FirstCell:
				line.WriteString(First.String())
			case SecondCell:
				line.WriteString(Second.String())
			default:
				line.WriteByte('.')
			}
		}
		rows = append(rows, line.String())
	}

	return rows
}

func inBounds(column, row int) bool {
	return column >= 0 && column < BoardWidth && row >= 0 && row < BoardHeight
}
