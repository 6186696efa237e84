package game

import (
	"cmp"
	"fmt"
	"slices"
)

// Cell is a board coordinate. Two cells with equal coordinates are the same
// cell.
type Cell struct {
	Row, Col int
}

func (cell Cell) String() string {
	return fmt.Sprintf("(%d, %d)", cell.Row, cell.Col)
}

// Compare orders cells row-major
func (cell Cell) Compare(other Cell) int {
	if c := cmp.Compare(cell.Row, other.Row); c != 0 {
		return c
	}
	return cmp.Compare(cell.Col, other.Col)
}

// SortCells sorts cells in place, row-major, and returns them
func SortCells(cells []Cell) []Cell {
	slices.SortFunc(cells, Cell.Compare)
	return cells
}

// Bounds describes the dimensions of a board
type Bounds struct {
	Height, Width int
}

func (bounds Bounds) NumCells() int {
	return bounds.Height * bounds.Width
}

func (bounds Bounds) Contains(cell Cell) bool {
	return cell.Row >= 0 && cell.Col >= 0 && cell.Row < bounds.Height && cell.Col < bounds.Width
}

// Cells returns every cell within the bounds, row-major
func (bounds Bounds) Cells() []Cell {
	cells := make([]Cell, 0, bounds.NumCells())
	for row := range bounds.Height {
		for col := range bounds.Width {
			cells = append(cells, Cell{row, col})
		}
	}
	return cells
}

// CellAt maps a row-major index back to its cell
func (bounds Bounds) CellAt(idx int) Cell {
	return Cell{Row: idx / bounds.Width, Col: idx % bounds.Width}
}

// Neighbors returns the in-bounds cells adjacent to cell (including
// diagonals), excluding cell itself
func (bounds Bounds) Neighbors(cell Cell) []Cell {
	isAtTopBorder := cell.Row < 1
	isAtBottomBorder := cell.Row >= bounds.Height-1

	neighbors := make([]Cell, 0, 8)

	if cell.Col >= 1 {
		neighbors = append(neighbors, Cell{cell.Row, cell.Col - 1})

		if !isAtTopBorder {
			neighbors = append(neighbors, Cell{cell.Row - 1, cell.Col - 1})
		}
		if !isAtBottomBorder {
			neighbors = append(neighbors, Cell{cell.Row + 1, cell.Col - 1})
		}
	}

	if cell.Col < bounds.Width-1 {
		neighbors = append(neighbors, Cell{cell.Row, cell.Col + 1})

		if !isAtTopBorder {
			neighbors = append(neighbors, Cell{cell.Row - 1, cell.Col + 1})
		}
		if !isAtBottomBorder {
			neighbors = append(neighbors, Cell{cell.Row + 1, cell.Col + 1})
		}
	}

	if !isAtTopBorder {
		neighbors = append(neighbors, Cell{cell.Row - 1, cell.Col})
	}
	if !isAtBottomBorder {
		neighbors = append(neighbors, Cell{cell.Row + 1, cell.Col})
	}

	return neighbors
}
