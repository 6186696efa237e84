package game

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/they4kman/sweepai/util/collections"
)

type boardConfig struct {
	Width, Height int
	NumMines      int
	Mode          GameMode
	Seed          int64
}

func (config boardConfig) newRand() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(config.Seed), 0))
}

// Board is the environment the directors play against. It knows where the
// mines are, and answers how many mines surround an opened cell.
type Board struct {
	bounds   Bounds
	numMines int
	mode     GameMode
	seed     int64
	rand     *rand.Rand

	mines      collections.Set[Cell]
	revealed   collections.Set[Cell]
	flagged    collections.Set[Cell]
	losingMine *Cell

	state     BoardState
	hasOpened bool
}

func (board *Board) Bounds() Bounds {
	return board.bounds
}

func (board *Board) Width() int {
	return board.bounds.Width
}

func (board *Board) Height() int {
	return board.bounds.Height
}

func (board *Board) NumCells() int {
	return board.bounds.NumCells()
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) Seed() int64 {
	return board.seed
}

func (board *Board) State() BoardState {
	return board.state
}

func (board *Board) Won() bool {
	return board.state == Won
}

func (board *Board) IsMine(cell Cell) bool {
	return board.mines.Contains(cell)
}

func (board *Board) IsRevealed(cell Cell) bool {
	return board.revealed.Contains(cell)
}

func (board *Board) IsFlagged(cell Cell) bool {
	return board.flagged.Contains(cell)
}

// NearbyMines returns the number of mines adjacent to cell, not counting the
// cell itself
func (board *Board) NearbyMines(cell Cell) int {
	count := 0
	for _, neighbor := range board.bounds.Neighbors(cell) {
		if board.mines.Contains(neighbor) {
			count++
		}
	}
	return count
}

// MinesFound returns the number of flags correctly placed on mines
func (board *Board) MinesFound() int {
	found := 0
	for cell := range board.flagged {
		if board.mines.Contains(cell) {
			found++
		}
	}
	return found
}

// AllMinesFlagged reports whether the flags are exactly the mines
func (board *Board) AllMinesFlagged() bool {
	return board.flagged.Equal(board.mines)
}

// Reveal is a cell opened on the board, along with its adjacent mine count
type Reveal struct {
	Cell  Cell
	Count int
}

// Open reveals cell, cascading through neighbors of cells with no adjacent
// mines. The newly revealed cells are returned in the order they were
// revealed. Opening a mine loses the game; opening a flagged or already
// revealed cell does nothing.
func (board *Board) Open(cell Cell) ([]Reveal, error) {
	if !board.bounds.Contains(cell) {
		return nil, fmt.Errorf("open %v: %w", cell, ErrOutOfBounds)
	}
	if !board.canPlay() {
		return nil, fmt.Errorf("open %v: %w", cell, ErrGameOver)
	}

	if !board.hasOpened {
		board.hasOpened = true

		if board.mode == Win7 {
			board.clearSurroundingMines(cell)
		}
	}

	if board.revealed.Contains(cell) || board.flagged.Contains(cell) {
		return nil, nil
	}

	if board.mines.Contains(cell) {
		board.losingMine = &cell
		board.lose()
		return nil, nil
	}

	revealed := board.cascade(cell)
	if board.revealed.Len() == board.NumCells()-board.mines.Len() {
		board.win()
	}
	return revealed, nil
}

// Flag marks cell as a suspected mine
func (board *Board) Flag(cell Cell) error {
	if !board.bounds.Contains(cell) {
		return fmt.Errorf("flag %v: %w", cell, ErrOutOfBounds)
	}
	if board.revealed.Contains(cell) {
		return nil
	}
	board.flagged.Add(cell)
	return nil
}

// Unflag removes any flag from cell
func (board *Board) Unflag(cell Cell) {
	board.flagged.Remove(cell)
}

func (board *Board) canPlay() bool {
	return board.state == Ongoing
}

func (board *Board) win() {
	board.state = Won
}

func (board *Board) lose() {
	board.state = Lost
}

func (board *Board) stall() {
	board.state = Stalled
}

// clearSurroundingMines moves any mines on or around cell to random cells
// elsewhere on the board, so the first click never loses
func (board *Board) clearSurroundingMines(cell Cell) {
	protected := collections.NewSet(board.bounds.Neighbors(cell)...)
	protected.Add(cell)

	candidates := make([]Cell, 0, board.NumCells())
	for _, other := range board.bounds.Cells() {
		if !protected.Contains(other) && !board.mines.Contains(other) {
			candidates = append(candidates, other)
		}
	}

	for _, protectedCell := range SortCells(protected.Slice()) {
		if !board.mines.Contains(protectedCell) || len(candidates) == 0 {
			continue
		}

		i := board.rand.IntN(len(candidates))
		board.mines.Remove(protectedCell)
		board.mines.Add(candidates[i])
		candidates[i] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
	}
}

func (board *Board) String() string {
	var b strings.Builder
	for row := range board.bounds.Height {
		for col := range board.bounds.Width {
			cell := Cell{row, col}
			switch {
			case board.losingMine != nil && *board.losingMine == cell:
				b.WriteRune(charLosingMine)
			case board.flagged.Contains(cell):
				b.WriteRune('F')
			case board.revealed.Contains(cell):
				if count := board.NearbyMines(cell); count == 0 {
					b.WriteRune('.')
				} else {
					b.WriteString(strconv.Itoa(count))
				}
			default:
				b.WriteRune(charHiddenSafe)
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func createBoard(config boardConfig) *Board {
	return &Board{
		bounds:   Bounds{Height: config.Height, Width: config.Width},
		numMines: config.NumMines,
		mode:     config.Mode,
		seed:     config.Seed,
		rand:     config.newRand(),
		mines:    make(collections.Set[Cell]),
		revealed: make(collections.Set[Cell]),
		flagged:  make(collections.Set[Cell]),
		state:    Ongoing,
	}
}

func createFilledBoard(config boardConfig) (*Board, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoard, config.Width, config.Height)
	}
	if config.NumMines < 0 || config.NumMines >= config.Width*config.Height {
		return nil, fmt.Errorf("%w: %d mines on %dx%d", ErrTooManyMines, config.NumMines, config.Width, config.Height)
	}

	board := createBoard(config)

	// Store cell indexes, to shuffle and fill mines
	cellIndexes := make([]int, board.NumCells())
	for i := range cellIndexes {
		cellIndexes[i] = i
	}

	board.rand.Shuffle(len(cellIndexes), func(i, j int) {
		cellIndexes[i], cellIndexes[j] = cellIndexes[j], cellIndexes[i]
	})
	for _, cellIdx := range cellIndexes[:config.NumMines] {
		board.mines.Add(board.bounds.CellAt(cellIdx))
	}

	return board, nil
}
