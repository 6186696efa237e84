package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	SerializedBoard string `yaml:"board"`
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// CreateBoard restores the board held by the snapshot. With fresh set, all
// cells are returned to unrevealed and unflagged, keeping mine placement.
func (snapshot *BoardSnapshot) CreateBoard(config boardConfig, fresh bool) (*Board, error) {
	rows := strings.Split(strings.TrimRight(snapshot.SerializedBoard, "\n"), "\n")

	config.Height = len(rows)
	config.Width = len(rows[0])
	if config.Height == 0 || config.Width == 0 {
		return nil, fmt.Errorf("%w: empty snapshot", ErrInvalidBoard)
	}

	config.Seed = snapshot.Seed
	board := createBoard(config)

	// Mine placement is fixed by the snapshot
	board.hasOpened = true

	for row, line := range rows {
		if len(line) != config.Width {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", ErrInvalidBoard, row, len(line), config.Width)
		}

		for col, c := range line {
			cell := Cell{row, col}
			if !board.deserializeCell(cell, c, fresh) {
				return nil, fmt.Errorf("%w: unknown cell %q at %v", ErrInvalidBoard, c, cell)
			}
		}
	}

	board.numMines = board.mines.Len()

	switch {
	case board.losingMine != nil:
		board.lose()
	case board.revealed.Len() == board.NumCells()-board.mines.Len():
		board.win()
	}

	return board, nil
}

func (board *Board) deserializeCell(cell Cell, c rune, fresh bool) bool {
	switch c {
	case charLosingMine, charFlaggedMine, charHiddenMine:
		board.mines.Add(cell)

		if fresh {
			return true
		}

		switch c {
		case charLosingMine:
			board.losingMine = &cell
		case charFlaggedMine:
			board.flagged.Add(cell)
		}
	case charFlaggedSafe:
		if !fresh {
			board.flagged.Add(cell)
		}
	case charRevealedSafe:
		if !fresh {
			board.revealed.Add(cell)
		}
	case charHiddenSafe:
	default:
		return false
	}

	return true
}

func (board *Board) serializeCell(cell Cell) rune {
	switch {
	case board.mines.Contains(cell):
		switch {
		case board.losingMine != nil && *board.losingMine == cell:
			return charLosingMine
		case board.flagged.Contains(cell):
			return charFlaggedMine
		default:
			return charHiddenMine
		}
	case board.flagged.Contains(cell):
		return charFlaggedSafe
	case board.revealed.Contains(cell):
		return charRevealedSafe
	default:
		return charHiddenSafe
	}
}

func (board *Board) snapshot() *BoardSnapshot {
	var serialized strings.Builder
	for row := range board.bounds.Height {
		if row > 0 {
			serialized.WriteRune('\n')
		}
		for col := range board.bounds.Width {
			serialized.WriteRune(board.serializeCell(Cell{row, col}))
		}
	}

	return &BoardSnapshot{
		Seed:            board.seed,
		SerializedBoard: serialized.String(),
	}
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
