package random

import (
	"math/rand/v2"

	"github.com/they4kman/sweepai/game"
	"github.com/they4kman/sweepai/util/collections"
)

// Director opens cells in a random order, ignoring everything it observes
// except which cells are already open
type Director struct {
	Rand *rand.Rand

	unrevealedCells []game.Cell
	revealed        collections.Set[game.Cell]
}

func (director *Director) Init(height, width int) {
	if director.Rand == nil {
		director.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	director.unrevealedCells = game.Bounds{Height: height, Width: width}.Cells()
	director.revealed = make(collections.Set[game.Cell])

	director.Rand.Shuffle(len(director.unrevealedCells), func(i, j int) {
		director.unrevealedCells[i], director.unrevealedCells[j] = director.unrevealedCells[j], director.unrevealedCells[i]
	})
}

func (director *Director) Observe(cell game.Cell, count int) error {
	director.revealed.Add(cell)
	return nil
}

func (director *Director) Act() (game.Move, bool) {
	for len(director.unrevealedCells) > 0 {
		cell := director.unrevealedCells[0]
		director.unrevealedCells = director.unrevealedCells[1:]

		if !director.revealed.Contains(cell) {
			return game.Move{Cell: cell, Strategy: game.Random}, true
		}
	}
	return game.Move{}, false
}
