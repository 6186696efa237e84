package constraint

import (
	"github.com/they4kman/sweepai/game"
)

// MakeSafeMove returns a cell known to be safe which hasn't been played yet,
// preferring the first in row-major order. It never modifies the knowledge
// base.
func (kb *KnowledgeBase) MakeSafeMove() (game.Cell, bool) {
	var (
		move  game.Cell
		found bool
	)
	for cell := range kb.safes {
		if kb.movesMade.Contains(cell) {
			continue
		}
		if !found || cell.Compare(move) < 0 {
			move, found = cell, true
		}
	}
	return move, found
}

// MakeRandomMove returns a cell chosen uniformly among those not yet played
// and not known to be mines.
func (kb *KnowledgeBase) MakeRandomMove() (game.Cell, bool) {
	excluded := kb.movesMade.Union(kb.mines)
	possibleMoves := make([]game.Cell, 0, kb.bounds.NumCells()-excluded.Len())
	for _, cell := range kb.bounds.Cells() {
		if !excluded.Contains(cell) {
			possibleMoves = append(possibleMoves, cell)
		}
	}

	if len(possibleMoves) == 0 {
		return game.Cell{}, false
	}
	return possibleMoves[kb.rand.IntN(len(possibleMoves))], true
}
