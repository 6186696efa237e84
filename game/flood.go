package game

import (
	"github.com/gammazero/deque"

	"github.com/they4kman/sweepai/util/collections"
)

// cascade reveals origin and floods breadth-first through every cell with no
// adjacent mines, stopping at flagged cells
func (board *Board) cascade(origin Cell) []Reveal {
	var visitQueue deque.Deque
	visited := collections.NewSet(origin)
	visitQueue.PushBack(origin)

	var revealed []Reveal
	for visitQueue.Len() > 0 {
		cell := visitQueue.PopFront().(Cell)

		count := board.NearbyMines(cell)
		board.revealed.Add(cell)
		revealed = append(revealed, Reveal{Cell: cell, Count: count})

		if count != 0 {
			continue
		}

		for _, neighbor := range board.bounds.Neighbors(cell) {
			// Don't visit, if already visited
			if visited.Contains(neighbor) || board.revealed.Contains(neighbor) || board.flagged.Contains(neighbor) {
				continue
			}
			visited.Add(neighbor)
			visitQueue.PushBack(neighbor)
		}
	}

	return revealed
}
