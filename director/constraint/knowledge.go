package constraint

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/they4kman/sweepai/game"
	"github.com/they4kman/sweepai/util/collections"
)

var Log = logrus.New()

// KnowledgeBase holds everything known about a board: the cells already
// played, the cells proven to be mines or safe, and the sentences still
// constraining the undetermined cells.
//
// Cells in mines or safes never appear in a live sentence; marking a cell
// removes it from every sentence immediately.
type KnowledgeBase struct {
	bounds game.Bounds
	rand   *rand.Rand

	movesMade collections.Set[game.Cell]
	mines     collections.Set[game.Cell]
	safes     collections.Set[game.Cell]
	knowledge []*Sentence
}

func NewKnowledgeBase(height, width int, r *rand.Rand) *KnowledgeBase {
	if height <= 0 || width <= 0 {
		panic(fmt.Sprintf("invalid board dimensions %dx%d", height, width))
	}

	return &KnowledgeBase{
		bounds:    game.Bounds{Height: height, Width: width},
		rand:      r,
		movesMade: make(collections.Set[game.Cell]),
		mines:     make(collections.Set[game.Cell]),
		safes:     make(collections.Set[game.Cell]),
	}
}

func (kb *KnowledgeBase) Bounds() game.Bounds {
	return kb.bounds
}

// MarkMine records cell as a mine, and removes it from every sentence
func (kb *KnowledgeBase) MarkMine(cell game.Cell) error {
	if kb.safes.Contains(cell) {
		return assertionErrorf("%v is known safe, cannot mark it a mine", cell)
	}

	kb.mines.Add(cell)
	for _, sentence := range kb.knowledge {
		sentence.MarkMine(cell)
	}
	return nil
}

// MarkSafe records cell as safe, and removes it from every sentence
func (kb *KnowledgeBase) MarkSafe(cell game.Cell) error {
	if kb.mines.Contains(cell) {
		return assertionErrorf("%v is a known mine, cannot mark it safe", cell)
	}

	kb.safes.Add(cell)
	for _, sentence := range kb.knowledge {
		sentence.MarkSafe(cell)
	}
	return nil
}

func (kb *KnowledgeBase) IsMine(cell game.Cell) bool {
	return kb.mines.Contains(cell)
}

func (kb *KnowledgeBase) IsSafe(cell game.Cell) bool {
	return kb.safes.Contains(cell)
}

// Mines returns the cells known to be mines, row-major
func (kb *KnowledgeBase) Mines() []game.Cell {
	return game.SortCells(kb.mines.Slice())
}

// Safes returns the cells known to be safe, row-major
func (kb *KnowledgeBase) Safes() []game.Cell {
	return game.SortCells(kb.safes.Slice())
}

// MovesMade returns the cells already played, row-major
func (kb *KnowledgeBase) MovesMade() []game.Cell {
	return game.SortCells(kb.movesMade.Slice())
}

// Sentences returns copies of the live sentences
func (kb *KnowledgeBase) Sentences() []*Sentence {
	sentences := make([]*Sentence, len(kb.knowledge))
	for i, sentence := range kb.knowledge {
		sentences[i] = sentence.Clone()
	}
	return sentences
}

// sentenceKeys returns the normalized keys of every live sentence
func (kb *KnowledgeBase) sentenceKeys() collections.Set[string] {
	keys := make(collections.Set[string], len(kb.knowledge))
	for _, sentence := range kb.knowledge {
		keys.Add(sentence.key())
	}
	return keys
}
