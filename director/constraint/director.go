package constraint

import (
	"math/rand/v2"

	"github.com/they4kman/sweepai/game"
)

// Director plays by deduction, opening cells proven safe, and guessing only
// when nothing is known to be safe
type Director struct {
	// Source of randomness for guesses; seeded from the runtime if nil
	Rand *rand.Rand

	kb *KnowledgeBase
}

func (director *Director) Init(height, width int) {
	if director.Rand == nil {
		director.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	director.kb = NewKnowledgeBase(height, width, director.Rand)
}

func (director *Director) KnowledgeBase() *KnowledgeBase {
	return director.kb
}

func (director *Director) Observe(cell game.Cell, count int) error {
	return director.kb.AddKnowledge(cell, count)
}

func (director *Director) Act() (game.Move, bool) {
	if cell, ok := director.kb.MakeSafeMove(); ok {
		return game.Move{Cell: cell, Strategy: game.Deliberate}, true
	}
	if cell, ok := director.kb.MakeRandomMove(); ok {
		return game.Move{Cell: cell, Strategy: game.Random}, true
	}
	return game.Move{}, false
}

func (director *Director) Mines() []game.Cell {
	return director.kb.Mines()
}
