package random

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/they4kman/sweepai/game"
)

func TestDirectorVisitsEveryCellOnce(t *testing.T) {
	director := &Director{Rand: rand.New(rand.NewPCG(1, 2))}
	director.Init(3, 4)

	seen := make(map[game.Cell]int)
	for {
		move, ok := director.Act()
		if !ok {
			break
		}
		assert.Equal(t, game.Random, move.Strategy)
		seen[move.Cell]++
	}

	assert.Len(t, seen, 12)
	for cell, times := range seen {
		assert.Equal(t, 1, times, "%v chosen more than once", cell)
	}
}

func TestDirectorSkipsObservedCells(t *testing.T) {
	director := &Director{}
	director.Init(2, 2)

	require.NoError(t, director.Observe(game.Cell{Row: 0, Col: 0}, 0))
	require.NoError(t, director.Observe(game.Cell{Row: 1, Col: 1}, 0))

	var moves []game.Cell
	for {
		move, ok := director.Act()
		if !ok {
			break
		}
		moves = append(moves, move.Cell)
	}

	assert.ElementsMatch(t, []game.Cell{{Row: 0, Col: 1}, {Row: 1, Col: 0}}, moves)
}

func TestDirectorPlays(t *testing.T) {
	config := game.GameConfig{Width: 9, Height: 9, NumMines: 10, Mode: game.Win7, Seed: 5}

	result, err := game.Play(config, &Director{Rand: rand.New(rand.NewPCG(5, 5))})
	require.NoError(t, err)

	assert.Contains(t, []game.BoardState{game.Won, game.Lost}, result.State)
	assert.Equal(t, result.Moves, result.Guesses)
	assert.Zero(t, result.Flags)
}
