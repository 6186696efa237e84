package constraint

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/they4kman/sweepai/game"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	game.Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func newTestKnowledgeBase(height, width int) *KnowledgeBase {
	return NewKnowledgeBase(height, width, rand.New(rand.NewPCG(1, 2)))
}

func cell(row, col int) game.Cell {
	return game.Cell{Row: row, Col: col}
}

func TestAddKnowledgeZeroMarksNeighborsSafe(t *testing.T) {
	kb := newTestKnowledgeBase(3, 3)

	require.NoError(t, kb.AddKnowledge(cell(0, 0), 0))

	assert.Equal(t, []game.Cell{cell(0, 0), cell(0, 1), cell(1, 0), cell(1, 1)}, kb.Safes())
	assert.Empty(t, kb.Mines())
	assert.Equal(t, []game.Cell{cell(0, 0)}, kb.MovesMade())
	assert.Empty(t, kb.Sentences(), "resolved sentences are dropped")
}

func TestAddKnowledgeFullCountMarksNeighborsMines(t *testing.T) {
	kb := newTestKnowledgeBase(3, 3)

	require.NoError(t, kb.AddKnowledge(cell(1, 1), 8))

	assert.Equal(t, []game.Cell{
		cell(0, 0), cell(0, 1), cell(0, 2),
		cell(1, 0), cell(1, 2),
		cell(2, 0), cell(2, 1), cell(2, 2),
	}, kb.Mines())
	assert.Equal(t, []game.Cell{cell(1, 1)}, kb.Safes())
	assert.Empty(t, kb.Sentences())
}

func TestSubsetRuleMarksDifferenceSafe(t *testing.T) {
	kb := newTestKnowledgeBase(3, 3)
	kb.knowledge = []*Sentence{
		NewSentence([]game.Cell{a, b, c}, 1),
		NewSentence([]game.Cell{a, b}, 1),
	}

	require.NoError(t, kb.infer())

	assert.True(t, kb.IsSafe(c))
	assert.False(t, kb.IsSafe(a))
	assert.False(t, kb.IsSafe(b))
	for _, sentence := range kb.Sentences() {
		assert.Equal(t, "{(0, 0), (0, 1)} = 1", sentence.String())
	}
}

func TestSubsetRuleFromObservations(t *testing.T) {
	kb := newTestKnowledgeBase(2, 3)

	// {(0, 0), (0, 1), (1, 1)} = 1
	require.NoError(t, kb.AddKnowledge(cell(1, 0), 1))
	// {(0, 0), (0, 1), (0, 2), (1, 2)} = 1, a superset of {(0, 0), (0, 1)} = 1
	require.NoError(t, kb.AddKnowledge(cell(1, 1), 1))

	assert.Equal(t, []game.Cell{cell(0, 2), cell(1, 0), cell(1, 1), cell(1, 2)}, kb.Safes())
	assert.Empty(t, kb.Mines())

	sentences := kb.Sentences()
	require.NotEmpty(t, sentences)
	for _, sentence := range sentences {
		assert.True(t, sentence.Equal(NewSentence([]game.Cell{cell(0, 0), cell(0, 1)}, 1)), "unexpected %v", sentence)
	}
}

func TestAddKnowledgeSkipsKnownCells(t *testing.T) {
	kb := newTestKnowledgeBase(3, 3)
	require.NoError(t, kb.MarkMine(cell(0, 0)))
	require.NoError(t, kb.MarkSafe(cell(0, 1)))

	require.NoError(t, kb.AddKnowledge(cell(1, 1), 2))

	sentences := kb.Sentences()
	require.Len(t, sentences, 1)
	assert.Equal(t, 1, sentences[0].Count())
	assert.Equal(t, []game.Cell{
		cell(0, 2), cell(1, 0), cell(1, 2), cell(2, 0), cell(2, 1), cell(2, 2),
	}, sentences[0].Cells())
}

func TestAddKnowledgeDoesNotDuplicate(t *testing.T) {
	kb := newTestKnowledgeBase(3, 3)

	require.NoError(t, kb.AddKnowledge(cell(1, 1), 1))
	require.NoError(t, kb.AddKnowledge(cell(1, 1), 1))

	assert.Len(t, kb.Sentences(), 1)
	assert.Equal(t, []game.Cell{cell(1, 1)}, kb.MovesMade())
}

func TestAddKnowledgeErrors(t *testing.T) {
	tests := []struct {
		name  string
		cell  game.Cell
		count int
		err   error
	}{
		{"row out of bounds", cell(3, 0), 0, ErrOutOfBounds},
		{"col out of bounds", cell(0, -1), 0, ErrOutOfBounds},
		{"negative count", cell(1, 1), -1, ErrInvalidCount},
		{"count above neighbors", cell(1, 1), 9, ErrInvalidCount},
		{"count above corner neighbors", cell(0, 0), 4, ErrInvalidCount},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			kb := newTestKnowledgeBase(3, 3)
			err := kb.AddKnowledge(test.cell, test.count)
			assert.ErrorIs(t, err, test.err)
			assert.Empty(t, kb.MovesMade(), "rejected observations change nothing")
		})
	}
}

func TestAddKnowledgeContradictions(t *testing.T) {
	t.Run("observed cell is a known mine", func(t *testing.T) {
		kb := newTestKnowledgeBase(1, 3)
		require.NoError(t, kb.AddKnowledge(cell(0, 0), 1))
		require.True(t, kb.IsMine(cell(0, 1)))

		var assertionErr AssertionError
		assert.True(t, errors.As(kb.AddKnowledge(cell(0, 1), 0), &assertionErr))
	})

	t.Run("count below known mines", func(t *testing.T) {
		kb := newTestKnowledgeBase(1, 3)
		require.NoError(t, kb.AddKnowledge(cell(0, 0), 1))

		var assertionErr AssertionError
		assert.True(t, errors.As(kb.AddKnowledge(cell(0, 2), 0), &assertionErr))
		assert.False(t, kb.IsSafe(cell(0, 2)), "rejected observations change nothing")
		assert.Equal(t, []game.Cell{cell(0, 0)}, kb.MovesMade())
	})

	t.Run("count above undetermined neighbors", func(t *testing.T) {
		kb := newTestKnowledgeBase(1, 3)
		require.NoError(t, kb.MarkSafe(cell(0, 0)))

		var assertionErr AssertionError
		assert.True(t, errors.As(kb.AddKnowledge(cell(0, 1), 2), &assertionErr))
		assert.Equal(t, []game.Cell{cell(0, 0)}, kb.Safes(), "rejected observations change nothing")
		assert.Empty(t, kb.MovesMade())
	})

	t.Run("subset rule leaves negative count", func(t *testing.T) {
		kb := newTestKnowledgeBase(3, 3)
		d := cell(1, 0)
		kb.knowledge = []*Sentence{
			NewSentence([]game.Cell{a, b, c, d}, 1),
			NewSentence([]game.Cell{a, b, c}, 2),
		}

		var assertionErr AssertionError
		assert.True(t, errors.As(kb.infer(), &assertionErr))
	})
}

func TestMarkIsIdempotent(t *testing.T) {
	kb := newTestKnowledgeBase(3, 3)
	kb.knowledge = []*Sentence{NewSentence([]game.Cell{a, b, c}, 2)}

	require.NoError(t, kb.MarkMine(a))
	require.NoError(t, kb.MarkMine(a))
	require.NoError(t, kb.MarkSafe(b))
	require.NoError(t, kb.MarkSafe(b))

	assert.Equal(t, []game.Cell{a}, kb.Mines())
	assert.Equal(t, []game.Cell{b}, kb.Safes())
	require.Len(t, kb.knowledge, 1)
	assert.Equal(t, []game.Cell{c}, kb.knowledge[0].Cells())
	assert.Equal(t, 1, kb.knowledge[0].Count())
}

func TestMarkKeepsMinesAndSafesDisjoint(t *testing.T) {
	kb := newTestKnowledgeBase(3, 3)
	require.NoError(t, kb.MarkMine(a))
	require.NoError(t, kb.MarkSafe(b))

	var assertionErr AssertionError
	assert.True(t, errors.As(kb.MarkSafe(a), &assertionErr))
	assert.True(t, errors.As(kb.MarkMine(b), &assertionErr))
	assert.False(t, kb.IsSafe(a))
	assert.False(t, kb.IsMine(b))
}

func TestMakeSafeMove(t *testing.T) {
	kb := newTestKnowledgeBase(3, 3)

	_, ok := kb.MakeSafeMove()
	assert.False(t, ok)

	require.NoError(t, kb.AddKnowledge(cell(0, 0), 0))

	move, ok := kb.MakeSafeMove()
	require.True(t, ok)
	assert.Equal(t, cell(0, 1), move)

	again, _ := kb.MakeSafeMove()
	assert.Equal(t, move, again, "choosing a move changes nothing")
	assert.Equal(t, []game.Cell{cell(0, 0)}, kb.MovesMade())
}

func TestMakeSafeMoveExhausted(t *testing.T) {
	kb := newTestKnowledgeBase(3, 3)
	require.NoError(t, kb.MarkSafe(cell(0, 0)))
	kb.movesMade.Add(cell(0, 0))

	_, ok := kb.MakeSafeMove()
	assert.False(t, ok)
}

func TestMakeRandomMove(t *testing.T) {
	kb := newTestKnowledgeBase(2, 2)
	kb.movesMade.Add(cell(0, 0))
	require.NoError(t, kb.MarkMine(cell(1, 1)))

	seen := make(map[game.Cell]int)
	for range 200 {
		move, ok := kb.MakeRandomMove()
		require.True(t, ok)
		seen[move]++
	}

	assert.Len(t, seen, 2)
	assert.Greater(t, seen[cell(0, 1)], 0)
	assert.Greater(t, seen[cell(1, 0)], 0)
}

func TestMakeRandomMoveExhausted(t *testing.T) {
	kb := newTestKnowledgeBase(2, 2)
	kb.movesMade.Add(cell(0, 0))
	kb.movesMade.Add(cell(0, 1))
	require.NoError(t, kb.MarkMine(cell(1, 0)))
	require.NoError(t, kb.MarkMine(cell(1, 1)))

	_, ok := kb.MakeRandomMove()
	assert.False(t, ok)
}

func TestNewKnowledgeBaseInvalidDimensions(t *testing.T) {
	assert.Panics(t, func() {
		newTestKnowledgeBase(0, 3)
	})
}
