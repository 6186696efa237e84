package constraint

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/they4kman/sweepai/game"
	"github.com/they4kman/sweepai/util/collections"
)

// AddKnowledge records that cell was opened safely and has count mines among
// its neighbors, then deduces everything that follows from it.
//
// The observation becomes a sentence over the neighbors not yet known to be
// mines or safe. Deduction then repeats full passes until one changes
// nothing: each pass marks the cells any sentence proves to be mines or
// safe, drops emptied or repeated sentences, and for every pair of sentences
// where one's cells are a strict subset of the other's, adds the sentence
// over the remaining cells with the difference of their counts.
func (kb *KnowledgeBase) AddKnowledge(cell game.Cell, count int) error {
	if !kb.bounds.Contains(cell) {
		return fmt.Errorf("add knowledge %v: %w", cell, ErrOutOfBounds)
	}

	neighbors := kb.bounds.Neighbors(cell)
	if count < 0 || count > len(neighbors) {
		return fmt.Errorf("add knowledge %v: %w: %d mines among %d neighbors", cell, ErrInvalidCount, count, len(neighbors))
	}

	if kb.mines.Contains(cell) {
		return assertionErrorf("observation %v=%d on a known mine", cell, count)
	}

	effectiveCount := count
	undetermined := make(collections.Set[game.Cell])
	for _, neighbor := range neighbors {
		switch {
		case kb.mines.Contains(neighbor):
			effectiveCount--
		case kb.safes.Contains(neighbor):
		default:
			undetermined.Add(neighbor)
		}
	}

	sentence := newSentenceFromSet(undetermined, effectiveCount)
	if undetermined.Len() == 0 && effectiveCount != 0 {
		return assertionErrorf("observation %v=%d, with %d more known mines around it", cell, count, count-effectiveCount)
	}
	if !sentence.isSound() {
		return assertionErrorf("observation %v=%d leaves %v", cell, count, sentence)
	}

	if err := kb.MarkSafe(cell); err != nil {
		return err
	}
	kb.movesMade.Add(cell)

	if !sentence.IsEmpty() && !kb.sentenceKeys().Contains(sentence.key()) {
		kb.knowledge = append(kb.knowledge, sentence)
	}

	return kb.infer()
}

// infer runs fixpoint passes until a pass changes nothing
func (kb *KnowledgeBase) infer() error {
	for pass := 1; ; pass++ {
		marked, err := kb.markKnownCells()
		if err != nil {
			return err
		}

		if err := kb.checkSentences(); err != nil {
			return err
		}

		dropped := kb.pruneSentences()

		derived, err := kb.deriveSubsets()
		if err != nil {
			return err
		}

		Log.WithFields(logrus.Fields{
			"pass":      pass,
			"marked":    marked,
			"dropped":   dropped,
			"derived":   derived,
			"sentences": len(kb.knowledge),
		}).Debug("inference pass")

		if marked == 0 && dropped == 0 && derived == 0 {
			return nil
		}
	}
}

// markKnownCells marks every cell some sentence proves to be a mine or safe,
// returning how many cells were newly marked
func (kb *KnowledgeBase) markKnownCells() (int, error) {
	mines := make(collections.Set[game.Cell])
	safes := make(collections.Set[game.Cell])

	for _, sentence := range kb.knowledge {
		for cell := range sentence.KnownMines() {
			if !kb.mines.Contains(cell) {
				mines.Add(cell)
			}
		}
		for cell := range sentence.KnownSafes() {
			if !kb.safes.Contains(cell) {
				safes.Add(cell)
			}
		}
	}

	for cell := range mines {
		if safes.Contains(cell) {
			return 0, assertionErrorf("%v deduced to be both a mine and safe", cell)
		}
	}

	for _, cell := range game.SortCells(mines.Slice()) {
		if err := kb.MarkMine(cell); err != nil {
			return 0, err
		}
	}
	for _, cell := range game.SortCells(safes.Slice()) {
		if err := kb.MarkSafe(cell); err != nil {
			return 0, err
		}
	}

	return mines.Len() + safes.Len(), nil
}

func (kb *KnowledgeBase) checkSentences() error {
	for _, sentence := range kb.knowledge {
		if !sentence.isSound() {
			Log.WithField("sentence", sentence.String()).Error("unsatisfiable sentence")
			return assertionErrorf("unsatisfiable sentence %v", sentence)
		}
	}
	return nil
}

// pruneSentences removes sentences with no cells left, along with sentences
// which marking has made equal to an earlier one. Returns how many were
// removed.
func (kb *KnowledgeBase) pruneSentences() int {
	seen := make(collections.Set[string], len(kb.knowledge))
	live := kb.knowledge[:0]
	for _, sentence := range kb.knowledge {
		if sentence.IsEmpty() {
			continue
		}
		key := sentence.key()
		if seen.Contains(key) {
			continue
		}
		seen.Add(key)
		live = append(live, sentence)
	}

	dropped := len(kb.knowledge) - len(live)
	for i := len(live); i < len(kb.knowledge); i++ {
		kb.knowledge[i] = nil
	}
	kb.knowledge = live
	return dropped
}

// deriveSubsets applies the subset rule once to every ordered pair of live
// sentences, adding each new sentence found. Returns the number added.
func (kb *KnowledgeBase) deriveSubsets() (int, error) {
	known := kb.sentenceKeys()
	snapshot := kb.knowledge

	var derived []*Sentence
	for _, superset := range snapshot {
		for _, subset := range snapshot {
			if superset == subset || !subset.cells.IsStrictSubsetOf(superset.cells) {
				continue
			}

			candidate := newSentenceFromSet(
				superset.cells.Difference(subset.cells),
				superset.count-subset.count,
			)
			if !candidate.isSound() {
				Log.WithFields(logrus.Fields{
					"superset": superset.String(),
					"subset":   subset.String(),
				}).Error("subset rule produced unsatisfiable sentence")
				return 0, assertionErrorf("%v minus %v leaves %v", superset, subset, candidate)
			}

			key := candidate.key()
			if known.Contains(key) {
				continue
			}
			known.Add(key)
			derived = append(derived, candidate)
		}
	}

	kb.knowledge = append(kb.knowledge, derived...)
	return len(derived), nil
}
