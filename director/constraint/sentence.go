package constraint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/they4kman/sweepai/game"
	"github.com/they4kman/sweepai/util/collections"
)

// Sentence is the constraint "exactly count of cells are mines"
type Sentence struct {
	cells collections.Set[game.Cell]
	count int
}

func NewSentence(cells []game.Cell, count int) *Sentence {
	return &Sentence{
		cells: collections.NewSet(cells...),
		count: count,
	}
}

func newSentenceFromSet(cells collections.Set[game.Cell], count int) *Sentence {
	return &Sentence{cells: cells, count: count}
}

// Cells returns the sentence's cells, row-major
func (sentence *Sentence) Cells() []game.Cell {
	return game.SortCells(sentence.cells.Slice())
}

func (sentence *Sentence) Count() int {
	return sentence.count
}

func (sentence *Sentence) Len() int {
	return sentence.cells.Len()
}

func (sentence *Sentence) IsEmpty() bool {
	return sentence.cells.Len() == 0
}

// KnownMines returns every cell of the sentence if all of them must be mines
func (sentence *Sentence) KnownMines() collections.Set[game.Cell] {
	if sentence.count == sentence.cells.Len() && sentence.count > 0 {
		return sentence.cells.Clone()
	}
	return make(collections.Set[game.Cell])
}

// KnownSafes returns every cell of the sentence if none of them can be mines
func (sentence *Sentence) KnownSafes() collections.Set[game.Cell] {
	if sentence.count == 0 {
		return sentence.cells.Clone()
	}
	return make(collections.Set[game.Cell])
}

func (sentence *Sentence) MarkMine(cell game.Cell) {
	if sentence.cells.Contains(cell) {
		sentence.cells.Remove(cell)
		sentence.count--
	}
}

func (sentence *Sentence) MarkSafe(cell game.Cell) {
	sentence.cells.Remove(cell)
}

func (sentence *Sentence) Equal(other *Sentence) bool {
	return sentence.count == other.count && sentence.cells.Equal(other.cells)
}

func (sentence *Sentence) Clone() *Sentence {
	return newSentenceFromSet(sentence.cells.Clone(), sentence.count)
}

// isSound reports whether count is satisfiable by the sentence's cells
func (sentence *Sentence) isSound() bool {
	return sentence.count >= 0 && sentence.count <= sentence.cells.Len()
}

// key normalizes the sentence, such that equal sentences have equal keys
func (sentence *Sentence) key() string {
	var b strings.Builder
	for _, cell := range sentence.Cells() {
		b.WriteString(strconv.Itoa(cell.Row))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(cell.Col))
		b.WriteByte(';')
	}
	b.WriteByte('=')
	b.WriteString(strconv.Itoa(sentence.count))
	return b.String()
}

func (sentence *Sentence) String() string {
	cells := sentence.Cells()
	cellReprs := make([]string, len(cells))
	for i, cell := range cells {
		cellReprs[i] = cell.String()
	}
	return fmt.Sprintf("{%s} = %d", strings.Join(cellReprs, ", "), sentence.count)
}
