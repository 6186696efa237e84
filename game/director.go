package game

type Strategy int

const (
	// The move was deduced to be safe
	Deliberate Strategy = iota
	// The move was a guess
	Random
)

func (strategy Strategy) String() string {
	switch strategy {
	case Deliberate:
		return "deliberate"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

type Move struct {
	Cell     Cell
	Strategy Strategy
}

func (move Move) IsGuess() bool {
	return move.Strategy != Deliberate
}

type Director interface {
	/**
	 * Prepare the director for a new board of the given dimensions
	 */
	Init(height, width int)

	/**
	 * Record that cell was opened, and has count adjacent mines
	 */
	Observe(cell Cell, count int) error

	/**
	 * Choose the next cell to open, or false if there are none left
	 */
	Act() (Move, bool)
}

// MineReporter is implemented by directors which can tell which cells are
// mines, so they may be flagged
type MineReporter interface {
	Mines() []Cell
}
