package game

type BoardState int

const (
	Lost BoardState = iota
	Won
	Ongoing
	// The director ran out of moves before the game ended
	Stalled
)

func (state BoardState) String() string {
	switch state {
	case Lost:
		return "loss"
	case Won:
		return "win"
	case Ongoing:
		return "ongoing"
	case Stalled:
		return "stalled"
	default:
		return "other"
	}
}

type GameMode int

const (
	Classic GameMode = iota
	Win7
)

var GameModes = map[string]GameMode{
	"win7":    Win7,
	"classic": Classic,
}

func (mode GameMode) String() string {
	for name, m := range GameModes {
		if m == mode {
			return name
		}
	}
	return "unknown"
}

// Characters used to serialize a board
const (
	charHiddenSafe   = '#'
	charRevealedSafe = '.'
	charFlaggedSafe  = 'f'
	charHiddenMine   = 'O'
	charFlaggedMine  = 'F'
	charLosingMine   = '*'
)
