package constraint

import (
	"errors"
	"fmt"

	"github.com/they4kman/sweepai/game"
)

var (
	ErrOutOfBounds  = game.ErrOutOfBounds
	ErrInvalidCount = errors.New("invalid mine count")
)

// AssertionError reports knowledge which contradicts itself. Either the
// observations fed in were false, or deduction is broken; the knowledge base
// must not be used further.
type AssertionError struct {
	message string
}

func assertionErrorf(format string, args ...any) AssertionError {
	return AssertionError{fmt.Sprintf(format, args...)}
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return "knowledge contradiction: " + e.message
}
