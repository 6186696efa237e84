package game

import "errors"

var (
	ErrOutOfBounds  = errors.New("cell out of bounds")
	ErrGameOver     = errors.New("game is over")
	ErrTooManyMines = errors.New("too many mines for board")
	ErrInvalidBoard = errors.New("invalid board")
	ErrNoProgress   = errors.New("move revealed nothing")
)
