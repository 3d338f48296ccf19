package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrInvalidMove  = errors.New("move is not legal")
	ErrGameNotFound = errors.New("game not found")
)
