package play

import "errors"

var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrNoPieceAt      = errors.New("no tracked piece at square")
	ErrUnknownPieceID = errors.New("unknown piece id")
	ErrAnimating      = errors.New("move animation in progress")
	ErrGameOver       = errors.New("game is over")
)
