package apperror

import "errors"

var (
	ErrNameInUse               = errors.New("name already in use")
	ErrEmptyPlayerID           = errors.New("player name is required")
	ErrNotYourTurnOrNotStarted = errors.New("not your turn or game not started")
	ErrNotConnected            = errors.New("not connected")

	ErrInvalidPosition = errors.New("invalid position")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrGameOver        = errors.New("game is already over")
)
