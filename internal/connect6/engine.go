package connect6

import (
	"sync"

	"github.com/rocketscienceinc/connect6-backend/internal/apperror"
	"github.com/rocketscienceinc/connect6-backend/internal/entity"
)

// Directions are the four undirected axes a winning line can lie on.
var Directions = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// Engine holds the board and turn bookkeeping of one game.
type Engine struct {
	mu sync.Mutex

	board                entity.Board
	currentColor         entity.Color
	gameOver             bool
	winner               entity.Color
	stonesPlacedThisTurn int
	isFirstTurn          bool
}

func NewEngine() *Engine {
	return &Engine{
		currentColor: entity.ColorBlack,
		isFirstTurn:  true,
	}
}

// PlaceStone puts a stone of the current color at (x, y).
func (that *Engine) PlaceStone(x, y int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.gameOver {
		return apperror.ErrGameOver
	}

	if err := validateMove(&that.board, x, y); err != nil {
		return err
	}

	that.board.Set(x, y, that.currentColor.Stone())
	that.stonesPlacedThisTurn++

	if checkWin(&that.board, x, y) {
		that.gameOver = true
		that.winner = that.currentColor
	}

	return nil
}

// ShouldSwitchPlayer reports whether the current turn has used its quota.
func (that *Engine) ShouldSwitchPlayer() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.stonesPlacedThisTurn >= that.quota()
}

// SwitchPlayer passes the turn to the other color. It does nothing once the game is over.
func (that *Engine) SwitchPlayer() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.gameOver {
		return
	}

	that.currentColor = that.currentColor.Opponent()
	that.stonesPlacedThisTurn = 0
	that.isFirstTurn = false
}

// Board returns a copy of the board.
func (that *Engine) Board() entity.Board {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board
}

func (that *Engine) IsGameOver() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.gameOver
}

// Winner returns the winning color, if any.
func (that *Engine) Winner() (entity.Color, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.winner, that.gameOver
}

func (that *Engine) CurrentColor() entity.Color {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.currentColor
}

// StonesPlacedThisTurn returns how many stones the current color has placed in this turn.
func (that *Engine) StonesPlacedThisTurn() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.stonesPlacedThisTurn
}

func (that *Engine) quota() int {
	if that.isFirstTurn {
		return entity.FirstTurnStones
	}
	return entity.NormalTurnStones
}

// validateMove - checks if the move is valid.
func validateMove(board *entity.Board, x, y int) error {
	if !entity.InBounds(x, y) {
		return apperror.ErrInvalidPosition
	}

	if board.At(x, y) != entity.Empty {
		return apperror.ErrCellOccupied
	}

	return nil
}

// checkWin - checks whether the stone at (x, y) completes a line of WinLength.
func checkWin(board *entity.Board, x, y int) bool {
	stone := board.At(x, y)
	if stone == entity.Empty {
		return false
	}

	for _, d := range Directions {
		count := 1 + countInDirection(board, x, y, d[0], d[1], stone) + countInDirection(board, x, y, -d[0], -d[1], stone)
		if count >= entity.WinLength {
			return true
		}
	}

	return false
}

func countInDirection(board *entity.Board, x, y, dx, dy int, stone entity.Cell) int {
	count := 0
	for nx, ny := x+dx, y+dy; entity.InBounds(nx, ny) && board.At(nx, ny) == stone; nx, ny = nx+dx, ny+dy {
		count++
	}

	return count
}
