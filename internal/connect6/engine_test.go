package connect6

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connect6-backend/internal/apperror"
	"github.com/rocketscienceinc/connect6-backend/internal/entity"
)

// placeLine puts count stones of the engine's current color along (dx, dy) from (x, y)
// without switching turns. The engine is used as a board fixture here.
func placeLine(t *testing.T, engine *Engine, x, y, dx, dy, count int) {
	t.Helper()

	for i := 0; i < count; i++ {
		require.NoError(t, engine.PlaceStone(x+i*dx, y+i*dy))
	}
}

func TestNewEngine(t *testing.T) {
	// When: create a new engine
	engine := NewEngine()

	// Then: black starts on an empty board with the first-turn quota
	board := engine.Board()
	assert.True(t, board.IsEmpty())
	assert.Equal(t, entity.ColorBlack, engine.CurrentColor())
	assert.False(t, engine.IsGameOver())
	assert.False(t, engine.ShouldSwitchPlayer())

	_, ok := engine.Winner()
	assert.False(t, ok)
}

func TestEngine_PlaceStone(t *testing.T) {
	t.Run("PlaceStone", func(t *testing.T) {
		// Given: a new engine
		engine := NewEngine()

		// When: black places a stone at (9, 9)
		err := engine.PlaceStone(9, 9)
		require.NoError(t, err)

		// Then: the cell holds a black stone and the counter moved
		board := engine.Board()
		assert.Equal(t, entity.Black, board.At(9, 9))
		assert.Equal(t, 1, engine.StonesPlacedThisTurn())
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: an engine with a stone at (0, 0)
		engine := NewEngine()
		require.NoError(t, engine.PlaceStone(0, 0))
		engine.SwitchPlayer()
		before := engine.Board()

		// When: white tries to place on the same cell
		err := engine.PlaceStone(0, 0)

		// Then: ErrCellOccupied is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, engine.Board())
		assert.Equal(t, 0, engine.StonesPlacedThisTurn())
	})

	t.Run("Invalid Position", func(t *testing.T) {
		cases := []struct {
			name string
			x, y int
		}{
			{name: "negative x", x: -1, y: 0},
			{name: "negative y", x: 0, y: -1},
			{name: "x too large", x: entity.BoardSize, y: 3},
			{name: "y too large", x: 3, y: entity.BoardSize},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				// Given: a new engine
				engine := NewEngine()

				// When: placing outside the board
				err := engine.PlaceStone(tc.x, tc.y)

				// Then: ErrInvalidPosition is returned and the state is unchanged
				require.ErrorIs(t, err, apperror.ErrInvalidPosition)
				board := engine.Board()
				assert.True(t, board.IsEmpty())
				assert.Equal(t, 0, engine.StonesPlacedThisTurn())
			})
		}
	})

	t.Run("Move After Game Over", func(t *testing.T) {
		// Given: a game black has already won
		engine := NewEngine()
		placeLine(t, engine, 0, 0, 1, 0, entity.WinLength)
		require.True(t, engine.IsGameOver())

		// When: another stone is placed
		err := engine.PlaceStone(10, 10)

		// Then: ErrGameOver is returned
		require.ErrorIs(t, err, apperror.ErrGameOver)
		board := engine.Board()
		assert.Equal(t, entity.Empty, board.At(10, 10))
	})
}

func TestEngine_Win(t *testing.T) {
	cases := []struct {
		name   string
		x, y   int
		dx, dy int
	}{
		{name: "horizontal", x: 0, y: 0, dx: 1, dy: 0},
		{name: "vertical", x: 4, y: 2, dx: 0, dy: 1},
		{name: "diagonal down", x: 3, y: 3, dx: 1, dy: 1},
		{name: "diagonal up", x: 2, y: 17, dx: 1, dy: -1},
		{name: "along the far edge", x: 13, y: 18, dx: 1, dy: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name+" six wins", func(t *testing.T) {
			// Given: a new engine
			engine := NewEngine()

			// When: six stones of one color are placed in a line
			placeLine(t, engine, tc.x, tc.y, tc.dx, tc.dy, entity.WinLength)

			// Then: the game is over and black won
			assert.True(t, engine.IsGameOver())
			winner, ok := engine.Winner()
			require.True(t, ok)
			assert.Equal(t, entity.ColorBlack, winner)
		})

		t.Run(tc.name+" five does not win", func(t *testing.T) {
			// Given: a new engine
			engine := NewEngine()

			// When: five stones are placed in a line
			placeLine(t, engine, tc.x, tc.y, tc.dx, tc.dy, entity.WinLength-1)

			// Then: the game continues
			assert.False(t, engine.IsGameOver())
		})
	}

	t.Run("Stone placed in the middle joins two segments", func(t *testing.T) {
		// Given: three stones left and two stones right of a gap
		engine := NewEngine()
		for _, x := range []int{2, 3, 4, 6, 7} {
			require.NoError(t, engine.PlaceStone(x, 5))
		}
		require.False(t, engine.IsGameOver())

		// When: the gap is filled
		require.NoError(t, engine.PlaceStone(5, 5))

		// Then: the line of six wins
		assert.True(t, engine.IsGameOver())
	})

	t.Run("Opponent stone breaks the line", func(t *testing.T) {
		// Given: black at x=0..4 and white at x=5
		engine := NewEngine()
		placeLine(t, engine, 0, 0, 1, 0, 5)
		engine.SwitchPlayer()
		require.NoError(t, engine.PlaceStone(5, 0))
		engine.SwitchPlayer()

		// When: black continues at x=6
		require.NoError(t, engine.PlaceStone(6, 0))

		// Then: there is no winner
		assert.False(t, engine.IsGameOver())
	})

	t.Run("White can win", func(t *testing.T) {
		// Given: the turn passed to white
		engine := NewEngine()
		require.NoError(t, engine.PlaceStone(18, 18))
		engine.SwitchPlayer()

		// When: white builds a vertical six
		placeLine(t, engine, 0, 0, 0, 1, entity.WinLength)

		// Then: white is the winner
		winner, ok := engine.Winner()
		require.True(t, ok)
		assert.Equal(t, entity.ColorWhite, winner)
	})
}

func TestEngine_TurnQuota(t *testing.T) {
	t.Run("First turn needs one stone", func(t *testing.T) {
		// Given: a new engine
		engine := NewEngine()

		// When: black places one stone
		require.NoError(t, engine.PlaceStone(9, 9))

		// Then: the turn should switch
		assert.True(t, engine.ShouldSwitchPlayer())
	})

	t.Run("Later turns need two stones", func(t *testing.T) {
		// Given: the first turn is over
		engine := NewEngine()
		require.NoError(t, engine.PlaceStone(9, 9))
		engine.SwitchPlayer()

		// When: white places one stone
		require.NoError(t, engine.PlaceStone(10, 10))

		// Then: the turn is not over yet
		assert.False(t, engine.ShouldSwitchPlayer())

		// When: white places the second stone
		require.NoError(t, engine.PlaceStone(11, 11))

		// Then: the turn should switch
		assert.True(t, engine.ShouldSwitchPlayer())

		// When: the turn switches back to black
		engine.SwitchPlayer()

		// Then: black also needs two stones
		assert.Equal(t, entity.ColorBlack, engine.CurrentColor())
		require.NoError(t, engine.PlaceStone(1, 1))
		assert.False(t, engine.ShouldSwitchPlayer())
		require.NoError(t, engine.PlaceStone(1, 2))
		assert.True(t, engine.ShouldSwitchPlayer())
	})

	t.Run("SwitchPlayer is a no-op after game over", func(t *testing.T) {
		// Given: black has won
		engine := NewEngine()
		placeLine(t, engine, 0, 0, 1, 0, entity.WinLength)

		// When: switching players
		engine.SwitchPlayer()

		// Then: the current color is unchanged
		assert.Equal(t, entity.ColorBlack, engine.CurrentColor())
	})
}

func TestEngine_BoardIsACopy(t *testing.T) {
	// Given: an engine with one stone
	engine := NewEngine()
	require.NoError(t, engine.PlaceStone(4, 4))

	// When: the returned board is modified
	board := engine.Board()
	board.Set(4, 4, entity.White)
	board.Set(5, 5, entity.Black)

	// Then: the engine's board is unchanged
	internal := engine.Board()
	assert.Equal(t, entity.Black, internal.At(4, 4))
	assert.Equal(t, entity.Empty, internal.At(5, 5))
}

func TestEngine_Concurrent(t *testing.T) {
	// Given: a new engine past its first turn
	engine := NewEngine()
	require.NoError(t, engine.PlaceStone(0, 0))
	engine.SwitchPlayer()

	// When: many goroutines race for the same cell
	var wg sync.WaitGroup
	results := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- engine.PlaceStone(9, 9)
		}()
	}
	wg.Wait()
	close(results)

	// Then: exactly one succeeds
	var ok int
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, engine.StonesPlacedThisTurn())
}
