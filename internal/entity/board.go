package entity

import (
	"encoding/json"
	"fmt"
)

const (
	BoardSize = 19
	WinLength = 6

	FirstTurnStones  = 1
	NormalTurnStones = 2
)

// Cell is the content of one board intersection.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

const (
	EmptyMarker = "."
	BlackMarker = "B"
	WhiteMarker = "W"
)

func (that Cell) String() string {
	switch that {
	case Black:
		return BlackMarker
	case White:
		return WhiteMarker
	default:
		return EmptyMarker
	}
}

func (that Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.String())
}

func (that *Cell) UnmarshalJSON(data []byte) error {
	var marker string
	if err := json.Unmarshal(data, &marker); err != nil {
		return fmt.Errorf("failed to unmarshal cell: %w", err)
	}

	switch marker {
	case EmptyMarker:
		*that = Empty
	case BlackMarker:
		*that = Black
	case WhiteMarker:
		*that = White
	default:
		return fmt.Errorf("unknown cell marker %q", marker)
	}

	return nil
}

// Color is the side a player plays for one game.
type Color uint8

const (
	ColorBlack Color = iota + 1
	ColorWhite
)

func (that Color) String() string {
	switch that {
	case ColorBlack:
		return "BLACK"
	case ColorWhite:
		return "WHITE"
	default:
		return ""
	}
}

// Opponent returns the other color.
func (that Color) Opponent() Color {
	if that == ColorBlack {
		return ColorWhite
	}
	return ColorBlack
}

// Stone returns the cell value a player of this color places.
func (that Color) Stone() Cell {
	switch that {
	case ColorBlack:
		return Black
	case ColorWhite:
		return White
	default:
		return Empty
	}
}

// Board is indexed as board[y][x]. It is an array, so assignment copies it.
type Board [BoardSize][BoardSize]Cell

// InBounds reports whether (x, y) addresses a cell of the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

func (that *Board) At(x, y int) Cell {
	return that[y][x]
}

func (that *Board) Set(x, y int, cell Cell) {
	that[y][x] = cell
}

// Rows renders the board as marker strings, one slice per row.
func (that *Board) Rows() [][]string {
	rows := make([][]string, BoardSize)
	for y := range that {
		row := make([]string, BoardSize)
		for x, cell := range that[y] {
			row[x] = cell.String()
		}
		rows[y] = row
	}

	return rows
}

// IsEmpty reports whether no stone has been placed yet.
func (that *Board) IsEmpty() bool {
	for y := range that {
		for _, cell := range that[y] {
			if cell != Empty {
				return false
			}
		}
	}

	return true
}
