package entity

import "time"

const (
	StateNoGame = "no_game"
	StateInGame = "in_game"
)

// SessionSnapshot is a read-only view of the session at one point in time.
type SessionSnapshot struct {
	State       string    `json:"state"`
	Players     []string  `json:"players"`
	Black       string    `json:"black,omitempty"`
	White       string    `json:"white,omitempty"`
	CurrentTurn string    `json:"current_turn,omitempty"`
	Board       *Board    `json:"board,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (that SessionSnapshot) IsInGame() bool {
	return that.State == StateInGame
}
