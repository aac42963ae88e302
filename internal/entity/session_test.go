package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func currentSnapshot(state string) SessionSnapshot {
	return SessionSnapshot{State: state}
}

func TestSessionSnapshot_IsInGame(t *testing.T) {
	// When: the state is read straight from a returned snapshot
	inGame := currentSnapshot(StateInGame).IsInGame()
	noGame := currentSnapshot(StateNoGame).IsInGame()

	// Then: only the in-game state reports true
	assert.True(t, inGame)
	assert.False(t, noGame)
}
