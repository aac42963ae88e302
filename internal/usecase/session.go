package usecase

import (
	"github.com/rocketscienceinc/connect6-backend/internal/connect6"
)

// Session is the coordinator's state. It is only touched under Coordinator.mu.
type Session struct {
	players *registry
	engine  *connect6.Engine

	// playerA plays black and playerB white. Both are fixed when a game starts.
	playerA       string
	playerB       string
	currentPlayer string

	rematchRequests map[string]struct{}
}

func newSession() *Session {
	return &Session{
		players:         newRegistry(),
		rematchRequests: make(map[string]struct{}),
	}
}

func (that *Session) inGame() bool {
	return that.engine != nil
}

func (that *Session) inPair(playerID string) bool {
	return playerID != "" && (playerID == that.playerA || playerID == that.playerB)
}

func (that *Session) opponentOf(playerID string) string {
	if playerID == that.playerA {
		return that.playerB
	}
	return that.playerA
}

// rematchAgreed reports whether the two players that would be paired next have both asked.
func (that *Session) rematchAgreed() bool {
	ids := that.players.IDs()
	if len(ids) < 2 || len(that.rematchRequests) < 2 {
		return false
	}

	for _, id := range ids[:2] {
		if _, ok := that.rematchRequests[id]; !ok {
			return false
		}
	}

	return true
}

func (that *Session) reset() {
	that.engine = nil
	that.currentPlayer = ""
	that.playerA = ""
	that.playerB = ""
	clear(that.rematchRequests)
}
