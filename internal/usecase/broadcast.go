package usecase

import (
	"github.com/rocketscienceinc/connect6-backend/internal/entity"
)

// broadcast delivers event to every registered player. A failing sink is logged and skipped.
func (that *Coordinator) broadcast(event entity.Event) {
	for _, entry := range that.session.players.Snapshot() {
		that.send(entry.playerID, entry.sink, event)
	}
}

func (that *Coordinator) sendTo(playerID string, event entity.Event) {
	sink, ok := that.session.players.Get(playerID)
	if !ok {
		that.logger.Warn("player is not registered", "playerID", playerID, "event", event.Kind())
		return
	}

	that.send(playerID, sink, event)
}

func (that *Coordinator) send(playerID string, sink Sink, event entity.Event) {
	if err := sink.Send(event); err != nil {
		that.logger.Warn("failed to notify player", "playerID", playerID, "event", event.Kind(), "error", err)
	}
}
