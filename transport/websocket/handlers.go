package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/connect6-backend/internal/apperror"
)

const (
	msgRegistered       = "Registered"
	msgRematchRequested = "Rematch requested"
	msgDisconnected     = "Disconnected"
)

func (that *Server) handleRegister(conn *connection, msg *Message) {
	log := conn.logger.With("method", "handleRegister")

	var payload RegisterPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		conn.reply(msg.Action, false, "Player is required")
		return
	}

	if current, _ := conn.player(); current != "" {
		conn.reply(msg.Action, false, fmt.Sprintf("already registered as %s", current))
		return
	}

	sink := &playerSink{conn: conn}
	if err := that.coordinator.Register(payload.Player, sink); err != nil {
		log.Info("registration refused", "playerID", payload.Player, "error", err)
		conn.reply(msg.Action, false, err.Error())
		return
	}

	conn.attach(payload.Player, sink)
	conn.reply(msg.Action, true, msgRegistered)
}

func (that *Server) handleMove(conn *connection, msg *Message) {
	var payload MovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.X == nil || payload.Y == nil {
		conn.reply(msg.Action, false, apperror.ErrInvalidPosition.Error())
		return
	}

	playerID, _ := conn.player()

	outcome, err := that.coordinator.MakeMove(playerID, *payload.X, *payload.Y)
	if err != nil {
		conn.reply(msg.Action, false, err.Error())
		return
	}

	conn.reply(msg.Action, true, outcome.Message)
}

func (that *Server) handleRematch(conn *connection, msg *Message) {
	playerID, _ := conn.player()

	if err := that.coordinator.RequestRematch(playerID); err != nil {
		conn.reply(msg.Action, false, err.Error())
		return
	}

	conn.reply(msg.Action, true, msgRematchRequested)
}

func (that *Server) handleDisconnect(conn *connection, msg *Message) {
	playerID, sink := conn.player()
	if sink == nil {
		conn.reply(msg.Action, false, apperror.ErrNotConnected.Error())
		return
	}

	if err := that.coordinator.DisconnectSink(playerID, sink); err != nil {
		conn.reply(msg.Action, false, err.Error())
		return
	}

	conn.reply(msg.Action, true, msgDisconnected)
}
