package grpc

import (
	"github.com/rocketscienceinc/connect6-backend/transport/wire"
)

type PlayerInfo struct {
	PlayerID string `json:"player_id"`
}

type Move struct {
	PlayerID string `json:"player_id"`
	X        int32  `json:"x"`
	Y        int32  `json:"y"`
}

type RematchRequest struct {
	PlayerID string `json:"player_id"`
}

type DisconnectRequest struct {
	PlayerID string `json:"player_id"`
}

type MoveResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GameEvent is streamed to a registered player.
type GameEvent = wire.Event
