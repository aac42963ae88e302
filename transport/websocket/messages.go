package websocket

import (
	"encoding/json"
	"fmt"
)

const (
	ActionRegister   = "register"
	ActionMove       = "move"
	ActionRematch    = "rematch"
	ActionDisconnect = "disconnect"

	// ActionEvent frames carry a wire.Event pushed by the session.
	ActionEvent = "event"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RegisterPayload struct {
	Player string `json:"player"`
}

type MovePayload struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// ReplyPayload answers one client action.
type ReplyPayload struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

func newMessage(action string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal %s payload: %w", action, err)
	}

	return Message{Action: action, Payload: data}, nil
}
