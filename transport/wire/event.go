// Package wire holds the JSON shape of outbound events shared by the transports.
package wire

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/connect6-backend/internal/entity"
)

var ErrUnknownEvent = errors.New("unknown event")

// Event carries exactly one of its payload fields, selected by Kind.
type Event struct {
	Kind        entity.EventKind `json:"kind"`
	Status      string           `json:"status,omitempty"`
	Role        string           `json:"role,omitempty"`
	CurrentTurn string           `json:"current_turn,omitempty"`
	Board       *entity.Board    `json:"board,omitempty"`
	Winner      entity.Winner    `json:"winner,omitempty"`
}

func FromEvent(event entity.Event) Event {
	switch e := event.(type) {
	case entity.StatusEvent:
		return Event{Kind: entity.KindStatus, Status: e.Text}
	case entity.RoleEvent:
		return Event{Kind: entity.KindRole, Role: e.Color.String()}
	case entity.CurrentTurnEvent:
		return Event{Kind: entity.KindCurrentTurn, CurrentTurn: e.PlayerID}
	case entity.BoardEvent:
		board := e.Board
		return Event{Kind: entity.KindBoard, Board: &board}
	case entity.WinnerEvent:
		return Event{Kind: entity.KindWinner, Winner: e.Winner}
	default:
		return Event{Kind: event.Kind()}
	}
}

// ToEvent is the inverse of FromEvent. Clients use it to decode what the server sent.
func (that Event) ToEvent() (entity.Event, error) {
	switch that.Kind {
	case entity.KindStatus:
		return entity.StatusEvent{Text: that.Status}, nil
	case entity.KindRole:
		color, err := parseColor(that.Role)
		if err != nil {
			return nil, err
		}
		return entity.RoleEvent{Color: color}, nil
	case entity.KindCurrentTurn:
		return entity.CurrentTurnEvent{PlayerID: that.CurrentTurn}, nil
	case entity.KindBoard:
		if that.Board == nil {
			return nil, fmt.Errorf("%w: board event without board", ErrUnknownEvent)
		}
		return entity.BoardEvent{Board: *that.Board}, nil
	case entity.KindWinner:
		return entity.WinnerEvent{Winner: that.Winner}, nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnknownEvent, that.Kind)
	}
}

func parseColor(name string) (entity.Color, error) {
	switch name {
	case entity.ColorBlack.String():
		return entity.ColorBlack, nil
	case entity.ColorWhite.String():
		return entity.ColorWhite, nil
	default:
		return 0, fmt.Errorf("%w: role %q", ErrUnknownEvent, name)
	}
}
