package entity

// Winner names the outcome announced when a game ends.
type Winner string

const (
	WinnerBlack                Winner = "BLACK"
	WinnerWhite                Winner = "WHITE"
	WinnerOpponentDisconnected Winner = "OPPONENT_DISCONNECTED"
)

// WinnerOf returns the winner value for a color.
func WinnerOf(color Color) Winner {
	if color == ColorWhite {
		return WinnerWhite
	}
	return WinnerBlack
}

type EventKind string

const (
	KindStatus      EventKind = "status"
	KindRole        EventKind = "role"
	KindCurrentTurn EventKind = "current_turn"
	KindBoard       EventKind = "board"
	KindWinner      EventKind = "winner"
)

// Event is one outbound notification. The set of implementations is closed.
type Event interface {
	Kind() EventKind
	isEvent()
}

type StatusEvent struct {
	Text string
}

type RoleEvent struct {
	Color Color
}

type CurrentTurnEvent struct {
	PlayerID string
}

type BoardEvent struct {
	Board Board
}

type WinnerEvent struct {
	Winner Winner
}

func (StatusEvent) Kind() EventKind      { return KindStatus }
func (RoleEvent) Kind() EventKind        { return KindRole }
func (CurrentTurnEvent) Kind() EventKind { return KindCurrentTurn }
func (BoardEvent) Kind() EventKind       { return KindBoard }
func (WinnerEvent) Kind() EventKind      { return KindWinner }

func (StatusEvent) isEvent()      {}
func (RoleEvent) isEvent()        {}
func (CurrentTurnEvent) isEvent() {}
func (BoardEvent) isEvent()       {}
func (WinnerEvent) isEvent()      {}
