package usecase

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/connect6-backend/internal/apperror"
	"github.com/rocketscienceinc/connect6-backend/internal/connect6"
	"github.com/rocketscienceinc/connect6-backend/internal/entity"
)

const (
	msgConnectedAs          = "Connected as: "
	msgGameStarted          = "Game started!"
	msgMoveAccepted         = "Move accepted"
	msgMoveAcceptedGameOver = "Move accepted; game over"
)

// Messages are the informational texts sent to players.
type Messages struct {
	WaitingForOpponent   string
	OpponentDisconnected string
	CapacityReached      string
	NameInUse            string
	Disconnecting        string
}

func DefaultMessages() Messages {
	return Messages{
		WaitingForOpponent:   "Waiting for another player...",
		OpponentDisconnected: "Opponent disconnected",
		CapacityReached:      "Server supports two players only",
		NameInUse:            "Name already in use",
		Disconnecting:        "disconnecting",
	}
}

// MoveOutcome describes an accepted move.
type MoveOutcome struct {
	Message  string
	GameOver bool
}

type snapshotPublisher interface {
	Publish(snapshot entity.SessionSnapshot)
}

// Coordinator runs the single game session. Every entry point holds mu for its whole duration.
type Coordinator struct {
	logger    *slog.Logger
	messages  Messages
	publisher snapshotPublisher
	now       func() time.Time

	mu      sync.Mutex
	session *Session
}

// NewCoordinator creates a coordinator in the no-game state. publisher may be nil.
func NewCoordinator(logger *slog.Logger, messages Messages, publisher snapshotPublisher) *Coordinator {
	return &Coordinator{
		logger:    logger.With("component", "coordinator"),
		messages:  messages,
		publisher: publisher,
		now:       time.Now,
		session:   newSession(),
	}
}

// Register adds a player and starts a game once two players are present.
func (that *Coordinator) Register(playerID string, sink Sink) error {
	log := that.logger.With("method", "Register", "playerID", playerID)

	that.mu.Lock()
	defer that.mu.Unlock()

	if playerID == "" {
		that.send("", sink, entity.StatusEvent{Text: apperror.ErrEmptyPlayerID.Error()})
		sink.Close()
		return apperror.ErrEmptyPlayerID
	}

	session := that.session

	if !session.players.Add(playerID, sink) {
		log.Info("name already in use")
		that.send(playerID, sink, entity.StatusEvent{Text: that.messages.NameInUse})
		sink.Close()
		return apperror.ErrNameInUse
	}

	defer that.publish()

	log.Info("player connected")
	that.send(playerID, sink, entity.StatusEvent{Text: msgConnectedAs + playerID})

	if session.players.Len() < 2 {
		that.send(playerID, sink, entity.StatusEvent{Text: that.messages.WaitingForOpponent})
		return nil
	}

	if !session.inGame() {
		that.startGame()
		return nil
	}

	log.Info("game in progress, player is on standby")
	that.send(playerID, sink, entity.StatusEvent{Text: that.messages.CapacityReached})

	return nil
}

// MakeMove places a stone for the player whose turn it is.
func (that *Coordinator) MakeMove(playerID string, x, y int) (MoveOutcome, error) {
	log := that.logger.With("method", "MakeMove", "playerID", playerID)

	that.mu.Lock()
	defer that.mu.Unlock()

	session := that.session
	if !session.inGame() || playerID != session.currentPlayer {
		return MoveOutcome{}, apperror.ErrNotYourTurnOrNotStarted
	}

	if err := session.engine.PlaceStone(x, y); err != nil {
		return MoveOutcome{}, fmt.Errorf("invalid move: %w", err)
	}

	defer that.publish()

	that.broadcast(entity.BoardEvent{Board: session.engine.Board()})

	if session.engine.IsGameOver() {
		color, _ := session.engine.Winner()
		that.broadcast(entity.WinnerEvent{Winner: entity.WinnerOf(color)})
		log.Info("game over", "winner", color.String())
		that.endGame()

		return MoveOutcome{Message: msgMoveAcceptedGameOver, GameOver: true}, nil
	}

	if session.engine.ShouldSwitchPlayer() {
		session.currentPlayer = session.opponentOf(session.currentPlayer)
		session.engine.SwitchPlayer()
	}

	that.broadcast(entity.CurrentTurnEvent{PlayerID: session.currentPlayer})

	return MoveOutcome{Message: msgMoveAccepted}, nil
}

// Disconnect removes a player. Leaving a running game forfeits it.
func (that *Coordinator) Disconnect(playerID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.disconnect(playerID)
}

// DisconnectSink removes a player only while it is still bound to sink.
// Transports call it when a connection drops so that a stale connection
// cannot evict a newer registration under the same name.
func (that *Coordinator) DisconnectSink(playerID string, sink Sink) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	current, ok := that.session.players.Get(playerID)
	if !ok || current != sink {
		return apperror.ErrNotConnected
	}

	return that.disconnect(playerID)
}

// RequestRematch records the player's wish to play again. The game restarts once both players asked.
func (that *Coordinator) RequestRematch(playerID string) error {
	log := that.logger.With("method", "RequestRematch", "playerID", playerID)

	that.mu.Lock()
	defer that.mu.Unlock()

	session := that.session
	if _, ok := session.players.Get(playerID); !ok {
		return apperror.ErrNotConnected
	}

	session.rematchRequests[playerID] = struct{}{}
	log.Info("rematch requested")

	if session.rematchAgreed() {
		log.Info("starting rematch")
		that.startGame()
		that.publish()
	}

	return nil
}

// Snapshot returns the current session state.
func (that *Coordinator) Snapshot() entity.SessionSnapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *Coordinator) disconnect(playerID string) error {
	log := that.logger.With("method", "disconnect", "playerID", playerID)

	session := that.session

	sink, ok := session.players.Remove(playerID)
	if !ok {
		return apperror.ErrNotConnected
	}

	delete(session.rematchRequests, playerID)

	defer that.publish()

	that.send(playerID, sink, entity.StatusEvent{Text: that.messages.Disconnecting})
	sink.Close()

	log.Info("player disconnected")

	if session.inGame() && session.inPair(playerID) {
		remaining := session.opponentOf(playerID)
		if remainingSink, found := session.players.Get(remaining); found {
			that.send(remaining, remainingSink, entity.StatusEvent{Text: that.messages.OpponentDisconnected})
			that.send(remaining, remainingSink, entity.WinnerEvent{Winner: entity.WinnerOpponentDisconnected})
			log.Info("opponent wins by forfeit", "winner", remaining)
		}

		that.endGame()
	}

	if !session.inGame() && session.players.Len() >= 2 {
		that.startGame()
	}

	return nil
}

// startGame pairs the first two registered players. Callers hold mu.
func (that *Coordinator) startGame() {
	session := that.session

	ids := session.players.IDs()
	if len(ids) < 2 {
		return
	}

	session.engine = connect6.NewEngine()
	clear(session.rematchRequests)

	session.playerA, session.playerB = ids[0], ids[1]
	session.currentPlayer = session.playerA

	that.sendTo(session.playerA, entity.RoleEvent{Color: entity.ColorBlack})
	that.sendTo(session.playerB, entity.RoleEvent{Color: entity.ColorWhite})

	that.broadcast(entity.StatusEvent{Text: msgGameStarted})
	that.broadcast(entity.CurrentTurnEvent{PlayerID: session.currentPlayer})
	that.broadcast(entity.BoardEvent{Board: session.engine.Board()})

	that.logger.Info("new game started", "black", session.playerA, "white", session.playerB)
}

func (that *Coordinator) endGame() {
	that.session.reset()
}

func (that *Coordinator) snapshot() entity.SessionSnapshot {
	session := that.session

	snapshot := entity.SessionSnapshot{
		State:     entity.StateNoGame,
		Players:   session.players.IDs(),
		UpdatedAt: that.now(),
	}

	if session.inGame() {
		board := session.engine.Board()

		snapshot.State = entity.StateInGame
		snapshot.Black = session.playerA
		snapshot.White = session.playerB
		snapshot.CurrentTurn = session.currentPlayer
		snapshot.Board = &board
	}

	return snapshot
}

func (that *Coordinator) publish() {
	if that.publisher == nil {
		return
	}

	that.publisher.Publish(that.snapshot())
}
