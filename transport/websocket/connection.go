package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/connect6-backend/internal/entity"
	"github.com/rocketscienceinc/connect6-backend/internal/usecase"
	"github.com/rocketscienceinc/connect6-backend/transport/wire"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// connection owns one websocket. Only writeLoop writes to conn.
type connection struct {
	id     string
	conn   *websocket.Conn
	logger *slog.Logger

	outbox    chan Message
	done      chan struct{}
	closeOnce sync.Once

	mu       sync.Mutex
	playerID string
	sink     *playerSink
}

func newConnection(id string, conn *websocket.Conn, logger *slog.Logger, bufferSize int) *connection {
	return &connection{
		id:     id,
		conn:   conn,
		logger: logger.With("connectionID", id),
		outbox: make(chan Message, bufferSize),
		done:   make(chan struct{}),
	}
}

// enqueue hands msg to the writer without blocking.
func (that *connection) enqueue(msg Message) error {
	select {
	case <-that.done:
		return usecase.ErrSinkClosed
	default:
	}

	select {
	case that.outbox <- msg:
		return nil
	case <-that.done:
		return usecase.ErrSinkClosed
	default:
		return usecase.ErrSinkFull
	}
}

func (that *connection) reply(action string, accepted bool, text string) {
	msg, err := newMessage(action, ReplyPayload{Accepted: accepted, Message: text})
	if err != nil {
		that.logger.Error("failed to build reply", "action", action, "error", err)
		return
	}

	if err = that.enqueue(msg); err != nil {
		that.logger.Warn("failed to queue reply", "action", action, "error", err)
	}
}

func (that *connection) writeLoop() {
	log := that.logger.With("method", "writeLoop")

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-that.done:
			_ = that.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case msg := <-that.outbox:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteJSON(msg); err != nil {
				log.Warn("failed to write message", "error", err)
				that.close()
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("ping failed", "error", err)
				that.close()
				return
			}
		}
	}
}

// close stops the writer and makes the blocked reader return.
func (that *connection) close() {
	that.closeOnce.Do(func() {
		close(that.done)
		_ = that.conn.SetReadDeadline(time.Now())
	})
}

func (that *connection) player() (string, *playerSink) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.playerID, that.sink
}

// attach binds a registered player unless its sink was already closed by the session.
func (that *connection) attach(playerID string, sink *playerSink) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if sink.isClosed() {
		return
	}

	that.playerID = playerID
	that.sink = sink
}

func (that *connection) detach(sink *playerSink) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.sink == sink {
		that.playerID = ""
		that.sink = nil
	}
}

// playerSink delivers session events for one registration. Closing it detaches
// the player but keeps the websocket open so the client can register again.
type playerSink struct {
	conn *connection

	mu     sync.Mutex
	closed bool
}

func (that *playerSink) Send(event entity.Event) error {
	if that.isClosed() {
		return usecase.ErrSinkClosed
	}

	msg, err := newMessage(ActionEvent, wire.FromEvent(event))
	if err != nil {
		return err
	}

	return that.conn.enqueue(msg)
}

func (that *playerSink) Close() {
	that.mu.Lock()
	that.closed = true
	that.mu.Unlock()

	that.conn.detach(that)
}

func (that *playerSink) isClosed() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.closed
}
