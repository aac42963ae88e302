package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/connect6-backend/internal/usecase"
)

type coordinator interface {
	Register(playerID string, sink usecase.Sink) error
	MakeMove(playerID string, x, y int) (usecase.MoveOutcome, error)
	DisconnectSink(playerID string, sink usecase.Sink) error
	RequestRematch(playerID string) error
}

type Server struct {
	logger      *slog.Logger
	coordinator coordinator
	upgrader    websocket.Upgrader
	bufferSize  int

	handlers map[string]func(conn *connection, message *Message)

	connectionsMutex sync.Mutex
	connections      map[string]*connection
}

func New(logger *slog.Logger, coordinator coordinator, bufferSize int) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		coordinator: coordinator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		bufferSize:  bufferSize,
		connections: make(map[string]*connection),
	}

	server.handlers = map[string]func(*connection, *Message){
		ActionRegister:   server.handleRegister,
		ActionMove:       server.handleMove,
		ActionRematch:    server.handleRematch,
		ActionDisconnect: server.handleDisconnect,
	}

	return server
}

// Handler serves the websocket endpoint on /ws.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	that.closeAll()

	if err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket and serves it until it drops.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(uuid.NewString(), ws, that.logger, that.bufferSize)

	that.connectionsMutex.Lock()
	that.connections[conn.id] = conn
	that.connectionsMutex.Unlock()

	conn.logger.Info("WebSocket connection established", "remoteAddr", req.RemoteAddr)

	go conn.writeLoop()

	that.handleMessages(conn)
	that.dropConnection(conn)
}

// handleMessages - processes messages from the client until the connection fails.
func (that *Server) handleMessages(conn *connection) {
	log := conn.logger.With("method", "handleMessages")

	conn.conn.SetReadLimit(maxMessageSize)
	_ = conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.conn.SetPongHandler(func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			conn.reply("error", false, "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			conn.reply(message.Action, false, "unknown action")
			continue
		}

		handler(conn, &message)
	}
}

// dropConnection forfeits the player bound to conn, if any, and releases the socket.
func (that *Server) dropConnection(conn *connection) {
	log := conn.logger.With("method", "dropConnection")

	if playerID, sink := conn.player(); sink != nil {
		if err := that.coordinator.DisconnectSink(playerID, sink); err != nil {
			log.Debug("player already gone", "playerID", playerID, "error", err)
		}
	}

	conn.close()
	_ = conn.conn.Close()

	that.connectionsMutex.Lock()
	delete(that.connections, conn.id)
	that.connectionsMutex.Unlock()

	log.Info("WebSocket connection closed")
}

func (that *Server) closeAll() {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	for _, conn := range that.connections {
		conn.close()
	}
}
