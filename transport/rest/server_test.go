package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connect6-backend/internal/entity"
	"github.com/rocketscienceinc/connect6-backend/internal/usecase"
)

type discardSink struct{}

func (discardSink) Send(entity.Event) error { return nil }
func (discardSink) Close()                  {}

func newTestHandler() (http.Handler, *usecase.Coordinator) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coordinator := usecase.NewCoordinator(logger, usecase.DefaultMessages(), nil)

	return New(logger, coordinator).Handler(), coordinator
}

func TestServer_Ping(t *testing.T) {
	// Given: the REST handler
	handler, _ := newTestHandler()

	// When: /ping is requested
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// Then: pong is returned
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestServer_Session(t *testing.T) {
	t.Run("No game", func(t *testing.T) {
		// Given: a waiting player
		handler, coordinator := newTestHandler()
		require.NoError(t, coordinator.Register("Alice", discardSink{}))

		// When: /session is requested
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/session", nil))

		// Then: the session state is returned without a board
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		var snapshot entity.SessionSnapshot
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
		assert.Equal(t, entity.StateNoGame, snapshot.State)
		assert.Equal(t, []string{"Alice"}, snapshot.Players)
		assert.Nil(t, snapshot.Board)
	})

	t.Run("In game", func(t *testing.T) {
		// Given: a game where Alice played (9, 9)
		handler, coordinator := newTestHandler()
		require.NoError(t, coordinator.Register("Alice", discardSink{}))
		require.NoError(t, coordinator.Register("Bob", discardSink{}))
		_, err := coordinator.MakeMove("Alice", 9, 9)
		require.NoError(t, err)

		// When: /session is requested
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/session", nil))

		// Then: the running game is described
		var snapshot entity.SessionSnapshot
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
		assert.Equal(t, entity.StateInGame, snapshot.State)
		assert.Equal(t, "Alice", snapshot.Black)
		assert.Equal(t, "Bob", snapshot.White)
		assert.Equal(t, "Bob", snapshot.CurrentTurn)
		require.NotNil(t, snapshot.Board)
		assert.Equal(t, entity.Black, snapshot.Board.At(9, 9))
	})

	t.Run("Wrong method", func(t *testing.T) {
		// Given: the REST handler
		handler, _ := newTestHandler()

		// When: /session is posted to
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/session", nil))

		// Then: the method is not allowed
		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})
}
