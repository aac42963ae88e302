package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/connect6-backend/internal/entity"
)

type sessionReader interface {
	Snapshot() entity.SessionSnapshot
}

// sessionHandler serves the live session state as JSON.
func sessionHandler(logger *slog.Logger, session sessionReader) http.HandlerFunc {
	log := logger.With("method", "sessionHandler")

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(session.Snapshot()); err != nil {
			log.Error("failed to encode session", "error", err)
		}
	}
}
