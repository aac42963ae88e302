package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/connect6-backend/internal/entity"
)

// SessionKey holds the JSON mirror of the live session.
const SessionKey = "session:current"

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Save(ctx context.Context, snapshot entity.SessionSnapshot) error
	Get(ctx context.Context) (entity.SessionSnapshot, error)
	Delete(ctx context.Context) error
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

func (that *dbSession) Save(ctx context.Context, snapshot entity.SessionSnapshot) error {
	sessionJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	if err = that.client.Set(ctx, SessionKey, sessionJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) Get(ctx context.Context) (entity.SessionSnapshot, error) {
	response, err := that.client.Get(ctx, SessionKey).Result()
	if errors.Is(err, redis.Nil) {
		return entity.SessionSnapshot{}, ErrSessionNotFound
	}

	if err != nil {
		return entity.SessionSnapshot{}, fmt.Errorf("failed to get session: %w", err)
	}

	var snapshot entity.SessionSnapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return entity.SessionSnapshot{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return snapshot, nil
}

// Delete removes the mirror. Deleting a missing key is not an error.
func (that *dbSession) Delete(ctx context.Context) error {
	if err := that.client.Del(ctx, SessionKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
