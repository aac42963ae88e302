package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/connect6-backend/internal/entity"
)

const saveTimeout = 5 * time.Second

type sessionRepo interface {
	Save(ctx context.Context, snapshot entity.SessionSnapshot) error
	Delete(ctx context.Context) error
}

// SnapshotPublisher mirrors the latest session snapshot into the repository.
// Publish never blocks: a snapshot that has not been written yet is replaced by a newer one.
type SnapshotPublisher struct {
	logger  *slog.Logger
	repo    sessionRepo
	mailbox chan entity.SessionSnapshot
}

func NewSnapshotPublisher(logger *slog.Logger, repo sessionRepo) *SnapshotPublisher {
	return &SnapshotPublisher{
		logger:  logger.With("component", "snapshot-publisher"),
		repo:    repo,
		mailbox: make(chan entity.SessionSnapshot, 1),
	}
}

func (that *SnapshotPublisher) Publish(snapshot entity.SessionSnapshot) {
	for {
		select {
		case that.mailbox <- snapshot:
			return
		default:
		}

		// drop the stale snapshot and try again
		select {
		case <-that.mailbox:
		default:
		}
	}
}

// Reset removes whatever a previous process left behind.
func (that *SnapshotPublisher) Reset(ctx context.Context) error {
	if err := that.repo.Delete(ctx); err != nil {
		return fmt.Errorf("failed to reset session mirror: %w", err)
	}

	return nil
}

// Run writes published snapshots until ctx is done. Write failures are logged and do not stop the loop.
func (that *SnapshotPublisher) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	for {
		select {
		case <-ctx.Done():
			log.Debug("stopped")
			return
		case snapshot := <-that.mailbox:
			if err := that.save(ctx, snapshot); err != nil {
				log.Error("failed to mirror session", "error", err)
			}
		}
	}
}

func (that *SnapshotPublisher) save(ctx context.Context, snapshot entity.SessionSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	if err := that.repo.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}
