package grpc

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"

	"github.com/rocketscienceinc/connect6-backend/internal/entity"
	"github.com/rocketscienceinc/connect6-backend/internal/usecase"
	"github.com/rocketscienceinc/connect6-backend/transport/wire"
)

const (
	msgRematchRequested = "Rematch requested"
	msgDisconnected     = "Disconnected"
)

type coordinator interface {
	Register(playerID string, sink usecase.Sink) error
	MakeMove(playerID string, x, y int) (usecase.MoveOutcome, error)
	Disconnect(playerID string) error
	DisconnectSink(playerID string, sink usecase.Sink) error
	RequestRematch(playerID string) error
}

type service struct {
	logger      *slog.Logger
	coordinator coordinator
	bufferSize  int
}

func newService(logger *slog.Logger, coordinator coordinator, bufferSize int) *service {
	return &service{
		logger:      logger,
		coordinator: coordinator,
		bufferSize:  bufferSize,
	}
}

// Register streams session events to the player until the session closes the
// sink or the client goes away. A refused registration still delivers the
// refusal status before the stream ends.
func (that *service) Register(in *PlayerInfo, stream grpc.ServerStreamingServer[GameEvent]) error {
	log := that.logger.With("method", "Register", "playerID", in.PlayerID)

	sink := newStreamSink(that.bufferSize)
	if err := that.coordinator.Register(in.PlayerID, sink); err != nil {
		log.Info("registration refused", "error", err)
	}

	ctx := stream.Context()

	for {
		select {
		case event := <-sink.events:
			if err := sendEvent(stream, event); err != nil {
				that.dropStream(log, in.PlayerID, sink)
				return err
			}
		case <-sink.done:
			return that.drain(stream, sink)
		case <-ctx.Done():
			that.dropStream(log, in.PlayerID, sink)
			return nil
		}
	}
}

func (that *service) MakeMove(_ context.Context, in *Move) (*MoveResult, error) {
	outcome, err := that.coordinator.MakeMove(in.PlayerID, int(in.X), int(in.Y))
	if err != nil {
		return &MoveResult{Success: false, Message: err.Error()}, nil
	}

	return &MoveResult{Success: true, Message: outcome.Message}, nil
}

func (that *service) RequestRematch(_ context.Context, in *RematchRequest) (*MoveResult, error) {
	if err := that.coordinator.RequestRematch(in.PlayerID); err != nil {
		return &MoveResult{Success: false, Message: err.Error()}, nil
	}

	return &MoveResult{Success: true, Message: msgRematchRequested}, nil
}

func (that *service) Disconnect(_ context.Context, in *DisconnectRequest) (*MoveResult, error) {
	if err := that.coordinator.Disconnect(in.PlayerID); err != nil {
		return &MoveResult{Success: false, Message: err.Error()}, nil
	}

	return &MoveResult{Success: true, Message: msgDisconnected}, nil
}

// drain sends what was queued before the sink closed.
func (that *service) drain(stream grpc.ServerStreamingServer[GameEvent], sink *streamSink) error {
	for {
		select {
		case event := <-sink.events:
			if err := sendEvent(stream, event); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func sendEvent(stream grpc.ServerStreamingServer[GameEvent], event entity.Event) error {
	msg := wire.FromEvent(event)
	if err := stream.Send(&msg); err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}

	return nil
}

func (that *service) dropStream(log *slog.Logger, playerID string, sink *streamSink) {
	if err := that.coordinator.DisconnectSink(playerID, sink); err != nil {
		log.Debug("player already gone", "error", err)
		return
	}

	log.Info("stream closed, player disconnected")
}
