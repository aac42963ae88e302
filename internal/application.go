package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/connect6-backend/internal/config"
	"github.com/rocketscienceinc/connect6-backend/internal/repository"
	"github.com/rocketscienceinc/connect6-backend/internal/repository/storage"
	"github.com/rocketscienceinc/connect6-backend/internal/service"
	"github.com/rocketscienceinc/connect6-backend/internal/usecase"
	"github.com/rocketscienceinc/connect6-backend/transport/grpc"
	"github.com/rocketscienceinc/connect6-backend/transport/rest"
	"github.com/rocketscienceinc/connect6-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	messages := sessionMessages(conf)

	var coordinator *usecase.Coordinator
	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		publisher := service.NewSnapshotPublisher(logger, repository.NewSessionRepository(redisStorage))
		if err = publisher.Reset(ctx); err != nil {
			return err
		}

		go publisher.Run(ctx)

		coordinator = usecase.NewCoordinator(logger, messages, publisher)
	} else {
		log.Info("Redis mirror disabled")
		coordinator = usecase.NewCoordinator(logger, messages, nil)
	}

	grpcServer, err := grpc.New(logger, coordinator, conf.Session.SinkBufferSize, ":"+conf.GRPCPort)
	if err != nil {
		return fmt.Errorf("could not create gRPC server: %w", err)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- rest.New(logger, coordinator).Start(ctx, conf.HTTPPort)
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, coordinator, conf.Session.SinkBufferSize)
		wsErrCh <- wsServer.Start(ctx, conf.SocketPort)
	}()

	// run gRPC server
	grpcErrCh := make(chan error, 1)
	go func() {
		grpcErrCh <- grpcServer.Serve(ctx)
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case err = <-grpcErrCh:
		return fmt.Errorf("gRPC server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	for name, errCh := range map[string]chan error{"HTTP": httpErrCh, "WebSocket": wsErrCh, "gRPC": grpcErrCh} {
		if err = <-errCh; err != nil {
			log.Error("server did not stop cleanly", "server", name, "error", err)
		}
	}

	return nil
}

func sessionMessages(conf *config.Config) usecase.Messages {
	messages := usecase.DefaultMessages()
	messages.WaitingForOpponent = conf.Session.WaitingMessage
	messages.OpponentDisconnected = conf.Session.OpponentDisconnectedMessage
	messages.CapacityReached = conf.Session.CapacityMessage

	return messages
}
