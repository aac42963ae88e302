package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type Server struct {
	logger     *slog.Logger
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
}

// New listens on addr and registers the game and health services.
func New(logger *slog.Logger, coordinator coordinator, bufferSize int, addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	logger = logger.With("component", "grpc")

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()

	RegisterConnect6GameServer(grpcServer, newService(logger, coordinator, bufferSize))
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		logger:     logger,
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
	}, nil
}

func (that *Server) Addr() string {
	return that.listener.Addr().String()
}

// Serve runs the server until ctx is done, then stops it gracefully.
func (that *Server) Serve(ctx context.Context) error {
	that.logger.Info("Starting gRPC server", "addr", that.Addr())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- that.grpcServer.Serve(that.listener)
	}()

	select {
	case <-ctx.Done():
		that.health.Shutdown()
		// open Register streams only end when their context is cancelled
		that.grpcServer.Stop()

		return ignoreStopped(<-serveErr)
	case err := <-serveErr:
		return ignoreStopped(err)
	}
}

func ignoreStopped(err error) error {
	if err == nil || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}

	return fmt.Errorf("failed to serve gRPC: %w", err)
}
