package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported through the standard health service
const ServiceName = "logpulse.Monitor"

// Server exposes the monitor's liveness over grpc.health.v1
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	logger     *zap.SugaredLogger
}

// NewServer creates a new gRPC Server instance. The service starts NOT_SERVING.
func NewServer(l *zap.SugaredLogger) *Server {
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	return &Server{grpcServer: gs, health: hs, logger: l}
}

// SetIngesting flips the health status of ServiceName
func (s *Server) SetIngesting(running bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if running {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
	s.logger.Debugf("gRPC health of %s set to %s", ServiceName, status)
}

// Serve listens on addr until ctx is cancelled, then stops gracefully
func (s *Server) Serve(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("unable to listen on gRPC address %s: %w", addr, err)
	}
	return s.ServeListener(ctx, lis)
}

// ServeListener serves on an existing listener until ctx is cancelled
func (s *Server) ServeListener(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
	}()

	s.logger.Infof("gRPC health server listening on %s", lis.Addr())
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server failed: %w", err)
	}
	s.logger.Infof("gRPC server stopped listening.")
	return nil
}
