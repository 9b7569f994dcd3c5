// Package grpc exposes the standard gRPC health service. Its status follows
// the reachability of the backing store.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/promptmarket/internal/logging"
	"github.com/dmitrijs2005/promptmarket/internal/server/repositories/liststore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported alongside the server-wide ("") health status.
const ServiceName = "promptmarket.Prompts"

type GRPCServer struct {
	address  string
	logger   logging.Logger
	health   *health.Server
	pinger   liststore.Pinger
	interval time.Duration
}

// NewGRPCServer builds a health server for address. A nil pinger means the
// store cannot be probed and the service always reports SERVING.
func NewGRPCServer(address string, l logging.Logger, pinger liststore.Pinger, interval time.Duration) *GRPCServer {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &GRPCServer{
		address:  address,
		logger:   l.With("module", "grpc_server"),
		health:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.probe(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
