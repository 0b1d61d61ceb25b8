// Package grpc serves the phone authentication flow over gRPC.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/logging"
	"github.com/dmitrijs2005/phoneauth/internal/server/services"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type Verifier interface {
	IssueCode(ctx context.Context, phone string) (*services.IssueResult, error)
	ConfirmCode(ctx context.Context, phone string, code string) (*services.ConfirmResult, error)
	ConfirmBySession(ctx context.Context, sessionToken string, code string) (*services.ConfirmResult, error)
}

type Tokens interface {
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
	UserID(accessToken string) (string, error)
}

type Invites interface {
	Activate(ctx context.Context, userID string, code string) error
	Profile(ctx context.Context, userID string) (*services.Profile, error)
}

type GRPCServer struct {
	address      string
	logger       logging.Logger
	verification Verifier
	tokens       Tokens
	invites      Invites
	timeout      time.Duration
}

func NewGRPCServer(a string, l logging.Logger, v Verifier, t Tokens, i Invites, timeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:      a,
		logger:       l.With("module", "grpc_server"),
		verification: v,
		tokens:       t,
		invites:      i,
		timeout:      timeout,
	}
}

// newServer creates the gRPC server with the phone auth and health services.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.timeoutInterceptor, s.accessTokenInterceptor),
	)

	RegisterPhoneAuthServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
