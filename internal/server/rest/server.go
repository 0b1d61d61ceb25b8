// Package rest exposes the phone authentication flow as a JSON API over fiber.
package rest

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/logging"
	"github.com/dmitrijs2005/phoneauth/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Verifier issues and confirms phone verification codes.
type Verifier interface {
	IssueCode(ctx context.Context, phone string) (*services.IssueResult, error)
	ConfirmCode(ctx context.Context, phone string, code string) (*services.ConfirmResult, error)
	ConfirmBySession(ctx context.Context, sessionToken string, code string) (*services.ConfirmResult, error)
}

// Tokens manages session tokens.
type Tokens interface {
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
	UserID(accessToken string) (string, error)
}

// Invites serves the referral operations of an authenticated user.
type Invites interface {
	Activate(ctx context.Context, userID string, code string) error
	Profile(ctx context.Context, userID string) (*services.Profile, error)
}

type HTTPServer struct {
	address      string
	logger       logging.Logger
	verification Verifier
	tokens       Tokens
	invites      Invites
	timeout      time.Duration
}

func NewHTTPServer(a string, l logging.Logger, v Verifier, t Tokens, i Invites, timeout time.Duration) *HTTPServer {
	return &HTTPServer{
		address:      a,
		logger:       l.With("module", "http_server"),
		verification: v,
		tokens:       t,
		invites:      i,
		timeout:      timeout,
	}
}

// App builds the fiber application with every route mounted.
func (s *HTTPServer) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "phoneauth",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(s.logRequests)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api").Group("/v1", s.withTimeout)
	s.register(v1)

	return app
}

func (s *HTTPServer) register(r fiber.Router) {
	r.Post("/auth/phone", s.issueCode)
	r.Post("/auth/verify", s.confirmCode)
	r.Post("/auth/logout", s.logout)
	r.Post("/token/refresh", s.refreshToken)

	protected := r.Group("", s.bearerAuth)
	protected.Get("/profile", s.profile)
	protected.Post("/invite/activate", s.activateInvite)
}

// Run serves until ctx is cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	app := s.App()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := app.Shutdown(); err != nil {
			s.logger.Warn(ctx, "HTTP shutdown failed", "error", err)
		}
		_ = listen.Close()
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := app.Listener(listen); err != nil && ctx.Err() == nil {
		return err
	}

	return nil
}
