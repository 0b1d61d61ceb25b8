// Package server wires the phoneauth components together and runs the HTTP
// and gRPC APIs until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/logging"
	"github.com/dmitrijs2005/phoneauth/internal/server/codegen"
	"github.com/dmitrijs2005/phoneauth/internal/server/config"
	"github.com/dmitrijs2005/phoneauth/internal/server/events"
	"github.com/dmitrijs2005/phoneauth/internal/server/notify"
	"github.com/dmitrijs2005/phoneauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/phoneauth/internal/server/rest"
	"github.com/dmitrijs2005/phoneauth/internal/server/services"
	"github.com/dmitrijs2005/phoneauth/internal/telemetry"

	gs "github.com/dmitrijs2005/phoneauth/internal/server/grpc"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config          *config.Config
	logger          logging.Logger
	repos           repomanager.RepositoryManager
	publisher       events.Publisher
	shutdownTracing func(context.Context) error
	verification    *services.VerificationService
	tokens          *services.TokenService
	invites         *services.InviteService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, c.LogLevel))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	shutdownTracing, err := telemetry.Setup(ctx, c.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}

	repos, err := openRepositories(ctx, c, logger)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, err
	}

	publisher, err := openPublisher(ctx, c, logger)
	if err != nil {
		_ = repos.Close()
		_ = shutdownTracing(ctx)
		return nil, err
	}

	codes, err := codegen.NewSeeded()
	if err != nil {
		_ = publisher.Close()
		_ = repos.Close()
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("code generator init error: %w", err)
	}

	dir := services.NewDirectory(repos.Users(), codes, logger)
	ts := services.NewTokenService(repos, c)
	vs := services.NewVerificationService(repos, dir, ts, codes, notify.NewLogSender(logger), publisher, logger, c)
	is := services.NewInviteService(dir, publisher, logger)

	return &App{
		config:          c,
		logger:          logger,
		repos:           repos,
		publisher:       publisher,
		shutdownTracing: shutdownTracing,
		verification:    vs,
		tokens:          ts,
		invites:         is,
	}, nil
}

// openRepositories selects PostgreSQL when a DSN is configured and the
// in-memory store otherwise.
func openRepositories(ctx context.Context, c *config.Config, l logging.Logger) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		l.Warn(ctx, "no database configured, using in-memory store")
		return repomanager.NewInMemoryRepositoryManager(), nil
	}

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager(db)
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("db migrations error: %w", err)
	}

	return m, nil
}

func openPublisher(ctx context.Context, c *config.Config, l logging.Logger) (events.Publisher, error) {
	if c.AMQPURL == "" {
		return events.Nop{}, nil
	}

	p, err := events.NewAMQPPublisher(c.AMQPURL, c.AMQPExchange)
	if err != nil {
		return nil, fmt.Errorf("amqp init error: %w", err)
	}

	l.Info(ctx, "publishing events", "exchange", c.AMQPExchange)
	return p, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.verification, app.tokens, app.invites, app.config.RequestTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.verification, app.tokens, app.invites, app.config.RequestTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both APIs until ctx is cancelled, a termination signal arrives
// or one of the servers fails, then releases every resource.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close()
}

func (app *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.publisher.Close(); err != nil {
		app.logger.Warn(ctx, "event publisher close failed", "error", err)
	}
	if err := app.repos.Close(); err != nil {
		app.logger.Warn(ctx, "repository close failed", "error", err)
	}
	if err := app.shutdownTracing(ctx); err != nil {
		app.logger.Warn(ctx, "tracer shutdown failed", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
