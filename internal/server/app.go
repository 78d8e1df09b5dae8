// Package server wires configuration, storage, services and transports into
// the postboard server and runs it until a signal or a fatal error.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/postboard/internal/logging"
	"github.com/dmitrijs2005/postboard/internal/server/config"
	"github.com/dmitrijs2005/postboard/internal/server/passwords"
	"github.com/dmitrijs2005/postboard/internal/server/photos"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/postboard/internal/server/rest"
	"github.com/dmitrijs2005/postboard/internal/server/services"
	"github.com/go-redis/redis/v8"

	gs "github.com/dmitrijs2005/postboard/internal/server/grpc"
)

// Seams for tests.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	redis       *redis.Client
	userService *services.UserService
	postService *services.PostService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	hasher, err := passwords.New(c.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("password hasher init error: %w", err)
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	// A nil *S3Store must not end up inside the interface.
	var photoStore services.PhotoStore
	store, err := photos.NewS3Store(ctx, c)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("photo store init error: %w", err)
	}
	if store != nil {
		photoStore = store
	} else {
		logger.Warn(ctx, "photo storage disabled, no bucket configured")
	}

	app := &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: services.NewUserService(db, rm, hasher, c, logger),
		postService: services.NewPostService(db, rm, photoStore, logger),
	}

	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
	}

	return app, nil
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.postService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	opts := []rest.Option{rest.WithCORSOrigins(app.config.CORSAllowedOrigins)}

	if app.redis != nil {
		limiter, err := rest.NewRedisLimiter(app.redis, app.config.RateLimitMax, app.config.RateLimitWindow)
		if err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
			return
		}
		opts = append(opts, rest.WithLimiter(limiter))
	}

	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.postService, opts...)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run starts every configured transport and blocks until ctx is cancelled,
// a signal arrives, or a transport fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	if app.config.EndpointAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHTTPServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.close(ctx)
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(ctx, "redis close", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
