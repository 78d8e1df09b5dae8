// Package rest exposes the user and post services as a JSON HTTP API built
// on gin. Routes and response shapes follow the original postboard API.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/postboard/internal/logging"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// UserService is the authentication surface the transport needs.
type UserService interface {
	Register(ctx context.Context, userName, password string) (string, error)
	Login(ctx context.Context, userName, password string) (string, error)
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

// PostService is the post surface the transport needs.
type PostService interface {
	List(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, identity *models.Identity, fields models.PostFields) (*models.Post, error)
	Update(ctx context.Context, identity *models.Identity, id int64, fields models.PostFields) (*models.Post, error)
	Delete(ctx context.Context, identity *models.Identity, id int64) error
	PhotoUploadURL(ctx context.Context, identity *models.Identity) (*models.PhotoUpload, error)
	PhotoURL(ctx context.Context, id int64) (string, error)
}

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address     string
	users       UserService
	posts       PostService
	logger      logging.Logger
	limiter     Limiter
	corsOrigins []string
}

// Option customizes an HTTPServer.
type Option func(*HTTPServer)

// WithLimiter throttles /registration and /login per client IP.
func WithLimiter(l Limiter) Option {
	return func(s *HTTPServer) { s.limiter = l }
}

// WithCORSOrigins sets the origins browsers may call the API from.
func WithCORSOrigins(origins []string) Option {
	return func(s *HTTPServer) { s.corsOrigins = origins }
}

func NewHTTPServer(a string, l logging.Logger, us UserService, ps PostService, opts ...Option) *HTTPServer {
	s := &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		posts:   ps,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine with all routes and middleware.
func (s *HTTPServer) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(s.logger))

	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "OK"}) })

	authRoutes := router.Group("/")
	if s.limiter != nil {
		authRoutes.Use(RateLimit(s.limiter, s.logger))
	}
	authRoutes.POST("/registration", s.register)
	authRoutes.POST("/login", s.login)

	router.GET("/posts", s.listPosts)
	router.GET("/posts/:id", s.getPost)
	router.GET("/posts/:id/photo", s.getPhotoURL)

	protected := router.Group("/", Auth(s.users))
	protected.POST("/posts", s.createPost)
	protected.PUT("/posts/:id", s.updatePost)
	protected.DELETE("/posts/:id", s.deletePost)
	protected.POST("/photos", s.photoUploadURL)

	return router
}

// Handler wraps the router with CORS handling.
func (s *HTTPServer) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(s.Router())
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
