// Package grpc exposes the user and post services over gRPC. Messages travel
// as JSON (see internal/api); the transport only translates requests, the
// bearer token and errors.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/logging"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"google.golang.org/grpc"
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

type GRPCServer struct {
	address string
	users   UserService
	posts   PostService
	logger  logging.Logger
}

var _ api.PostboardServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, us UserService, ps PostService) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		posts:   ps,
	}
}

// newServer builds a grpc.Server with the interceptors and service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterPostboardServiceServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
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
