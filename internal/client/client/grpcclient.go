package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	conn    *grpc.ClientConn
	client  *api.PostboardServiceClient
	timeout time.Duration

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient creates a client for endpointURL. A positive timeout bounds
// every call. Extra dial options are appended after the defaults.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewPostboardServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

// LoggedIn reports whether an access token is held.
func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

// Logout forgets the access token. The server keeps it valid until the
// next login.
func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

// Register creates an account and keeps the returned token.
func (s *GRPCClient) Register(ctx context.Context, userName, password string) (string, error) {
	return s.authenticate(ctx, s.client.Register, userName, password)
}

// Login authenticates and keeps the returned token.
func (s *GRPCClient) Login(ctx context.Context, userName, password string) (string, error) {
	return s.authenticate(ctx, s.client.Login, userName, password)
}

type authCall func(context.Context, *api.Credentials, ...grpc.CallOption) (*api.TokenResponse, error)

func (s *GRPCClient) authenticate(ctx context.Context, call authCall, userName, password string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := call(ctx, &api.Credentials{Username: userName, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}
	s.setToken(resp.AccessToken)
	return resp.Message, nil
}

func (s *GRPCClient) ListPosts(ctx context.Context) ([]*api.Post, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListPosts(ctx, &api.ListPostsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Posts, nil
}

func (s *GRPCClient) GetPost(ctx context.Context, id int64) (*api.Post, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetPost(ctx, &api.PostID{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreatePost(ctx context.Context, fields api.PostFields) (*api.Post, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CreatePost(ctx, &fields)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) UpdatePost(ctx context.Context, id int64, fields api.PostFields) (*api.Post, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.UpdatePost(ctx, &api.UpdatePostRequest{ID: id, PostFields: fields})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) DeletePost(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.DeletePost(ctx, &api.PostID{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

// PhotoUploadURL returns an object key and a presigned PUT URL for it.
func (s *GRPCClient) PhotoUploadURL(ctx context.Context) (string, string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetPhotoUploadURL(ctx, &api.PhotoUploadRequest{})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return resp.Key, resp.URL, nil
}

func (s *GRPCClient) PhotoURL(ctx context.Context, id int64) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetPhotoURL(ctx, &api.PostID{ID: id})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrConflict
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalid, st.Message())
	case codes.Unimplemented:
		return ErrPhotosDisabled
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
