package grpc

import (
	"context"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/server/models"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.Credentials) (*api.TokenResponse, error) {
	token, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.TokenResponse{Message: api.MessageRegistered, AccessToken: token}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.Credentials) (*api.TokenResponse, error) {
	token, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.TokenResponse{Message: api.MessageLoggedIn, AccessToken: token}, nil
}

func (s *GRPCServer) ListPosts(ctx context.Context, req *api.ListPostsRequest) (*api.ListPostsResponse, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	resp := &api.ListPostsResponse{Posts: make([]*api.Post, 0, len(posts))}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, toAPIPost(p))
	}
	return resp, nil
}

func (s *GRPCServer) GetPost(ctx context.Context, req *api.PostID) (*api.Post, error) {
	post, err := s.posts.Get(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toAPIPost(post), nil
}

func (s *GRPCServer) CreatePost(ctx context.Context, req *api.PostFields) (*api.Post, error) {
	post, err := s.posts.Create(ctx, identityFromContext(ctx), toFields(*req))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toAPIPost(post), nil
}

func (s *GRPCServer) UpdatePost(ctx context.Context, req *api.UpdatePostRequest) (*api.Post, error) {
	post, err := s.posts.Update(ctx, identityFromContext(ctx), req.ID, toFields(req.PostFields))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toAPIPost(post), nil
}

func (s *GRPCServer) DeletePost(ctx context.Context, req *api.PostID) (*api.PostID, error) {
	if err := s.posts.Delete(ctx, identityFromContext(ctx), req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.PostID{ID: req.ID}, nil
}

func (s *GRPCServer) GetPhotoUploadURL(ctx context.Context, req *api.PhotoUploadRequest) (*api.PhotoUploadResponse, error) {
	up, err := s.posts.PhotoUploadURL(ctx, identityFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.PhotoUploadResponse{Key: up.Key, URL: up.URL}, nil
}

func (s *GRPCServer) GetPhotoURL(ctx context.Context, req *api.PostID) (*api.PhotoURLResponse, error) {
	url, err := s.posts.PhotoURL(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.PhotoURLResponse{URL: url}, nil
}

func toAPIPost(p *models.Post) *api.Post {
	return &api.Post{
		ID:          p.ID,
		Owner:       p.Owner,
		Title:       p.Title,
		Description: p.Description,
		Photo:       p.Photo,
	}
}

func toFields(f api.PostFields) models.PostFields {
	return models.PostFields{Title: f.Title, Description: f.Description, Photo: f.Photo}
}
