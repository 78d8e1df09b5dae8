package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "postboard.v1.PostboardService"

// Full method names, as seen by interceptors.
const (
	MethodPing              = "/" + ServiceName + "/Ping"
	MethodRegister          = "/" + ServiceName + "/Register"
	MethodLogin             = "/" + ServiceName + "/Login"
	MethodListPosts         = "/" + ServiceName + "/ListPosts"
	MethodGetPost           = "/" + ServiceName + "/GetPost"
	MethodCreatePost        = "/" + ServiceName + "/CreatePost"
	MethodUpdatePost        = "/" + ServiceName + "/UpdatePost"
	MethodDeletePost        = "/" + ServiceName + "/DeletePost"
	MethodGetPhotoUploadURL = "/" + ServiceName + "/GetPhotoUploadURL"
	MethodGetPhotoURL       = "/" + ServiceName + "/GetPhotoURL"
)

// PostboardServiceServer is implemented by the gRPC transport.
type PostboardServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *Credentials) (*TokenResponse, error)
	Login(context.Context, *Credentials) (*TokenResponse, error)
	ListPosts(context.Context, *ListPostsRequest) (*ListPostsResponse, error)
	GetPost(context.Context, *PostID) (*Post, error)
	CreatePost(context.Context, *PostFields) (*Post, error)
	UpdatePost(context.Context, *UpdatePostRequest) (*Post, error)
	DeletePost(context.Context, *PostID) (*PostID, error)
	GetPhotoUploadURL(context.Context, *PhotoUploadRequest) (*PhotoUploadResponse, error)
	GetPhotoURL(context.Context, *PostID) (*PhotoURLResponse, error)
}

// unary builds the MethodDesc for one request/response method.
func unary[Req, Resp any](name string, call func(PostboardServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	full := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PostboardServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PostboardServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes PostboardService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PostboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", PostboardServiceServer.Ping),
		unary("Register", PostboardServiceServer.Register),
		unary("Login", PostboardServiceServer.Login),
		unary("ListPosts", PostboardServiceServer.ListPosts),
		unary("GetPost", PostboardServiceServer.GetPost),
		unary("CreatePost", PostboardServiceServer.CreatePost),
		unary("UpdatePost", PostboardServiceServer.UpdatePost),
		unary("DeletePost", PostboardServiceServer.DeletePost),
		unary("GetPhotoUploadURL", PostboardServiceServer.GetPhotoUploadURL),
		unary("GetPhotoURL", PostboardServiceServer.GetPhotoURL),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "postboard/v1/postboard.json",
}

func RegisterPostboardServiceServer(s grpc.ServiceRegistrar, srv PostboardServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// PostboardServiceClient calls PostboardService over a client connection,
// always with the JSON codec.
type PostboardServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPostboardServiceClient(cc grpc.ClientConnInterface) *PostboardServiceClient {
	return &PostboardServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PostboardServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *PostboardServiceClient) Register(ctx context.Context, in *Credentials, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *PostboardServiceClient) Login(ctx context.Context, in *Credentials, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *PostboardServiceClient) ListPosts(ctx context.Context, in *ListPostsRequest, opts ...grpc.CallOption) (*ListPostsResponse, error) {
	return invoke[ListPostsResponse](ctx, c.cc, MethodListPosts, in, opts)
}

func (c *PostboardServiceClient) GetPost(ctx context.Context, in *PostID, opts ...grpc.CallOption) (*Post, error) {
	return invoke[Post](ctx, c.cc, MethodGetPost, in, opts)
}

func (c *PostboardServiceClient) CreatePost(ctx context.Context, in *PostFields, opts ...grpc.CallOption) (*Post, error) {
	return invoke[Post](ctx, c.cc, MethodCreatePost, in, opts)
}

func (c *PostboardServiceClient) UpdatePost(ctx context.Context, in *UpdatePostRequest, opts ...grpc.CallOption) (*Post, error) {
	return invoke[Post](ctx, c.cc, MethodUpdatePost, in, opts)
}

func (c *PostboardServiceClient) DeletePost(ctx context.Context, in *PostID, opts ...grpc.CallOption) (*PostID, error) {
	return invoke[PostID](ctx, c.cc, MethodDeletePost, in, opts)
}

func (c *PostboardServiceClient) GetPhotoUploadURL(ctx context.Context, in *PhotoUploadRequest, opts ...grpc.CallOption) (*PhotoUploadResponse, error) {
	return invoke[PhotoUploadResponse](ctx, c.cc, MethodGetPhotoUploadURL, in, opts)
}

func (c *PostboardServiceClient) GetPhotoURL(ctx context.Context, in *PostID, opts ...grpc.CallOption) (*PhotoURLResponse, error) {
	return invoke[PhotoURLResponse](ctx, c.cc, MethodGetPhotoURL, in, opts)
}
