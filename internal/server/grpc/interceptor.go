package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// protectedMethods need a resolved identity before the handler runs.
var protectedMethods = map[string]bool{
	api.MethodCreatePost:        true,
	api.MethodUpdatePost:        true,
	api.MethodDeletePost:        true,
	api.MethodGetPhotoUploadURL: true,
}

func identityFromContext(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(identityKey).(*models.Identity)
	return id
}

func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AccessTokenHeaderName)
	if len(values) == 0 {
		return ""
	}
	return common.ExtractBearer(values[0])
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	identity, err := s.users.Resolve(ctx, tokenFromMetadata(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return handler(context.WithValue(ctx, identityKey, identity), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	code := status.Code(err)

	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	if code == codes.Internal || code == codes.Unknown {
		s.logger.Error(ctx, "grpc request", args...)
	} else {
		s.logger.Info(ctx, "grpc request", args...)
	}
	return resp, err
}
