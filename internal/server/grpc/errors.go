package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/postboard/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC codes. Messages are the sentinel
// texts only, so wrapped causes never reach the client.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		s.logger.Info(ctx, "request not authenticated", "cause", err)
		return status.Error(codes.Unauthenticated, "invalid or missing token")
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, common.ErrorForbidden.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, common.ErrorNotFound.Error())
	case errors.Is(err, common.ErrorConflict):
		return status.Error(codes.AlreadyExists, common.ErrorConflict.Error())
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, common.ErrorValidation.Error())
	case errors.Is(err, common.ErrorPhotosDisabled):
		return status.Error(codes.Unimplemented, common.ErrorPhotosDisabled.Error())
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
