package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/gophkeeper-profile/internal/media"
	"github.com/dtroode/gophkeeper-profile/internal/model"
)

func handleError(err error) error {
	var storageErr *model.StorageError

	switch {
	case errors.Is(err, model.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, "permission required")
	case errors.Is(err, model.ErrUnknownMediaKind), errors.Is(err, media.ErrInvalidSelection):
		return status.Error(codes.InvalidArgument, "invalid media selection")
	case errors.Is(err, media.ErrCameraUnavailable):
		return status.Error(codes.FailedPrecondition, "camera unavailable")
	case errors.As(err, &storageErr):
		return status.Error(codes.Unavailable, "could not save profile")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
