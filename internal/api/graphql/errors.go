package graphql

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	apierrors "github.com/nitk/memory-vault/internal/api/shared/errors"
	"github.com/nitk/memory-vault/internal/logger"
)

// ErrorPresenter formats errors the way the REST API reports them.
// Parse and validation errors pass through unchanged; internal errors are
// logged and replaced by a generic message.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	var gqlErr *gqlerror.Error
	if !errors.As(err, &gqlErr) {
		gqlErr = gqlerror.WrapPath(graphql.GetPath(ctx), err)
	}

	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		if gqlErr.Err == nil {
			return gqlErr
		}
		return handleInternalError(ctx, gqlErr.Path, err)
	}

	switch apiErr.Code {
	case apierrors.ErrCodeInternalError, apierrors.ErrCodeDatabaseError, apierrors.ErrCodeStorageError:
		return handleInternalError(ctx, gqlErr.Path, err)
	default:
		presented := &gqlerror.Error{
			Message:   apiErr.Message,
			Path:      gqlErr.Path,
			Locations: gqlErr.Locations,
			Extensions: map[string]interface{}{
				"code": string(apiErr.Code),
			},
		}
		if apiErr.Details != "" {
			presented.Extensions["details"] = apiErr.Details
		}
		return presented
	}
}

// handleInternalError handles internal errors and returns a gqlerror.Error
func handleInternalError(ctx context.Context, path ast.Path, err error) *gqlerror.Error {
	logger.ErrorCtx(ctx, err, zap.String("message", "Unhandled GraphQL error"))
	return &gqlerror.Error{
		Message: "Internal server error",
		Path:    path,
		Extensions: map[string]interface{}{
			"code": string(apierrors.ErrCodeInternalError),
		},
	}
}

// RecoverFunc handles panics in resolvers
func RecoverFunc(ctx context.Context, err interface{}) error {
	logger.ErrorCtx(ctx, fmt.Errorf("panic: %v", err), zap.Any("panic", err))
	return apierrors.NewInternalError("Internal server error")
}

// badRequest wraps an argument error as a bad request
func badRequest(message string, err error) error {
	return apierrors.NewBadRequestError(message, err.Error())
}
