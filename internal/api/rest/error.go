package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/api/middleware"
	apierrors "github.com/nitk/memory-vault/internal/api/shared/errors"
	"github.com/nitk/memory-vault/internal/logger"
)

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, apiErr *apierrors.APIError) {
	c.JSON(statusCode, apierrors.ErrorResponse{Error: apiErr})
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, apierrors.NewValidationError(details))
}

// respondPayloadTooLarge sends a 413 Request Entity Too Large response
func respondPayloadTooLarge(c *gin.Context, details string) {
	respondWithError(c, http.StatusRequestEntityTooLarge, apierrors.NewPayloadTooLargeError("File too large", details))
}

// respondExecutorError sends the executor's APIError, or a 500 for any other error, and logs it
func respondExecutorError(c *gin.Context, err error, message string) {
	logger.ErrorCtx(c.Request.Context(), err,
		zap.String("message", message),
		zap.String("request_id", c.GetString(middleware.REQUEST_ID_KEY)))

	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		respondWithError(c, http.StatusInternalServerError, apierrors.NewInternalError(message))
		return
	}

	switch apiErr.Code {
	case apierrors.ErrCodeStorageError:
		respondWithError(c, http.StatusBadGateway, apiErr)
	case apierrors.ErrCodeBadRequest, apierrors.ErrCodeValidationFailed:
		respondWithError(c, http.StatusBadRequest, apiErr)
	default:
		respondWithError(c, http.StatusInternalServerError, apierrors.NewInternalError(message))
	}
}
