package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/api/shared/dto"
	"github.com/nitk/memory-vault/internal/api/shared/executor"
	"github.com/nitk/memory-vault/internal/storage"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetMemory retrieves a single memory by its record ID
	// GET /api/v1/memories/:id
	GetMemory(c *gin.Context)

	// ListMemories retrieves memories, newest date first
	// GET /api/v1/memories?event_type=<substring>&date_gte=<unix|YYYY-MM-DD>&creator=<address>&order=<asc|desc>&limit=<limit>&offset=<offset>
	ListMemories(c *gin.Context)

	// GetTokenTransfers retrieves the transfer history of a token, oldest first
	// GET /api/v1/tokens/:token_id/transfers?limit=<limit>&offset=<offset>
	GetTokenTransfers(c *gin.Context)

	// Upload stores a multipart file on the storage network (requires authentication)
	// POST /api/v1/uploads
	Upload(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor      executor.Executor
	clock         adapter.Clock
	io            adapter.IO
	maxUploadSize int64
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor, clock adapter.Clock, ioAdapter adapter.IO, maxUploadSize int64) Handler {
	return &handler{
		executor:      exec,
		clock:         clock,
		io:            ioAdapter,
		maxUploadSize: maxUploadSize,
	}
}

// GetMemory retrieves a single memory by its record ID
func (h *handler) GetMemory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Memory ID is required")
		return
	}

	memory, err := h.executor.GetMemory(c.Request.Context(), id)
	if err != nil {
		respondExecutorError(c, err, "Failed to get memory")
		return
	}

	if memory == nil {
		respondNotFound(c, "Memory not found")
		return
	}

	c.JSON(http.StatusOK, memory)
}

// ListMemories retrieves memories with optional filters
func (h *handler) ListMemories(c *gin.Context) {
	queryParams, err := ParseListMemoriesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	memories, err := h.executor.ListMemories(
		c.Request.Context(),
		queryParams.EventType,
		queryParams.DateGTEUnix,
		queryParams.Creator,
		queryParams.Order.Asc(),
		&queryParams.Limit,
		&queryParams.Offset,
	)
	if err != nil {
		respondExecutorError(c, err, "Failed to list memories")
		return
	}

	c.JSON(http.StatusOK, memories)
}

// GetTokenTransfers retrieves the transfers of a token
func (h *handler) GetTokenTransfers(c *gin.Context) {
	tokenID := c.Param("token_id")
	if !validTokenID(tokenID) {
		respondBadRequest(c, "Invalid token ID", "token_id must be a decimal uint256")
		return
	}

	queryParams, err := ParseListTransfersQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	transfers, err := h.executor.GetTransfers(c.Request.Context(), tokenID, &queryParams.Limit, &queryParams.Offset)
	if err != nil {
		respondExecutorError(c, err, "Failed to get transfers")
		return
	}

	c.JSON(http.StatusOK, transfers)
}

// Upload reads the "file" form field and stores it through the storage session
func (h *handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)

	header, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondPayloadTooLarge(c, fmt.Sprintf("limit is %d bytes", h.maxUploadSize))
			return
		}
		respondBadRequest(c, "File is required", err.Error())
		return
	}

	if header.Size > h.maxUploadSize {
		respondPayloadTooLarge(c, fmt.Sprintf("limit is %d bytes", h.maxUploadSize))
		return
	}

	f, err := header.Open()
	if err != nil {
		respondBadRequest(c, "Failed to open file", err.Error())
		return
	}
	defer f.Close()

	content, err := h.io.ReadAll(io.LimitReader(f, h.maxUploadSize))
	if err != nil {
		respondBadRequest(c, "Failed to read file", err.Error())
		return
	}

	result, err := h.executor.Upload(c.Request.Context(), storage.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		respondExecutorError(c, err, "Failed to upload file")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: h.clock.Now().UTC().Truncate(time.Second),
	})
}
