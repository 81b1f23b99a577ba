package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/logger"
)

// ErrNoSpaceAvailable is returned when the account has no space to upload into
var ErrNoSpaceAvailable = errors.New("no space available for upload")

// File is the content to upload
type File struct {
	Name string
	// ContentType is sniffed from Content when empty
	ContentType string
	Content     []byte
}

// Uploader stores files on the storage network
//
//go:generate mockgen -source=upload.go -destination=../mocks/uploader.go -package=mocks -mock_names=Uploader=MockUploader
type Uploader interface {
	// Store uploads a file into the current space and returns its CID
	Store(ctx context.Context, file File) (string, error)
}

type uploader struct {
	session *Session
	clock   adapter.Clock
}

// NewUploader creates an uploader backed by session
func NewUploader(session *Session, clock adapter.Clock) Uploader {
	return &uploader{
		session: session,
		clock:   clock,
	}
}

// Store uploads a file under a timestamp-prefixed name and returns its CID
func (u *uploader) Store(ctx context.Context, file File) (string, error) {
	if u.session.Client() == nil || u.session.CurrentSpace() == nil {
		if _, err := u.session.EnsureReady(ctx); err != nil {
			return "", fmt.Errorf("failed to prepare storage session: %w", err)
		}
	}

	if err := u.session.selectFirstSpace(ctx); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Error storing file"))
		return "", err
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(file.Content).String()
	}

	// Millisecond prefix avoids name collisions between uploads of the same file
	filename := fmt.Sprintf("%d-%s", u.clock.Now().UnixMilli(), file.Name)

	id, err := u.session.Client().UploadFile(ctx, filename, contentType, bytes.NewReader(file.Content))
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Error storing file"), zap.String("filename", filename))
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	logger.InfoCtx(ctx, "File stored",
		zap.String("filename", filename),
		zap.String("cid", id.String()),
		zap.Int("size", len(file.Content)))

	return id.String(), nil
}
