package storage

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/providers/w3up"
)

// SessionConfig holds the storage account settings
type SessionConfig struct {
	// Email identifies the storage account
	Email string
	// SpaceName names the space created when the account has none
	SpaceName string
}

// StatusKind is the outcome of a status check
type StatusKind string

const (
	// StatusNoSession means no client has been created yet
	StatusNoSession StatusKind = "no_session"
	// StatusFailed means the spaces of the account could not be listed
	StatusFailed StatusKind = "failed"
	// StatusReady means the account was reachable; the other fields are populated
	StatusReady StatusKind = "ready"
)

// Status is the result of CheckStatus
type Status struct {
	Kind StatusKind `json:"kind"`
	// Reason explains a failed check
	Reason       string     `json:"reason,omitempty"`
	HasSpace     bool       `json:"hasSpace"`
	CurrentSpace domain.DID `json:"currentSpace,omitempty"`
	SpaceCount   int        `json:"spaceCount"`
}

// Session owns the storage client and its current space
type Session struct {
	config  SessionConfig
	factory w3up.Factory

	mu     sync.Mutex
	client w3up.Client
}

// NewSession creates a session that lazily creates its client through factory
func NewSession(cfg SessionConfig, factory w3up.Factory) *Session {
	if cfg.SpaceName == "" {
		cfg.SpaceName = domain.DEFAULT_SPACE_NAME
	}

	return &Session{
		config:  cfg,
		factory: factory,
	}
}

// Client returns the storage client, nil before the first EnsureReady
func (s *Session) Client() w3up.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}

// CurrentSpace returns the current space, nil if none is selected
func (s *Session) CurrentSpace() *w3up.Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	return s.client.CurrentSpace()
}

// EnsureReady returns a client with a current space, creating and authenticating it on first use.
// A client that exists without a space gets the first listed space, or stays without one.
func (s *Session) EnsureReady(ctx context.Context) (w3up.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		client, err := s.factory.New(ctx)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to initialize storage"))
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		// Keep the client even if the rest fails so the next call only retries space selection
		s.client = client

		if err := s.establish(ctx, client); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to initialize storage"))
			return nil, err
		}

		logger.InfoCtx(ctx, "Storage initialized", zap.String("space", spaceDID(client)))
		return client, nil
	}

	if s.client.CurrentSpace() == nil {
		spaces, err := s.client.Spaces(ctx)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to reset current space"))
			return nil, fmt.Errorf("failed to list spaces: %w", err)
		}
		if len(spaces) > 0 {
			s.client.SetCurrentSpace(spaces[0])
			logger.InfoCtx(ctx, "Reset current space", zap.String("space", spaces[0].DID.String()))
		}
	}

	return s.client, nil
}

// establish logs in and selects a space, registering the account when login is rejected
func (s *Session) establish(ctx context.Context, client w3up.Client) error {
	if err := client.Login(ctx, s.config.Email); err != nil {
		logger.WarnCtx(ctx, "Login failed, attempting registration", zap.Error(err))
		return s.register(ctx, client)
	}
	logger.InfoCtx(ctx, "Logged in to storage account")

	spaces, err := client.Spaces(ctx)
	if err != nil {
		return fmt.Errorf("failed to list spaces: %w", err)
	}

	if len(spaces) > 0 {
		client.SetCurrentSpace(spaces[0])
		logger.InfoCtx(ctx, "Using existing space", zap.String("space", spaces[0].DID.String()))
		return nil
	}

	return s.createSpace(ctx, client)
}

func (s *Session) register(ctx context.Context, client w3up.Client) error {
	proof, err := client.RequestProof(ctx, s.config.Email)
	if err != nil {
		return fmt.Errorf("failed to request proof: %w", err)
	}

	if err := client.Register(ctx, proof); err != nil {
		return fmt.Errorf("failed to register account: %w", err)
	}
	logger.InfoCtx(ctx, "Registered storage account")

	return s.createSpace(ctx, client)
}

// createSpace creates, saves and selects a new space named after the application
func (s *Session) createSpace(ctx context.Context, client w3up.Client) error {
	space, err := client.CreateSpace(ctx, s.config.SpaceName)
	if err != nil {
		return fmt.Errorf("failed to create space: %w", err)
	}

	if err := client.SaveSpace(ctx, space); err != nil {
		return fmt.Errorf("failed to save space: %w", err)
	}

	client.SetCurrentSpace(*space)
	logger.InfoCtx(ctx, "Created new space", zap.String("space", space.DID.String()))

	return nil
}

// selectFirstSpace makes sure the client has a current space, selecting the first listed one
func (s *Session) selectFirstSpace(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return ErrNoSpaceAvailable
	}
	if s.client.CurrentSpace() != nil {
		return nil
	}

	spaces, err := s.client.Spaces(ctx)
	if err != nil {
		return fmt.Errorf("failed to list spaces: %w", err)
	}
	if len(spaces) == 0 {
		return ErrNoSpaceAvailable
	}

	s.client.SetCurrentSpace(spaces[0])
	return nil
}

// CheckStatus reports the session state without changing it. It never fails:
// a failed lookup is reported as StatusFailed with its reason.
func (s *Session) CheckStatus(ctx context.Context) Status {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()

	if client == nil {
		return Status{Kind: StatusNoSession}
	}

	spaces, err := client.Spaces(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to check space status", zap.Error(err))
		return Status{Kind: StatusFailed, Reason: err.Error()}
	}

	status := Status{
		Kind:       StatusReady,
		HasSpace:   len(spaces) > 0,
		SpaceCount: len(spaces),
	}
	if current := client.CurrentSpace(); current != nil {
		status.CurrentSpace = current.DID
	}

	return status
}

func spaceDID(client w3up.Client) string {
	if space := client.CurrentSpace(); space != nil {
		return space.DID.String()
	}
	return ""
}
