package messaging

import (
	"context"

	"github.com/nitk/memory-vault/internal/domain"
)

// Publisher defines the interface for publishing index notifications to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes the notification of an indexed event
	PublishEvent(ctx context.Context, event *domain.IndexedEvent) error
	// Close closes the connection
	Close()
}
