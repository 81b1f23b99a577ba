package domain

import "errors"

var (
	// ErrSubscriptionFailed is returned when subscription to contract logs fails
	ErrSubscriptionFailed = errors.New("subscription failed")

	// ErrMemoryNotFound is returned when an indexed memory record is not found
	ErrMemoryNotFound = errors.New("memory not found")
)
