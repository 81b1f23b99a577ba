package adapter

import "time"

// Clock abstracts the wall clock so timestamps, cursor flushes and
// rate limit windows can be driven by tests
//
//go:generate mockgen -source=clock.go -destination=../mocks/clock.go -package=mocks -mock_names=Clock=MockClock
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Unix(sec int64, nsec int64) time.Time
	// After waits for d; receipt polling waits on it between attempts
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

// NewClock returns the system clock
func NewClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) Since(t time.Time) time.Duration        { return time.Since(t) }
func (realClock) Unix(sec int64, nsec int64) time.Time   { return time.Unix(sec, nsec) }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
