package ports

import (
	"context"
	"time"
)

// ChangeType describes what happened to a watched input file
type ChangeType int

const (
	Modified ChangeType = iota
	Removed
)

// String returns the change name used in log lines
func (c ChangeType) String() string {
	if c == Removed {
		return "removed"
	}
	return "modified"
}

// InputChange reports a change to one of the inputs of a deck build
type InputChange struct {
	Path      string
	Type      ChangeType
	Timestamp time.Time
}

// InputWatcher reports changes to slide descriptions and brand kits so
// a deck can be rebuilt in place.
type InputWatcher interface {
	// Watch polls paths until ctx is done. The returned channel is
	// closed when watching stops.
	Watch(ctx context.Context, paths ...string) (<-chan InputChange, error)
}
