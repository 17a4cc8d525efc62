package ports

import (
	"context"
	"time"
)

// HTTPServer defines the interface for the HTTP API server
type HTTPServer interface {
	Start(ctx context.Context, port int, host string) error
	Stop(ctx context.Context) error
	NotifyClients(event UpdateEvent) error
	IsRunning() bool
}

// UpdateEvent represents an event sent to WebSocket clients
type UpdateEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// UpdateEventType constants
const (
	EventTypeBuildStarted   = "build_started"
	EventTypeSlideRendered  = "slide_rendered"
	EventTypeBuildCompleted = "build_completed"
	EventTypeBuildFailed    = "build_failed"
	EventTypeError          = "error"
)
