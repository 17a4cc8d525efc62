package ports

// MetricsRecorder aggregates build and server activity for the metrics endpoint
type MetricsRecorder interface {
	BuildObserver
	RecordHTTPRequest(status int)
	RecordWebSocketConnection()
	Snapshot() map[string]interface{}
}
