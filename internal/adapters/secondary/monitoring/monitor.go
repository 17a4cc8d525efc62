package monitoring

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

// emaAlpha weights the newest build in the average build time
const emaAlpha = 0.1

// counters are the monotonic totals tracked by the monitor
type counters struct {
	BuildsStarted        int64
	BuildsCompleted      int64
	BuildsFailed         int64
	SlidesRendered       int64
	HTTPRequests         int64
	HTTPErrors           int64
	WebSocketConnections int64
}

// Monitor records build progress events and server traffic
type Monitor struct {
	startTime     time.Time
	now           func() time.Time
	totals        counters
	slidesByType  map[entities.SlideType]int64
	inFlight      map[string]time.Time
	avgBuildTime  time.Duration
	lastBuildTime time.Time
	mu            sync.Mutex
}

// NewMonitor creates a monitor whose uptime starts now
func NewMonitor() *Monitor {
	return &Monitor{
		startTime:    time.Now(),
		now:          time.Now,
		slidesByType: make(map[entities.SlideType]int64),
		inFlight:     make(map[string]time.Time),
	}
}

// OnBuildEvent folds one build progress event into the totals
func (m *Monitor) OnBuildEvent(e entities.BuildEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	at := e.Timestamp
	if at.IsZero() {
		at = m.now()
	}

	switch e.Type {
	case entities.BuildEventStarted:
		m.totals.BuildsStarted++
		m.inFlight[e.BuildID] = at
	case entities.BuildEventSlide:
		m.totals.SlidesRendered++
		m.slidesByType[e.SlideType]++
	case entities.BuildEventCompleted:
		m.totals.BuildsCompleted++
		m.lastBuildTime = at
		if started, ok := m.inFlight[e.BuildID]; ok {
			m.recordDuration(at.Sub(started))
			delete(m.inFlight, e.BuildID)
		}
	case entities.BuildEventFailed:
		m.totals.BuildsFailed++
		delete(m.inFlight, e.BuildID)
	}
}

// recordDuration updates the exponential moving average
func (m *Monitor) recordDuration(d time.Duration) {
	if m.avgBuildTime == 0 {
		m.avgBuildTime = d
		return
	}
	m.avgBuildTime = time.Duration(float64(m.avgBuildTime)*(1-emaAlpha) + float64(d)*emaAlpha)
}

// RecordHTTPRequest counts a served request; 5xx responses also count as errors
func (m *Monitor) RecordHTTPRequest(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totals.HTTPRequests++
	if status >= 500 {
		m.totals.HTTPErrors++
	}
}

// RecordWebSocketConnection counts an accepted websocket client
func (m *Monitor) RecordWebSocketConnection() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totals.WebSocketConnections++
}

// Uptime returns the time since the monitor was created
func (m *Monitor) Uptime() time.Duration {
	return m.now().Sub(m.startTime)
}

// Snapshot returns the build, traffic and runtime figures as a JSON-ready map
func (m *Monitor) Snapshot() map[string]interface{} {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	m.mu.Lock()
	defer m.mu.Unlock()

	byType := make(map[string]int64, len(m.slidesByType))
	for slideType, n := range m.slidesByType {
		byType[string(slideType)] = n
	}

	builds := map[string]interface{}{
		"started":         m.totals.BuildsStarted,
		"completed":       m.totals.BuildsCompleted,
		"failed":          m.totals.BuildsFailed,
		"in_progress":     len(m.inFlight),
		"avg_duration_ms": m.avgBuildTime.Milliseconds(),
		"slides_rendered": m.totals.SlidesRendered,
		"slides_by_type":  byType,
	}
	if !m.lastBuildTime.IsZero() {
		builds["last_completed"] = m.lastBuildTime
	}

	return map[string]interface{}{
		"uptime": m.now().Sub(m.startTime).String(),
		"builds": builds,
		"http": map[string]interface{}{
			"requests":              m.totals.HTTPRequests,
			"server_errors":         m.totals.HTTPErrors,
			"websocket_connections": m.totals.WebSocketConnections,
		},
		"runtime": map[string]interface{}{
			"memory_mb":  safeUint64ToInt64(memStats.Alloc) / (1024 * 1024),
			"heap_mb":    safeUint64ToInt64(memStats.HeapAlloc) / (1024 * 1024),
			"goroutines": runtime.NumGoroutine(),
			"gc_cycles":  memStats.NumGC,
		},
	}
}

// safeUint64ToInt64 caps val at the largest int64
func safeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(val)
}

var _ ports.MetricsRecorder = (*Monitor)(nil)
