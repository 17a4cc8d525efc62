package http

import (
	"sync"
	"time"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

// defaultRegistrySize bounds how many finished builds stay downloadable
const defaultRegistrySize = 100

// BuildRecord is a finished build and its side outputs
type BuildRecord struct {
	Result  *entities.BuildResult
	Exports map[string]string // format -> path
	Created time.Time
}

// BuildRegistry keeps the most recent builds in memory for download.
// The oldest record is evicted once the registry is full.
type BuildRegistry struct {
	mu      sync.RWMutex
	records map[string]*BuildRecord
	order   []string
	limit   int
}

// NewBuildRegistry creates a registry holding at most limit builds
func NewBuildRegistry(limit int) *BuildRegistry {
	if limit <= 0 {
		limit = defaultRegistrySize
	}
	return &BuildRegistry{
		records: make(map[string]*BuildRecord),
		limit:   limit,
	}
}

// Add stores a record under its build id
func (r *BuildRegistry) Add(record *BuildRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := record.Result.ID
	if _, exists := r.records[id]; !exists {
		r.order = append(r.order, id)
	}
	r.records[id] = record

	for len(r.order) > r.limit {
		delete(r.records, r.order[0])
		r.order = r.order[1:]
	}
}

// Get returns the record for a build id
func (r *BuildRegistry) Get(id string) (*BuildRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	return record, ok
}

// List returns records newest first
func (r *BuildRegistry) List() []*BuildRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*BuildRecord, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		records = append(records, r.records[r.order[i]])
	}
	return records
}

// Len returns the number of stored builds
func (r *BuildRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
