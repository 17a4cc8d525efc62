package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

// Poller watches deck inputs by polling size, modification time and content hash
type Poller struct {
	interval time.Duration
	settle   time.Duration
	logger   ports.Logger
}

// fileState is the last observed state of one input
type fileState struct {
	Size     int64
	ModTime  time.Time
	Checksum string
	Missing  bool
}

// NewPoller creates a poller. Changes are reported once a file has been
// quiet for settle, so an editor's save burst yields a single rebuild.
func NewPoller(interval, settle time.Duration, logger ports.Logger) *Poller {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &Poller{interval: interval, settle: settle, logger: logger}
}

// Watch starts polling paths. Every path must exist when watching starts.
func (p *Poller) Watch(ctx context.Context, paths ...string) (<-chan ports.InputChange, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}

	states := make(map[string]fileState, len(paths))
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
		state, err := scan(absPath)
		if err != nil {
			return nil, fmt.Errorf("initial scan of %s: %w", path, err)
		}
		if state.Missing {
			return nil, fmt.Errorf("initial scan of %s: file does not exist", path)
		}
		states[absPath] = state
	}

	events := make(chan ports.InputChange, len(states))
	go func() {
		defer close(events)
		p.pollLoop(ctx, states, events)
	}()
	return events, nil
}

func (p *Poller) pollLoop(ctx context.Context, states map[string]fileState, events chan<- ports.InputChange) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	pending := make(map[string]ports.ChangeType)
	var lastChange time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		for path, old := range states {
			if unchangedOnDisk(path, old) {
				continue
			}
			current, err := scan(path)
			if err != nil {
				p.logger.Warn("watch error: %v", err)
				continue
			}
			states[path] = current
			if !changed(old, current) {
				continue
			}
			pending[path] = ports.Modified
			if current.Missing {
				pending[path] = ports.Removed
			}
			lastChange = time.Now()
		}

		if len(pending) == 0 || time.Since(lastChange) < p.settle {
			continue
		}

		for _, path := range sortedPaths(pending) {
			change := ports.InputChange{Path: path, Type: pending[path], Timestamp: time.Now()}
			select {
			case events <- change:
			case <-ctx.Done():
				return
			}
		}
		pending = make(map[string]ports.ChangeType)
	}
}

// scan returns the current state of path. A missing file is a state, not an error.
func scan(path string) (fileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileState{Missing: true}, nil
		}
		return fileState{}, fmt.Errorf("stat file: %w", err)
	}

	checksum, err := checksumFile(path)
	if err != nil {
		return fileState{}, fmt.Errorf("calculate checksum: %w", err)
	}
	return fileState{Size: info.Size(), ModTime: info.ModTime(), Checksum: checksum}, nil
}

// unchangedOnDisk skips hashing when size and modification time still match
func unchangedOnDisk(path string, old fileState) bool {
	if old.Missing {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Size() == old.Size && info.ModTime().Equal(old.ModTime)
}

// changed compares content hashes; a touch without an edit is not a change
func changed(old, current fileState) bool {
	if old.Missing || current.Missing {
		return old.Missing != current.Missing
	}
	return old.Checksum != current.Checksum
}

func checksumFile(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - watched paths are build inputs chosen by the user
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func sortedPaths(m map[string]ports.ChangeType) []string {
	paths := make([]string, 0, len(m))
	for path := range m {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

var _ ports.InputWatcher = (*Poller)(nil)
