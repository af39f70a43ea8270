// Package watch re-solves a file of equations whenever it changes on disk.
package watch

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"numlab/internal/diff"
	"numlab/internal/equation"
	"numlab/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Result is the outcome of one line of an equations file.
type Result struct {
	Line     int                `json:"line" yaml:"line"`
	Input    string             `json:"input" yaml:"input"`
	Solution *equation.Solution `json:"solution,omitempty" yaml:"solution,omitempty"`
	Error    string             `json:"error,omitempty" yaml:"error,omitempty"`
	Err      error              `json:"-" yaml:"-"`
}

// Update is delivered to the Handler after every solve. Changes is the line
// diff of Render(Results) against the previous solve; on the first solve
// every line is an addition.
type Update struct {
	Path    string      `json:"path" yaml:"path"`
	Results []Result    `json:"results" yaml:"results"`
	Changes []diff.Line `json:"changes" yaml:"changes"`
}

// Handler receives every Update.
type Handler func(Update)

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Solves        int
	Errors        int
	LastEventTime time.Time
	LastEventType string
}

// SolveFile solves every non-blank, non-comment line of path. Lines starting
// with '#' are comments. Parse failures are reported per line and do not
// stop the rest of the file.
func SolveFile(path string) ([]Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read equations: %w", err)
	}
	return SolveLines(data), nil
}

// SolveLines is SolveFile over in-memory content.
func SolveLines(data []byte) []Result {
	var out []Result
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		r := Result{Line: line, Input: text}
		sol, err := equation.Solve(text)
		if err != nil {
			r.Err = err
			r.Error = err.Error()
		} else {
			r.Solution = &sol
		}
		out = append(out, r)
	}
	return out
}

// Render formats results one per line, the form Update.Changes is computed on.
func Render(results []Result) string {
	var sb strings.Builder
	for _, r := range results {
		outcome := r.Error
		if r.Solution != nil {
			outcome = r.Solution.Display
		}
		fmt.Fprintf(&sb, "%d: %s => %s\n", r.Line, r.Input, outcome)
	}
	return sb.String()
}

// EquationWatcher watches a single equations file. Rapid successive writes
// are collapsed by a debounce window before the file is re-solved.
type EquationWatcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	path        string
	handler     Handler
	pending     time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	stats       Stats
	last        string // Render of the previous solve
}

// NewEquationWatcher creates a watcher for path. The handler is invoked
// from the watcher goroutine.
func NewEquationWatcher(path string, handler Handler) (*EquationWatcher, error) {
	if handler == nil {
		return nil, errors.New("nil handler")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &EquationWatcher{
		watcher:     w,
		path:        abs,
		handler:     handler,
		debounceDur: 200 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// SetDebounce changes the debounce window. Call before Start.
func (ew *EquationWatcher) SetDebounce(d time.Duration) {
	ew.mu.Lock()
	defer ew.mu.Unlock()
	ew.debounceDur = d
}

// Start solves the file once, then watches its directory. Editors often
// replace files by rename, so the directory is watched rather than the file.
// Non-blocking.
func (ew *EquationWatcher) Start(ctx context.Context) error {
	ew.mu.Lock()
	if ew.running {
		ew.mu.Unlock()
		return nil
	}
	ew.running = true
	ew.mu.Unlock()

	if err := ew.watcher.Add(filepath.Dir(ew.path)); err != nil {
		ew.mu.Lock()
		ew.running = false
		ew.mu.Unlock()
		return fmt.Errorf("failed to watch %s: %w", ew.path, err)
	}
	logging.Get(logging.CategoryWatch).Infow("watching equations", "path", ew.path)

	ew.solve()
	go ew.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (ew *EquationWatcher) Stop() {
	ew.mu.Lock()
	if !ew.running {
		ew.mu.Unlock()
		return
	}
	ew.running = false
	ew.mu.Unlock()

	close(ew.stopCh)
	<-ew.doneCh

	if err := ew.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatch).Errorw("error closing watcher", "error", err)
	}
}

// Done is closed once the event loop has exited.
func (ew *EquationWatcher) Done() <-chan struct{} { return ew.doneCh }

// Stats returns a snapshot of the watcher statistics.
func (ew *EquationWatcher) Stats() Stats {
	ew.mu.RLock()
	defer ew.mu.RUnlock()
	return ew.stats
}

// IsWatching returns true if the watcher is currently running.
func (ew *EquationWatcher) IsWatching() bool {
	ew.mu.RLock()
	defer ew.mu.RUnlock()
	return ew.running
}

func (ew *EquationWatcher) run(ctx context.Context) {
	defer close(ew.doneCh)
	log := logging.Get(logging.CategoryWatch)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("context cancelled")
			return

		case <-ew.stopCh:
			return

		case event, ok := <-ew.watcher.Events:
			if !ok {
				return
			}
			ew.handleEvent(event)

		case err, ok := <-ew.watcher.Errors:
			if !ok {
				return
			}
			log.Errorw("watcher error", "error", err)
			ew.mu.Lock()
			ew.stats.Errors++
			ew.mu.Unlock()

		case <-ticker.C:
			ew.processDebounced()
		}
	}
}

func (ew *EquationWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != ew.path {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Remove != 0:
		eventType = "delete"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	default:
		return
	}
	logging.Get(logging.CategoryWatch).Debugw("event", "type", eventType, "path", event.Name)

	ew.mu.Lock()
	ew.stats.Events++
	ew.stats.LastEventTime = time.Now()
	ew.stats.LastEventType = eventType
	ew.pending = time.Now()
	ew.mu.Unlock()
}

func (ew *EquationWatcher) processDebounced() {
	ew.mu.Lock()
	if ew.pending.IsZero() || time.Since(ew.pending) < ew.debounceDur {
		ew.mu.Unlock()
		return
	}
	ew.pending = time.Time{}
	ew.mu.Unlock()

	ew.solve()
}

func (ew *EquationWatcher) solve() {
	results, err := SolveFile(ew.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Get(logging.CategoryWatch).Debugw("file missing, skipping", "path", ew.path)
			return
		}
		logging.Get(logging.CategoryWatch).Errorw("solve failed", "path", ew.path, "error", err)
		ew.mu.Lock()
		ew.stats.Errors++
		ew.mu.Unlock()
		return
	}
	rendered := Render(results)
	ew.mu.Lock()
	ew.stats.Solves++
	prev := ew.last
	ew.last = rendered
	ew.mu.Unlock()

	changes := diff.Changes(prev, rendered)
	if prev != "" && len(changes) == 0 {
		logging.Get(logging.CategoryWatch).Debugw("no result changes", "path", ew.path)
	}
	ew.handler(Update{Path: ew.path, Results: results, Changes: changes})
}
