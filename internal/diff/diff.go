// Package diff computes line-level differences between two renderings of a
// result list, so re-solved files can report what actually changed.
package diff

import (
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType represents the type of diff line
type LineType int

const (
	LineContext LineType = iota // Unchanged line
	LineAdded                   // Present only in the new text
	LineRemoved                 // Present only in the old text
)

func (t LineType) String() string {
	switch t {
	case LineAdded:
		return "added"
	case LineRemoved:
		return "removed"
	default:
		return "context"
	}
}

// MarshalText renders the line type by name.
func (t LineType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Prefix returns the unified-diff marker for t.
func (t LineType) Prefix() string {
	switch t {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// Line is a single line of a diff. OldNum and NewNum are 1-based; the side a
// line is missing from has number 0.
type Line struct {
	OldNum  int      `json:"old_num,omitempty" yaml:"old_num,omitempty"`
	NewNum  int      `json:"new_num,omitempty" yaml:"new_num,omitempty"`
	Content string   `json:"content" yaml:"content"`
	Type    LineType `json:"type" yaml:"type"`
}

func (l Line) String() string {
	return l.Type.Prefix() + " " + l.Content
}

// MaxCacheEntries bounds an Engine's cache. A full cache is emptied before
// the next store.
const MaxCacheEntries = 256

// Engine computes diffs and caches them by content hash.
type Engine struct {
	dmp *diffmatchpatch.DiffMatchPatch

	mu    sync.Mutex
	cache map[cacheKey][]Line
}

type cacheKey struct {
	oldHash uint64
	newHash uint64
}

// NewEngine creates a diff engine with the timeout disabled.
func NewEngine() *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &Engine{dmp: dmp, cache: make(map[cacheKey][]Line)}
}

// DefaultEngine is shared by the package-level helpers.
var DefaultEngine = NewEngine()

// Lines returns every line of the diff from oldText to newText, context
// included.
func (e *Engine) Lines(oldText, newText string) []Line {
	key := cacheKey{xxhash.Sum64String(oldText), xxhash.Sum64String(newText)}
	e.mu.Lock()
	cached, ok := e.cache[key]
	e.mu.Unlock()
	if ok {
		return slices.Clone(cached)
	}

	// Diff on line hashes so changes never split a line.
	a, b, lineArray := e.dmp.DiffLinesToChars(oldText, newText)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)

	lines := toLines(diffs)
	e.mu.Lock()
	if len(e.cache) >= MaxCacheEntries {
		clear(e.cache)
	}
	e.cache[key] = lines
	e.mu.Unlock()
	return slices.Clone(lines)
}

// Changes returns only the added and removed lines.
func (e *Engine) Changes(oldText, newText string) []Line {
	all := e.Lines(oldText, newText)
	out := all[:0]
	for _, l := range all {
		if l.Type != LineContext {
			out = append(out, l)
		}
	}
	return out
}

// ClearCache drops all cached diffs.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	clear(e.cache)
	e.mu.Unlock()
}

// CacheLen returns the number of cached diffs.
func (e *Engine) CacheLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cache)
}

// Lines is Engine.Lines on the default engine.
func Lines(oldText, newText string) []Line { return DefaultEngine.Lines(oldText, newText) }

// Changes is Engine.Changes on the default engine.
func Changes(oldText, newText string) []Line { return DefaultEngine.Changes(oldText, newText) }

// Count returns the number of added and removed lines.
func Count(lines []Line) (added, removed int) {
	for _, l := range lines {
		switch l.Type {
		case LineAdded:
			added++
		case LineRemoved:
			removed++
		}
	}
	return added, removed
}

func toLines(diffs []diffmatchpatch.Diff) []Line {
	out := make([]Line, 0)
	oldNum, newNum := 0, 0
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" && d.Text == "" {
			continue
		}
		for _, content := range strings.Split(text, "\n") {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldNum++
				newNum++
				out = append(out, Line{OldNum: oldNum, NewNum: newNum, Content: content, Type: LineContext})
			case diffmatchpatch.DiffDelete:
				oldNum++
				out = append(out, Line{OldNum: oldNum, Content: content, Type: LineRemoved})
			case diffmatchpatch.DiffInsert:
				newNum++
				out = append(out, Line{NewNum: newNum, Content: content, Type: LineAdded})
			}
		}
	}
	return out
}
