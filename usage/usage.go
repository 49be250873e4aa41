// Package usage keeps a bounded log of completed conversions and their
// character counts.
package usage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// TimeLayout is the timestamp format stored in entries.
const TimeLayout = "2006-01-02 15:04:05"

// DefaultMaxEntries is the log size used when none is configured.
const DefaultMaxEntries = 100

// Entry represents one completed conversion
type Entry struct {
	ID         string `json:"id,omitempty"`
	Timestamp  string `json:"timestamp"`
	Characters int    `json:"characters"`
	VoiceID    string `json:"voice_id"`
	Engine     string `json:"engine,omitempty"`
}

// Summary aggregates every entry ever added, including trimmed ones.
type Summary struct {
	TotalCharacters             int     `json:"total_characters"`
	TotalRequests               int     `json:"total_requests"`
	AverageCharactersPerRequest float64 `json:"average_characters_per_request"`
}

type file struct {
	Log     []Entry `json:"log"`
	Summary Summary `json:"summary"`
}

// Tracker holds the most recent entries, newest first.
type Tracker struct {
	maxEntries int
	now        func() time.Time

	mu              sync.RWMutex
	entries         []Entry
	totalCharacters int
	totalRequests   int
}

// NewTracker creates a tracker keeping at most maxEntries entries.
func NewTracker(maxEntries int) *Tracker {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Tracker{maxEntries: maxEntries, now: time.Now}
}

// Add records e, stamping it with the current time when it has none, and
// returns the stored entry.
func (t *Tracker) Add(e Entry) Entry {
	if e.Timestamp == "" {
		e.Timestamp = t.now().Format(TimeLayout)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append([]Entry{e}, t.entries...)
	if len(t.entries) > t.maxEntries {
		t.entries = t.entries[:t.maxEntries]
	}
	t.totalCharacters += e.Characters
	t.totalRequests++
	return e
}

// Entries returns a copy of the log, newest first.
func (t *Tracker) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

func (t *Tracker) Summary() Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.summary()
}

func (t *Tracker) summary() Summary {
	s := Summary{
		TotalCharacters: t.totalCharacters,
		TotalRequests:   t.totalRequests,
	}
	if t.totalRequests > 0 {
		s.AverageCharactersPerRequest = float64(t.totalCharacters) / float64(t.totalRequests)
	}
	return s
}

// Save writes the log and summary as indented JSON.
func (t *Tracker) Save(path string) error {
	t.mu.RLock()
	f := file{Log: t.entries, Summary: t.summary()}
	if f.Log == nil {
		f.Log = []Entry{}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	t.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode usage log: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create usage log dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write usage log: %w", err)
	}
	return nil
}

// Load replaces the tracker state with the contents of path. A missing
// file leaves the tracker empty and is not an error.
func (t *Tracker) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("usage log not found, starting with empty log", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read usage log: %w", err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to decode usage log %s: %w", path, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = f.Log
	if len(t.entries) > t.maxEntries {
		t.entries = t.entries[:t.maxEntries]
	}
	t.totalCharacters = f.Summary.TotalCharacters
	t.totalRequests = f.Summary.TotalRequests
	return nil
}
