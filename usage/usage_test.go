package usage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTracker(max int) *Tracker {
	tr := NewTracker(max)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	tr.now = func() time.Time { return now }
	return tr
}

func TestTrackerAdd(t *testing.T) {
	tr := fixedTracker(10)

	e := tr.Add(Entry{Characters: 120, VoiceID: "Camila"})
	assert.Equal(t, "2024-05-01 12:00:00", e.Timestamp)
	tr.Add(Entry{Characters: 80, VoiceID: "Joanna", Timestamp: "2024-05-02 08:00:00"})

	entries := tr.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Joanna", entries[0].VoiceID, "newest first")
	assert.Equal(t, "Camila", entries[1].VoiceID)

	assert.Equal(t, Summary{TotalCharacters: 200, TotalRequests: 2, AverageCharactersPerRequest: 100}, tr.Summary())
}

func TestTrackerBounded(t *testing.T) {
	tr := fixedTracker(3)
	for i := 1; i <= 5; i++ {
		tr.Add(Entry{Characters: i, VoiceID: "v"})
	}

	entries := tr.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 5, entries[0].Characters)
	assert.Equal(t, 3, entries[2].Characters)

	s := tr.Summary()
	assert.Equal(t, 15, s.TotalCharacters)
	assert.Equal(t, 5, s.TotalRequests)
}

func TestTrackerEmptySummary(t *testing.T) {
	assert.Equal(t, Summary{}, NewTracker(0).Summary())
}

func TestEntriesIsCopy(t *testing.T) {
	tr := fixedTracker(5)
	tr.Add(Entry{Characters: 1, VoiceID: "a"})

	entries := tr.Entries()
	entries[0].VoiceID = "changed"
	assert.Equal(t, "a", tr.Entries()[0].VoiceID)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "usage.json")

	tr := fixedTracker(5)
	tr.Add(Entry{ID: "one", Characters: 10, VoiceID: "Camila", Engine: "neural"})
	tr.Add(Entry{ID: "two", Characters: 30, VoiceID: "Joanna", Engine: "standard"})
	require.NoError(t, tr.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "log")
	assert.Contains(t, doc, "summary")
	assert.Contains(t, string(doc["summary"]), `"total_characters": 40`)

	loaded := NewTracker(1)
	require.NoError(t, loaded.Load(path))
	require.Len(t, loaded.Entries(), 1)
	assert.Equal(t, "two", loaded.Entries()[0].ID)
	assert.Equal(t, 2, loaded.Summary().TotalRequests)
	assert.Equal(t, 20.0, loaded.Summary().AverageCharactersPerRequest)
}

func TestLoadMissingFile(t *testing.T) {
	tr := NewTracker(5)
	require.NoError(t, tr.Load(filepath.Join(t.TempDir(), "missing.json")))
	assert.Empty(t, tr.Entries())
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	assert.Error(t, NewTracker(5).Load(path))
}

func TestSaveEmptyWritesList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	require.NoError(t, NewTracker(5).Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"log": []`)
}

func TestWriteReport(t *testing.T) {
	tr := fixedTracker(5)
	tr.Add(Entry{Characters: 1500, VoiceID: "Camila", Engine: "neural", Timestamp: "2024-05-01 10:00:00"})
	tr.Add(Entry{Characters: 2500, VoiceID: "Joanna"})

	var buf bytes.Buffer
	require.NoError(t, tr.WriteReport(&buf))

	out := buf.String()
	assert.Contains(t, out, "Total Characters: 4,000\n")
	assert.Contains(t, out, "Total Requests: 2\n")
	assert.Contains(t, out, "Avg. Characters/Request: 2000.00\n")
	assert.Contains(t, out, "2024-05-01 10:00:00 (2 hours ago) - 1,500 chars, Voice: Camila, Engine: neural\n")
	assert.Contains(t, out, "2,500 chars, Voice: Joanna, Engine: -\n")
}
