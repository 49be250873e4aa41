package engine

import "github.com/d1nch8g/pdfspeech/tts"

// ChunkState is the synthesis state of one chunk.
type ChunkState int

const (
	StatePending ChunkState = iota
	StateSynthesizing
	StateDone
	StateFailed
)

func (s ChunkState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSynthesizing:
		return "synthesizing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Progress is reported for every chunk state change. Engine is set while
// synthesizing and once the chunk is done.
type Progress struct {
	Chunk  int
	Total  int
	State  ChunkState
	Engine tts.Engine
	Err    error
}
