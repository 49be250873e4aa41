package tts

import (
	"context"
	"slices"
)

// Engine is the speech-generation tier requested from a backend.
type Engine string

const (
	EngineNeural   Engine = "neural"
	EngineStandard Engine = "standard"
)

// Format is the encoded audio format of a synthesized fragment.
type Format string

const FormatMP3 Format = "mp3"

// DefaultSampleRate is the sample rate requested for every chunk, in Hz.
const DefaultSampleRate = 24000

// Synthesizer defines the interface for text-to-speech backends
type Synthesizer interface {
	// Synthesize returns the encoded audio for one chunk of text. Failures
	// are reported as *BackendError so callers can tell an unsupported
	// engine from anything else.
	Synthesize(ctx context.Context, req Request) ([]byte, error)

	// Voices lists the voices available for a language code.
	Voices(ctx context.Context, languageCode string) ([]Voice, error)

	Close() error
}

// Request represents one synthesis call
type Request struct {
	Text         string
	VoiceID      string
	LanguageCode string
	Engine       Engine
	Format       Format
	SampleRate   int
}

// Voice describes a backend voice.
type Voice struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	LanguageCode string   `json:"language_code"`
	Gender       string   `json:"gender,omitempty"`
	Engines      []Engine `json:"engines,omitempty"`
}

// Supports reports whether the voice can be used with engine.
func (v Voice) Supports(engine Engine) bool {
	return slices.Contains(v.Engines, engine)
}
