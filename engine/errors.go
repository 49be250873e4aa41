package engine

import (
	"errors"
	"fmt"

	"github.com/d1nch8g/pdfspeech/tts"
)

var (
	// ErrInvalidSelection is matched by every locale or voice selection
	// error, including ErrInvalidVoice and locale.ErrUnsupportedLocale.
	ErrInvalidSelection = errors.New("invalid selection")
	ErrInvalidVoice     = fmt.Errorf("%w: voice", ErrInvalidSelection)
)

type selectionError struct {
	err error
}

func (e *selectionError) Error() string { return e.err.Error() }

func (e *selectionError) Unwrap() []error { return []error{ErrInvalidSelection, e.err} }

// SynthesisError reports the chunk whose synthesis failed.
type SynthesisError struct {
	Chunk  int
	Total  int
	Engine tts.Engine
	Err    error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("failed to synthesize chunk %d/%d with %s engine: %v", e.Chunk, e.Total, e.Engine, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// ConversionError is the single failure outcome of Convert.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string { return "conversion failed: " + e.Err.Error() }

func (e *ConversionError) Unwrap() error { return e.Err }
