package tts

import (
	"errors"
	"fmt"
)

// ErrorKind classifies backend failures.
type ErrorKind int

const (
	// KindOther is any failure that must not be retried.
	KindOther ErrorKind = iota
	// KindUnsupportedEngine means the voice or region cannot serve the
	// requested engine; another engine may work.
	KindUnsupportedEngine
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnsupportedEngine:
		return "unsupported engine"
	default:
		return "backend error"
	}
}

// BackendError is returned by Synthesizer implementations.
type BackendError struct {
	Kind    ErrorKind
	Backend string
	Engine  Engine
	// Code is the backend specific error code, when there is one.
	Code string
	Err  error
}

func (e *BackendError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Backend, e.Kind)
	if e.Engine != "" {
		msg += fmt.Sprintf(" (engine %s)", e.Engine)
	}
	if e.Code != "" {
		msg += " [" + e.Code + "]"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsUnsupportedEngine reports whether err carries KindUnsupportedEngine.
func IsUnsupportedEngine(err error) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Kind == KindUnsupportedEngine
}
