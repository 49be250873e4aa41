package sound

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var (
	ErrNoPath   = errors.New("no output file given")
	ErrNotFound = errors.New("output file not found")
)

// Player defines the interface for audio playback
type Player interface {
	// Initialize initializes the audio playback system
	Initialize() error

	// Terminate terminates the audio playback system
	Terminate()

	// Play decodes and plays the file at path. It blocks until playback
	// finishes, Stop is called or ctx is cancelled.
	Play(ctx context.Context, path string) error

	// Stop interrupts playback of path
	Stop(path string) error
}

// ValidateFile checks that path is set and names an existing regular file.
func ValidateFile(path string) error {
	if path == "" {
		return ErrNoPath
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	return nil
}
