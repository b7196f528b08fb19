package build

import (
	"errors"
	"fmt"
)

// ErrNoCommand reports an empty configured build command. Nothing is
// spawned.
var ErrNoCommand = errors.New("no build command configured")

// SpawnError reports that the OS could not start the build process at
// all (binary not found, permissions). No analysis is attempted.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn build command %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// NonTextOutputError reports captured process output that is not valid
// UTF-8. Fatal for the whole build: the caller cannot consume
// undecodable diagnostic output.
type NonTextOutputError struct {
	Stream string // "stdout" or "stderr"
}

func (e *NonTextOutputError) Error() string {
	return fmt.Sprintf("build %s is not valid UTF-8", e.Stream)
}
