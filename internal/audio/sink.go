// Package audio controls the platform output volume.
package audio

import (
	"context"
	"errors"
	"fmt"
	"runtime"
)

// Backend names accepted by New.
const (
	BackendAuto      = "auto"
	BackendOSAScript = "osascript"
	BackendPactl     = "pactl"
)

var (
	// ErrSinkUnavailable is returned when the audio backend cannot be reached at startup.
	ErrSinkUnavailable = errors.New("audio sink unavailable")
	// ErrUnknownBackend is returned for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown audio backend")
)

// Sink is the platform audio endpoint.
type Sink interface {
	// LevelRange returns the native level bounds.
	LevelRange() (min, max int, err error)

	// SetLevel sets the output level in native units.
	SetLevel(ctx context.Context, level int) error

	// Muted reports the current mute state.
	Muted(ctx context.Context) (bool, error)

	// SetMuted sets the mute state.
	SetMuted(ctx context.Context, muted bool) error

	// Close releases the sink.
	Close() error
}

// New opens the named backend and verifies it responds.
// Any failure is reported as ErrSinkUnavailable.
func New(ctx context.Context, backend string, runner Runner) (Sink, error) {
	backend = ResolveBackend(backend)

	var sink Sink
	switch backend {
	case BackendOSAScript:
		sink = NewOSAScriptSink(runner)
	case BackendPactl:
		sink = NewPactlSink(runner)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}

	if _, err := sink.Muted(ctx); err != nil {
		sink.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrSinkUnavailable, backend, err)
	}

	return sink, nil
}

// ResolveBackend maps "" and BackendAuto to the backend for this platform.
// Other names are returned unchanged.
func ResolveBackend(backend string) string {
	if backend == "" || backend == BackendAuto {
		return autoBackend(runtime.GOOS)
	}
	return backend
}

// autoBackend picks the backend for an operating system.
func autoBackend(goos string) string {
	if goos == "darwin" {
		return BackendOSAScript
	}
	return BackendPactl
}

// ToggleMute inverts the sink's mute state and returns the new state.
func ToggleMute(ctx context.Context, sink Sink) (bool, error) {
	muted, err := sink.Muted(ctx)
	if err != nil {
		return false, fmt.Errorf("read mute state: %w", err)
	}

	if err := sink.SetMuted(ctx, !muted); err != nil {
		return muted, fmt.Errorf("set mute state: %w", err)
	}

	return !muted, nil
}
