package audio

import (
	"context"
	"fmt"
	"strconv"
)

// OSAScriptSink controls macOS output volume through AppleScript.
// Levels are percentages (0-100).
type OSAScriptSink struct {
	runner Runner
}

// NewOSAScriptSink creates a sink backed by osascript.
func NewOSAScriptSink(runner Runner) *OSAScriptSink {
	return &OSAScriptSink{runner: runner}
}

// runAppleScript executes an AppleScript command and returns its output.
func (s *OSAScriptSink) runAppleScript(ctx context.Context, script string) (string, error) {
	return s.runner.Run(ctx, "osascript", "-e", script)
}

// LevelRange returns 0-100.
func (s *OSAScriptSink) LevelRange() (int, int, error) {
	return 0, 100, nil
}

// SetLevel sets the output volume.
func (s *OSAScriptSink) SetLevel(ctx context.Context, level int) error {
	_, err := s.runAppleScript(ctx, fmt.Sprintf("set volume output volume %d", level))
	return err
}

// Muted reports whether output is muted.
func (s *OSAScriptSink) Muted(ctx context.Context) (bool, error) {
	out, err := s.runAppleScript(ctx, "output muted of (get volume settings)")
	if err != nil {
		return false, err
	}

	muted, err := strconv.ParseBool(out)
	if err != nil {
		return false, fmt.Errorf("unexpected mute state %q", out)
	}
	return muted, nil
}

// SetMuted sets the output mute state.
func (s *OSAScriptSink) SetMuted(ctx context.Context, muted bool) error {
	_, err := s.runAppleScript(ctx, fmt.Sprintf("set volume output muted %t", muted))
	return err
}

// Close is a no-op.
func (s *OSAScriptSink) Close() error {
	return nil
}
