package audio

import (
	"context"
	"fmt"
	"strings"
)

// DefaultSink is the pactl name for the current default output.
const DefaultSink = "@DEFAULT_SINK@"

// PactlSink controls PulseAudio or PipeWire output volume through pactl.
// Levels are percentages (0-100).
type PactlSink struct {
	runner Runner
	sink   string
}

// NewPactlSink creates a sink controlling the default pactl output.
func NewPactlSink(runner Runner) *PactlSink {
	return &PactlSink{runner: runner, sink: DefaultSink}
}

func (s *PactlSink) pactl(ctx context.Context, args ...string) (string, error) {
	return s.runner.Run(ctx, "pactl", args...)
}

// LevelRange returns 0-100.
func (s *PactlSink) LevelRange() (int, int, error) {
	return 0, 100, nil
}

// SetLevel sets the output volume.
func (s *PactlSink) SetLevel(ctx context.Context, level int) error {
	_, err := s.pactl(ctx, "set-sink-volume", s.sink, fmt.Sprintf("%d%%", level))
	return err
}

// Muted reports whether output is muted. pactl prints "Mute: yes" or "Mute: no".
func (s *PactlSink) Muted(ctx context.Context) (bool, error) {
	out, err := s.pactl(ctx, "get-sink-mute", s.sink)
	if err != nil {
		return false, err
	}

	value := strings.TrimSpace(strings.TrimPrefix(out, "Mute:"))
	switch value {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected mute state %q", out)
	}
}

// SetMuted sets the output mute state.
func (s *PactlSink) SetMuted(ctx context.Context, muted bool) error {
	flag := "0"
	if muted {
		flag = "1"
	}
	_, err := s.pactl(ctx, "set-sink-mute", s.sink, flag)
	return err
}

// Close is a no-op.
func (s *PactlSink) Close() error {
	return nil
}
