package audio

import (
	"context"
	"strings"
	"sync"
)

// MockSink is an in-memory Sink for tests.
type MockSink struct {
	mu       sync.Mutex
	min      int
	max      int
	level    int
	muted    bool
	levels   []int
	toggles  int
	closed   bool
	levelErr error
	muteErr  error
}

// NewMockSink creates a MockSink with the given level range.
func NewMockSink(lo, hi int) *MockSink {
	return &MockSink{min: lo, max: hi}
}

// SetLevelError makes SetLevel fail with err.
func (m *MockSink) SetLevelError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levelErr = err
}

// SetMuteError makes Muted and SetMuted fail with err.
func (m *MockSink) SetMuteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muteErr = err
}

// LevelRange returns the configured range.
func (m *MockSink) LevelRange() (int, int, error) {
	return m.min, m.max, nil
}

// SetLevel records level.
func (m *MockSink) SetLevel(ctx context.Context, level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.levelErr != nil {
		return m.levelErr
	}
	m.level = level
	m.levels = append(m.levels, level)
	return nil
}

// Muted returns the mute state.
func (m *MockSink) Muted(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.muteErr != nil {
		return false, m.muteErr
	}
	return m.muted, nil
}

// SetMuted records the mute state. Each change counts as a toggle.
func (m *MockSink) SetMuted(ctx context.Context, muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.muteErr != nil {
		return m.muteErr
	}
	if muted != m.muted {
		m.toggles++
	}
	m.muted = muted
	return nil
}

// Close marks the sink closed.
func (m *MockSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Level returns the last level written.
func (m *MockSink) Level() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

// Levels returns every level written, in order.
func (m *MockSink) Levels() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.levels...)
}

// Toggles returns how many times the mute state changed.
func (m *MockSink) Toggles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.toggles
}

// Closed reports whether Close was called.
func (m *MockSink) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// MockRunner records commands and replies from a table keyed by the
// space-joined command line.
type MockRunner struct {
	mu       sync.Mutex
	Replies  map[string]string
	Errors   map[string]error
	Commands []string
}

// NewMockRunner creates an empty MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Replies: make(map[string]string),
		Errors:  make(map[string]error),
	}
}

// Run records the command and returns the configured reply or error.
func (r *MockRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line := strings.Join(append([]string{name}, args...), " ")
	r.Commands = append(r.Commands, line)

	if err, ok := r.Errors[line]; ok {
		return "", err
	}
	return r.Replies[line], nil
}
