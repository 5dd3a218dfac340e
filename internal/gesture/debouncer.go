// Package gesture provides the pinch-and-hold gesture state machine.
package gesture

import "time"

// Default gesture settings.
const (
	// DefaultThreshold is the pinch distance, in pixels, below which the hand counts as pinched.
	DefaultThreshold = 50.0
	// DefaultHold is how long a pinch must be held before it fires.
	DefaultHold = time.Second
)

// Phase is the debouncer state.
type Phase int

const (
	// PhaseIdle means the fingers are apart.
	PhaseIdle Phase = iota
	// PhasePinched means the fingers are closer than the threshold.
	PhasePinched
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePinched:
		return "pinched"
	default:
		return "unknown"
	}
}

// Event is emitted by Update.
type Event int

const (
	// EventNone means nothing happened this frame.
	EventNone Event = iota
	// EventMuteToggle means a pinch was held past the hold duration.
	EventMuteToggle
)

// String returns the event name as recorded in the journal.
func (e Event) String() string {
	switch e {
	case EventMuteToggle:
		return "mute_toggle"
	default:
		return "none"
	}
}

// Config holds the debouncer settings.
type Config struct {
	Threshold float64
	Hold      time.Duration
}

// DefaultConfig returns the default debouncer settings.
func DefaultConfig() Config {
	return Config{
		Threshold: DefaultThreshold,
		Hold:      DefaultHold,
	}
}

// State is a snapshot of the debouncer.
type State struct {
	Phase     Phase
	EnteredAt time.Time
	Fired     bool
}

// Debouncer turns a sustained pinch into a single mute toggle event.
//
// Each pinch episode fires at most once. The episode ends, and the gesture
// re-arms, only when the distance returns to or above the threshold.
type Debouncer struct {
	config    Config
	phase     Phase
	enteredAt time.Time
	fired     bool
}

// NewDebouncer creates a Debouncer in the idle phase.
func NewDebouncer(config Config) *Debouncer {
	return &Debouncer{
		config: config,
		phase:  PhaseIdle,
	}
}

// Update advances the state machine with the distance observed at now.
// It must only be called for frames where a hand was detected.
func (d *Debouncer) Update(distance float64, now time.Time) Event {
	if distance >= d.config.Threshold {
		if d.phase == PhasePinched {
			d.phase = PhaseIdle
			d.fired = false
		}
		return EventNone
	}

	if d.phase == PhaseIdle {
		d.phase = PhasePinched
		d.enteredAt = now
		return EventNone
	}

	if d.fired {
		return EventNone
	}

	if now.Sub(d.enteredAt) > d.config.Hold {
		d.fired = true
		return EventMuteToggle
	}

	return EventNone
}

// State returns a snapshot of the current state.
func (d *Debouncer) State() State {
	return State{
		Phase:     d.phase,
		EnteredAt: d.enteredAt,
		Fired:     d.fired,
	}
}

// Reset returns the debouncer to idle.
func (d *Debouncer) Reset() {
	d.phase = PhaseIdle
	d.enteredAt = time.Time{}
	d.fired = false
}
