package app

import (
	"time"

	"github.com/ayusman/pinchvol/internal/detector"
	"github.com/ayusman/pinchvol/internal/gesture"
	"github.com/ayusman/pinchvol/internal/volume"
)

// DefaultMuteCooldown is the minimum spacing between two mute toggles.
const DefaultMuteCooldown = time.Second

// ControllerConfig holds the per-frame decision settings.
type ControllerConfig struct {
	Volume       volume.Config
	Gesture      gesture.Config
	MuteCooldown time.Duration
}

// DefaultControllerConfig returns the default decision settings.
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		Volume:       volume.DefaultConfig(),
		Gesture:      gesture.DefaultConfig(),
		MuteCooldown: DefaultMuteCooldown,
	}
}

// Result is what the controller decided for one frame.
type Result struct {
	// Detected is false when no hand was found; nothing else is set then.
	Detected bool
	Thumb    detector.Landmark
	Index    detector.Landmark
	Distance float64
	Level    volume.Level
	Event    gesture.Event
	// ToggleMute asks the caller to flip the sink's mute state.
	ToggleMute bool
}

// Controller turns detected hands into volume levels and mute requests.
// It performs no I/O.
type Controller struct {
	smoother      *volume.Smoother
	debouncer     *gesture.Debouncer
	cooldown      time.Duration
	cooldownUntil time.Time
	muted         bool
}

// NewController creates a Controller whose levels span output.
func NewController(config ControllerConfig, output volume.Range) *Controller {
	return &Controller{
		smoother:  volume.NewSmoother(config.Volume, output),
		debouncer: gesture.NewDebouncer(config.Gesture),
		cooldown:  config.MuteCooldown,
	}
}

// Process runs one frame's hands through the smoother and the debouncer.
// Without a hand no state changes.
func (c *Controller) Process(hands []detector.HandLandmarks, width, height int, now time.Time) Result {
	thumb, index, ok := detector.PinchPoints(hands, width, height)
	if !ok {
		return Result{}
	}

	distance := detector.Distance(thumb.Pos, index.Pos)
	res := Result{
		Detected: true,
		Thumb:    thumb,
		Index:    index,
		Distance: distance,
		Level:    c.smoother.Update(distance),
		Event:    c.debouncer.Update(distance, now),
	}

	// A toggle inside the cooldown is dropped, not deferred.
	if res.Event == gesture.EventMuteToggle && !now.Before(c.cooldownUntil) {
		res.ToggleMute = true
		c.cooldownUntil = now.Add(c.cooldown)
	}

	return res
}

// SetMuted records the mute state confirmed by the sink.
func (c *Controller) SetMuted(muted bool) {
	c.muted = muted
}

// Muted returns the last confirmed mute state.
func (c *Controller) Muted() bool {
	return c.muted
}

// Gesture returns the debouncer state.
func (c *Controller) Gesture() gesture.State {
	return c.debouncer.State()
}

// Percent projects a native level onto 0-100.
func (c *Controller) Percent(level int) float64 {
	return c.smoother.Percent(level)
}
