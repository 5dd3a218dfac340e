package overlay

import (
	"errors"
	"time"

	"gocv.io/x/gocv"
)

var errEmptyFrame = errors.New("overlay: empty frame")

// Keys that stop the control loop.
const (
	KeyQuit      = 'q'
	KeyQuitUpper = 'Q'
	KeyEscape    = 27
)

// NoKey is returned by PollKey when nothing was pressed.
const NoKey = -1

// Display shows frames and reports key presses.
type Display interface {
	Show(frame *gocv.Mat) error
	// PollKey waits briefly for a key press and returns it, or NoKey.
	PollKey() int
	Close() error
}

// IsQuit reports whether key should stop the loop.
func IsQuit(key int) bool {
	switch key {
	case KeyQuit, KeyQuitUpper, KeyEscape:
		return true
	default:
		return false
	}
}

// Window is a Display backed by an OpenCV highgui window.
type Window struct {
	window *gocv.Window
}

// NewWindow opens a named window.
func NewWindow(title string) *Window {
	return &Window{window: gocv.NewWindow(title)}
}

// Show draws frame in the window.
func (w *Window) Show(frame *gocv.Mat) error {
	if frame == nil || frame.Empty() {
		return errEmptyFrame
	}
	w.window.IMShow(*frame)
	return nil
}

// PollKey pumps window events for 1ms and returns the key pressed.
func (w *Window) PollKey() int {
	key := w.window.WaitKey(1)
	if key < 0 {
		return NoKey
	}
	return key & 0xFF
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.window.Close()
}

// NopDisplay discards frames. Its key queue lets tests inject key presses.
type NopDisplay struct {
	keys   []int
	shown  int
	closed bool
}

// NewNopDisplay creates a headless display.
func NewNopDisplay() *NopDisplay {
	return &NopDisplay{}
}

// Press queues keys to be returned by PollKey, one per call.
func (d *NopDisplay) Press(keys ...int) {
	d.keys = append(d.keys, keys...)
}

// Show counts the frame and discards it.
func (d *NopDisplay) Show(frame *gocv.Mat) error {
	d.shown++
	return nil
}

// PollKey returns the next queued key, or NoKey.
func (d *NopDisplay) PollKey() int {
	if len(d.keys) == 0 {
		return NoKey
	}
	key := d.keys[0]
	d.keys = d.keys[1:]
	return key
}

// Shown returns the number of frames shown.
func (d *NopDisplay) Shown() int {
	return d.shown
}

// Closed reports whether Close was called.
func (d *NopDisplay) Closed() bool {
	return d.closed
}

// Close marks the display closed.
func (d *NopDisplay) Close() error {
	d.closed = true
	return nil
}

// FPSCounter measures the instantaneous frame rate.
type FPSCounter struct {
	last time.Time
}

// Tick records a frame at now and returns 1/dt since the previous frame.
// The first tick returns 0.
func (c *FPSCounter) Tick(now time.Time) float64 {
	prev := c.last
	c.last = now

	if prev.IsZero() {
		return 0
	}

	dt := now.Sub(prev).Seconds()
	if dt <= 0 {
		return 0
	}
	return 1 / dt
}
