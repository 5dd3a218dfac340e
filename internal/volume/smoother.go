package volume

import "math"

// Volume bar span in frame pixels. The bar fills upward, so the bottom
// (empty) coordinate is the larger one.
const (
	BarBottom = 400
	BarTop    = 150
)

// DefaultDistanceRange is the pinch distance span, in pixels, mapped onto
// the full output range.
var DefaultDistanceRange = Range{Min: 30, Max: 250}

// Level is the smoothed output of one Update.
type Level struct {
	// Value is the level written to the sink, in the sink's native units.
	Value int
	// Raw is the interpolated level before smoothing.
	Raw float64
	// Percent is Value projected onto 0-100.
	Percent float64
	// BarY is the vertical pixel coordinate of the bar fill.
	BarY float64
}

// Config holds the smoother settings.
type Config struct {
	DistanceRange Range
	WindowSize    int
}

// DefaultConfig returns the default smoother settings.
func DefaultConfig() Config {
	return Config{
		DistanceRange: DefaultDistanceRange,
		WindowSize:    DefaultWindowSize,
	}
}

// Smoother turns pinch distances into a moving-average output level.
type Smoother struct {
	input  Range
	output Range
	window *Window
}

// NewSmoother creates a Smoother mapping config.DistanceRange onto output,
// the sink's native level range.
func NewSmoother(config Config, output Range) *Smoother {
	return &Smoother{
		input:  config.DistanceRange,
		output: output,
		window: NewWindow(config.WindowSize),
	}
}

// Update feeds one distance sample and returns the smoothed level.
func (s *Smoother) Update(distance float64) Level {
	raw := Interp(distance, s.input, s.output)
	s.window.Push(raw)

	value := int(math.Trunc(s.window.Mean()))
	return Level{
		Value:   value,
		Raw:     raw,
		Percent: s.Percent(value),
		BarY:    s.BarY(value),
	}
}

// Percent projects a level onto 0-100.
func (s *Smoother) Percent(level int) float64 {
	return Interp(float64(level), s.output, Range{Min: 0, Max: 100})
}

// BarY projects a level onto the volume bar span.
func (s *Smoother) BarY(level int) float64 {
	return Interp(float64(level), s.output, Range{Min: BarBottom, Max: BarTop})
}

// Output returns the output range.
func (s *Smoother) Output() Range {
	return s.output
}

// WindowLen returns the number of samples currently averaged.
func (s *Smoother) WindowLen() int {
	return s.window.Len()
}

// Reset clears the smoothing history.
func (s *Smoother) Reset() {
	s.window.Reset()
}
