package volume

// DefaultWindowSize is the number of samples averaged by default.
const DefaultWindowSize = 10

// Window is a bounded FIFO of recent samples. Once full, each push evicts
// the oldest sample.
type Window struct {
	samples []float64
	size    int
}

// NewWindow creates a Window holding at most size samples.
// Sizes below 1 are treated as 1.
func NewWindow(size int) *Window {
	if size < 1 {
		size = 1
	}
	return &Window{
		samples: make([]float64, 0, size),
		size:    size,
	}
}

// Push appends v, evicting the oldest sample when the window is full.
func (w *Window) Push(v float64) {
	if len(w.samples) >= w.size {
		// Shift left by 1, dropping the oldest sample
		copy(w.samples, w.samples[1:])
		w.samples = w.samples[:w.size-1]
	}
	w.samples = append(w.samples, v)
}

// Mean returns the arithmetic mean of the current samples, or 0 when empty.
func (w *Window) Mean() float64 {
	if len(w.samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range w.samples {
		sum += s
	}
	return sum / float64(len(w.samples))
}

// Len returns the number of samples currently held.
func (w *Window) Len() int {
	return len(w.samples)
}

// Size returns the window capacity.
func (w *Window) Size() int {
	return w.size
}

// Reset drops all samples.
func (w *Window) Reset() {
	w.samples = w.samples[:0]
}
