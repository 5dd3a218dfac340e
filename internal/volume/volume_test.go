package volume

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestInterp(t *testing.T) {
	from := Range{Min: 30, Max: 250}
	to := Range{Min: 0, Max: 100}

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "at min", x: 30, want: 0},
		{name: "at max", x: 250, want: 100},
		{name: "midpoint", x: 140, want: 50},
		{name: "below range clamps", x: 0, want: 0},
		{name: "far below range clamps", x: -1e9, want: 0},
		{name: "above range clamps", x: 400, want: 100},
		{name: "far above range clamps", x: 1e9, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interp(tt.x, from, to)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Interp(%f) = %f, want %f", tt.x, got, tt.want)
			}
		})
	}
}

func TestInterp_InvertedOutput(t *testing.T) {
	from := Range{Min: 0, Max: 100}
	bar := Range{Min: BarBottom, Max: BarTop}

	if got := Interp(0, from, bar); got != BarBottom {
		t.Errorf("expected %d at 0, got %f", BarBottom, got)
	}
	if got := Interp(100, from, bar); got != BarTop {
		t.Errorf("expected %d at 100, got %f", BarTop, got)
	}
	if got := Interp(50, from, bar); math.Abs(got-275) > epsilon {
		t.Errorf("expected 275 at 50, got %f", got)
	}
}

func TestInterp_NegativeOutput(t *testing.T) {
	// Attenuation-style range such as -65.25..0 dB
	to := Range{Min: -65.25, Max: 0}

	if got := Interp(10, DefaultDistanceRange, to); got != -65.25 {
		t.Errorf("expected clamp to -65.25, got %f", got)
	}
	if got := Interp(300, DefaultDistanceRange, to); got != 0 {
		t.Errorf("expected clamp to 0, got %f", got)
	}
}

func TestInterp_Monotonic(t *testing.T) {
	to := Range{Min: 0, Max: 100}
	prev := Interp(-10, DefaultDistanceRange, to)

	for d := -9.0; d <= 300; d += 0.5 {
		got := Interp(d, DefaultDistanceRange, to)
		if got < prev {
			t.Fatalf("Interp not monotonic at %f: %f < %f", d, got, prev)
		}
		if got < to.Min || got > to.Max {
			t.Fatalf("Interp(%f) = %f escaped output range", d, got)
		}
		prev = got
	}
}

func TestInterp_DegenerateInput(t *testing.T) {
	from := Range{Min: 50, Max: 50}
	to := Range{Min: 0, Max: 100}

	if got := Interp(10, from, to); got != 0 {
		t.Errorf("expected 0 below degenerate range, got %f", got)
	}
	if got := Interp(50, from, to); got != 0 {
		t.Errorf("expected 0 at degenerate point, got %f", got)
	}
	if got := Interp(60, from, to); got != 100 {
		t.Errorf("expected 100 above degenerate range, got %f", got)
	}
}

func TestWindow(t *testing.T) {
	t.Run("empty mean is zero", func(t *testing.T) {
		w := NewWindow(3)
		if w.Mean() != 0 {
			t.Errorf("expected 0, got %f", w.Mean())
		}
		if w.Len() != 0 {
			t.Errorf("expected empty window, got %d", w.Len())
		}
	})

	t.Run("partial window averages what it has", func(t *testing.T) {
		w := NewWindow(10)
		w.Push(10)
		w.Push(20)

		if w.Mean() != 15 {
			t.Errorf("expected 15, got %f", w.Mean())
		}
	})

	t.Run("evicts oldest first", func(t *testing.T) {
		w := NewWindow(3)
		for _, v := range []float64{1, 2, 3, 4} {
			w.Push(v)
		}

		if w.Len() != 3 {
			t.Fatalf("expected len 3, got %d", w.Len())
		}
		if w.Mean() != 3 {
			t.Errorf("expected mean of 2,3,4 = 3, got %f", w.Mean())
		}
	})

	t.Run("never exceeds capacity", func(t *testing.T) {
		w := NewWindow(DefaultWindowSize)
		for i := 0; i < 1000; i++ {
			w.Push(float64(i))
			if w.Len() > DefaultWindowSize {
				t.Fatalf("window grew to %d", w.Len())
			}
		}

		if w.Len() != DefaultWindowSize {
			t.Errorf("expected len %d, got %d", DefaultWindowSize, w.Len())
		}
		// Last ten values: 990..999
		if w.Mean() != 994.5 {
			t.Errorf("expected mean 994.5, got %f", w.Mean())
		}
	})

	t.Run("size below one", func(t *testing.T) {
		w := NewWindow(0)
		w.Push(5)
		w.Push(7)
		if w.Size() != 1 || w.Len() != 1 || w.Mean() != 7 {
			t.Errorf("expected single-sample window holding 7, got size=%d len=%d mean=%f", w.Size(), w.Len(), w.Mean())
		}
	})

	t.Run("reset", func(t *testing.T) {
		w := NewWindow(3)
		w.Push(1)
		w.Reset()
		if w.Len() != 0 {
			t.Errorf("expected empty window after reset, got %d", w.Len())
		}
	})
}

func TestSmoother_WindowOfOne(t *testing.T) {
	sequence := []float64{250, 250, 30}

	t.Run("closing pinch raises level", func(t *testing.T) {
		// Inverted distance range: wide apart is quiet, pinched is loud
		s := NewSmoother(Config{DistanceRange: Range{Min: 250, Max: 30}, WindowSize: 1}, Range{Min: 0, Max: 100})

		want := []int{0, 0, 100}
		for i, d := range sequence {
			if got := s.Update(d); got.Value != want[i] {
				t.Errorf("frame %d: expected %d, got %d", i, want[i], got.Value)
			}
		}
	})

	t.Run("default orientation", func(t *testing.T) {
		s := NewSmoother(Config{DistanceRange: DefaultDistanceRange, WindowSize: 1}, Range{Min: 0, Max: 100})

		want := []int{100, 100, 0}
		for i, d := range sequence {
			if got := s.Update(d); got.Value != want[i] {
				t.Errorf("frame %d: expected %d, got %d", i, want[i], got.Value)
			}
		}
	})
}

func TestSmoother_WindowOfTwo(t *testing.T) {
	s := NewSmoother(Config{DistanceRange: DefaultDistanceRange, WindowSize: 2}, Range{Min: 0, Max: 100})

	first := s.Update(30) // raw 0
	if first.Value != 0 {
		t.Errorf("first frame: expected 0, got %d", first.Value)
	}

	second := s.Update(250) // raw 100
	if second.Value != 50 {
		t.Errorf("second frame: expected 50, got %d", second.Value)
	}
	if second.Raw != 100 {
		t.Errorf("second frame: expected raw 100, got %f", second.Raw)
	}
}

func TestSmoother_ConvergesToConstantInput(t *testing.T) {
	s := NewSmoother(DefaultConfig(), Range{Min: 0, Max: 100})

	// Start from the bottom so the window holds other values first
	for i := 0; i < 5; i++ {
		s.Update(0)
	}
	var got Level
	for i := 0; i < DefaultWindowSize; i++ {
		got = s.Update(140)
	}

	if got.Value != 50 {
		t.Errorf("expected 50 after %d identical samples, got %d", DefaultWindowSize, got.Value)
	}
	if s.WindowLen() != DefaultWindowSize {
		t.Errorf("expected window len %d, got %d", DefaultWindowSize, s.WindowLen())
	}
}

func TestSmoother_WindowBounded(t *testing.T) {
	s := NewSmoother(DefaultConfig(), Range{Min: 0, Max: 100})
	for i := 0; i < 1000; i++ {
		s.Update(float64(i % 300))
	}
	if s.WindowLen() != DefaultWindowSize {
		t.Errorf("expected window len %d, got %d", DefaultWindowSize, s.WindowLen())
	}
}

func TestSmoother_NeverLeavesOutputRange(t *testing.T) {
	out := Range{Min: -65, Max: 0}
	s := NewSmoother(DefaultConfig(), out)

	for _, d := range []float64{-1e6, 0, 1e6, 29.9, 250.1, math.MaxFloat64} {
		got := s.Update(d)
		if float64(got.Value) < out.Min || float64(got.Value) > out.Max {
			t.Errorf("Update(%g) = %d escaped [%f, %f]", d, got.Value, out.Min, out.Max)
		}
		if got.Percent < 0 || got.Percent > 100 {
			t.Errorf("Update(%g) percent %f escaped [0, 100]", d, got.Percent)
		}
		if got.BarY < BarTop || got.BarY > BarBottom {
			t.Errorf("Update(%g) bar %f escaped [%d, %d]", d, got.BarY, BarTop, BarBottom)
		}
	}
}

func TestSmoother_Projections(t *testing.T) {
	s := NewSmoother(DefaultConfig(), Range{Min: 0, Max: 100})

	tests := []struct {
		level       int
		wantPercent float64
		wantBar     float64
	}{
		{level: 0, wantPercent: 0, wantBar: BarBottom},
		{level: 100, wantPercent: 100, wantBar: BarTop},
		{level: 40, wantPercent: 40, wantBar: 300},
	}

	for _, tt := range tests {
		if got := s.Percent(tt.level); math.Abs(got-tt.wantPercent) > epsilon {
			t.Errorf("Percent(%d) = %f, want %f", tt.level, got, tt.wantPercent)
		}
		if got := s.BarY(tt.level); math.Abs(got-tt.wantBar) > epsilon {
			t.Errorf("BarY(%d) = %f, want %f", tt.level, got, tt.wantBar)
		}
	}
}

func TestSmoother_TruncatesTowardZero(t *testing.T) {
	s := NewSmoother(Config{DistanceRange: DefaultDistanceRange, WindowSize: 2}, Range{Min: -10, Max: 0})

	// raw -10, then raw 0
	s.Update(30)
	got := s.Update(250)
	if got.Value != -5 {
		t.Errorf("expected -5, got %d", got.Value)
	}

	// raw -9.5, mean -4.75
	got = s.Update(41)
	if got.Value != -4 {
		t.Errorf("expected truncation to -4, got %d", got.Value)
	}
}

func TestSmoother_Reset(t *testing.T) {
	s := NewSmoother(DefaultConfig(), Range{Min: 0, Max: 100})
	s.Update(250)
	s.Reset()

	if s.WindowLen() != 0 {
		t.Errorf("expected empty window after reset, got %d", s.WindowLen())
	}
	if got := s.Update(30); got.Value != 0 {
		t.Errorf("expected fresh average 0 after reset, got %d", got.Value)
	}
}
